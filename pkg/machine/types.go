// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Keyboard is a pollable input device.
type Keyboard interface {
	// Poll returns a pending character without blocking.
	Poll() (key byte, ok bool)

	// ReadByte blocks until a character is available. io.EOF reports the
	// end of input.
	ReadByte() (byte, error)
}

// Display receives trap output. Flush is called after every trap that
// writes.
type Display interface {
	io.Writer
	Flush() error
}

type DeviceHandler struct {
	Keyboard Keyboard
	Display  Display
}

type MachineState struct {
	Registers [8]uint16
	Program   uint16
	Condition Condition
	Memory    [1 << 16]uint16
}

// MachineTracer observes execution. Step is called after every executed
// instruction; Read and Write after every data memory access made by an
// instruction. Instruction fetches are not reported to Read.
type MachineTracer interface {
	Step(ins Instruction, mc *Machine)
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type Status uint8

const (
	RUNNING Status = iota
	HALTED
	FAULTED
)

func (s Status) String() string {
	switch s {
	case RUNNING:
		return "RUNNING"
	case HALTED:
		return "HALTED"
	case FAULTED:
		return "FAULTED"
	}

	return "UNKNOWN"
}

type Machine struct {
	Devices *DeviceHandler
	State   MachineState
	Tracer  MachineTracer
	Log     logrus.FieldLogger

	status Status
}
