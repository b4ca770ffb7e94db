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

// Package trace logs machine execution and accesses to watched addresses.
package trace

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lassandro/lc3vm/pkg/encoding"
	"github.com/lassandro/lc3vm/pkg/machine"
)

type WatchpointType uint

const (
	ReadWriteWatch WatchpointType = iota
	ReadWatch
	WriteWatch
)

type Watchpoint struct {
	Addr uint16
	Type WatchpointType
}

var ErrWatchSyntax = errors.New("watchpoint must be [r:|w:]ADDR with a hex address")

// ParseWatchpoint reads "0x3000", "r:0x3000" or "w:xFE00".
func ParseWatchpoint(s string) (Watchpoint, error) {
	var wp Watchpoint

	if kind, addr, found := strings.Cut(s, ":"); found {
		switch strings.ToLower(kind) {
		case "r":
			wp.Type = ReadWatch
		case "w":
			wp.Type = WriteWatch
		case "rw":
			wp.Type = ReadWriteWatch
		default:
			return wp, ErrWatchSyntax
		}

		s = addr
	}

	addr, err := encoding.DecodeHex(s)
	if err != nil {
		return wp, ErrWatchSyntax
	}

	wp.Addr = addr

	return wp, nil
}

// Tracer implements machine.MachineTracer.
type Tracer struct {
	Log logrus.FieldLogger

	// Steps enables one debug entry per executed instruction.
	Steps bool

	Watchpoints []Watchpoint
}

func (tr *Tracer) logger() logrus.FieldLogger {
	if tr.Log == nil {
		return logrus.StandardLogger()
	}

	return tr.Log
}

func (tr *Tracer) Step(ins machine.Instruction, mc *machine.Machine) {
	if !tr.Steps {
		return
	}

	tr.logger().WithFields(logrus.Fields{
		"op":    ins.Opcode.String(),
		"instr": ins.Word,
		"pc":    mc.State.Program,
		"cond":  mc.State.Condition.String(),
		"regs":  mc.State.Registers,
	}).Debug("step")
}

func (tr *Tracer) watch(addr uint16, skip WatchpointType, access string, mc *machine.Machine) {
	for _, watchpoint := range tr.Watchpoints {
		if watchpoint.Type == skip {
			continue
		}

		if addr == watchpoint.Addr {
			tr.logger().WithFields(logrus.Fields{
				"addr":  addr,
				"value": mc.State.Memory[addr],
				"pc":    mc.State.Program,
			}).Info(access)
			break
		}
	}
}

func (tr *Tracer) Read(addr uint16, mc *machine.Machine) {
	tr.watch(addr, WriteWatch, "read", mc)
}

func (tr *Tracer) Write(addr uint16, mc *machine.Machine) {
	tr.watch(addr, ReadWatch, "write", mc)
}
