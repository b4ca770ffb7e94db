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
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/lassandro/lc3vm/pkg/encoding"
)

func (mc *MachineState) Reset() {
	mc.Registers = [8]uint16{}
	mc.Memory = [1 << 16]uint16{}

	// Execution always begins at the start of user space, whatever origin
	// the loaded image declares.
	mc.Program = MEMSPACE_USER
	mc.Condition = FLAG_ZERO
}

func (mc *Machine) Reset() {
	mc.State.Reset()
	mc.status = RUNNING
}

// LoadImage copies img into memory at its origin. Words that would fall
// past the end of memory are dropped.
func (mc *Machine) LoadImage(img encoding.Image) {
	n := copy(mc.State.Memory[img.Origin:], img.Words)

	if n < len(img.Words) {
		mc.logger().WithFields(logrus.Fields{
			"origin":  img.Origin,
			"words":   len(img.Words),
			"dropped": len(img.Words) - n,
		}).Warn(f("image truncated at end of memory"))
	}
}

// LoadBin resets the machine and loads a big-endian program image.
func (mc *Machine) LoadBin(reader io.Reader) error {
	mc.Reset()

	img, err := encoding.ReadImage(reader)
	if err != nil {
		return err
	}

	mc.LoadImage(img)

	return nil
}

func (mc *Machine) Status() Status {
	return mc.status
}

func (mc *Machine) logger() logrus.FieldLogger {
	if mc.Log == nil {
		return logrus.StandardLogger()
	}

	return mc.Log
}

func (mc *Machine) keyboard() Keyboard {
	if mc.Devices == nil {
		return nil
	}

	return mc.Devices.Keyboard
}

func (mc *Machine) display() Display {
	if mc.Devices == nil || mc.Devices.Display == nil {
		return discard{}
	}

	return mc.Devices.Display
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
func (discard) Flush() error                { return nil }

// load reads memory, polling the keyboard when addr is KBSR.
func (mc *Machine) load(addr uint16) uint16 {
	if addr == DEV_KBSR {
		var key byte
		var ok bool

		if kb := mc.keyboard(); kb != nil {
			key, ok = kb.Poll()
		}

		if ok {
			mc.State.Memory[DEV_KBSR] = 1 << 15
			mc.State.Memory[DEV_KBDR] = encoding.SignExtend(uint16(key), 8)
		} else {
			mc.State.Memory[DEV_KBSR] = 0
		}
	}

	return mc.State.Memory[addr]
}

// read is a data access: a load that the tracer observes.
func (mc *Machine) read(addr uint16) uint16 {
	value := mc.load(addr)

	if mc.Tracer != nil {
		mc.Tracer.Read(addr, mc)
	}

	return value
}

func (mc *Machine) write(addr uint16, value uint16) {
	mc.State.Memory[addr] = value

	if mc.Tracer != nil {
		mc.Tracer.Write(addr, mc)
	}
}

func (mc *Machine) updateFlags(reg uint16) {
	value := mc.State.Registers[reg]

	switch {
	case value == 0:
		mc.State.Condition = FLAG_ZERO
	case value>>15 == 1:
		mc.State.Condition = FLAG_NEG
	default:
		mc.State.Condition = FLAG_POS
	}
}

// Step fetches, decodes and executes one instruction. Any error other than
// an abandoned device read leaves the machine FAULTED.
func (mc *Machine) Step() error {
	if mc.status != RUNNING {
		return ErrStopped
	}

	ins := Decode(mc.load(mc.State.Program))
	mc.State.Program++

	var err error
	if int(ins.Opcode) < len(handlers) && handlers[ins.Opcode] != nil {
		err = handlers[ins.Opcode](mc, ins)
	} else {
		err = &ErrUnknownOpcode{Addr: mc.State.Program - 1, Opcode: ins.Opcode}
	}

	if err != nil {
		if !errors.Is(err, context.Canceled) &&
			!errors.Is(err, context.DeadlineExceeded) {
			mc.status = FAULTED
		}

		return err
	}

	if mc.Tracer != nil {
		mc.Tracer.Step(ins, mc)
	}

	return nil
}

// Run steps the machine until it halts, faults or ctx is done. A HALT trap
// returns nil.
func (mc *Machine) Run(ctx context.Context) error {
	for mc.status == RUNNING {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := mc.Step(); err != nil {
			return err
		}
	}

	return nil
}
