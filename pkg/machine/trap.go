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
	"errors"
	"fmt"
	"io"

	"github.com/lassandro/lc3vm/pkg/encoding"
)

const promptIn = "Enter a character: "

// TRAP |1111    |0000   |trapvect8       | System call
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execTRAP(ins Instruction) error {
	mc.State.Registers[7] = mc.State.Program

	switch ins.TrapVect8 {
	case TRAP_GETC:
		return mc.trapGetc()
	case TRAP_OUT:
		return mc.trapOut()
	case TRAP_PUTS:
		return mc.trapPuts()
	case TRAP_IN:
		return mc.trapIn()
	case TRAP_PUTSP:
		return mc.trapPutsp()
	case TRAP_HALT:
		return mc.trapHalt()
	}

	mc.logger().WithField("pc", mc.State.Program-1).
		Warn(f("unknown trap vector %#02x", ins.TrapVect8))

	return nil
}

func deviceError(err error) error {
	return fmt.Errorf("%w: %w", ErrDevice, err)
}

// readKey blocks for a character. At end of input it returns 0xFFFF.
func (mc *Machine) readKey() (uint16, bool, error) {
	kb := mc.keyboard()
	if kb == nil {
		return 0xFFFF, false, nil
	}

	key, err := kb.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0xFFFF, false, nil
	} else if err != nil {
		return 0, false, deviceError(err)
	}

	return uint16(key), true, nil
}

func (mc *Machine) emit(p ...byte) error {
	if _, err := mc.display().Write(p); err != nil {
		return deviceError(err)
	}

	return nil
}

func (mc *Machine) flush() error {
	if err := mc.display().Flush(); err != nil {
		return deviceError(err)
	}

	return nil
}

func (mc *Machine) trapGetc() error {
	key, _, err := mc.readKey()
	if err != nil {
		return err
	}

	mc.State.Registers[0] = key
	mc.updateFlags(0)

	return nil
}

func (mc *Machine) trapOut() error {
	if err := mc.emit(byte(mc.State.Registers[0])); err != nil {
		return err
	}

	return mc.flush()
}

// walkString walks the zero-terminated word string at R0, reading memory
// without device side effects. At most one full pass of memory is made.
func (mc *Machine) walkString(visit func(word uint16) error) error {
	addr := mc.State.Registers[0]

	for n := 0; n < len(mc.State.Memory); n++ {
		word := mc.State.Memory[addr]
		if word == 0 {
			break
		}

		if err := visit(word); err != nil {
			return err
		}

		addr++
	}

	return mc.flush()
}

func (mc *Machine) trapPuts() error {
	return mc.walkString(func(word uint16) error {
		return mc.emit(byte(word))
	})
}

func (mc *Machine) trapPutsp() error {
	return mc.walkString(func(word uint16) error {
		if high := byte(word >> 8); high != 0 {
			return mc.emit(byte(word), high)
		}

		return mc.emit(byte(word))
	})
}

func (mc *Machine) trapIn() error {
	if err := mc.emit([]byte(promptIn)...); err != nil {
		return err
	}

	if err := mc.flush(); err != nil {
		return err
	}

	key, ok, err := mc.readKey()
	if err != nil {
		return err
	}

	// End of input echoes 0xFF, the low byte of the EOF value.
	if err := mc.emit(byte(key)); err != nil {
		return err
	}

	if ok {
		key = encoding.SignExtend(key, 8)
	}

	mc.State.Registers[0] = key
	mc.updateFlags(0)

	return mc.flush()
}

func (mc *Machine) trapHalt() error {
	if err := mc.emit([]byte("HALT\n")...); err != nil {
		return err
	}

	mc.status = HALTED

	return mc.flush()
}
