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

	"github.com/lassandro/lc3vm/pkg/translate"
)

var f = translate.From

var (
	ErrReservedOpcode = errors.New(f("reserved opcode"))
	ErrDevice         = errors.New(f("device error"))
	ErrStopped        = errors.New(f("machine stopped"))
)

// ErrReserved reports execution of a reserved opcode. It matches
// ErrReservedOpcode with errors.Is.
type ErrReserved struct {
	Addr        uint16
	Instruction uint16
}

func (err *ErrReserved) Error() string {
	return f(
		"reserved opcode %v (%#04x) at %#04x",
		Opcode(err.Instruction>>12).String(),
		err.Instruction,
		err.Addr,
	)
}

func (err *ErrReserved) Unwrap() error {
	return ErrReservedOpcode
}

// ErrUnknownOpcode reports an opcode with no execution rule.
type ErrUnknownOpcode struct {
	Addr   uint16
	Opcode Opcode
}

func (err *ErrUnknownOpcode) Error() string {
	return f("BAD OPCODE: %v at %#04x", uint8(err.Opcode), err.Addr)
}
