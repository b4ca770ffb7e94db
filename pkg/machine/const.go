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

import "strconv"

// Condition is the value of the condition flag register. Exactly one bit
// is set after any flag-updating instruction.
type Condition uint16

const (
	FLAG_POS  Condition = 1 << 0
	FLAG_ZERO Condition = 1 << 1
	FLAG_NEG  Condition = 1 << 2
)

func (c Condition) String() string {
	switch c {
	case FLAG_POS:
		return "P"
	case FLAG_ZERO:
		return "Z"
	case FLAG_NEG:
		return "N"
	}

	return "?"
}

const (
	TRAP_GETC  uint16 = 0x20
	TRAP_OUT   uint16 = 0x21
	TRAP_PUTS  uint16 = 0x22
	TRAP_IN    uint16 = 0x23
	TRAP_PUTSP uint16 = 0x24
	TRAP_HALT  uint16 = 0x25
)

const (
	MEMSPACE_USER    uint16 = 0x3000
	MEMSPACE_DEVICES uint16 = 0xFE00
)

const (
	DEV_KBSR = MEMSPACE_DEVICES
	DEV_KBDR = MEMSPACE_DEVICES + 0x0002
)

// Opcode is the 4-bit operation selector held in bits 15-12 of an
// instruction.
type Opcode uint8

const (
	OP_BR   Opcode = 0b0000
	OP_ADD  Opcode = 0b0001
	OP_LD   Opcode = 0b0010
	OP_ST   Opcode = 0b0011
	OP_JSR  Opcode = 0b0100
	OP_AND  Opcode = 0b0101
	OP_LDR  Opcode = 0b0110
	OP_STR  Opcode = 0b0111
	OP_RTI  Opcode = 0b1000
	OP_NOT  Opcode = 0b1001
	OP_LDI  Opcode = 0b1010
	OP_STI  Opcode = 0b1011
	OP_JMP  Opcode = 0b1100
	OP_RES  Opcode = 0b1101
	OP_LEA  Opcode = 0b1110
	OP_TRAP Opcode = 0b1111

	OPCODE_COUNT = 16
)

var opcodeNames = [OPCODE_COUNT]string{
	OP_BR:   "BR",
	OP_ADD:  "ADD",
	OP_LD:   "LD",
	OP_ST:   "ST",
	OP_JSR:  "JSR",
	OP_AND:  "AND",
	OP_LDR:  "LDR",
	OP_STR:  "STR",
	OP_RTI:  "RTI",
	OP_NOT:  "NOT",
	OP_LDI:  "LDI",
	OP_STI:  "STI",
	OP_JMP:  "JMP",
	OP_RES:  "RES",
	OP_LEA:  "LEA",
	OP_TRAP: "TRAP",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}

	return "OP(" + strconv.Itoa(int(op)) + ")"
}

// Reserved reports whether executing op is a fatal fault. RTI has no
// meaning without a supervisor mode, so it is treated like RES.
func (op Opcode) Reserved() bool {
	return op == OP_RES || op == OP_RTI
}
