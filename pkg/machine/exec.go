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
	"github.com/lassandro/lc3vm/pkg/encoding"
)

type handler func(mc *Machine, ins Instruction) error

// handlers holds one execution rule per opcode. A nil entry is reported as
// an unknown opcode.
var handlers = [OPCODE_COUNT]handler{
	OP_BR:   (*Machine).execBR,
	OP_ADD:  (*Machine).execADD,
	OP_LD:   (*Machine).execLD,
	OP_ST:   (*Machine).execST,
	OP_JSR:  (*Machine).execJSR,
	OP_AND:  (*Machine).execAND,
	OP_LDR:  (*Machine).execLDR,
	OP_STR:  (*Machine).execSTR,
	OP_RTI:  (*Machine).execReserved,
	OP_NOT:  (*Machine).execNOT,
	OP_LDI:  (*Machine).execLDI,
	OP_STI:  (*Machine).execSTI,
	OP_JMP:  (*Machine).execJMP,
	OP_RES:  (*Machine).execReserved,
	OP_LEA:  (*Machine).execLEA,
	OP_TRAP: (*Machine).execTRAP,
}

// pcRelative is the address PC + SEXT(PCoffset9). PC already points past
// the current instruction.
func (mc *Machine) pcRelative(ins Instruction) uint16 {
	return mc.State.Program + encoding.SignExtend(ins.PCOffset9, 9)
}

func (mc *Machine) baseRelative(ins Instruction) uint16 {
	return mc.State.Registers[ins.SR1] + encoding.SignExtend(ins.Offset6, 6)
}

// operand2 is SR2 or SEXT(imm5), selected by bit 5.
func (mc *Machine) operand2(ins Instruction) uint16 {
	if ins.Imm {
		return encoding.SignExtend(ins.Imm5, 5)
	}

	return mc.State.Registers[ins.SR2]
}

// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execADD(ins Instruction) error {
	mc.State.Registers[ins.DR] = mc.State.Registers[ins.SR1] + mc.operand2(ins)
	mc.updateFlags(ins.DR)
	return nil
}

// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execAND(ins Instruction) error {
	mc.State.Registers[ins.DR] = mc.State.Registers[ins.SR1] & mc.operand2(ins)
	mc.updateFlags(ins.DR)
	return nil
}

// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execNOT(ins Instruction) error {
	mc.State.Registers[ins.DR] = ^mc.State.Registers[ins.SR1]
	mc.updateFlags(ins.DR)
	return nil
}

// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execBR(ins Instruction) error {
	if ins.NZP&uint16(mc.State.Condition) != 0 {
		mc.State.Program = mc.pcRelative(ins)
	}

	return nil
}

// JMP  |1100    |000  |BaseR|000000      | Jump
// RET  |1100    |000  |111  |000000      | Return
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execJMP(ins Instruction) error {
	mc.State.Program = mc.State.Registers[ins.SR1]
	return nil
}

// JSR  |0100    |1|PCoffset11            | Jump to subroutine
// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execJSR(ins Instruction) error {
	// Linking happens first, so JSRR R7 lands on the next instruction.
	mc.State.Registers[7] = mc.State.Program

	if ins.Long {
		mc.State.Program += encoding.SignExtend(ins.PCOffset11, 11)
	} else {
		mc.State.Program = mc.State.Registers[ins.SR1]
	}

	return nil
}

// LD   |0010    |DR   |PCoffset9         | Load
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLD(ins Instruction) error {
	mc.State.Registers[ins.DR] = mc.read(mc.pcRelative(ins))
	mc.updateFlags(ins.DR)
	return nil
}

// LDI  |1010    |DR   |PCoffset9         | Load indirect
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDI(ins Instruction) error {
	mc.State.Registers[ins.DR] = mc.read(mc.read(mc.pcRelative(ins)))
	mc.updateFlags(ins.DR)
	return nil
}

// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLDR(ins Instruction) error {
	mc.State.Registers[ins.DR] = mc.read(mc.baseRelative(ins))
	mc.updateFlags(ins.DR)
	return nil
}

// LEA  |1110    |DR   |PCoffset9         | Load effective address
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLEA(ins Instruction) error {
	mc.State.Registers[ins.DR] = mc.pcRelative(ins)
	mc.updateFlags(ins.DR)
	return nil
}

// ST   |0011    |SR   |PCoffset9         | Store
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execST(ins Instruction) error {
	mc.write(mc.pcRelative(ins), mc.State.Registers[ins.DR])
	return nil
}

// STI  |1011    |SR   |PCoffset9         | Store indirect
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSTI(ins Instruction) error {
	mc.write(mc.read(mc.pcRelative(ins)), mc.State.Registers[ins.DR])
	return nil
}

// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execSTR(ins Instruction) error {
	mc.write(mc.baseRelative(ins), mc.State.Registers[ins.DR])
	return nil
}

// RTI  |1000    |000000000000            | Return from interrupt (unsupported)
// RES  |1101    |                        | Reserved (illegal)
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execReserved(ins Instruction) error {
	return &ErrReserved{Addr: mc.State.Program - 1, Instruction: ins.Word}
}
