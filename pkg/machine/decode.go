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

// Instruction holds the raw bit-fields of an instruction word. Fields
// overlap: which ones are meaningful depends on Opcode. No field is sign
// extended here.
//
//	---- [ 15 14 13 12 | 11 10 9 | 8 7 6 | 5 | 4 3 2 1 0 ]
//	       opcode        DR/SR/nzp SR1/BaseR imm
type Instruction struct {
	Word   uint16
	Opcode Opcode

	DR   uint16 // bits 11-9, also SR for stores
	SR1  uint16 // bits 8-6, also BaseR
	SR2  uint16 // bits 2-0
	NZP  uint16 // bits 11-9 for BR
	Imm  bool   // bit 5
	Long bool   // bit 11 for JSR

	Imm5       uint16 // bits 4-0
	Offset6    uint16 // bits 5-0
	PCOffset9  uint16 // bits 8-0
	PCOffset11 uint16 // bits 10-0
	TrapVect8  uint16 // bits 7-0
}

func Decode(word uint16) Instruction {
	return Instruction{
		Word:   word,
		Opcode: Opcode(word >> 12),

		DR:   (word >> 9) & 0x7,
		SR1:  (word >> 6) & 0x7,
		SR2:  word & 0x7,
		NZP:  (word >> 9) & 0x7,
		Imm:  (word>>5)&0x1 == 1,
		Long: (word>>11)&0x1 == 1,

		Imm5:       word & 0x1F,
		Offset6:    word & 0x3F,
		PCOffset9:  word & 0x1FF,
		PCOffset11: word & 0x7FF,
		TrapVect8:  word & 0xFF,
	}
}
