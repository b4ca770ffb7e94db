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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	ins := Decode(0b0001_101_011_1_10110)

	assert.Equal(t, OP_ADD, ins.Opcode)
	assert.Equal(t, uint16(0b101), ins.DR)
	assert.Equal(t, uint16(0b011), ins.SR1)
	assert.True(t, ins.Imm)
	assert.Equal(t, uint16(0b10110), ins.Imm5)
	assert.Equal(t, uint16(0b110), ins.SR2)

	ins = Decode(0b0100_1_10000000001)
	assert.Equal(t, OP_JSR, ins.Opcode)
	assert.True(t, ins.Long)
	assert.Equal(t, uint16(0b10000000001), ins.PCOffset11)

	ins = Decode(0xF025)
	assert.Equal(t, OP_TRAP, ins.Opcode)
	assert.Equal(t, TRAP_HALT, ins.TrapVect8)
}

func TestHandlersComplete(t *testing.T) {
	for op := Opcode(0); op < OPCODE_COUNT; op++ {
		assert.NotNil(t, handlers[op], op.String())
	}
}

func TestUnknownOpcode(t *testing.T) {
	saved := handlers[OP_NOT]
	handlers[OP_NOT] = nil
	defer func() { handlers[OP_NOT] = saved }()

	var mc Machine
	mc.Reset()
	mc.State.Memory[0x3000] = 0b1001_000_000_1_11111

	err := mc.Step()

	var unknown *ErrUnknownOpcode
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, OP_NOT, unknown.Opcode)
	assert.Equal(t, uint16(0x3000), unknown.Addr)
	assert.NotErrorIs(t, err, ErrReservedOpcode)
	assert.Equal(t, FAULTED, mc.Status())
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "LDI", OP_LDI.String())
	assert.Equal(t, "OP(42)", Opcode(42).String())
	assert.True(t, OP_RES.Reserved())
	assert.True(t, OP_RTI.Reserved())
	assert.False(t, OP_TRAP.Reserved())
}
