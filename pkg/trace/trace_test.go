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

package trace_test

import (
	"bufio"
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/lc3vm/pkg/machine"
	"github.com/lassandro/lc3vm/pkg/trace"
)

func TestParseWatchpoint(t *testing.T) {
	tests := []struct {
		in   string
		want trace.Watchpoint
	}{
		{"0x3000", trace.Watchpoint{Addr: 0x3000, Type: trace.ReadWriteWatch}},
		{"r:xFE00", trace.Watchpoint{Addr: 0xFE00, Type: trace.ReadWatch}},
		{"W:0x4001", trace.Watchpoint{Addr: 0x4001, Type: trace.WriteWatch}},
		{"rw:0x10", trace.Watchpoint{Addr: 0x10, Type: trace.ReadWriteWatch}},
	}

	for _, test := range tests {
		have, err := trace.ParseWatchpoint(test.in)
		assert.NoError(t, err, test.in)
		assert.Equal(t, test.want, have, test.in)
	}

	for _, in := range []string{"", "3000", "x:0x3000", "r:", "r:0xFFFFF"} {
		_, err := trace.ParseWatchpoint(in)
		assert.ErrorIs(t, err, trace.ErrWatchSyntax, in)
	}
}

func runTraced(t *testing.T, tracer *trace.Tracer, words ...uint16) {
	t.Helper()

	var mc machine.Machine
	var display bytes.Buffer

	mc.Devices = &machine.DeviceHandler{Display: bufio.NewWriter(&display)}
	mc.Tracer = tracer
	mc.Reset()

	copy(mc.State.Memory[0x3000:], words)

	require.NoError(t, mc.Run(context.Background()))
}

func TestTracerSteps(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	runTraced(t, &trace.Tracer{Log: logger, Steps: true},
		0b0001_000_000_1_00011, // ADD R0, R0, #3
		0xF025,                 // HALT
	)

	require.Len(t, hook.Entries, 2)

	first := hook.Entries[0]
	assert.Equal(t, logrus.DebugLevel, first.Level)
	assert.Equal(t, "ADD", first.Data["op"])
	assert.Equal(t, uint16(0x3001), first.Data["pc"])
	assert.Equal(t, "P", first.Data["cond"])

	assert.Equal(t, "TRAP", hook.Entries[1].Data["op"])
}

func TestTracerWatchpoints(t *testing.T) {
	logger, hook := test.NewNullLogger()

	tracer := &trace.Tracer{
		Log: logger,
		Watchpoints: []trace.Watchpoint{
			{Addr: 0x3010, Type: trace.WriteWatch},
			{Addr: 0x3011, Type: trace.ReadWatch},
		},
	}

	runTraced(t, tracer,
		0b0011_000_000001111, // ST R0, #15   -> 0x3010
		0b0010_001_000001111, // LD R1, #15   -> 0x3011
		0b0010_010_000001101, // LD R2, #13   -> 0x3010
		0xF025,               // HALT
	)

	require.Len(t, hook.Entries, 2)

	assert.Equal(t, "write", hook.Entries[0].Message)
	assert.Equal(t, uint16(0x3010), hook.Entries[0].Data["addr"])

	assert.Equal(t, "read", hook.Entries[1].Message)
	assert.Equal(t, uint16(0x3011), hook.Entries[1].Data["addr"])
}

func TestTracerIgnoresFetch(t *testing.T) {
	logger, hook := test.NewNullLogger()

	tracer := &trace.Tracer{
		Log:         logger,
		Watchpoints: []trace.Watchpoint{{Addr: 0x3000}, {Addr: 0x3001}},
	}

	runTraced(t, tracer,
		0b0001_000_000_1_00001, // ADD R0, R0, #1
		0xF025,                 // HALT
	)

	assert.Empty(t, hook.Entries)
}
