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

package terminal_test

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/lc3vm/pkg/terminal"
)

func pipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	return r, w
}

func TestPipeIsNotTerminal(t *testing.T) {
	r, _ := pipe(t)

	assert.False(t, terminal.IsTerminal(r.Fd()))

	_, err := terminal.EnterRaw(r.Fd())
	assert.ErrorIs(t, err, terminal.ErrNotTerminal)
}

func TestKeyboardPoll(t *testing.T) {
	r, w := pipe(t)
	kb := terminal.NewKeyboard(context.Background(), r)

	_, ok := kb.Poll()
	assert.False(t, ok)

	_, err := w.Write([]byte("xy"))
	require.NoError(t, err)

	key, ok := kb.Poll()
	assert.True(t, ok)
	assert.Equal(t, byte('x'), key)

	key, ok = kb.Poll()
	assert.True(t, ok)
	assert.Equal(t, byte('y'), key)

	_, ok = kb.Poll()
	assert.False(t, ok)
}

func TestKeyboardReadByteWaits(t *testing.T) {
	r, w := pipe(t)
	kb := terminal.NewKeyboard(context.Background(), r)
	kb.Interval = 5 * time.Millisecond

	go func() {
		time.Sleep(20 * time.Millisecond)
		w.Write([]byte("k"))
	}()

	key, err := kb.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('k'), key)
}

func TestKeyboardReadByteEOF(t *testing.T) {
	r, w := pipe(t)
	kb := terminal.NewKeyboard(context.Background(), r)

	require.NoError(t, w.Close())

	_, err := kb.ReadByte()
	assert.ErrorIs(t, err, io.EOF)
}

func TestKeyboardReadByteCancelled(t *testing.T) {
	r, _ := pipe(t)

	ctx, cancel := context.WithCancel(context.Background())
	kb := terminal.NewKeyboard(ctx, r)
	kb.Interval = 5 * time.Millisecond

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := kb.ReadByte()
	assert.ErrorIs(t, err, context.Canceled)
}
