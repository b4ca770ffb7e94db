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

package terminal

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const DefaultInterval = 50 * time.Millisecond

// Keyboard reads single bytes from a file descriptor. Blocking reads wait in
// slices of Interval so that cancelling ctx abandons them.
type Keyboard struct {
	ctx      context.Context
	fd       int
	Interval time.Duration
}

func NewKeyboard(ctx context.Context, file *os.File) *Keyboard {
	return &Keyboard{
		ctx:      ctx,
		fd:       int(file.Fd()),
		Interval: DefaultInterval,
	}
}

func (kb *Keyboard) ready(timeout time.Duration) (bool, error) {
	var fds unix.FdSet
	fds.Zero()
	fds.Set(kb.fd)

	tv := unix.NsecToTimeval(timeout.Nanoseconds())

	n, err := unix.Select(kb.fd+1, &fds, nil, nil, &tv)
	if errors.Is(err, unix.EINTR) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (kb *Keyboard) read() (byte, error) {
	var buf [1]byte

	n, err := unix.Read(kb.fd, buf[:])
	if err != nil {
		return 0, err
	} else if n == 0 {
		return 0, io.EOF
	}

	return buf[0], nil
}

// Poll returns a pending key without blocking.
func (kb *Keyboard) Poll() (byte, bool) {
	if ready, err := kb.ready(0); err != nil || !ready {
		return 0, false
	}

	key, err := kb.read()
	if err != nil {
		return 0, false
	}

	return key, true
}

// ReadByte blocks until a key arrives, the input ends (io.EOF) or the
// context is done.
func (kb *Keyboard) ReadByte() (byte, error) {
	for {
		if err := kb.ctx.Err(); err != nil {
			return 0, err
		}

		ready, err := kb.ready(kb.Interval)
		if err != nil {
			return 0, err
		}

		if ready {
			return kb.read()
		}
	}
}
