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

// Package terminal puts the controlling terminal into the raw input mode
// the emulator expects and reads keys from it.
package terminal

import (
	"errors"
	"fmt"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("not a terminal")

// State holds the terminal settings in effect before EnterRaw.
type State struct {
	fd    uintptr
	saved unix.Termios
}

func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// EnterRaw disables canonical input and echo on fd. Signal generation is
// left on so that ^C still interrupts the emulator.
func EnterRaw(fd uintptr) (*State, error) {
	if !IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	state := &State{fd: fd}

	if err := termios.Tcgetattr(fd, &state.saved); err != nil {
		return nil, fmt.Errorf("reading terminal mode: %w", err)
	}

	raw := state.saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := termios.Tcsetattr(fd, termios.TCSANOW, &raw); err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}

	return state, nil
}

// Restore puts back the settings saved by EnterRaw.
func (state *State) Restore() error {
	if err := termios.Tcsetattr(state.fd, termios.TCSANOW, &state.saved); err != nil {
		return fmt.Errorf("restoring terminal mode: %w", err)
	}

	return nil
}
