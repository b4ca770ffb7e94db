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
	"bufio"
	"io"
)

// StreamKeyboard adapts an in-memory byte stream, such as a
// strings.Reader, to the Keyboard interface. Poll reads through to the
// underlying reader and blocks if it has nothing ready, so file
// descriptors are served by terminal.Keyboard instead.
type StreamKeyboard struct {
	reader *bufio.Reader
}

func NewStreamKeyboard(reader io.Reader) *StreamKeyboard {
	return &StreamKeyboard{reader: bufio.NewReader(reader)}
}

func (kb *StreamKeyboard) Poll() (byte, bool) {
	key, err := kb.reader.ReadByte()
	if err != nil {
		return 0, false
	}

	return key, true
}

func (kb *StreamKeyboard) ReadByte() (byte, error) {
	return kb.reader.ReadByte()
}
