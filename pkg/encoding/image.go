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

package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrImageEmpty = errors.New("image has no origin word")

// Image is a program image: an origin address followed by the words to be
// placed in memory starting at that address.
type Image struct {
	Origin uint16
	Words  []uint16
}

// ReadImage decodes a big-endian program image. The first word is the
// origin. A trailing odd byte is ignored.
func ReadImage(reader io.Reader) (Image, error) {
	var img Image

	data, err := io.ReadAll(reader)
	if err != nil {
		return img, fmt.Errorf("reading image: %w", err)
	}

	if len(data) < 2 {
		return img, ErrImageEmpty
	}

	img.Origin = binary.BigEndian.Uint16(data)
	data = data[2:]

	img.Words = make([]uint16, len(data)/2)
	for i := range img.Words {
		img.Words[i] = binary.BigEndian.Uint16(data[i*2:])
	}

	return img, nil
}

// WriteImage encodes img in the format read by ReadImage.
func WriteImage(writer io.Writer, img Image) error {
	scratch := make([]byte, 2*(len(img.Words)+1))

	binary.BigEndian.PutUint16(scratch, img.Origin)
	for i, word := range img.Words {
		binary.BigEndian.PutUint16(scratch[2*(i+1):], word)
	}

	_, err := writer.Write(scratch)
	return err
}
