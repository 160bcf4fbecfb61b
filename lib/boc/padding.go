// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"fmt"

	"github.com/bureau-foundation/boc/lib/bits"
)

// paddedData returns s packed into whole bytes. When the length is not
// a multiple of eight a tag bit follows the data.
func paddedData(s bits.String) []byte {
	data := s.Bytes()
	if length := s.Len(); length%8 != 0 {
		data[length/8] |= 0x80 >> (length % 8)
	}
	return data
}

// unpadData returns the bit string stored in a padded data span: every
// bit before the last set bit.
func unpadData(data []byte) (bits.String, error) {
	last := bits.LastSetBit(data, len(data)*8)
	if last < 0 {
		return bits.String{}, fmt.Errorf("%w: padded cell data %x has no tag bit", ErrOutOfBounds, data)
	}
	return bits.NewString(data, 0, last)
}
