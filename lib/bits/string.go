// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bits

import (
	"encoding/hex"
	"fmt"
	mathbits "math/bits"
	"strings"
)

// String is an immutable sequence of bits: a window of length bits
// starting offset bits into data. The zero value is the empty string.
type String struct {
	data   []byte
	offset int
	length int
}

// NewString returns a view of length bits of data starting at bit
// offset. Returns ErrRange if the window does not fit in data.
func NewString(data []byte, offset, length int) (String, error) {
	if offset < 0 || length < 0 || offset+length > len(data)*8 {
		return String{}, fmt.Errorf("%w: bits [%d, %d) of %d", ErrRange, offset, offset+length, len(data)*8)
	}
	return String{data: data, offset: offset, length: length}, nil
}

// FromBytes returns a view of every bit in data.
func FromBytes(data []byte) String {
	return String{data: data, length: len(data) * 8}
}

// Len returns the number of bits in s.
func (s String) Len() int {
	return s.length
}

// At returns bit i of s. Panics if i is out of range, like a slice
// index.
func (s String) At(i int) bool {
	if i < 0 || i >= s.length {
		panic(fmt.Sprintf("bits: index %d out of range [0, %d)", i, s.length))
	}
	position := s.offset + i
	return s.data[position>>3]&(0x80>>(position&7)) != 0
}

// Substring returns the length bits of s starting at offset, sharing
// the backing data.
func (s String) Substring(offset, length int) (String, error) {
	if offset < 0 || length < 0 || offset+length > s.length {
		return String{}, fmt.Errorf("%w: bits [%d, %d) of %d", ErrRange, offset, offset+length, s.length)
	}
	return String{data: s.data, offset: s.offset + offset, length: length}, nil
}

// Bytes returns a copy of s packed from the first byte's most
// significant bit. Bits past Len in the final byte are zero.
func (s String) Bytes() []byte {
	out := make([]byte, (s.length+7)/8)
	if s.offset%8 == 0 {
		copy(out, s.data[s.offset/8:])
	} else {
		for i := 0; i < s.length; i++ {
			if s.At(i) {
				out[i>>3] |= 0x80 >> (i & 7)
			}
		}
	}
	if tail := s.length % 8; tail != 0 {
		out[len(out)-1] &= 0xFF << (8 - tail)
	}
	return out
}

// Equal reports whether s and other hold the same bits.
func (s String) Equal(other String) bool {
	if s.length != other.length {
		return false
	}
	left, right := s.Bytes(), other.Bytes()
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

// String renders s as upper-case hex. When the length is not a
// multiple of four, a tag bit and zero fill complete the last digit
// and the text ends in "_". This is the conventional text form of
// cell data and [Parse] reverses it.
func (s String) String() string {
	digits := (s.length + 3) / 4
	buffer := make([]byte, (digits+1)/2)
	copy(buffer, s.Bytes())
	padded := s.length%4 != 0
	if padded {
		buffer[s.length>>3] |= 0x80 >> (s.length & 7)
	}
	text := strings.ToUpper(hex.EncodeToString(buffer))[:digits]
	if padded {
		text += "_"
	}
	return text
}

// Parse converts the text form produced by [String.String] back into
// a bit string. An optional trailing "_" marks tag-bit padding in the
// final hex digit.
func Parse(text string) (String, error) {
	digits, padded := strings.CutSuffix(text, "_")
	length := len(digits) * 4
	if len(digits)%2 == 1 {
		digits += "0"
	}
	data, err := hex.DecodeString(digits)
	if err != nil {
		return String{}, fmt.Errorf("%w: %q: %v", ErrSyntax, text, err)
	}
	if padded {
		last := LastSetBit(data, length)
		if last < 0 {
			return String{}, fmt.Errorf("%w: %q has a padding marker but no tag bit", ErrSyntax, text)
		}
		length = last
	}
	return String{data: data, length: length}, nil
}

// LastSetBit returns the index of the last set bit among the first n
// bits of data, or -1 when all of them are zero.
func LastSetBit(data []byte, n int) int {
	if n > len(data)*8 {
		n = len(data) * 8
	}
	for index := (n - 1) / 8; index >= 0 && n > 0; index-- {
		value := data[index]
		if index == (n-1)/8 && n%8 != 0 {
			value &= 0xFF << (8 - n%8)
		}
		if value != 0 {
			return index*8 + 7 - mathbits.TrailingZeros8(value)
		}
	}
	return -1
}
