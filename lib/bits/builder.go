// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bits

import "fmt"

// Builder appends bits into storage allocated once at construction.
// It never grows: a write that would pass the capacity fails with
// ErrOverflow and leaves the builder unchanged.
type Builder struct {
	data     []byte
	length   int
	capacity int
}

// NewBuilder returns a Builder that can hold exactly capacity bits.
func NewBuilder(capacity int) *Builder {
	return &Builder{
		data:     make([]byte, (capacity+7)/8),
		capacity: capacity,
	}
}

// Len returns the number of bits written so far.
func (b *Builder) Len() int {
	return b.length
}

// Cap returns the capacity in bits fixed at construction.
func (b *Builder) Cap() int {
	return b.capacity
}

// WriteBit appends one bit.
func (b *Builder) WriteBit(value bool) error {
	if err := b.reserve(1); err != nil {
		return err
	}
	if value {
		b.data[b.length>>3] |= 0x80 >> (b.length & 7)
	}
	b.length++
	return nil
}

// WriteUint appends the low n bits of value, most significant first.
// Returns ErrWidth if n is outside 0..64 or value needs more than n
// bits.
func (b *Builder) WriteUint(value uint64, n int) error {
	if n < 0 || n > 64 {
		return fmt.Errorf("%w: %d", ErrWidth, n)
	}
	if n < 64 && value>>n != 0 {
		return fmt.Errorf("%w: value %d does not fit in %d bits", ErrWidth, value, n)
	}
	if err := b.reserve(n); err != nil {
		return err
	}
	for i := n - 1; i >= 0; i-- {
		if value>>i&1 == 1 {
			b.data[b.length>>3] |= 0x80 >> (b.length & 7)
		}
		b.length++
	}
	return nil
}

// WriteBits appends every bit of s.
func (b *Builder) WriteBits(s String) error {
	if err := b.reserve(s.length); err != nil {
		return err
	}
	if b.length%8 == 0 {
		copy(b.data[b.length/8:], s.Bytes())
		b.length += s.length
		return nil
	}
	for i := 0; i < s.length; i++ {
		if s.At(i) {
			b.data[b.length>>3] |= 0x80 >> (b.length & 7)
		}
		b.length++
	}
	return nil
}

// WriteBuffer appends every byte of data.
func (b *Builder) WriteBuffer(data []byte) error {
	return b.WriteBits(FromBytes(data))
}

// Buffer returns the bytes written so far. The slice aliases the
// builder's storage; later writes only ever touch bytes past its end.
// Returns ErrUnaligned if a partial byte has been written.
func (b *Builder) Buffer() ([]byte, error) {
	if b.length%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits written", ErrUnaligned, b.length)
	}
	return b.data[:b.length/8], nil
}

func (b *Builder) reserve(n int) error {
	if b.length+n > b.capacity {
		return fmt.Errorf("%w: writing %d bits at %d of %d", ErrOverflow, n, b.length, b.capacity)
	}
	return nil
}
