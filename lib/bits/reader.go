// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bits

import "fmt"

// Reader is a cursor over a [String]. Reads consume bits from the
// cursor; Preload variants inspect them without moving it.
//
// Save and Reset form a checkpoint stack: Save pushes the current
// position and Reset pops it. Reset with no saved checkpoint rewinds
// to the start of the string.
type Reader struct {
	source      String
	position    int
	checkpoints []int
}

// NewReader returns a Reader positioned at the first bit of source.
func NewReader(source String) *Reader {
	return &Reader{source: source}
}

// Offset returns the cursor position in bits from the start.
func (r *Reader) Offset() int {
	return r.position
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return r.source.length - r.position
}

// LoadUint reads n bits (0..64) as an unsigned big-endian integer.
func (r *Reader) LoadUint(n int) (uint64, error) {
	value, err := r.PreloadUint(n)
	if err != nil {
		return 0, err
	}
	r.position += n
	return value, nil
}

// PreloadUint is LoadUint without advancing the cursor.
func (r *Reader) PreloadUint(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("%w: %d", ErrWidth, n)
	}
	if err := r.ensure(n); err != nil {
		return 0, err
	}

	var value uint64
	position := r.source.offset + r.position
	for n > 0 {
		available := 8 - position&7
		take := min(available, n)
		chunk := r.source.data[position>>3] >> (available - take) & byte(uint(1)<<take-1)
		value = value<<take | uint64(chunk)
		n -= take
		position += take
	}
	return value, nil
}

// LoadBit reads a single bit.
func (r *Reader) LoadBit() (bool, error) {
	bit, err := r.PreloadBit()
	if err != nil {
		return false, err
	}
	r.position++
	return bit, nil
}

// PreloadBit returns the next bit without advancing the cursor.
func (r *Reader) PreloadBit() (bool, error) {
	if err := r.ensure(1); err != nil {
		return false, err
	}
	return r.source.At(r.position), nil
}

// LoadBits returns the next n bits as a String sharing the reader's
// backing data.
func (r *Reader) LoadBits(n int) (String, error) {
	if err := r.ensure(n); err != nil {
		return String{}, err
	}
	loaded := String{data: r.source.data, offset: r.source.offset + r.position, length: n}
	r.position += n
	return loaded, nil
}

// LoadBuffer reads count whole bytes into a new slice. The cursor does
// not need to be byte aligned, though the aligned case is a plain copy.
func (r *Reader) LoadBuffer(count int) ([]byte, error) {
	if count < 0 || count > r.Remaining()/8 {
		return nil, fmt.Errorf("%w: reading %d bytes at bit %d with %d bits remaining",
			ErrOutOfBounds, count, r.position, r.Remaining())
	}
	out := make([]byte, count)
	start := r.source.offset + r.position
	if start%8 == 0 {
		copy(out, r.source.data[start/8:start/8+count])
		r.position += count * 8
		return out, nil
	}
	for i := range out {
		value, err := r.LoadUint(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(value)
	}
	return out, nil
}

// Skip moves the cursor n bits forward, or backward when n is
// negative. The cursor may land exactly at the end but not past it.
func (r *Reader) Skip(n int) error {
	target := r.position + n
	if target < 0 || target > r.source.length {
		return fmt.Errorf("%w: skipping %d bits from %d in a %d-bit string",
			ErrOutOfBounds, n, r.position, r.source.length)
	}
	r.position = target
	return nil
}

// Save pushes the current position onto the checkpoint stack.
func (r *Reader) Save() {
	r.checkpoints = append(r.checkpoints, r.position)
}

// Reset restores the most recently saved position, or rewinds to the
// start when nothing is saved.
func (r *Reader) Reset() {
	if last := len(r.checkpoints) - 1; last >= 0 {
		r.position = r.checkpoints[last]
		r.checkpoints = r.checkpoints[:last]
		return
	}
	r.position = 0
}

func (r *Reader) ensure(n int) error {
	if n < 0 || n > r.Remaining() {
		return fmt.Errorf("%w: reading %d bits at bit %d with %d remaining",
			ErrOutOfBounds, n, r.position, r.Remaining())
	}
	return nil
}
