// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bits

import "errors"

var (
	// ErrOutOfBounds is returned when a read would go past the end of
	// the underlying bit string, or a skip would leave the cursor
	// outside it.
	ErrOutOfBounds = errors.New("bits: out of bounds")

	// ErrRange is returned when a requested sub-range does not fit
	// inside the backing data.
	ErrRange = errors.New("bits: range exceeds backing data")

	// ErrWidth is returned for field widths outside 0..64, and by
	// [Builder.WriteUint] when the value does not fit in the width.
	ErrWidth = errors.New("bits: invalid field width")

	// ErrOverflow is returned when a write would exceed the builder's
	// pre-computed capacity.
	ErrOverflow = errors.New("bits: builder capacity exceeded")

	// ErrUnaligned is returned by [Builder.Buffer] when the written
	// length is not a whole number of bytes.
	ErrUnaligned = errors.New("bits: builder is not byte aligned")

	// ErrSyntax is returned by [Parse] for malformed text.
	ErrSyntax = errors.New("bits: invalid bit string syntax")
)
