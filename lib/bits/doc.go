// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bits provides the bit-level primitives the Bag of Cells codec
// is built on: an immutable bit string view, a sequential reader over
// it, and a fixed-capacity builder.
//
// Bits are numbered from the most significant bit of the first byte:
//
//	byte  0               1
//	     +---------------+---------------+-
//	     |7 6 5 4 3 2 1 0|7 6 5 4 3 2 1 0|
//	     +---------------+---------------+-
//	bit   0 1 2 3 4 5 6 7 8 9 ...
//
// Integers are read and written big-endian in that order, so the first
// bit of a field is its most significant bit.
//
// [String] never copies on sub-ranging: a substring shares the backing
// bytes with its parent and only adjusts offset and length. The backing
// bytes must not be modified after a String is created over them.
//
// [Builder] is sized once, up front. Callers compute the exact number
// of bits they will emit; writing past that capacity is an error
// rather than a reallocation, so a miscomputed size is caught at the
// write that overruns it.
package bits
