// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"errors"

	"github.com/bureau-foundation/boc/lib/bits"
)

var (
	// ErrUnknownFormat is returned when the input does not start with
	// a recognized magic number.
	ErrUnknownFormat = errors.New("boc: unknown container format")

	// ErrChecksumMismatch is returned when the CRC-32C trailer does
	// not match the bytes it covers.
	ErrChecksumMismatch = errors.New("boc: checksum mismatch")

	// ErrOutOfBounds is returned when a header field or cell extends
	// past the end of the input. It is the same value as
	// [bits.ErrOutOfBounds], so reader failures match it directly.
	ErrOutOfBounds = bits.ErrOutOfBounds

	// ErrInvalidCellID is returned for a reference or root index that
	// does not name a cell in the table, or that leads back to a cell
	// still being loaded.
	ErrInvalidCellID = errors.New("boc: invalid cell id")

	// ErrCyclicGraph is returned when a graph passed to the serializer
	// contains a reference cycle.
	ErrCyclicGraph = errors.New("boc: cell graph is cyclic")

	// ErrInternal signals a serializer bug: the emitted length did not
	// match the precomputed size.
	ErrInternal = errors.New("boc: internal size mismatch")

	// ErrInvalidHeader is returned for header fields that are out of
	// range or inconsistent with each other.
	ErrInvalidHeader = errors.New("boc: invalid header")

	// ErrCellOverflow is returned when a cell would exceed MaxBits or
	// MaxRefs.
	ErrCellOverflow = errors.New("boc: cell overflow")

	// ErrLimitExceeded is returned by [DeserializeWithLimits] when the
	// header declares more than the caller allows.
	ErrLimitExceeded = errors.New("boc: limit exceeded")
)
