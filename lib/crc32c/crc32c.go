// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package crc32c computes the CRC-32C (Castagnoli) checksum used as the
// integrity trailer of Bag of Cells containers.
//
// The trailer is stored little-endian, so [Sum] returns the wire form
// directly and [Verify] compares against it.
package crc32c

import (
	"encoding/binary"

	"github.com/klauspost/crc32"
)

// Size is the length in bytes of an encoded checksum.
const Size = 4

var table = crc32.MakeTable(crc32.Castagnoli)

// Checksum returns the CRC-32C of data.
func Checksum(data []byte) uint32 {
	return crc32.Checksum(data, table)
}

// Sum returns the CRC-32C of data in its little-endian wire form.
func Sum(data []byte) [Size]byte {
	var out [Size]byte
	binary.LittleEndian.PutUint32(out[:], Checksum(data))
	return out
}

// Verify reports whether trailer is the wire form of the CRC-32C of
// data. A trailer of the wrong length never verifies.
func Verify(data, trailer []byte) bool {
	if len(trailer) != Size {
		return false
	}
	return binary.LittleEndian.Uint32(trailer) == Checksum(data)
}
