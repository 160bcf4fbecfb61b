// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package boc implements the Bag of Cells container: a byte format for
// a rooted directed acyclic graph of small binary cells.
//
// A [Cell] holds up to [MaxBits] bits and up to [MaxRefs] references to
// other cells. Cells are immutable and may be shared by any number of
// parents. Sharing is by identity: two parents holding the same *Cell
// produce one serialized cell, while two structurally equal but
// distinct cells are serialized twice unless
// [SerializeOptions.DedupContent] is set.
//
// # Container layout
//
// Three magic numbers select the header layout:
//
//	0x68FF65F3  legacy, index table, no checksum
//	0xACC3A728  legacy, index table, CRC-32C trailer
//	0xB5EE9C72  generic, flags byte selects index and checksum
//
// The generic header, which is the only one [Serialize] emits:
//
//	magic        4 bytes, big-endian
//	flags        has_idx:1 has_crc32c:1 has_cache_bits:1 reserved:2 size:3
//	off_bytes    1 byte
//	cells        size bytes
//	roots        size bytes
//	absent       size bytes
//	tot_cells    off_bytes bytes
//	root_list    roots * size bytes
//	index        cells * off_bytes bytes, if has_idx
//	cell_data    tot_cells bytes
//	crc32c       4 bytes little-endian, if has_crc32c
//
// Legacy headers replace the flags byte with a full size byte and
// always carry exactly one root at index 0 and an index table.
//
// Each serialized cell is two descriptor bytes, the cell's bits padded
// to a whole byte, and one size-byte-wide index per reference. When the
// bit length is not a multiple of eight, a single 1 bit follows the
// data and zeros fill the byte; decoding strips everything from the
// last set bit on.
//
// # Ordering
//
// [Linearize] places the root at index 0 and every child after all of
// its parents. The decoder does not require that order but it does
// reject reference cycles and out-of-range indices.
//
// The package performs no I/O and no logging. Every exported function
// is safe for concurrent use.
package boc
