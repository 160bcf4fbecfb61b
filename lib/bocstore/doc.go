// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bocstore is a content-addressed store for cell graphs on
// the local filesystem.
//
// A graph is addressed by [boc.Digest] of its root, so the same
// content always lands at the same path no matter how the container
// it arrived in was laid out. Each stored graph has two files:
//
//	blobs/ab/cd/abcd...       compressed canonical container
//	records/ab/cd/abcd....cbor  metadata ([Record])
//
// The canonical container has one root, content-deduplicated cells,
// no index table and a CRC-32C trailer. Blobs start with a one-byte
// [CompressionTag] and the uncompressed length as a little-endian
// uint32, followed by the payload.
//
// Writes go through a temporary file and an atomic rename, so readers
// never see a partial blob or record. Decoded graphs are kept in an
// LRU cache keyed by digest.
package bocstore
