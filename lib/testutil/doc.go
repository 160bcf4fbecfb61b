// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the codec, store
// and CLI packages.
//
// [DecodeHex] and [DecodeBase64] turn fixture text into bytes. Hex
// fixtures may be split across lines and grouped with spaces, which
// keeps long container dumps readable in test tables.
//
// [Bits] parses the hex text form of a bit string ("ABC", "C_").
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation, and [UniqueBits] turns one into cell data, so tests
// sharing a store never collide on content addresses.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
