// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/bureau-foundation/boc/lib/bits"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer.
//
//	name := testutil.UniqueID("cell")  // "cell-1", "cell-2", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}

// UniqueBits returns cell data holding the bytes of UniqueID(prefix).
// The prefix should be short enough that the result stays within a
// cell's 1023-bit limit.
func UniqueBits(prefix string) bits.String {
	return bits.FromBytes([]byte(UniqueID(prefix)))
}
