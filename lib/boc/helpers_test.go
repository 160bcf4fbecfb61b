// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"testing"

	"github.com/bureau-foundation/boc/lib/testutil"
)

// mustCell builds a cell from the hex text form of its bits.
func mustCell(t *testing.T, text string, refs ...*Cell) *Cell {
	t.Helper()
	cell, err := New(testutil.Bits(t, text), refs...)
	if err != nil {
		t.Fatalf("New(%q): %v", text, err)
	}
	return cell
}

func mustSerialize(t *testing.T, root *Cell, options SerializeOptions) []byte {
	t.Helper()
	data, err := SerializeWithOptions(root, options)
	if err != nil {
		t.Fatalf("SerializeWithOptions(%+v): %v", options, err)
	}
	return data
}

// mustDeserializeOne decodes a container that must hold exactly one
// root.
func mustDeserializeOne(t *testing.T, data []byte) *Cell {
	t.Helper()
	roots, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize(%x): %v", data, err)
	}
	if len(roots) != 1 {
		t.Fatalf("Deserialize returned %d roots, want 1", len(roots))
	}
	return roots[0]
}

// allOptions is every combination of the index and checksum flags.
var allOptions = []SerializeOptions{
	{Index: false, CRC32C: false},
	{Index: false, CRC32C: true},
	{Index: true, CRC32C: false},
	{Index: true, CRC32C: true},
}
