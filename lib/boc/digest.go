// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest of a cell graph.
type Hash [32]byte

// cellDomainKey keys the BLAKE3 hasher so cell digests never collide
// with other uses of BLAKE3 over the same bytes. ASCII, zero-padded to
// the 32-byte key size.
var cellDomainKey = [32]byte{
	'b', 'o', 'c', '.', 'c', 'e', 'l', 'l',
}

// String returns the hex form of h.
func (h Hash) String() string {
	return FormatHash(h)
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(FormatHash(h)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// FormatHash returns the lower-case hex form of a hash.
func FormatHash(h Hash) string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses the 64-character hex form of a hash.
func ParseHash(text string) (Hash, error) {
	var h Hash
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return h, fmt.Errorf("parsing cell hash: %w", err)
	}
	if len(decoded) != len(h) {
		return h, fmt.Errorf("cell hash is %d bytes, want %d", len(decoded), len(h))
	}
	copy(h[:], decoded)
	return h, nil
}

// Digest returns the structural digest of the graph under root. The
// digest of a cell covers its descriptor bytes, its padded data, and
// the digests of its references in order, so two graphs have the same
// digest exactly when they are structurally equal, regardless of how
// their cells are shared. Returns ErrCyclicGraph for a cyclic graph.
func Digest(root *Cell) (Hash, error) {
	if root == nil {
		return Hash{}, fmt.Errorf("boc: digest of a nil cell")
	}
	g := discover(root)
	order, err := g.order()
	if err != nil {
		return Hash{}, err
	}
	return g.digests(order)[0], nil
}

// digests hashes every node, children before parents, and returns the
// digests indexed by node id.
func (g *graph) digests(order []int) []Hash {
	hasher, err := blake3.NewKeyed(cellDomainKey[:])
	if err != nil {
		panic("boc: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	out := make([]Hash, len(g.cells))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		cell := g.cells[id]
		d1, d2 := EncodeDescriptors(cell)
		hasher.Reset()
		hasher.Write([]byte{d1, d2})
		hasher.Write(paddedData(cell.bits))
		for _, child := range g.children[id] {
			hasher.Write(out[child][:])
		}
		copy(out[id][:], hasher.Sum(nil))
	}
	return out
}

// linearizeByContent is Linearize with structurally equal subgraphs
// merged: of each set of equal cells, the first in topological order
// represents all of them.
func linearizeByContent(root *Cell) ([]Entry, error) {
	g := discover(root)
	order, err := g.order()
	if err != nil {
		return nil, err
	}
	digests := g.digests(order)

	representative := make(map[Hash]int, len(order))
	canonical := make([]int, len(g.cells))
	for _, id := range order {
		first, ok := representative[digests[id]]
		if !ok {
			first = id
			representative[digests[id]] = id
		}
		canonical[id] = first
	}

	// Renumber the representatives in discovery order so the root
	// stays node 0.
	renumbered := make([]int, len(g.cells))
	merged := &graph{}
	for id := range g.cells {
		if canonical[id] != id {
			continue
		}
		renumbered[id] = len(merged.cells)
		merged.cells = append(merged.cells, g.cells[id])
	}
	merged.children = make([][]int, len(merged.cells))
	for id := range g.cells {
		if canonical[id] != id {
			continue
		}
		children := make([]int, len(g.children[id]))
		for i, child := range g.children[id] {
			children[i] = renumbered[canonical[child]]
		}
		merged.children[renumbered[id]] = children
	}

	mergedOrder, err := merged.order()
	if err != nil {
		return nil, err
	}
	return merged.entries(mergedOrder), nil
}
