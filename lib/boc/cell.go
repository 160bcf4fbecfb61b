// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/boc/lib/bits"
)

const (
	// MaxBits is the largest number of data bits a cell can hold.
	MaxBits = 1023

	// MaxRefs is the largest number of references a cell can hold.
	MaxRefs = 4
)

// Cell is an immutable node of a cell graph: up to MaxBits bits of data
// and up to MaxRefs ordered references. Construct cells with [New].
type Cell struct {
	bits bits.String
	refs []*Cell
}

// New returns a cell holding data and referencing refs in order.
// Returns ErrCellOverflow when data is longer than MaxBits or there are
// more than MaxRefs refs. A nil ref is rejected.
//
// New does not copy data's backing bytes; they must not change
// afterwards.
func New(data bits.String, refs ...*Cell) (*Cell, error) {
	if data.Len() > MaxBits {
		return nil, fmt.Errorf("%w: %d bits, limit %d", ErrCellOverflow, data.Len(), MaxBits)
	}
	if len(refs) > MaxRefs {
		return nil, fmt.Errorf("%w: %d refs, limit %d", ErrCellOverflow, len(refs), MaxRefs)
	}
	for i, ref := range refs {
		if ref == nil {
			return nil, fmt.Errorf("boc: ref %d is nil", i)
		}
	}
	return &Cell{bits: data, refs: slices.Clone(refs)}, nil
}

// Bits returns the cell's data.
func (c *Cell) Bits() bits.String {
	return c.bits
}

// Refs returns a copy of the cell's references.
func (c *Cell) Refs() []*Cell {
	return slices.Clone(c.refs)
}

// Ref returns reference i. Panics if i is out of range.
func (c *Cell) Ref(i int) *Cell {
	return c.refs[i]
}

// RefCount returns the number of references.
func (c *Cell) RefCount() int {
	return len(c.refs)
}

// String returns the cell's data in the hex text form of
// [bits.String.String] followed by its reference count.
func (c *Cell) String() string {
	return fmt.Sprintf("x{%s} refs=%d", c.bits, len(c.refs))
}

// Equal reports whether c and other have the same bits and, reference
// by reference, structurally equal children. It walks both graphs with
// an explicit stack and compares each pair of cells once, so deep and
// heavily shared graphs are compared in time proportional to their
// size.
func (c *Cell) Equal(other *Cell) bool {
	type pair struct{ left, right *Cell }
	seen := make(map[pair]bool)
	stack := []pair{{c, other}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current.left == current.right {
			continue
		}
		if current.left == nil || current.right == nil {
			return false
		}
		if seen[current] {
			continue
		}
		seen[current] = true
		if len(current.left.refs) != len(current.right.refs) || !current.left.bits.Equal(current.right.bits) {
			return false
		}
		for i := range current.left.refs {
			stack = append(stack, pair{current.left.refs[i], current.right.refs[i]})
		}
	}
	return true
}
