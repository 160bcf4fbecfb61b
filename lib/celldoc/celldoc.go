// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package celldoc converts cell graphs to and from a flat, editable
// document: a list of cells in linearized order, each with its bits in
// hex text form and the positions of the cells it references.
//
//	{
//	  "cells": [
//	    {"bits": "01D6F3456_", "refs": [1]},
//	    {"bits": "756B5B3"}
//	  ]
//	}
//
// Cell 0 is the root and every reference points to a later cell, the
// same order a serialized container uses. Documents can be written as
// JSON, YAML, CBOR or a line-per-cell text listing, and read back from
// JSON (comments and trailing commas allowed), YAML or CBOR.
package celldoc

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/boc/lib/bits"
	"github.com/bureau-foundation/boc/lib/boc"
)

// ErrInvalidDocument is returned by [Document.Build] and [Parse] for a
// document that does not describe a valid cell graph.
var ErrInvalidDocument = errors.New("celldoc: invalid document")

// Document is a cell graph in linearized order.
type Document struct {
	Cells []Entry `json:"cells" yaml:"cells"`
}

// Entry is one cell of a Document.
type Entry struct {
	// Bits is the cell data in the text form of [bits.String.String].
	Bits string `json:"bits" yaml:"bits"`

	// Refs are the positions of the referenced cells in the document.
	Refs []int `json:"refs,omitempty" yaml:"refs,flow,omitempty"`
}

// FromCell returns the document form of the graph under root.
func FromCell(root *boc.Cell) (*Document, error) {
	entries, err := boc.Linearize(root)
	if err != nil {
		return nil, err
	}
	document := &Document{Cells: make([]Entry, len(entries))}
	for i, entry := range entries {
		document.Cells[i] = Entry{
			Bits: entry.Cell.Bits().String(),
			Refs: entry.Refs,
		}
	}
	return document, nil
}

// Build constructs the cell graph the document describes and returns
// its root. Cells are built from the last entry back to the first, so
// every reference must point to a later entry, and every entry after
// the first must be referenced by some earlier one.
func (d *Document) Build() (*boc.Cell, error) {
	if len(d.Cells) == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrInvalidDocument)
	}

	referenced := make([]bool, len(d.Cells))
	for i, entry := range d.Cells {
		for _, ref := range entry.Refs {
			if ref <= i || ref >= len(d.Cells) {
				return nil, fmt.Errorf("%w: cell %d references %d; references must point to a later cell of %d",
					ErrInvalidDocument, i, ref, len(d.Cells))
			}
			referenced[ref] = true
		}
	}
	for i := 1; i < len(d.Cells); i++ {
		if !referenced[i] {
			return nil, fmt.Errorf("%w: cell %d is not referenced by any earlier cell", ErrInvalidDocument, i)
		}
	}

	cells := make([]*boc.Cell, len(d.Cells))
	for i := len(d.Cells) - 1; i >= 0; i-- {
		entry := d.Cells[i]
		data, err := bits.Parse(entry.Bits)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %w", ErrInvalidDocument, i, err)
		}
		refs := make([]*boc.Cell, len(entry.Refs))
		for j, ref := range entry.Refs {
			refs[j] = cells[ref]
		}
		if cells[i], err = boc.New(data, refs...); err != nil {
			return nil, fmt.Errorf("%w: cell %d: %w", ErrInvalidDocument, i, err)
		}
	}
	return cells[0], nil
}
