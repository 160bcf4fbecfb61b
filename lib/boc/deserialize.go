// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"fmt"

	"github.com/bureau-foundation/boc/lib/bits"
)

// Limits bounds what a container may declare before the decoder
// allocates for it. A zero field means no limit.
type Limits struct {
	MaxCells    int
	MaxCellData int
}

// Deserialize decodes a container and returns one cell graph per
// declared root, in root order. Cells referenced from several places
// decode to one shared *Cell.
func Deserialize(data []byte) ([]*Cell, error) {
	return DeserializeWithLimits(data, Limits{})
}

// DeserializeWithLimits is Deserialize with caps on the declared cell
// count and cell data size. A container over either cap fails with
// ErrLimitExceeded before any cell is decoded.
func DeserializeWithLimits(data []byte, limits Limits) ([]*Cell, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if limits.MaxCells > 0 && header.CellCount > limits.MaxCells {
		return nil, fmt.Errorf("%w: %d cells, limit %d", ErrLimitExceeded, header.CellCount, limits.MaxCells)
	}
	if limits.MaxCellData > 0 && header.TotalCellSize > limits.MaxCellData {
		return nil, fmt.Errorf("%w: %d bytes of cell data, limit %d",
			ErrLimitExceeded, header.TotalCellSize, limits.MaxCellData)
	}
	return header.Cells()
}

// Cells decodes the header's cell data and returns the root cells.
func (h *Header) Cells() ([]*Cell, error) {
	table, err := newCellTable(h)
	if err != nil {
		return nil, err
	}
	roots := make([]*Cell, len(h.Roots))
	for i, id := range h.Roots {
		if id < 0 || id >= h.CellCount {
			return nil, fmt.Errorf("%w: root %d is cell %d of %d", ErrInvalidCellID, i, id, h.CellCount)
		}
		if roots[i], err = table.load(id); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

// cellTable decodes cells out of a container's cell data on demand.
type cellTable struct {
	reader   *bits.Reader
	refWidth int
	offsets  []int
	cells    []*Cell
	loading  []bool
}

// newCellTable computes the byte offset of every cell by walking the
// descriptors in order. The container's own index table is not
// consulted.
func newCellTable(h *Header) (*cellTable, error) {
	t := &cellTable{
		reader:   bits.NewReader(bits.FromBytes(h.CellData)),
		refWidth: h.SizeBytes * 8,
		offsets:  make([]int, h.CellCount),
		cells:    make([]*Cell, h.CellCount),
		loading:  make([]bool, h.CellCount),
	}
	offset := 0
	for id := range t.offsets {
		t.offsets[id] = offset
		size, err := t.cellSize(h.SizeBytes)
		if err != nil {
			return nil, fmt.Errorf("sizing cell %d at byte %d: %w", id, offset, err)
		}
		if err := t.reader.Skip(size * 8); err != nil {
			return nil, fmt.Errorf("sizing cell %d at byte %d: %d-byte cell: %w", id, offset, size, err)
		}
		offset += size
	}
	if offset != len(h.CellData) {
		return nil, fmt.Errorf("%w: %d cells use %d of %d bytes of cell data",
			ErrInvalidHeader, h.CellCount, offset, len(h.CellData))
	}
	return t, nil
}

// cellSize returns the serialized size of the cell at the cursor
// without moving it.
func (t *cellTable) cellSize(refBytes int) (int, error) {
	t.reader.Save()
	defer t.reader.Reset()
	d1, err := t.reader.LoadUint(8)
	if err != nil {
		return 0, err
	}
	d2, err := t.reader.LoadUint(8)
	if err != nil {
		return 0, err
	}
	descriptor := DecodeDescriptors(byte(d1), byte(d2))
	return 2 + descriptor.DataBytes + descriptor.RefCount*refBytes, nil
}

// parse reads the data and reference indices of cell id.
func (t *cellTable) parse(id int) (bits.String, []int, error) {
	t.reader.Reset()
	if err := t.reader.Skip(t.offsets[id] * 8); err != nil {
		return bits.String{}, nil, err
	}
	d1, err := t.reader.LoadUint(8)
	if err != nil {
		return bits.String{}, nil, err
	}
	d2, err := t.reader.LoadUint(8)
	if err != nil {
		return bits.String{}, nil, err
	}
	descriptor := DecodeDescriptors(byte(d1), byte(d2))
	if descriptor.RefCount > MaxRefs {
		return bits.String{}, nil, fmt.Errorf("%w: %d refs, limit %d", ErrCellOverflow, descriptor.RefCount, MaxRefs)
	}

	data, err := t.reader.LoadBuffer(descriptor.DataBytes)
	if err != nil {
		return bits.String{}, nil, err
	}
	content := bits.FromBytes(data)
	if descriptor.Padded {
		if content, err = unpadData(data); err != nil {
			return bits.String{}, nil, err
		}
	}

	refs := make([]int, descriptor.RefCount)
	for i := range refs {
		ref, err := t.reader.LoadUint(t.refWidth)
		if err != nil {
			return bits.String{}, nil, err
		}
		if ref >= uint64(len(t.offsets)) {
			return bits.String{}, nil, fmt.Errorf("%w: ref %d is cell %d of %d", ErrInvalidCellID, i, ref, len(t.offsets))
		}
		refs[i] = int(ref)
	}
	return content, refs, nil
}

// load materializes cell id and everything below it. It keeps its own
// stack rather than recursing, so graph depth is bounded by memory and
// not by the goroutine stack. A reference back to a cell still on the
// stack is a cycle and fails with ErrInvalidCellID.
func (t *cellTable) load(id int) (*Cell, error) {
	type frame struct {
		id       int
		expanded bool
		data     bits.String
		refs     []int
	}

	stack := []frame{{id: id}}
	for len(stack) > 0 {
		top := len(stack) - 1
		current := stack[top]

		if !current.expanded {
			if t.cells[current.id] != nil {
				stack = stack[:top]
				continue
			}
			if t.loading[current.id] {
				return nil, fmt.Errorf("%w: cell %d references itself through its descendants", ErrInvalidCellID, current.id)
			}
			data, refs, err := t.parse(current.id)
			if err != nil {
				return nil, fmt.Errorf("loading cell %d: %w", current.id, err)
			}
			t.loading[current.id] = true
			stack[top] = frame{id: current.id, expanded: true, data: data, refs: refs}
			for i := len(refs) - 1; i >= 0; i-- {
				if t.cells[refs[i]] == nil {
					stack = append(stack, frame{id: refs[i]})
				}
			}
			continue
		}

		children := make([]*Cell, len(current.refs))
		for i, ref := range current.refs {
			children[i] = t.cells[ref]
		}
		cell, err := New(current.data, children...)
		if err != nil {
			return nil, fmt.Errorf("loading cell %d: %w", current.id, err)
		}
		t.cells[current.id] = cell
		t.loading[current.id] = false
		stack = stack[:top]
	}
	return t.cells[id], nil
}
