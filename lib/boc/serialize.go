// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"fmt"
	mathbits "math/bits"

	"github.com/bureau-foundation/boc/lib/bits"
	"github.com/bureau-foundation/boc/lib/crc32c"
)

// SerializeOptions selects the optional parts of an emitted container.
type SerializeOptions struct {
	// Index adds a table of cumulative cell end offsets.
	Index bool

	// CRC32C appends a CRC-32C trailer over the whole container.
	CRC32C bool

	// DedupContent merges structurally equal cells, not just shared
	// *Cell values. The decoded graph is equal to the input but shares
	// more cells.
	DedupContent bool
}

// DefaultSerializeOptions returns the options [Serialize] uses: index
// table and checksum on, content deduplication off.
func DefaultSerializeOptions() SerializeOptions {
	return SerializeOptions{Index: true, CRC32C: true}
}

// Serialize encodes the graph under root with DefaultSerializeOptions.
func Serialize(root *Cell) ([]byte, error) {
	return SerializeWithOptions(root, DefaultSerializeOptions())
}

// SerializeWithOptions encodes the graph under root as a single-root
// container using the generic magic. The count and offset fields use
// the fewest bytes that hold their values.
//
// Returns ErrCyclicGraph for a cyclic graph and ErrInternal if the
// emitted length disagrees with the size computed up front.
func SerializeWithOptions(root *Cell, options SerializeOptions) ([]byte, error) {
	var entries []Entry
	var err error
	if options.DedupContent {
		if root == nil {
			return nil, fmt.Errorf("boc: serializing a nil cell")
		}
		entries, err = linearizeByContent(root)
	} else {
		entries, err = Linearize(root)
	}
	if err != nil {
		return nil, err
	}

	plan := newLayout(entries, options)
	if plan.sizeBytes > flagSizeMask {
		return nil, fmt.Errorf("%w: %d cells need a %d-byte size field", ErrInternal, len(entries), plan.sizeBytes)
	}

	builder := bits.NewBuilder(plan.totalBits())
	if err := plan.write(builder, entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if builder.Len() != plan.totalBits() {
		return nil, fmt.Errorf("%w: wrote %d bits, computed %d", ErrInternal, builder.Len(), plan.totalBits())
	}
	out, err := builder.Buffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return out, nil
}

// layout holds the sizes of every section of a container, computed
// before anything is written.
type layout struct {
	options     SerializeOptions
	sizeBytes   int
	offsetBytes int
	cellCount   int

	// ends[i] is the offset in the cell data just past cell i.
	ends []int
}

func newLayout(entries []Entry, options SerializeOptions) *layout {
	plan := &layout{
		options:   options,
		sizeBytes: byteWidth(uint64(len(entries))),
		cellCount: len(entries),
		ends:      make([]int, len(entries)),
	}
	total := 0
	for i, entry := range entries {
		total += 2 + (entry.Cell.bits.Len()+7)/8 + len(entry.Refs)*plan.sizeBytes
		plan.ends[i] = total
	}
	plan.offsetBytes = byteWidth(uint64(total))
	return plan
}

func (l *layout) totalCellSize() int {
	if len(l.ends) == 0 {
		return 0
	}
	return l.ends[len(l.ends)-1]
}

// totalBits is the exact length of the container in bits.
func (l *layout) totalBits() int {
	size := magicSize + 1 + 1 + 3*l.sizeBytes + l.offsetBytes + l.sizeBytes
	if l.options.Index {
		size += l.cellCount * l.offsetBytes
	}
	size += l.totalCellSize()
	if l.options.CRC32C {
		size += crc32c.Size
	}
	return size * 8
}

func (l *layout) write(builder *bits.Builder, entries []Entry) error {
	if err := builder.WriteUint(uint64(MagicGeneric), 32); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}

	var flags uint64
	if l.options.Index {
		flags |= flagIndex
	}
	if l.options.CRC32C {
		flags |= flagCRC32C
	}
	flags |= uint64(l.sizeBytes)
	if err := builder.WriteUint(flags, 8); err != nil {
		return fmt.Errorf("writing flags: %w", err)
	}
	if err := builder.WriteUint(uint64(l.offsetBytes), 8); err != nil {
		return fmt.Errorf("writing offset size: %w", err)
	}

	sizeBits, offsetBits := l.sizeBytes*8, l.offsetBytes*8
	fields := []struct {
		name  string
		value int
		width int
	}{
		{"cell count", l.cellCount, sizeBits},
		{"root count", 1, sizeBits},
		{"absent count", 0, sizeBits},
		{"total cell size", l.totalCellSize(), offsetBits},
		{"root index", 0, sizeBits},
	}
	for _, field := range fields {
		if err := builder.WriteUint(uint64(field.value), field.width); err != nil {
			return fmt.Errorf("writing %s: %w", field.name, err)
		}
	}

	if l.options.Index {
		for i, end := range l.ends {
			if err := builder.WriteUint(uint64(end), offsetBits); err != nil {
				return fmt.Errorf("writing index entry %d: %w", i, err)
			}
		}
	}

	for i, entry := range entries {
		d1, d2 := EncodeDescriptors(entry.Cell)
		if err := builder.WriteBuffer([]byte{d1, d2}); err != nil {
			return fmt.Errorf("writing cell %d descriptors: %w", i, err)
		}
		if err := builder.WriteBuffer(paddedData(entry.Cell.bits)); err != nil {
			return fmt.Errorf("writing cell %d data: %w", i, err)
		}
		for _, ref := range entry.Refs {
			if err := builder.WriteUint(uint64(ref), sizeBits); err != nil {
				return fmt.Errorf("writing cell %d refs: %w", i, err)
			}
		}
	}

	if l.options.CRC32C {
		body, err := builder.Buffer()
		if err != nil {
			return fmt.Errorf("checksumming: %w", err)
		}
		sum := crc32c.Sum(body)
		if err := builder.WriteBuffer(sum[:]); err != nil {
			return fmt.Errorf("writing checksum: %w", err)
		}
	}
	return nil
}

// byteWidth returns the fewest bytes that hold v, and at least one.
func byteWidth(v uint64) int {
	return max(1, (mathbits.Len64(v)+7)/8)
}
