// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bureau-foundation/boc/lib/bits"
	"github.com/bureau-foundation/boc/lib/crc32c"
)

// Magic numbers of the three container variants.
const (
	MagicIndexed       uint32 = 0x68FF65F3
	MagicIndexedCRC32C uint32 = 0xACC3A728
	MagicGeneric       uint32 = 0xB5EE9C72
)

const (
	magicSize = 4

	flagIndex     = 0x80
	flagCRC32C    = 0x40
	flagCacheBits = 0x20
	flagReserved  = 0x18
	flagSizeMask  = 0x07

	// maxFieldBytes is the widest count or offset field the decoder
	// accepts.
	maxFieldBytes = 8
)

// Header is a parsed container header. Index and CellData are
// sub-slices of the input passed to ParseHeader.
type Header struct {
	Magic        uint32
	HasIndex     bool
	HasCRC32C    bool
	HasCacheBits bool

	// SizeBytes is the width of the cell, root and absent counts, of
	// each root index, and of each reference inside a cell.
	SizeBytes int

	// OffsetBytes is the width of the total cell data size and of each
	// index table entry.
	OffsetBytes int

	CellCount     int
	RootCount     int
	AbsentCount   int
	TotalCellSize int

	// Roots lists the root cell indices. Legacy containers have the
	// single root 0.
	Roots []int

	// Index is the raw index table, nil when absent. The decoder
	// recomputes offsets from the cell data and does not read it.
	Index []byte

	// CellData is the concatenated serialized cells.
	CellData []byte
}

// ParseHeader splits a container into its header fields, index table
// and cell data. When the container carries a CRC-32C trailer it is
// verified before any other field is read. The container must end
// exactly where its layout says it does.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < magicSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for a magic number", ErrOutOfBounds, len(data))
	}

	header := &Header{Magic: binary.BigEndian.Uint32(data)}
	switch header.Magic {
	case MagicIndexed:
		header.HasIndex = true
	case MagicIndexedCRC32C:
		header.HasIndex = true
		header.HasCRC32C = true
	case MagicGeneric:
		if len(data) <= magicSize {
			return nil, fmt.Errorf("%w: missing flags byte", ErrOutOfBounds)
		}
		header.HasCRC32C = data[magicSize]&flagCRC32C != 0
	default:
		return nil, fmt.Errorf("%w: magic %#08x", ErrUnknownFormat, header.Magic)
	}

	body := data
	if header.HasCRC32C {
		if len(data) < magicSize+crc32c.Size {
			return nil, fmt.Errorf("%w: %d bytes is too short for a checksummed container", ErrOutOfBounds, len(data))
		}
		var trailer []byte
		body, trailer = data[:len(data)-crc32c.Size], data[len(data)-crc32c.Size:]
		if !crc32c.Verify(body, trailer) {
			return nil, fmt.Errorf("%w: trailer %x, computed %#08x", ErrChecksumMismatch, trailer, crc32c.Checksum(body))
		}
	}

	p := &headerParser{data: body, reader: bits.NewReader(bits.FromBytes(body))}
	if err := p.skip(magicSize, "magic"); err != nil {
		return nil, err
	}
	if err := p.parse(header); err != nil {
		return nil, err
	}
	return header, nil
}

// headerParser reads header fields from the checksummed body of a
// container, wrapping every failure with the name of the field.
type headerParser struct {
	data   []byte
	reader *bits.Reader
}

func (p *headerParser) parse(header *Header) error {
	if header.Magic == MagicGeneric {
		flags, err := p.readUint(1, "flags")
		if err != nil {
			return err
		}
		header.HasIndex = flags&flagIndex != 0
		header.HasCacheBits = flags&flagCacheBits != 0
		if flags&flagReserved != 0 {
			return fmt.Errorf("%w: reserved flag bits set in %#02x", ErrInvalidHeader, flags)
		}
		header.SizeBytes = int(flags & flagSizeMask)
	} else {
		size, err := p.readUint(1, "size")
		if err != nil {
			return err
		}
		header.SizeBytes = int(size)
	}
	if header.SizeBytes < 1 || header.SizeBytes > maxFieldBytes {
		return fmt.Errorf("%w: size field width %d", ErrInvalidHeader, header.SizeBytes)
	}

	offsetBytes, err := p.readUint(1, "offset size")
	if err != nil {
		return err
	}
	header.OffsetBytes = int(offsetBytes)
	if header.OffsetBytes < 1 || header.OffsetBytes > maxFieldBytes {
		return fmt.Errorf("%w: offset field width %d", ErrInvalidHeader, header.OffsetBytes)
	}

	if header.CellCount, err = p.count(header.SizeBytes, "cell count"); err != nil {
		return err
	}
	if header.RootCount, err = p.count(header.SizeBytes, "root count"); err != nil {
		return err
	}
	if header.AbsentCount, err = p.count(header.SizeBytes, "absent count"); err != nil {
		return err
	}
	if header.TotalCellSize, err = p.count(header.OffsetBytes, "total cell size"); err != nil {
		return err
	}

	// Every cell is at least its two descriptor bytes, so this also
	// bounds every allocation made from CellCount by the input size.
	if header.CellCount > header.TotalCellSize/2 {
		return fmt.Errorf("%w: %d cells cannot fit in %d bytes of cell data",
			ErrInvalidHeader, header.CellCount, header.TotalCellSize)
	}
	if header.RootCount > header.CellCount || header.AbsentCount > header.CellCount {
		return fmt.Errorf("%w: %d roots and %d absent cells for %d cells",
			ErrInvalidHeader, header.RootCount, header.AbsentCount, header.CellCount)
	}
	if header.TotalCellSize > len(p.data) {
		return fmt.Errorf("%w: total cell size %d exceeds the %d-byte input",
			ErrOutOfBounds, header.TotalCellSize, len(p.data))
	}

	if header.Magic == MagicGeneric {
		header.Roots = make([]int, header.RootCount)
		for i := range header.Roots {
			if header.Roots[i], err = p.count(header.SizeBytes, fmt.Sprintf("root %d", i)); err != nil {
				return err
			}
		}
	} else {
		if header.RootCount != 1 {
			return fmt.Errorf("%w: legacy container declares %d roots, want 1", ErrInvalidHeader, header.RootCount)
		}
		header.Roots = []int{0}
	}

	if header.HasIndex {
		if header.Index, err = p.bytes(header.CellCount*header.OffsetBytes, "index"); err != nil {
			return err
		}
	}
	if header.CellData, err = p.bytes(header.TotalCellSize, "cell data"); err != nil {
		return err
	}

	if remaining := p.reader.Remaining() / 8; remaining != 0 {
		return fmt.Errorf("%w: %d trailing bytes after cell data", ErrInvalidHeader, remaining)
	}
	return nil
}

func (p *headerParser) readUint(width int, field string) (uint64, error) {
	value, err := p.reader.LoadUint(width * 8)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", field, err)
	}
	return value, nil
}

// count reads an unsigned field that must fit in an int.
func (p *headerParser) count(width int, field string) (int, error) {
	value, err := p.readUint(width, field)
	if err != nil {
		return 0, err
	}
	if value > math.MaxInt {
		return 0, fmt.Errorf("%w: %s %d overflows int", ErrInvalidHeader, field, value)
	}
	return int(value), nil
}

// bytes returns the next n bytes of the input without copying.
func (p *headerParser) bytes(n int, field string) ([]byte, error) {
	start := p.reader.Offset() / 8
	if err := p.skip(n, field); err != nil {
		return nil, err
	}
	return p.data[start : start+n], nil
}

func (p *headerParser) skip(n int, field string) error {
	if n > p.reader.Remaining()/8 {
		return fmt.Errorf("reading %s: %w: need %d bytes, %d remain",
			field, ErrOutOfBounds, n, p.reader.Remaining()/8)
	}
	if err := p.reader.Skip(n * 8); err != nil {
		return fmt.Errorf("reading %s: %w", field, err)
	}
	return nil
}
