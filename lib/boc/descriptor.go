// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

const (
	refCountMask = 0x07
	exoticFlag   = 0x08
	levelShift   = 5
)

// Descriptor is the decoded form of a cell's two descriptor bytes.
// Exotic and LevelMask are reported for inspection only; the codec
// treats every cell as ordinary.
type Descriptor struct {
	RefCount  int
	Exotic    bool
	LevelMask int
	DataBytes int
	Padded    bool
}

// EncodeDescriptors returns the descriptor bytes for c. d1 is the
// reference count. d2 is floor(L/8) + ceil(L/8) for a bit length L: twice
// the data byte count, less one when the last byte carries padding.
func EncodeDescriptors(c *Cell) (d1, d2 byte) {
	length := c.bits.Len()
	return byte(len(c.refs)), byte(length/8 + (length+7)/8)
}

// DecodeDescriptors interprets a pair of descriptor bytes.
func DecodeDescriptors(d1, d2 byte) Descriptor {
	return Descriptor{
		RefCount:  int(d1 & refCountMask),
		Exotic:    d1&exoticFlag != 0,
		LevelMask: int(d1 >> levelShift),
		DataBytes: (int(d2) + 1) / 2,
		Padded:    d2%2 == 1,
	}
}
