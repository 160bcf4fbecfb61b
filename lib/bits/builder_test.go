// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bits

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuilderWriteUint(t *testing.T) {
	builder := NewBuilder(16)
	if err := builder.WriteUint(0b101, 3); err != nil {
		t.Fatalf("WriteUint: %v", err)
	}
	if err := builder.WriteUint(0b11001, 5); err != nil {
		t.Fatalf("WriteUint: %v", err)
	}
	if err := builder.WriteUint(0xA5, 8); err != nil {
		t.Fatalf("WriteUint: %v", err)
	}

	got, err := builder.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	if want := []byte{0b10111001, 0xA5}; !bytes.Equal(got, want) {
		t.Errorf("Buffer() = %08b, want %08b", got, want)
	}
}

func TestBuilderWidthErrors(t *testing.T) {
	builder := NewBuilder(128)
	if err := builder.WriteUint(4, 2); !errors.Is(err, ErrWidth) {
		t.Errorf("WriteUint(4, 2) error = %v, want ErrWidth", err)
	}
	if err := builder.WriteUint(0, 65); !errors.Is(err, ErrWidth) {
		t.Errorf("WriteUint(0, 65) error = %v, want ErrWidth", err)
	}
	if builder.Len() != 0 {
		t.Errorf("Len() = %d after failed writes, want 0", builder.Len())
	}
	if err := builder.WriteUint(^uint64(0), 64); err != nil {
		t.Errorf("WriteUint(max, 64): %v", err)
	}
}

func TestBuilderOverflow(t *testing.T) {
	builder := NewBuilder(10)
	if err := builder.WriteUint(0xFF, 8); err != nil {
		t.Fatalf("WriteUint: %v", err)
	}
	if err := builder.WriteUint(0, 3); !errors.Is(err, ErrOverflow) {
		t.Errorf("WriteUint past capacity error = %v, want ErrOverflow", err)
	}
	if builder.Len() != 8 {
		t.Errorf("Len() = %d after failed write, want 8", builder.Len())
	}
	if err := builder.WriteBit(true); err != nil {
		t.Fatalf("WriteBit: %v", err)
	}
	if err := builder.WriteBit(false); err != nil {
		t.Fatalf("WriteBit: %v", err)
	}
	if err := builder.WriteBit(true); !errors.Is(err, ErrOverflow) {
		t.Errorf("WriteBit at capacity error = %v, want ErrOverflow", err)
	}
	if err := builder.WriteBuffer([]byte{0}); !errors.Is(err, ErrOverflow) {
		t.Errorf("WriteBuffer at capacity error = %v, want ErrOverflow", err)
	}
}

func TestBuilderBufferUnaligned(t *testing.T) {
	builder := NewBuilder(16)
	if err := builder.WriteBit(true); err != nil {
		t.Fatalf("WriteBit: %v", err)
	}
	if _, err := builder.Buffer(); !errors.Is(err, ErrUnaligned) {
		t.Errorf("Buffer() error = %v, want ErrUnaligned", err)
	}
}

func TestBuilderWriteBitsUnaligned(t *testing.T) {
	source, err := NewString([]byte{0b00111100}, 2, 4)
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}

	builder := NewBuilder(8)
	if err := builder.WriteUint(0, 2); err != nil {
		t.Fatalf("WriteUint: %v", err)
	}
	if err := builder.WriteBits(source); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}
	if err := builder.WriteUint(0, 2); err != nil {
		t.Fatalf("WriteUint: %v", err)
	}
	got, err := builder.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	if want := []byte{0b00111100}; !bytes.Equal(got, want) {
		t.Errorf("Buffer() = %08b, want %08b", got, want)
	}
}

func TestBuilderReaderRoundTrip(t *testing.T) {
	type field struct {
		value uint64
		width int
	}
	fields := []field{
		{1, 1}, {0, 1}, {5, 3}, {0x1FF, 9}, {0, 0},
		{0xDEADBEEF, 32}, {0x0123456789ABCDEF, 64}, {3, 2},
	}
	total := 0
	for _, f := range fields {
		total += f.width
	}

	builder := NewBuilder(total)
	for _, f := range fields {
		if err := builder.WriteUint(f.value, f.width); err != nil {
			t.Fatalf("WriteUint(%d, %d): %v", f.value, f.width, err)
		}
	}
	if builder.Len() != total || builder.Cap() != total {
		t.Fatalf("Len() = %d, Cap() = %d, want %d", builder.Len(), builder.Cap(), total)
	}

	written, err := NewString(builder.data, 0, builder.Len())
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	reader := NewReader(written)
	for i, f := range fields {
		got, err := reader.LoadUint(f.width)
		if err != nil {
			t.Fatalf("field %d LoadUint(%d): %v", i, f.width, err)
		}
		if got != f.value {
			t.Errorf("field %d = %#x, want %#x", i, got, f.value)
		}
	}
	if reader.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", reader.Remaining())
	}
}
