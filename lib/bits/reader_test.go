// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bits

import (
	"bytes"
	"errors"
	"testing"
)

func TestReaderLoadUint(t *testing.T) {
	// 1010 1001 1111 0000
	reader := NewReader(FromBytes([]byte{0xA9, 0xF0}))

	steps := []struct {
		width int
		want  uint64
	}{
		{1, 1},
		{3, 2},
		{4, 9},
		{0, 0},
		{6, 0b111100},
		{2, 0},
	}
	for i, step := range steps {
		got, err := reader.LoadUint(step.width)
		if err != nil {
			t.Fatalf("step %d LoadUint(%d): %v", i, step.width, err)
		}
		if got != step.want {
			t.Errorf("step %d LoadUint(%d) = %d, want %d", i, step.width, got, step.want)
		}
	}

	if reader.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", reader.Remaining())
	}
	if _, err := reader.LoadUint(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("LoadUint past end error = %v, want ErrOutOfBounds", err)
	}
}

func TestReaderLoadUint64(t *testing.T) {
	data := []byte{0xFF, 0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}
	reader := NewReader(FromBytes(data))
	if err := reader.Skip(8); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	got, err := reader.LoadUint(64)
	if err != nil {
		t.Fatalf("LoadUint(64): %v", err)
	}
	if got != 0x0123456789ABCDEF {
		t.Errorf("LoadUint(64) = %#x, want 0x0123456789abcdef", got)
	}

	reader.Reset()
	if err := reader.Skip(4); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	got, err = reader.LoadUint(64)
	if err != nil {
		t.Fatalf("unaligned LoadUint(64): %v", err)
	}
	if got != 0xF0123456789ABCDE {
		t.Errorf("unaligned LoadUint(64) = %#x, want 0xf0123456789abcde", got)
	}

	if _, err := reader.LoadUint(65); !errors.Is(err, ErrWidth) {
		t.Errorf("LoadUint(65) error = %v, want ErrWidth", err)
	}
}

func TestReaderPreloadDoesNotAdvance(t *testing.T) {
	reader := NewReader(FromBytes([]byte{0x80}))
	for range 2 {
		bit, err := reader.PreloadBit()
		if err != nil {
			t.Fatalf("PreloadBit: %v", err)
		}
		if !bit {
			t.Error("PreloadBit = false, want true")
		}
	}
	if reader.Offset() != 0 {
		t.Errorf("Offset() = %d after preloads, want 0", reader.Offset())
	}
	value, err := reader.PreloadUint(4)
	if err != nil || value != 8 {
		t.Errorf("PreloadUint(4) = %d, %v, want 8", value, err)
	}
	bit, err := reader.LoadBit()
	if err != nil || !bit {
		t.Errorf("LoadBit = %v, %v, want true", bit, err)
	}
	if reader.Offset() != 1 {
		t.Errorf("Offset() = %d, want 1", reader.Offset())
	}
}

func TestReaderLoadBits(t *testing.T) {
	reader := NewReader(FromBytes([]byte{0b11001010}))
	if err := reader.Skip(2); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	loaded, err := reader.LoadBits(4)
	if err != nil {
		t.Fatalf("LoadBits: %v", err)
	}
	if got := loaded.String(); got != "2" {
		t.Errorf("LoadBits(4) = %s, want 2", got)
	}
	if _, err := reader.LoadBits(3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("LoadBits past end error = %v, want ErrOutOfBounds", err)
	}
}

func TestReaderLoadBuffer(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56}

	aligned := NewReader(FromBytes(data))
	got, err := aligned.LoadBuffer(2)
	if err != nil {
		t.Fatalf("aligned LoadBuffer: %v", err)
	}
	if !bytes.Equal(got, []byte{0x12, 0x34}) {
		t.Errorf("aligned LoadBuffer = %x, want 1234", got)
	}
	got[0] = 0xFF
	if data[0] != 0x12 {
		t.Error("LoadBuffer returned a slice aliasing the source")
	}

	unaligned := NewReader(FromBytes(data))
	if err := unaligned.Skip(4); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	got, err = unaligned.LoadBuffer(2)
	if err != nil {
		t.Fatalf("unaligned LoadBuffer: %v", err)
	}
	if !bytes.Equal(got, []byte{0x23, 0x45}) {
		t.Errorf("unaligned LoadBuffer = %x, want 2345", got)
	}
	if _, err := unaligned.LoadBuffer(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("LoadBuffer past end error = %v, want ErrOutOfBounds", err)
	}
}

func TestReaderSkipAndCheckpoints(t *testing.T) {
	reader := NewReader(FromBytes([]byte{0x0F, 0xF0}))

	if err := reader.Skip(16); err != nil {
		t.Fatalf("Skip to end: %v", err)
	}
	if err := reader.Skip(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Skip past end error = %v, want ErrOutOfBounds", err)
	}
	if err := reader.Skip(-12); err != nil {
		t.Fatalf("Skip backward: %v", err)
	}
	if reader.Offset() != 4 {
		t.Fatalf("Offset() = %d, want 4", reader.Offset())
	}
	if err := reader.Skip(-5); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Skip before start error = %v, want ErrOutOfBounds", err)
	}

	reader.Save()
	if _, err := reader.LoadUint(8); err != nil {
		t.Fatalf("LoadUint: %v", err)
	}
	reader.Save()
	if _, err := reader.LoadUint(4); err != nil {
		t.Fatalf("LoadUint: %v", err)
	}

	reader.Reset()
	if reader.Offset() != 12 {
		t.Errorf("first Reset: Offset() = %d, want 12", reader.Offset())
	}
	reader.Reset()
	if reader.Offset() != 4 {
		t.Errorf("second Reset: Offset() = %d, want 4", reader.Offset())
	}
	reader.Reset()
	if reader.Offset() != 0 {
		t.Errorf("Reset with no checkpoint: Offset() = %d, want 0", reader.Offset())
	}
}
