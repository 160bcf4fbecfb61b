// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package crc32c

import (
	"encoding/hex"
	"testing"
)

func TestChecksumKnownValues(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
	}{
		{"", 0x00000000},
		{"a", 0xC1D04330},
		{"123456789", 0xE3069283},
	}
	for _, tt := range tests {
		if got := Checksum([]byte(tt.input)); got != tt.want {
			t.Errorf("Checksum(%q) = %#08x, want %#08x", tt.input, got, tt.want)
		}
	}
}

func TestSumIsLittleEndian(t *testing.T) {
	sum := Sum([]byte("123456789"))
	if got := hex.EncodeToString(sum[:]); got != "839206e3" {
		t.Errorf("Sum = %s, want 839206e3", got)
	}
}

func TestVerifyContainerTrailer(t *testing.T) {
	// Single-cell container whose last four bytes are the checksum of
	// everything before them.
	container, err := hex.DecodeString("b5ee9c7241010101000700000901d6f345606f5d59a1")
	if err != nil {
		t.Fatal(err)
	}
	body, trailer := container[:len(container)-Size], container[len(container)-Size:]
	if !Verify(body, trailer) {
		t.Fatalf("Verify rejected a valid trailer %x", trailer)
	}

	body[len(body)-1] ^= 0x01
	if Verify(body, trailer) {
		t.Error("Verify accepted a trailer after the body changed")
	}
	if Verify(body, trailer[:3]) {
		t.Error("Verify accepted a short trailer")
	}
}
