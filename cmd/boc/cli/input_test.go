// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	want := []byte{0xb5, 0xee, 0x9c, 0x72}

	tests := []struct {
		name     string
		input    string
		encoding Encoding
	}{
		{name: "raw", input: string(want), encoding: Raw},
		{name: "hex", input: "b5ee 9c72\n", encoding: Hex},
		{name: "hex upper", input: "B5EE9C72", encoding: Hex},
		{name: "base64", input: "te6c\ncg==\n", encoding: Base64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadInput(strings.NewReader(tt.input), "", tt.encoding)
			if err != nil {
				t.Fatalf("ReadInput(stdin): %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("ReadInput(stdin) = %x, want %x", got, want)
			}

			path := filepath.Join(t.TempDir(), "input")
			if err := os.WriteFile(path, []byte(tt.input), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			got, err = ReadInput(strings.NewReader("ignored"), path, tt.encoding)
			if err != nil {
				t.Fatalf("ReadInput(file): %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("ReadInput(file) = %x, want %x", got, want)
			}
		})
	}
}

func TestReadInputErrors(t *testing.T) {
	if _, err := ReadInput(strings.NewReader("zz"), "", Hex); err == nil {
		t.Error("invalid hex should fail")
	}
	if _, err := ReadInput(strings.NewReader("  \n"), "", Base64); err == nil {
		t.Error("empty base64 should fail")
	}
	if _, err := ReadInput(strings.NewReader(""), filepath.Join(t.TempDir(), "missing"), Raw); err == nil {
		t.Error("missing file should fail")
	}
}

func TestWriteOutput(t *testing.T) {
	data := []byte{0xb5, 0xee, 0x9c, 0x72}
	tests := []struct {
		encoding Encoding
		want     string
	}{
		{Raw, string(data)},
		{Hex, "b5ee9c72\n"},
		{Base64, "te6ccg==\n"},
	}
	for _, tt := range tests {
		var buffer bytes.Buffer
		if err := WriteOutput(&buffer, data, tt.encoding); err != nil {
			t.Fatalf("WriteOutput(%s): %v", tt.encoding, err)
		}
		if buffer.String() != tt.want {
			t.Errorf("WriteOutput(%s) = %q, want %q", tt.encoding, buffer.String(), tt.want)
		}
	}
}

func TestBinaryInputEncoding(t *testing.T) {
	both := BinaryInput{HexInput: true, Base64Input: true}
	if _, err := both.Encoding(); err == nil {
		t.Error("--hex with --base64 should fail")
	}
	hexOnly := BinaryInput{HexInput: true}
	if encoding, err := hexOnly.Encoding(); err != nil || encoding != Hex {
		t.Errorf("Encoding() = %q, %v, want hex", encoding, err)
	}
	if _, err := ParseEncoding("octal"); err == nil {
		t.Error("ParseEncoding(octal) should fail")
	}
}
