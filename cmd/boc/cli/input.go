// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"
)

// Encoding is the text form binary data takes on the command line.
type Encoding string

const (
	Raw    Encoding = "raw"
	Hex    Encoding = "hex"
	Base64 Encoding = "base64"
)

// ParseEncoding parses an Encoding name. Empty means Raw.
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(name) {
	case "", Raw:
		return Raw, nil
	case Hex, Base64:
		return Encoding(name), nil
	default:
		return "", fmt.Errorf("unknown encoding %q (want raw, hex or base64)", name)
	}
}

// BinaryInput is an embeddable struct that adds --hex and --base64
// input flags to a command's parameter struct.
type BinaryInput struct {
	HexInput    bool `json:"hex_input"    flag:"hex,x"  desc:"treat input as hex text"`
	Base64Input bool `json:"base64_input" flag:"base64" desc:"treat input as base64 text"`
}

// Encoding returns the input encoding selected by the flags.
func (b *BinaryInput) Encoding() (Encoding, error) {
	switch {
	case b.HexInput && b.Base64Input:
		return "", fmt.Errorf("--hex and --base64 are mutually exclusive")
	case b.HexInput:
		return Hex, nil
	case b.Base64Input:
		return Base64, nil
	default:
		return Raw, nil
	}
}

// ReadInput reads the file named by path, or stdin when path is empty
// or "-", and decodes it from encoding. Whitespace in hex and base64
// input is ignored.
func ReadInput(stdin io.Reader, path string, encoding Encoding) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return DecodeText(data, encoding)
}

// DecodeText decodes data from encoding. Raw data is returned as is.
func DecodeText(data []byte, encoding Encoding) ([]byte, error) {
	if encoding == Raw || encoding == "" {
		return data, nil
	}

	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from %s", encoding)
	}

	switch encoding {
	case Hex:
		decoded := make([]byte, hex.DecodedLen(len(cleaned)))
		count, err := hex.Decode(decoded, cleaned)
		if err != nil {
			return nil, fmt.Errorf("decode hex: %w", err)
		}
		return decoded[:count], nil
	case Base64:
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(cleaned)))
		count, err := base64.StdEncoding.Decode(decoded, cleaned)
		if err != nil {
			return nil, fmt.Errorf("decode base64: %w", err)
		}
		return decoded[:count], nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}

// WriteOutput writes data to w in encoding. Hex and base64 output end
// with a newline.
func WriteOutput(w io.Writer, data []byte, encoding Encoding) error {
	var err error
	switch encoding {
	case Raw, "":
		_, err = w.Write(data)
	case Hex:
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
	case Base64:
		_, err = fmt.Fprintln(w, base64.StdEncoding.EncodeToString(data))
	default:
		err = fmt.Errorf("unknown encoding %q", encoding)
	}
	return err
}
