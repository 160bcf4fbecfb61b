// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package celldoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/boc/lib/codec"
)

// Format names a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CBOR Format = "cbor"

	// Text is a line-per-cell listing for reading. It can be written
	// but not parsed.
	Text Format = "text"
)

// Formats lists every format Encode accepts.
var Formats = []Format{JSON, YAML, CBOR, Text}

// ParseFormat returns the Format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	for _, known := range Formats {
		if format == known {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown document format %q (want one of %v)", s, Formats)
}

// Encode writes d to w in the given format.
func (d *Document) Encode(w io.Writer, format Format) error {
	switch format {
	case JSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(d)
	case YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(d); err != nil {
			return err
		}
		return encoder.Close()
	case CBOR:
		return codec.NewEncoder(w).Encode(d)
	case Text:
		for i, entry := range d.Cells {
			if _, err := fmt.Fprintf(w, "%d: x{%s}", i, entry.Bits); err != nil {
				return err
			}
			for _, ref := range entry.Refs {
				if _, err := fmt.Fprintf(w, " ^%d", ref); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown document format %q", format)
	}
}

// Parse decodes a document in the given format. JSON input may carry
// comments and trailing commas. Unknown fields are rejected for JSON
// and YAML.
func Parse(data []byte, format Format) (*Document, error) {
	var document Document
	switch format {
	case JSON:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&document); err != nil {
			return nil, fmt.Errorf("%w: parsing JSON: %w", ErrInvalidDocument, err)
		}
	case YAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&document); err != nil {
			return nil, fmt.Errorf("%w: parsing YAML: %w", ErrInvalidDocument, err)
		}
	case CBOR:
		if err := codec.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("%w: parsing CBOR: %w", ErrInvalidDocument, err)
		}
	default:
		return nil, fmt.Errorf("cannot parse %q documents", format)
	}
	return &document, nil
}
