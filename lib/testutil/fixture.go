// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/bureau-foundation/boc/lib/bits"
)

// TB is the subset of testing.TB the helpers use.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// DecodeHex decodes hex fixture text, ignoring all whitespace.
//
//	data := testutil.DecodeHex(t, `
//		b5ee9c72 41 01 01 01 00 07 00
//		00 09 01d6f34560 6f5d59a1`)
func DecodeHex(t TB, text string) []byte {
	t.Helper()
	data, err := hex.DecodeString(stripSpace(text))
	if err != nil {
		t.Fatalf("decoding hex fixture: %v", err)
	}
	return data
}

// DecodeBase64 decodes standard padded base64 fixture text.
func DecodeBase64(t TB, text string) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(stripSpace(text))
	if err != nil {
		t.Fatalf("decoding base64 fixture: %v", err)
	}
	return data
}

// Bits parses the hex text form of a bit string.
func Bits(t TB, text string) bits.String {
	t.Helper()
	s, err := bits.Parse(text)
	if err != nil {
		t.Fatalf("parsing bit string %q: %v", text, err)
	}
	return s
}

func stripSpace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}
