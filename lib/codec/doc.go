// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the repository's standard CBOR configuration.
//
// CBOR is used for the store's on-disk metadata records and as one of
// the cell document output formats. JSON remains the format for CLI
// output. Every package encodes through this one configuration so the
// same value always produces the same bytes: the encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2).
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// # Struct Tag Rules
//
//   - `cbor` tag: the type is only ever serialized as CBOR (store
//     records).
//   - `json` tag: the type is serialized as JSON and CBOR. fxamacker/cbor
//     reads `json` tags when `cbor` tags are absent, so one tag controls
//     naming for both (cell documents).
//
// Never use both tags on the same field.
package codec
