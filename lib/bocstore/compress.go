// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bocstore

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies how a blob's payload is compressed. The
// tag is the first byte of every blob file, so the values are part of
// the on-disk format.
type CompressionTag uint8

const (
	// CompressionNone stores the serialized container as is.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 is LZ4 block compression.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd is zstd at the default level.
	CompressionZstd CompressionTag = 2
)

// String returns the name of the tag.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", tag)
	}
}

// ParseCompressionTag parses the name of a compression tag.
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression tag: %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (tag CompressionTag) MarshalText() ([]byte, error) {
	return []byte(tag.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (tag *CompressionTag) UnmarshalText(text []byte) error {
	parsed, err := ParseCompressionTag(string(text))
	if err != nil {
		return err
	}
	*tag = parsed
	return nil
}

// blobHeaderSize is the tag byte plus the little-endian uint32
// uncompressed length.
const blobHeaderSize = 5

// encodeBlob compresses data with tag, falling back to
// CompressionNone when the result would not be smaller, and prefixes
// the blob header.
func encodeBlob(data []byte, tag CompressionTag) ([]byte, CompressionTag, error) {
	if uint64(len(data)) > 0xFFFFFFFF {
		return nil, 0, fmt.Errorf("blob of %d bytes is too large", len(data))
	}
	payload, used, err := compressWithFallback(data, tag)
	if err != nil {
		return nil, 0, err
	}
	blob := make([]byte, blobHeaderSize, blobHeaderSize+len(payload))
	blob[0] = byte(used)
	binary.LittleEndian.PutUint32(blob[1:], uint32(len(data)))
	return append(blob, payload...), used, nil
}

// decodeBlob reverses encodeBlob.
func decodeBlob(blob []byte) ([]byte, error) {
	if len(blob) < blobHeaderSize {
		return nil, fmt.Errorf("blob of %d bytes is shorter than its header", len(blob))
	}
	tag := CompressionTag(blob[0])
	size := int(binary.LittleEndian.Uint32(blob[1:blobHeaderSize]))
	return decompress(blob[blobHeaderSize:], tag, size)
}

func compressWithFallback(data []byte, tag CompressionTag) ([]byte, CompressionTag, error) {
	var (
		compressed []byte
		err        error
	)
	switch tag {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZstd:
		compressed, err = compressZstd(data)
	default:
		return nil, 0, fmt.Errorf("unsupported compression tag: %d", tag)
	}
	if errors.Is(err, errIncompressible) {
		return data, CompressionNone, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return compressed, tag, nil
}

func decompress(payload []byte, tag CompressionTag, size int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(payload) != size {
			return nil, fmt.Errorf("uncompressed blob: size %d does not match expected %d", len(payload), size)
		}
		return payload, nil
	case CompressionLZ4:
		destination := make([]byte, size)
		read, err := lz4.UncompressBlock(payload, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != size {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
		}
		return destination, nil
	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(payload, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != size {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), size)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock reports 0 for incompressible input.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("bocstore: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("bocstore: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

var errIncompressible = errors.New("data is incompressible")

// SelectCompression probes data with zstd. A ratio of at least 1.5
// selects zstd, at least 1.1 selects LZ4, and anything less is stored
// uncompressed.
func SelectCompression(data []byte) CompressionTag {
	if len(data) == 0 {
		return CompressionNone
	}
	compressed := zstdEncoder.EncodeAll(data, nil)
	ratio := float64(len(data)) / float64(len(compressed))
	switch {
	case ratio >= 1.5:
		return CompressionZstd
	case ratio >= 1.1:
		return CompressionLZ4
	default:
		return CompressionNone
	}
}
