// Package compression handles transparently compressed analysis inputs.
// Firmware dumps are commonly stored zstd-compressed; callers hand the
// raw file contents to Decode and get analyzable bytes back.
package compression

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstd frame magic, little-endian on the wire.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// IsZstd reports whether data starts with a zstd frame header.
func IsZstd(data []byte) bool {
	return len(data) >= len(zstdMagic) && bytes.Equal(data[:len(zstdMagic)], zstdMagic)
}

// Decode returns the decompressed contents when data is a zstd frame,
// or data unchanged otherwise.
func Decode(data []byte) ([]byte, error) {
	if !IsZstd(data) {
		return data, nil
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress input: %w", err)
	}
	return out, nil
}

// Encode compresses data with the default zstd level. Used by tooling
// that archives fetched blobs.
func Encode(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	out := encoder.EncodeAll(data, make([]byte, 0, len(data)))
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return out, nil
}
