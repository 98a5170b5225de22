// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies the compression format of an embedded payload.
type Format string

const (
	// FormatGzip is a single gzip member (RFC 1952) at the default
	// deflate level. This is what the firmware serves to browsers.
	FormatGzip Format = "gzip"

	// FormatZstd is a single zstd frame.
	FormatZstd Format = "zstd"

	// FormatLZ4 is an LZ4 frame (not a bare block), so the decoder
	// does not need to know the uncompressed size in advance.
	FormatLZ4 Format = "lz4"

	// FormatNone embeds the asset unchanged.
	FormatNone Format = "none"
)

// DefaultLevel selects each format's default compression level.
const DefaultLevel = 0

// String returns the format name.
func (format Format) String() string {
	return string(format)
}

// ParseFormat parses a format name. The empty string selects gzip.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatGzip:
		return FormatGzip, nil
	case FormatZstd:
		return FormatZstd, nil
	case FormatLZ4:
		return FormatLZ4, nil
	case FormatNone:
		return FormatNone, nil
	default:
		return "", fmt.Errorf("unknown compression format: %q", name)
	}
}

// Formats returns every supported format name, for help text and
// validation messages.
func Formats() []string {
	return []string{string(FormatGzip), string(FormatZstd), string(FormatLZ4), string(FormatNone)}
}

// Codec compresses and decompresses whole assets.
type Codec struct {
	// Format selects the compression format. The zero value is gzip.
	Format Format

	// Level is the format-specific compression level: 1-9 for gzip
	// and lz4, 1-22 for zstd. DefaultLevel selects the format's
	// default.
	Level int

	// Stamp records Name and ModTime in the gzip header. Other formats
	// ignore it. Stamped output changes whenever the source file is
	// touched, so re-embedding an unchanged asset is no longer
	// byte-identical.
	Stamp bool

	// Name and ModTime are the gzip header metadata written when
	// Stamp is set.
	Name    string
	ModTime time.Time
}

// Compress returns the compressed form of data.
func (c Codec) Compress(data []byte) ([]byte, error) {
	format, err := ParseFormat(string(c.Format))
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatGzip:
		return c.compressGzip(data)
	case FormatZstd:
		return c.compressZstd(data)
	case FormatLZ4:
		return c.compressLZ4(data)
	case FormatNone:
		return data, nil
	}
	return nil, fmt.Errorf("unsupported compression format: %q", format)
}

// Decompress reverses Compress. Stamp, Name, and ModTime are not
// consulted.
func (c Codec) Decompress(compressed []byte) ([]byte, error) {
	format, err := ParseFormat(string(c.Format))
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatGzip:
		return decompressGzip(compressed)
	case FormatZstd:
		return decompressZstd(compressed)
	case FormatLZ4:
		return decompressLZ4(compressed)
	case FormatNone:
		return compressed, nil
	}
	return nil, fmt.Errorf("unsupported compression format: %q", format)
}

// Gzip: the header fields are what decide reproducibility. An empty
// Name omits the FNAME field. klauspost's writer always stores
// ModTime.Unix(), so the "no timestamp" MTIME of 0 needs the Unix epoch,
// not the zero time.Time.

func (c Codec) compressGzip(data []byte) ([]byte, error) {
	level := gzip.DefaultCompression
	if c.Level != DefaultLevel {
		level = c.Level
	}

	var buffer bytes.Buffer
	writer, err := gzip.NewWriterLevel(&buffer, level)
	if err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	writer.ModTime = time.Unix(0, 0)
	if c.Stamp {
		writer.Name = c.Name
		if !c.ModTime.IsZero() {
			writer.ModTime = c.ModTime
		}
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("gzip compress: %w", err)
	}
	return buffer.Bytes(), nil
}

func decompressGzip(compressed []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	return data, nil
}

// Zstd: one encoder per call with a single goroutine, so the frame
// layout does not depend on GOMAXPROCS. Zero frames are enabled so an
// empty asset still produces a decodable frame rather than no bytes.

func (c Codec) compressZstd(data []byte) ([]byte, error) {
	level := zstd.SpeedDefault
	if c.Level != DefaultLevel {
		level = zstd.EncoderLevelFromZstd(c.Level)
	}

	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(level),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd compress: %w", err)
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, nil), nil
}

func decompressZstd(compressed []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	defer decoder.Close()

	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return data, nil
}

func (c Codec) compressLZ4(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	if c.Level != DefaultLevel {
		level, err := lz4Level(c.Level)
		if err != nil {
			return nil, err
		}
		if err := writer.Apply(lz4.CompressionLevelOption(level)); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buffer.Bytes(), nil
}

func decompressLZ4(compressed []byte) ([]byte, error) {
	data, err := io.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return data, nil
}

// lz4Level maps 1-9 onto the lz4 package's named levels.
func lz4Level(level int) (lz4.CompressionLevel, error) {
	levels := []lz4.CompressionLevel{
		lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
		lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
	}
	if level < 1 || level > len(levels) {
		return 0, fmt.Errorf("lz4 compression level %d out of range 1-9", level)
	}
	return levels[level-1], nil
}
