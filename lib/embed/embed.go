// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package embed

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/assetpack/lib/atomicfile"
	"github.com/bureau-foundation/assetpack/lib/codec"
	"github.com/bureau-foundation/assetpack/lib/digest"
)

// Request describes one embedding: which asset goes into which
// destination, between which markers, and how it is encoded.
type Request struct {
	// SourcePath is the asset to embed. Read as opaque bytes.
	SourcePath string

	// DestinationPath is the source file whose marked region is
	// replaced.
	DestinationPath string

	// Markers bound the replaced region in the destination.
	Markers Markers

	// Codec compresses the asset. The zero value is reproducible gzip.
	// When Codec.Stamp is set and Name is empty, the asset's base
	// name and modification time are recorded.
	Codec codec.Codec

	// Layout controls row rendering. The zero value is DefaultLayout.
	Layout Layout

	// Logger receives one record per stage. Nil discards.
	Logger *slog.Logger
}

// Result summarizes a completed embedding.
type Result struct {
	// AssetSize is the uncompressed asset length in bytes.
	AssetSize int

	// PayloadSize is the compressed length, which is also the number
	// of literals in the rendered array.
	PayloadSize int

	// Rows is the number of rendered array rows.
	Rows int

	// Digest is the BLAKE3 digest of the uncompressed asset.
	Digest digest.Digest

	// Format is the compression format used.
	Format codec.Format

	// Changed reports whether the destination bytes differ from what
	// was on disk before. The file is rewritten either way.
	Changed bool
}

// Embed compresses the asset at SourcePath and replaces the marked
// region of DestinationPath with the rendered array.
//
// Failures are reported before anything is written: a missing marker
// returns *MarkerNotFoundError (or *MarkerOrderError) and leaves the
// destination untouched; unreadable inputs or an unwritable destination
// return the wrapped *fs.PathError. The new document is staged in
// memory and swapped in with a single rename.
func Embed(request Request) (*Result, error) {
	logger := loggerOrDiscard(request.Logger).With(
		"source", request.SourcePath,
		"destination", request.DestinationPath,
	)

	if err := request.Markers.Validate(); err != nil {
		return nil, err
	}

	asset, payload, err := compressAsset(request.SourcePath, request.Codec)
	if err != nil {
		return nil, err
	}
	logger.Info("compressed asset",
		"format", formatOf(request.Codec),
		"asset_bytes", len(asset),
		"payload_bytes", len(payload),
	)

	document, err := os.ReadFile(request.DestinationPath)
	if err != nil {
		return nil, fmt.Errorf("reading destination: %w", err)
	}

	layout := request.Layout.resolved()
	output, err := Splice(document, request.Markers, Block(payload, layout))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", request.DestinationPath, err)
	}

	if err := atomicfile.CheckWritable(request.DestinationPath); err != nil {
		return nil, fmt.Errorf("opening destination for writing: %w", err)
	}
	if err := atomicfile.Write(request.DestinationPath, output); err != nil {
		return nil, err
	}

	result := &Result{
		AssetSize:   len(asset),
		PayloadSize: len(payload),
		Rows:        rowCount(len(payload), layout.RowWidth),
		Digest:      digest.Sum(asset),
		Format:      formatOf(request.Codec),
		Changed:     !bytes.Equal(document, output),
	}
	logger.Info("rewrote destination",
		"rows", result.Rows,
		"changed", result.Changed,
		"digest", result.Digest.String(),
	)
	return result, nil
}

// Verification is the outcome of comparing an embedded array with its
// asset.
type Verification struct {
	// AssetDigest is the digest of the asset on disk.
	AssetDigest digest.Digest

	// EmbeddedDigest is the digest of the decompressed array.
	EmbeddedDigest digest.Digest

	AssetSize    int
	EmbeddedSize int

	// PayloadSize is the number of literals found between the markers.
	PayloadSize int
}

// Match reports whether the embedded array decodes to the asset.
func (v *Verification) Match() bool {
	return v.AssetDigest == v.EmbeddedDigest
}

// Verify decodes the array currently embedded in DestinationPath and
// compares it with the asset at SourcePath. Nothing is written.
// Request.Layout and the Codec's gzip metadata fields are not used.
func Verify(request Request) (*Verification, error) {
	if err := request.Markers.Validate(); err != nil {
		return nil, err
	}

	asset, err := os.ReadFile(request.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading asset: %w", err)
	}
	document, err := os.ReadFile(request.DestinationPath)
	if err != nil {
		return nil, fmt.Errorf("reading destination: %w", err)
	}

	region, err := Extract(document, request.Markers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", request.DestinationPath, err)
	}
	payload, err := ParseArray(region)
	if err != nil {
		return nil, fmt.Errorf("%s: parsing embedded array: %w", request.DestinationPath, err)
	}
	embedded, err := request.Codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: decoding embedded payload: %w", request.DestinationPath, err)
	}

	verification := &Verification{
		AssetDigest:    digest.Sum(asset),
		EmbeddedDigest: digest.Sum(embedded),
		AssetSize:      len(asset),
		EmbeddedSize:   len(embedded),
		PayloadSize:    len(payload),
	}
	loggerOrDiscard(request.Logger).Info("verified embedded array",
		"destination", request.DestinationPath,
		"match", verification.Match(),
		"asset_digest", verification.AssetDigest.String(),
		"embedded_digest", verification.EmbeddedDigest.String(),
	)
	return verification, nil
}

// HexRequest describes a standalone rendering of an asset.
type HexRequest struct {
	SourcePath string

	// OutputPath defaults to DefaultHexPath(SourcePath, format).
	OutputPath string

	Codec  codec.Codec
	Layout Layout
	Logger *slog.Logger
}

// DefaultHexPath names the standalone output for an asset:
// "rtk-setup.png" compressed with gzip becomes "rtk-setup.png.gzip_hex".
// Uncompressed output uses the ".hex" suffix.
func DefaultHexPath(sourcePath string, format codec.Format) string {
	if format == codec.FormatNone {
		return sourcePath + ".hex"
	}
	return sourcePath + "." + string(format) + "_hex"
}

// WriteHexFile compresses the asset and writes only the rendered rows
// to a file of their own. The output is replaced atomically.
func WriteHexFile(request HexRequest) (*Result, string, error) {
	asset, payload, err := compressAsset(request.SourcePath, request.Codec)
	if err != nil {
		return nil, "", err
	}

	format := formatOf(request.Codec)
	outputPath := request.OutputPath
	if outputPath == "" {
		outputPath = DefaultHexPath(request.SourcePath, format)
	}

	layout := request.Layout.resolved()
	if err := atomicfile.Write(outputPath, Render(payload, layout)); err != nil {
		return nil, "", err
	}

	result := &Result{
		AssetSize:   len(asset),
		PayloadSize: len(payload),
		Rows:        rowCount(len(payload), layout.RowWidth),
		Digest:      digest.Sum(asset),
		Format:      format,
		Changed:     true,
	}
	loggerOrDiscard(request.Logger).Info("wrote hex array",
		"source", request.SourcePath,
		"output", outputPath,
		"format", format,
		"payload_bytes", result.PayloadSize,
		"rows", result.Rows,
	)
	return result, outputPath, nil
}

// compressAsset reads the asset and compresses it, filling in the gzip
// header metadata from the file when stamping is requested.
func compressAsset(sourcePath string, assetCodec codec.Codec) (asset, payload []byte, err error) {
	asset, err = os.ReadFile(sourcePath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading asset: %w", err)
	}

	if assetCodec.Stamp && assetCodec.Name == "" {
		info, err := os.Stat(sourcePath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading asset: %w", err)
		}
		assetCodec.Name = filepath.Base(sourcePath)
		assetCodec.ModTime = info.ModTime()
	}

	payload, err = assetCodec.Compress(asset)
	if err != nil {
		return nil, nil, fmt.Errorf("compressing %s: %w", sourcePath, err)
	}
	return asset, payload, nil
}

func formatOf(assetCodec codec.Codec) codec.Format {
	format, err := codec.ParseFormat(string(assetCodec.Format))
	if err != nil {
		return assetCodec.Format
	}
	return format
}

func rowCount(payloadSize, rowWidth int) int {
	return (payloadSize + rowWidth - 1) / rowWidth
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
