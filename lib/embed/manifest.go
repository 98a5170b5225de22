// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package embed

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/assetpack/lib/atomicfile"
	"github.com/bureau-foundation/assetpack/lib/codec"
	"github.com/bureau-foundation/assetpack/lib/digest"
)

// ManifestVersion is the schema version written into new manifests.
const ManifestVersion = 1

// Manifest records what an embedding put into a destination. Build
// systems compare the asset digest against a fresh one to decide
// whether the destination needs regenerating without re-reading it.
type Manifest struct {
	Version     int           `cbor:"version"`
	Source      string        `cbor:"source"`
	Destination string        `cbor:"destination"`
	Header      string        `cbor:"header"`
	Footer      string        `cbor:"footer"`
	Format      codec.Format  `cbor:"format"`
	Level       int           `cbor:"level,omitempty"`
	Stamped     bool          `cbor:"stamped,omitempty"`
	AssetDigest digest.Digest `cbor:"asset_digest"`
	AssetSize   int           `cbor:"asset_size"`
	PayloadSize int           `cbor:"payload_size"`
	Rows        int           `cbor:"rows"`
}

// NewManifest describes the embedding that produced result.
func NewManifest(request Request, result *Result) Manifest {
	return Manifest{
		Version:     ManifestVersion,
		Source:      request.SourcePath,
		Destination: request.DestinationPath,
		Header:      request.Markers.Header,
		Footer:      request.Markers.Footer,
		Format:      result.Format,
		Level:       request.Codec.Level,
		Stamped:     request.Codec.Stamp,
		AssetDigest: result.Digest,
		AssetSize:   result.AssetSize,
		PayloadSize: result.PayloadSize,
		Rows:        result.Rows,
	}
}

// Current reports whether the asset at the recorded source still has
// the recorded digest.
func (m *Manifest) Current() (bool, error) {
	sum, err := digest.File(m.Source)
	if err != nil {
		return false, err
	}
	return sum == m.AssetDigest, nil
}

// WriteManifest encodes manifest as deterministic CBOR and replaces
// path atomically.
func WriteManifest(path string, manifest Manifest) error {
	data, err := codec.MarshalRecord(manifest)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return atomicfile.Write(path, data)
}

// ReadManifest decodes a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var manifest Manifest
	if err := codec.UnmarshalRecord(data, &manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	if manifest.Version == 0 || manifest.Version > ManifestVersion {
		return nil, fmt.Errorf("manifest %s: unsupported version %d", path, manifest.Version)
	}
	return &manifest, nil
}
