// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec compresses assets before they are rendered into
// firmware source arrays.
//
// The firmware's web server hands the embedded bytes to the browser
// with a Content-Encoding header, so the default [FormatGzip] output
// must be a complete gzip member, not a raw deflate stream. [FormatZstd]
// and [FormatLZ4] exist for targets whose consumer decompresses on the
// device itself; [FormatNone] embeds the asset verbatim.
//
// Gzip output is reproducible by default: the header carries a zero
// modification time and no file name, so the same asset always yields
// the same payload bytes. [Codec].Stamp restores the metadata.
//
// [MarshalRecord] and [UnmarshalRecord] are unrelated to asset bytes:
// they encode small structured records, such as embed manifests, as
// deterministic CBOR.
//
// This package depends on no other assetpack packages.
package codec
