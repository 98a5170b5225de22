// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package embed packs a compressed asset into a C source file as a
// hex-literal byte array.
//
// The destination file carries two literal marker strings, for
// example:
//
//	static const uint8_t main_js[] PROGMEM = {
//	  0x1F, 0x8B, 0x08, ...
//	}; ///main_js
//
// Everything from the start of the file through the end of the header
// marker, and everything from the start of the footer marker to the end
// of the file, is preserved byte for byte. The bytes between them are
// replaced by a line ending followed by the rendered array (see
// [Render]). When a marker occurs more than once, the first occurrence
// is used.
//
// [Embed] is the whole operation: compress, locate, render, splice,
// and replace the destination atomically. [Render], [Splice],
// [Extract], and [ParseArray] are the pure steps it is built from.
// [Verify] reads an embedded array back and checks it against the
// asset. [WriteHexFile] writes the rendered array to a standalone file
// for assets that are pasted into source by hand. A [Manifest] records
// what an embedding wrote, encoded as deterministic CBOR.
package embed
