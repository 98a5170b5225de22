// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Assetpack packs web UI assets into firmware source files. It
// compresses an asset, renders it as a C hex byte array, and splices the
// array between a header marker and a footer marker in a destination
// file such as Form.h, leaving everything else in that file untouched.
// Subcommands cover embedding (embed), standalone array files (hex),
// staleness checks (verify), and build information (version).
package main
