// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for assetpack.
//
// Configuration is read from a single file named by the --config flag
// (via [LoadFile]) or the ASSETPACK_CONFIG environment variable (via
// [Load]). When neither is set, [Default] describes the firmware tree
// layout the tool was written for: main.js from the web UI sources
// packed into Form.h.
//
// Files ending in .json or .jsonc are accepted as well; comments and
// trailing commas are stripped before parsing.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${CONFIG_DIR} (the directory holding the config file), and
// ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- targets, compression, and layout settings
//   - [Target] -- one asset/destination pair and its markers
//   - [Default] -- the built-in configuration
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other assetpack packages.
package config
