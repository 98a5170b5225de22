// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the assetpack
// binary.
//
// A [Command] is a node in a tree: it either dispatches to
// Subcommands by the first positional argument or parses its flags and
// calls Run. Flags are declared as tagged struct fields and bound into a
// [pflag.FlagSet] by [FlagsFromParams]; unknown commands and flags get
// edit-distance suggestions.
//
// Errors returned from Run are categorized with [Validation],
// [NotFound], and [Internal]. An [ExitError] requests a specific exit
// code without an extra message, for commands that report their own
// outcome (verify mismatches).
//
// [NewLogger] returns the slog logger every command scopes with
// With("command", ...). [Styles] renders human-facing summary lines.
package cli
