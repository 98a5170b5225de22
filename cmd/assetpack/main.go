// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/assetpack/cmd/assetpack/commands"
)

func main() {
	if err := run(os.Args[1:], commands.DefaultEnvironment()); err != nil {
		// verify reports a mismatch itself and returns an ExitError;
		// don't print a redundant "error:" line for it.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, env commands.Environment) error {
	if len(args) == 1 && args[0] == "--version" {
		args = []string{"version"}
	}
	return commands.Root(env).Execute(args)
}
