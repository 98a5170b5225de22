// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the assetpack command tree.
package commands

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/assetpack/cmd/assetpack/cli"
	"github.com/bureau-foundation/assetpack/lib/resolve"
)

// Environment is everything a command reads from or writes to outside
// its arguments. Tests substitute buffers and a fake terminal check.
type Environment struct {
	// Stdin answers path prompts. Prompts are only shown when Stdin is
	// a terminal according to IsTerminal.
	Stdin *os.File

	// Stdout receives the human-facing result of each command.
	Stdout io.Writer

	// Stderr receives prompts, help, and log records.
	Stderr io.Writer

	// IsTerminal reports whether a file descriptor is a terminal.
	IsTerminal func(fd int) bool

	// promptInput buffers Stdin once for every prompt of a run, so a
	// line typed ahead for the destination is not lost to the source
	// prompt's read-ahead. Nil when Stdin is not a terminal.
	promptInput *bufio.Reader
}

func (env Environment) withPromptInput() Environment {
	if env.promptInput != nil || env.IsTerminal == nil {
		return env
	}
	if input := resolve.Terminal(env.Stdin, env.IsTerminal); input != nil {
		env.promptInput = bufio.NewReader(input)
	}
	return env
}

// DefaultEnvironment binds the process's standard streams.
func DefaultEnvironment() Environment {
	return Environment{
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		IsTerminal: term.IsTerminal,
	}
}

// Root returns the top-level "assetpack" command.
func Root(env Environment) *cli.Command {
	env = env.withPromptInput()
	return &cli.Command{
		Name:   "assetpack",
		Output: env.Stderr,
		Description: `Pack web UI assets into firmware source files.

Assets are compressed (gzip by default) and written as C byte-array
literals between two marker lines of a header such as Form.h. Everything
outside the markers is left byte for byte as it was.`,
		Subcommands: []*cli.Command{
			embedCommand(env),
			hexCommand(env),
			verifyCommand(env),
			manifestCommand(env),
			versionCommand(env),
		},
	}
}
