// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/assetpack/cmd/assetpack/cli"
	"github.com/bureau-foundation/assetpack/cmd/assetpack/commands"
)

func testEnvironment() (commands.Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return commands.Environment{
		Stdout:     &stdout,
		Stderr:     &stderr,
		IsTerminal: func(int) bool { return false },
	}, &stdout, &stderr
}

func TestRunVersionFlag(t *testing.T) {
	env, stdout, _ := testEnvironment()
	if err := run([]string{"--version"}, env); err != nil {
		t.Fatalf("run --version: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "assetpack ") {
		t.Errorf("stdout = %q, want prefix %q", stdout.String(), "assetpack ")
	}
}

func TestRunUnknownCommand(t *testing.T) {
	env, _, _ := testEnvironment()
	err := run([]string{"embedd"}, env)
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "embed"`) {
		t.Errorf("error = %q, want suggestion for embed", err)
	}
}

// TestCommandTreeDocumented walks the production command tree and
// checks every runnable command carries a summary for help output.
func TestCommandTreeDocumented(t *testing.T) {
	env, _, _ := testEnvironment()
	walkCommands(commands.Root(env), nil, func(command *cli.Command, path []string) {
		if command.Run == nil {
			return
		}
		if command.Summary == "" {
			t.Errorf("%s: runnable command missing Summary", strings.Join(path, " "))
		}
	})
}

// walkCommands recursively visits every command in the tree,
// calling visit for each node with the accumulated command path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}
