// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolve picks a file path from an ordered list of providers.
//
// A command that needs a path (the asset to embed, the header to
// rewrite) builds a chain such as
//
//	resolve.Resolve(
//	    resolve.Argument(args, 0),
//	    resolve.Discovery{Root: "../RTK_Surveyor/AP-Config/src", Filename: "main.js"},
//	    resolve.Prompt{Label: "source file", Input: stdin, Output: stderr},
//	    resolve.Default("../RTK_Surveyor/AP-Config/src/main.js"),
//	)
//
// and the first provider that yields a value wins. Providers receive
// everything they read (arguments, directories, the terminal) as
// fields, so resolution has no hidden process-wide inputs.
package resolve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnresolved is returned by Resolve when no provider yields a value.
var ErrUnresolved = errors.New("no value supplied")

// Provider is one source of a value.
type Provider interface {
	// Name identifies the provider in logs ("argument", "discovery",
	// "prompt", "default").
	Name() string

	// Lookup returns the value and true, or false when the provider
	// has nothing to offer. An error aborts resolution.
	Lookup() (string, bool, error)
}

// Resolution is the value Resolve chose and where it came from.
type Resolution struct {
	Value    string
	Provider string
}

// Resolve queries providers in order and returns the first value.
// Nil providers are skipped.
func Resolve(providers ...Provider) (Resolution, error) {
	for _, provider := range providers {
		if provider == nil {
			continue
		}
		value, ok, err := provider.Lookup()
		if err != nil {
			return Resolution{}, fmt.Errorf("%s: %w", provider.Name(), err)
		}
		if ok {
			return Resolution{Value: value, Provider: provider.Name()}, nil
		}
	}
	return Resolution{}, ErrUnresolved
}

type argument struct {
	args  []string
	index int
}

// Argument yields args[index] when present and non-empty.
func Argument(args []string, index int) Provider {
	return argument{args: args, index: index}
}

func (a argument) Name() string { return "argument" }

func (a argument) Lookup() (string, bool, error) {
	if a.index < 0 || a.index >= len(a.args) || a.args[a.index] == "" {
		return "", false, nil
	}
	return a.args[a.index], true, nil
}

type fixed string

// Default yields value unless it is empty.
func Default(value string) Provider {
	return fixed(value)
}

func (f fixed) Name() string { return "default" }

func (f fixed) Lookup() (string, bool, error) {
	return string(f), f != "", nil
}

// Discovery finds a file by name under Root.
type Discovery struct {
	// Root is the directory to search. A missing root yields nothing.
	Root string

	// Filename is the exact base name to look for.
	Filename string

	// Recursive extends the search to subdirectories. Without it only
	// Root itself is examined.
	Recursive bool
}

func (d Discovery) Name() string { return "discovery" }

// Lookup walks Root in lexical order and returns the first regular
// file named Filename.
func (d Discovery) Lookup() (string, bool, error) {
	if d.Root == "" || d.Filename == "" {
		return "", false, nil
	}

	var found string
	err := filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == d.Root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if entry.IsDir() {
			if path != d.Root && !d.Recursive {
				return fs.SkipDir
			}
			return nil
		}
		if entry.Name() == d.Filename && entry.Type().IsRegular() {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return found, found != "", nil
}

// Prompt asks the user for a value on a terminal.
type Prompt struct {
	// Label names what is being asked for ("source file").
	Label string

	// Suggestion is shown as the value used when the answer is empty.
	// The prompt itself does not return it; the chain's Default
	// provider does.
	Suggestion string

	// Input is read for one line. Nil disables the prompt, which is
	// how callers express "not interactive". Prompts that share one
	// input must share one *bufio.Reader too; any other reader is
	// wrapped per call and may lose read-ahead.
	Input io.Reader

	// Output receives the question. Nil discards it.
	Output io.Writer
}

func (p Prompt) Name() string { return "prompt" }

// Lookup writes the question and reads one line. An empty line or end
// of input yields nothing.
func (p Prompt) Lookup() (string, bool, error) {
	if p.Input == nil {
		return "", false, nil
	}
	output := p.Output
	if output == nil {
		output = io.Discard
	}

	if p.Suggestion != "" {
		fmt.Fprintf(output, "Enter the %s (default: %s): ", p.Label, p.Suggestion)
	} else {
		fmt.Fprintf(output, "Enter the %s: ", p.Label)
	}

	reader, ok := p.Input.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(p.Input)
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("reading %s: %w", p.Label, err)
	}
	value := strings.TrimSpace(line)
	return value, value != "", nil
}

// Terminal returns f when it is an interactive terminal, otherwise nil.
// It is the usual way to fill Prompt.Input.
func Terminal(f *os.File, isTerminal func(fd int) bool) io.Reader {
	if f == nil || !isTerminal(int(f.Fd())) {
		return nil
	}
	return f
}
