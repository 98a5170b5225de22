// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/assetpack/cmd/assetpack/cli"
	"github.com/bureau-foundation/assetpack/lib/codec"
	"github.com/bureau-foundation/assetpack/lib/config"
	"github.com/bureau-foundation/assetpack/lib/embed"
	"github.com/bureau-foundation/assetpack/lib/testutil"
)

const testDestination = "#include <stdint.h>\n// keep\nSTART{\r\n  0x00\r\n}END\n// tail\n"

const testConfig = `default_target: web
compression:
  format: none
targets:
  web:
    source: ${CONFIG_DIR}/src/main.js
    destination: ${CONFIG_DIR}/Form.h
    header_marker: "START{"
    footer_marker: "}END"
  found:
    source: ${CONFIG_DIR}/missing/main.js
    destination: ${CONFIG_DIR}/Form.h
    header_marker: "START{"
    footer_marker: "}END"
    discovery:
      source_root: ${CONFIG_DIR}/src
`

type fixture struct {
	directory   string
	config      string
	source      string
	destination string
	stdout      *bytes.Buffer
	stderr      *bytes.Buffer
	env         Environment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	directory := t.TempDir()
	if err := os.Mkdir(filepath.Join(directory, "src"), 0o755); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	return &fixture{
		directory:   directory,
		config:      testutil.WriteFile(t, directory, "assetpack.yaml", []byte(testConfig)),
		source:      testutil.WriteFile(t, filepath.Join(directory, "src"), "main.js", []byte("AB")),
		destination: testutil.WriteFile(t, directory, "Form.h", []byte(testDestination)),
		stdout:      &stdout,
		stderr:      &stderr,
		env: Environment{
			Stdout:     &stdout,
			Stderr:     &stderr,
			IsTerminal: func(int) bool { return false },
		},
	}
}

func (f *fixture) run(args ...string) error {
	return Root(f.env).Execute(args)
}

const embeddedAB = "#include <stdint.h>\n// keep\nSTART{\r\n  0x41, 0x42\r\n}END\n// tail\n"

func requireCategory(t *testing.T, err error, want cli.ErrorCategory) {
	t.Helper()
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error %v is not a ToolError", err)
	}
	if toolErr.Category != want {
		t.Errorf("category = %q, want %q (error: %v)", toolErr.Category, want, err)
	}
}

func TestEmbedExplicitArguments(t *testing.T) {
	f := newFixture(t)
	other := testutil.WriteFile(t, f.directory, "other.js", []byte("AB"))

	if err := f.run("embed", "--config", f.config, "--no-prompt", other, f.destination); err != nil {
		t.Fatalf("embed: %v", err)
	}
	testutil.RequireFileContent(t, f.destination, []byte(embeddedAB))

	if !strings.Contains(f.stdout.String(), "embedded other.js into") {
		t.Errorf("stdout = %q", f.stdout.String())
	}
}

func TestEmbedConfiguredDefaults(t *testing.T) {
	f := newFixture(t)

	if err := f.run("embed", "--config", f.config, "--no-prompt"); err != nil {
		t.Fatalf("embed: %v", err)
	}
	testutil.RequireFileContent(t, f.destination, []byte(embeddedAB))
}

func TestEmbedConfigFromEnvironment(t *testing.T) {
	f := newFixture(t)
	t.Setenv(config.EnvironmentVariable, f.config)

	if err := f.run("embed", "--no-prompt"); err != nil {
		t.Fatalf("embed: %v", err)
	}
	testutil.RequireFileContent(t, f.destination, []byte(embeddedAB))
}

func TestEmbedDiscoversSource(t *testing.T) {
	f := newFixture(t)

	if err := f.run("embed", "--config", f.config, "--target", "found", "--no-prompt", "--verbose"); err != nil {
		t.Fatalf("embed: %v", err)
	}
	testutil.RequireFileContent(t, f.destination, []byte(embeddedAB))

	if !strings.Contains(f.stderr.String(), "discovery") {
		t.Errorf("expected the discovery provider in the debug log, got %q", f.stderr.String())
	}
}

func TestEmbedPromptsShareStdin(t *testing.T) {
	f := newFixture(t)
	source := testutil.WriteFile(t, f.directory, "typed.js", []byte("AB"))
	destination := testutil.WriteFile(t, f.directory, "typed.h", []byte(testDestination))

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { reader.Close() })
	// Both answers arrive before the first prompt reads.
	if _, err := writer.WriteString(source + "\n" + destination + "\n"); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	f.env.Stdin = reader
	f.env.IsTerminal = func(int) bool { return true }

	if err := f.run("embed", "--config", f.config); err != nil {
		t.Fatalf("embed: %v", err)
	}
	testutil.RequireFileContent(t, destination, []byte(embeddedAB))
	testutil.RequireFileContent(t, f.destination, []byte(testDestination))

	if !strings.Contains(f.stderr.String(), "Enter the destination filename") {
		t.Errorf("destination prompt not shown: %q", f.stderr.String())
	}
}

func TestEmbedSecondRunUnchanged(t *testing.T) {
	f := newFixture(t)

	if err := f.run("embed", "--config", f.config, "--no-prompt"); err != nil {
		t.Fatalf("first embed: %v", err)
	}
	f.stdout.Reset()
	if err := f.run("embed", "--config", f.config, "--no-prompt"); err != nil {
		t.Fatalf("second embed: %v", err)
	}
	if !strings.HasPrefix(f.stdout.String(), "unchanged") {
		t.Errorf("stdout = %q, want prefix %q", f.stdout.String(), "unchanged")
	}
	testutil.RequireFileContent(t, f.destination, []byte(embeddedAB))
}

func TestEmbedGzipOverride(t *testing.T) {
	f := newFixture(t)

	if err := f.run("embed", "--config", f.config, "--no-prompt", "--compression", "gzip"); err != nil {
		t.Fatalf("embed: %v", err)
	}
	output := string(testutil.ReadFile(t, f.destination))
	if !strings.Contains(output, "START{\r\n  0x1F, 0x8B, 0x08,") {
		t.Errorf("destination does not hold a gzip array: %q", output)
	}
	if !strings.HasSuffix(output, "}END\n// tail\n") {
		t.Errorf("text after the footer was not preserved: %q", output)
	}
}

func TestEmbedMissingMarkerLeavesFileUntouched(t *testing.T) {
	f := newFixture(t)
	original := "no markers in here\n"
	testutil.WriteFile(t, f.directory, "Form.h", []byte(original))

	err := f.run("embed", "--config", f.config, "--no-prompt")
	if err == nil {
		t.Fatal("expected an error for a destination without markers")
	}
	requireCategory(t, err, cli.CategoryNotFound)
	testutil.RequireFileContent(t, f.destination, []byte(original))
}

func TestEmbedMissingSource(t *testing.T) {
	f := newFixture(t)

	err := f.run("embed", "--config", f.config, "--no-prompt",
		filepath.Join(f.directory, "absent.js"), f.destination)
	if err == nil {
		t.Fatal("expected an error for a missing source")
	}
	requireCategory(t, err, cli.CategoryNotFound)
	testutil.RequireFileContent(t, f.destination, []byte(testDestination))
}

func TestEmbedValidation(t *testing.T) {
	tests := []struct {
		name string
		args func(f *fixture) []string
	}{
		{
			name: "too many arguments",
			args: func(f *fixture) []string {
				return []string{"embed", "--config", f.config, "a", "b", "c"}
			},
		},
		{
			name: "unknown target",
			args: func(f *fixture) []string {
				return []string{"embed", "--config", f.config, "--target", "nope"}
			},
		},
		{
			name: "unknown compression",
			args: func(f *fixture) []string {
				return []string{"embed", "--config", f.config, "--compression", "brotli"}
			},
		},
		{
			name: "missing config file",
			args: func(f *fixture) []string {
				return []string{"embed", "--config", filepath.Join(f.directory, "absent.yaml")}
			},
		},
		{
			name: "unknown flag",
			args: func(f *fixture) []string {
				return []string{"embed", "--compresion", "gzip"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.run(tt.args(f)...)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			requireCategory(t, err, cli.CategoryValidation)
			testutil.RequireFileContent(t, f.destination, []byte(testDestination))
		})
	}
}

func TestVerify(t *testing.T) {
	f := newFixture(t)

	if err := f.run("embed", "--config", f.config, "--no-prompt"); err != nil {
		t.Fatalf("embed: %v", err)
	}

	if err := f.run("verify", "--config", f.config, "--no-prompt"); err != nil {
		t.Fatalf("verify after embed: %v", err)
	}
	if !strings.HasPrefix(f.stdout.String(), "ok") {
		t.Errorf("stdout = %q, want prefix %q", f.stdout.String(), "ok")
	}

	testutil.WriteFile(t, filepath.Join(f.directory, "src"), "main.js", []byte("ABC"))
	f.stdout.Reset()

	err := f.run("verify", "--config", f.config, "--no-prompt")
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("verify of a stale array = %v, want exit code 1", err)
	}
	if !strings.HasPrefix(f.stdout.String(), "mismatch") {
		t.Errorf("stdout = %q, want prefix %q", f.stdout.String(), "mismatch")
	}
}

func TestHex(t *testing.T) {
	f := newFixture(t)

	if err := f.run("hex", "--config", f.config, "--no-prompt", f.source); err != nil {
		t.Fatalf("hex: %v", err)
	}
	testutil.RequireFileContent(t, f.source+".hex", []byte("  0x41, 0x42\r\n"))

	output := filepath.Join(f.directory, "logo.gz.txt")
	if err := f.run("hex", "--config", f.config, "--compression", "gzip", "--output", output, f.source); err != nil {
		t.Fatalf("hex --output: %v", err)
	}
	if !strings.HasPrefix(string(testutil.ReadFile(t, output)), "  0x1F, 0x8B, 0x08,") {
		t.Errorf("%s does not hold a gzip array", output)
	}
	if !strings.Contains(f.stdout.String(), "logo.gz.txt") {
		t.Errorf("stdout = %q, want the output path", f.stdout.String())
	}
}

func TestHexRequiresSource(t *testing.T) {
	f := newFixture(t)

	err := f.run("hex", "--config", f.config, "--no-prompt")
	if err == nil {
		t.Fatal("expected an error without a source")
	}
	requireCategory(t, err, cli.CategoryValidation)
}

func TestEmbedManifest(t *testing.T) {
	f := newFixture(t)
	manifestPath := filepath.Join(f.directory, "main_js.manifest")

	if err := f.run("embed", "--config", f.config, "--no-prompt", "--manifest", manifestPath); err != nil {
		t.Fatalf("embed: %v", err)
	}

	manifest, err := embed.ReadManifest(manifestPath)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if manifest.Source != f.source || manifest.Destination != f.destination {
		t.Errorf("manifest paths = %q, %q", manifest.Source, manifest.Destination)
	}
	if manifest.Format != codec.FormatNone || manifest.PayloadSize != 2 {
		t.Errorf("manifest = %+v", manifest)
	}

	f.stdout.Reset()
	if err := f.run("manifest", manifestPath); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if !strings.Contains(f.stdout.String(), `"asset_digest"`) {
		t.Errorf("diagnostic output = %q", f.stdout.String())
	}

	if err := f.run("manifest", "--check", manifestPath); err != nil {
		t.Fatalf("manifest --check on a current asset: %v", err)
	}

	testutil.WriteFile(t, filepath.Join(f.directory, "src"), "main.js", []byte("ABC"))
	err = f.run("manifest", "--check", manifestPath)
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("manifest --check on a changed asset = %v, want exit code 1", err)
	}

	err = f.run("manifest", filepath.Join(f.directory, "absent.manifest"))
	requireCategory(t, err, cli.CategoryNotFound)
}

func TestVersion(t *testing.T) {
	f := newFixture(t)

	if err := f.run("version"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(f.stdout.String(), "assetpack ") {
		t.Errorf("stdout = %q", f.stdout.String())
	}
}
