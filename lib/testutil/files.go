// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"os"
	"path/filepath"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// WriteFile writes data to name inside directory and returns the full
// path. Intermediate directories are created.
//
//	destination := testutil.WriteFile(t, t.TempDir(), "Form.h", form)
func WriteFile(t TB, directory, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(directory, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// ReadFile returns the contents of path.
func ReadFile(t TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

// RequireFileContent fails the test unless the file at path holds
// exactly want.
func RequireFileContent(t TB, path string, want []byte) {
	t.Helper()
	got := ReadFile(t, path)
	if !bytes.Equal(got, want) {
		t.Fatalf("%s content mismatch:\n got: %q\nwant: %q", path, got, want)
	}
}
