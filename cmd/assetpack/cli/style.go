// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Styles renders the one-line summaries commands print to stdout. The
// renderer is bound to the destination writer, so output to a pipe or
// a buffer carries no escape sequences.
type Styles struct {
	success lipgloss.Style
	failure lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
}

// NewStyles returns styles for output written to w.
func NewStyles(w io.Writer) *Styles {
	renderer := lipgloss.NewRenderer(w)
	return &Styles{
		success: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		failure: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		label:   renderer.NewStyle().Bold(true),
		muted:   renderer.NewStyle().Faint(true),
	}
}

// Success renders a positive outcome ("embedded", "match").
func (s *Styles) Success(format string, args ...any) string {
	return s.success.Render(fmt.Sprintf(format, args...))
}

// Failure renders a negative outcome ("mismatch").
func (s *Styles) Failure(format string, args ...any) string {
	return s.failure.Render(fmt.Sprintf(format, args...))
}

// Label renders a field name or path.
func (s *Styles) Label(text string) string {
	return s.label.Render(text)
}

// Muted renders secondary detail such as digests.
func (s *Styles) Muted(format string, args ...any) string {
	return s.muted.Render(fmt.Sprintf(format, args...))
}

// Size formats a byte count for humans ("12 kB").
func Size(bytes int) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}
