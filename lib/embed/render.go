// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package embed

import (
	"fmt"
)

// Layout controls how a payload is rendered as array rows.
type Layout struct {
	// RowWidth is the maximum number of byte literals per row.
	RowWidth int

	// Indent is written at the start of every row.
	Indent string

	// LineEnding terminates every row and separates the header
	// marker from the first row.
	LineEnding string
}

// DefaultLayout returns the layout expected by the firmware build: 16
// literals per row, a two-space indent, and CRLF line endings.
func DefaultLayout() Layout {
	return Layout{
		RowWidth:   16,
		Indent:     "  ",
		LineEnding: "\r\n",
	}
}

// resolved returns the layout with defaults applied. The zero Layout
// means DefaultLayout; otherwise only RowWidth and LineEnding are
// filled in, so an explicitly empty Indent is honored.
func (layout Layout) resolved() Layout {
	if layout == (Layout{}) {
		return DefaultLayout()
	}
	defaults := DefaultLayout()
	if layout.RowWidth <= 0 {
		layout.RowWidth = defaults.RowWidth
	}
	if layout.LineEnding == "" {
		layout.LineEnding = defaults.LineEnding
	}
	return layout
}

const hexDigits = "0123456789ABCDEF"

// Render formats payload as rows of comma-separated 0xHH literals.
//
// Every row starts with the indent. Literals within a row are separated
// by ", ". A full row ends with "," and the line ending; the last row
// ends with the final literal (no comma) and the line ending. An empty
// payload renders as nothing.
//
//	  0x1F, 0x8B, ..., 0x03,\r\n
//	  0xC9, 0x4B\r\n
func Render(payload []byte, layout Layout) []byte {
	layout = layout.resolved()
	if len(payload) == 0 {
		return nil
	}

	rows := (len(payload) + layout.RowWidth - 1) / layout.RowWidth
	// "0xHH, " is six bytes per literal.
	size := len(payload)*6 + rows*(len(layout.Indent)+len(layout.LineEnding))
	output := make([]byte, 0, size)

	last := len(payload) - 1
	for index, value := range payload {
		column := index % layout.RowWidth
		if column == 0 {
			output = append(output, layout.Indent...)
		}
		output = append(output, '0', 'x', hexDigits[value>>4], hexDigits[value&0x0F])

		switch {
		case index == last:
			output = append(output, layout.LineEnding...)
		case column == layout.RowWidth-1:
			output = append(output, ',')
			output = append(output, layout.LineEnding...)
		default:
			output = append(output, ',', ' ')
		}
	}
	return output
}

// Block returns the full replacement for the region between the
// markers: the line ending that separates the header marker from the
// array, followed by the rendered rows.
func Block(payload []byte, layout Layout) []byte {
	layout = layout.resolved()
	rows := Render(payload, layout)
	block := make([]byte, 0, len(layout.LineEnding)+len(rows))
	block = append(block, layout.LineEnding...)
	return append(block, rows...)
}

// ParseArray reads back the bytes of a rendered array region. It
// accepts 0x and 0X prefixes with one or two hex digits of either case,
// separated by any mix of commas, spaces, tabs, and line endings. A
// trailing comma is allowed. Any other character is an error.
func ParseArray(region []byte) ([]byte, error) {
	var payload []byte

	for position := 0; position < len(region); {
		switch region[position] {
		case ' ', '\t', '\r', '\n', ',':
			position++
			continue
		}

		if position+1 >= len(region) || region[position] != '0' ||
			(region[position+1] != 'x' && region[position+1] != 'X') {
			return nil, fmt.Errorf("offset %d: expected 0x literal, found %q",
				position, excerpt(region, position))
		}
		start := position
		position += 2

		value, digits := 0, 0
		for position < len(region) && digits < 3 {
			nibble, ok := hexValue(region[position])
			if !ok {
				break
			}
			value = value<<4 | nibble
			digits++
			position++
		}
		if digits == 0 || digits > 2 {
			return nil, fmt.Errorf("offset %d: malformed byte literal %q",
				start, excerpt(region, start))
		}
		payload = append(payload, byte(value))
	}

	return payload, nil
}

func hexValue(character byte) (int, bool) {
	switch {
	case character >= '0' && character <= '9':
		return int(character - '0'), true
	case character >= 'a' && character <= 'f':
		return int(character-'a') + 10, true
	case character >= 'A' && character <= 'F':
		return int(character-'A') + 10, true
	}
	return 0, false
}

// excerpt returns up to eight bytes of region starting at position, for
// error messages.
func excerpt(region []byte, position int) string {
	end := position + 8
	if end > len(region) {
		end = len(region)
	}
	return string(region[position:end])
}
