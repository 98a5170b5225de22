// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package embed

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	sequence := func(n int) []byte {
		payload := make([]byte, n)
		for i := range payload {
			payload[i] = byte(i)
		}
		return payload
	}

	tests := []struct {
		name    string
		payload []byte
		want    string
	}{
		{"empty", nil, ""},
		{"single", []byte{0xAB}, "  0xAB\r\n"},
		{"abcde", []byte("abcde"), "  0x61, 0x62, 0x63, 0x64, 0x65\r\n"},
		{
			"full row",
			sequence(16),
			"  0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F\r\n",
		},
		{
			"wraps",
			sequence(17),
			"  0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,\r\n" +
				"  0x10\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Render(tt.payload, Layout{}))
			if got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

var literalPattern = regexp.MustCompile(`^0x[0-9A-F]{2}$`)

func TestRenderCounts(t *testing.T) {
	for _, n := range []int{1, 2, 15, 16, 17, 31, 32, 33, 255, 1000} {
		payload := make([]byte, n)
		for i := range payload {
			payload[i] = byte(i * 7)
		}

		rendered := string(Render(payload, DefaultLayout()))

		if commas := strings.Count(rendered, ","); commas != n-1 {
			t.Errorf("n=%d: %d commas, want %d", n, commas, n-1)
		}

		rows := strings.Split(strings.TrimSuffix(rendered, "\r\n"), "\r\n")
		if want := (n + 15) / 16; len(rows) != want {
			t.Errorf("n=%d: %d rows, want %d", n, len(rows), want)
		}

		literals := 0
		for _, row := range rows {
			if !strings.HasPrefix(row, "  ") {
				t.Errorf("n=%d: row %q lacks indent", n, row)
			}
			fields := strings.Fields(strings.ReplaceAll(row, ",", " "))
			if len(fields) > 16 {
				t.Errorf("n=%d: row has %d literals", n, len(fields))
			}
			for _, field := range fields {
				if !literalPattern.MatchString(field) {
					t.Errorf("n=%d: malformed literal %q", n, field)
				}
			}
			literals += len(fields)
		}
		if literals != n {
			t.Errorf("n=%d: %d literals", n, literals)
		}
	}
}

func TestRenderCustomLayout(t *testing.T) {
	layout := Layout{RowWidth: 2, Indent: "\t", LineEnding: "\n"}
	got := string(Render([]byte{1, 2, 3}, layout))
	want := "\t0x01, 0x02,\n\t0x03\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}

	// An explicit empty indent is kept; missing width and line ending
	// fall back to the defaults.
	got = string(Render([]byte{1, 2}, Layout{Indent: "", RowWidth: 1}))
	want = "0x01,\r\n0x02\r\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestBlock(t *testing.T) {
	if got := string(Block(nil, Layout{})); got != "\r\n" {
		t.Errorf("Block(nil) = %q, want CRLF", got)
	}
	if got := string(Block([]byte{0xFF}, Layout{})); got != "\r\n  0xFF\r\n" {
		t.Errorf("Block = %q", got)
	}
}

func TestParseArrayRoundtrip(t *testing.T) {
	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(255 - i)
	}

	parsed, err := ParseArray(Block(payload, Layout{}))
	if err != nil {
		t.Fatalf("ParseArray failed: %v", err)
	}
	if !bytes.Equal(parsed, payload) {
		t.Error("ParseArray(Render(p)) != p")
	}
}

func TestParseArrayLenient(t *testing.T) {
	// Lowercase single-digit literals with a trailing comma, as older
	// versions of the tooling wrote them.
	parsed, err := ParseArray([]byte("\r\n0x1f, 0x8b, 0x8,\r\n0X0,\t0xff,\r\n"))
	if err != nil {
		t.Fatalf("ParseArray failed: %v", err)
	}
	want := []byte{0x1F, 0x8B, 0x08, 0x00, 0xFF}
	if !bytes.Equal(parsed, want) {
		t.Errorf("ParseArray = % X, want % X", parsed, want)
	}

	empty, err := ParseArray([]byte("\r\n"))
	if err != nil {
		t.Fatalf("ParseArray(CRLF) failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ParseArray(CRLF) = % X, want empty", empty)
	}
}

func TestParseArrayRejects(t *testing.T) {
	for _, input := range []string{
		"0x",
		"0xZZ",
		"0x123",
		"12, 0x01",
		"0x01; 0x02",
		"/* comment */ 0x01",
	} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseArray([]byte(input)); err == nil {
				t.Errorf("ParseArray(%q) should fail", input)
			}
		})
	}
}
