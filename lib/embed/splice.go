// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package embed

import (
	"bytes"
	"errors"
	"fmt"
)

// Markers are the literal strings that bound the embedded region of a
// destination file.
type Markers struct {
	// Header ends the preserved prefix. The array starts right after it.
	Header string

	// Footer starts the preserved suffix.
	Footer string
}

// MainJSMarkers are the markers around the web UI script in the
// firmware's Form.h.
var MainJSMarkers = Markers{
	Header: "static const uint8_t main_js[] PROGMEM = {",
	Footer: "}; ///main_js",
}

// Validate checks that both markers are set.
func (markers Markers) Validate() error {
	var errs []error
	if markers.Header == "" {
		errs = append(errs, fmt.Errorf("header marker is empty"))
	}
	if markers.Footer == "" {
		errs = append(errs, fmt.Errorf("footer marker is empty"))
	}
	return errors.Join(errs...)
}

// MarkerNotFoundError reports that a marker does not occur in the
// destination document. Nothing is written when this is returned.
type MarkerNotFoundError struct {
	// Role is "header" or "footer".
	Role string

	// Marker is the literal text that was searched for.
	Marker string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("%s marker %q not found", e.Role, e.Marker)
}

// MarkerOrderError reports that the first footer marker starts before
// the end of the first header marker, so there is no region between
// them to replace.
type MarkerOrderError struct {
	HeaderEnd   int
	FooterStart int
}

func (e *MarkerOrderError) Error() string {
	return fmt.Sprintf("footer marker at offset %d precedes the end of the header marker at offset %d",
		e.FooterStart, e.HeaderEnd)
}

// Locate returns the offset just past the first header marker and the
// offset of the first footer marker. Both searches run over the same
// document snapshot.
func Locate(document []byte, markers Markers) (headerEnd, footerStart int, err error) {
	if err := markers.Validate(); err != nil {
		return 0, 0, err
	}

	headerStart := bytes.Index(document, []byte(markers.Header))
	if headerStart < 0 {
		return 0, 0, &MarkerNotFoundError{Role: "header", Marker: markers.Header}
	}
	headerEnd = headerStart + len(markers.Header)

	footerStart = bytes.Index(document, []byte(markers.Footer))
	if footerStart < 0 {
		return 0, 0, &MarkerNotFoundError{Role: "footer", Marker: markers.Footer}
	}
	if footerStart < headerEnd {
		return 0, 0, &MarkerOrderError{HeaderEnd: headerEnd, FooterStart: footerStart}
	}

	return headerEnd, footerStart, nil
}

// Splice returns a new document made of the header region, block, and
// the footer region. The input document is not modified.
func Splice(document []byte, markers Markers, block []byte) ([]byte, error) {
	headerEnd, footerStart, err := Locate(document, markers)
	if err != nil {
		return nil, err
	}

	footer := document[footerStart:]
	output := make([]byte, 0, headerEnd+len(block)+len(footer))
	output = append(output, document[:headerEnd]...)
	output = append(output, block...)
	output = append(output, footer...)
	return output, nil
}

// Extract returns the bytes currently between the markers. The returned
// slice aliases document.
func Extract(document []byte, markers Markers) ([]byte, error) {
	headerEnd, footerStart, err := Locate(document, markers)
	if err != nil {
		return nil, err
	}
	return document[headerEnd:footerStart], nil
}
