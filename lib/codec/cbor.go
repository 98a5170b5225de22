// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// The record encoding is separate from the asset compression above: it
// serializes small structured records (embed manifests) rather than
// asset bytes.

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. The same
// record always produces identical bytes, so manifests can be compared
// with cmp or checked into a build cache.
var encMode cbor.EncMode

// decMode ignores unknown fields so older binaries can read manifests
// written by newer ones.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Manifests only use string keys. Decoding into any must
		// produce map[string]any, not map[any]any.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalRecord encodes v to CBOR using Core Deterministic Encoding.
func MarshalRecord(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// UnmarshalRecord decodes CBOR data into v.
func UnmarshalRecord(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// DiagnoseRecord returns the CBOR diagnostic notation (RFC 8949 §8) for
// the entire contents of data.
func DiagnoseRecord(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
