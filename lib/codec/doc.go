// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's CBOR encoding configuration.
//
// The CLI writes device reports as JSON by default and as CBOR on
// request, for consumers that store or forward reports in binary form.
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): the
// same report always produces identical bytes, so reports can be
// compared or hashed directly.
//
//	data, err := codec.Marshal(report)
//	err = codec.Unmarshal(data, &report)
//
// # Struct Tag Rules
//
// Report types carry only `json` tags. fxamacker/cbor v2 reads `json`
// tags as a fallback when `cbor` tags are absent, so a single tag
// controls field naming and omitempty for both formats. Never use both
// tags on the same field.
package codec
