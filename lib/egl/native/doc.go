// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package native loads the system EGL client library at runtime and
// implements [egl.Platform] on top of it without cgo.
//
// Calls go through github.com/go-webgpu/goffi, which dlopens the
// library and dispatches through hand-written ABI trampolines. goffi
// only works in binaries built with CGO_ENABLED=0; in cgo builds and on
// platforms other than Linux, [Open] returns [ErrUnavailable] and the
// rest of the stack treats headless displays as unsupported.
//
// Every string handed back by the driver is copied into Go memory
// before the call returns, so callers never hold pointers into
// driver-owned storage.
package native

import "errors"

// DefaultLibrary is the soname of the GLVND / Mesa EGL client library.
const DefaultLibrary = "libEGL.so.1"

// ErrUnavailable is returned by Open when this build cannot call into
// a native EGL library.
var ErrUnavailable = errors.New("native EGL is not available in this build (requires linux and CGO_ENABLED=0)")
