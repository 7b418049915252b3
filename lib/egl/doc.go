// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package egl defines the small slice of the EGL vocabulary that
// headless display bring-up needs: opaque handle types, the enum values
// of the device and platform extensions, error codes, and the
// whitespace-free token matching used to test extension strings.
//
// The package does not talk to a driver itself. [Platform] is the
// boundary to the client library (eglQueryString, eglGetProcAddress,
// eglGetError), and [DeviceExtensions] is the set of extension entry
// points bound after they have been resolved by name. The production
// implementation lives in egl/native; tests substitute fakes.
package egl
