// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux || cgo

package native

import "github.com/bureau-foundation/headless/lib/egl"

// Library is never constructed in this build; Open always fails.
type Library struct{}

// Open returns ErrUnavailable.
func Open(name string) (*Library, error) {
	return nil, ErrUnavailable
}

func (l *Library) Name() string { return "" }
func (l *Library) Close() error { return nil }
func (l *Library) ClientExtensions() (string, bool) { return "", false }
func (l *Library) QueryString(egl.Display, int32) (string, bool) { return "", false }
func (l *Library) ProcAddress(string) uintptr { return 0 }
func (l *Library) LastError() egl.ErrorCode { return egl.Success }
func (l *Library) Initialize(egl.Display) (int32, int32, bool) { return 0, 0, false }
func (l *Library) Terminate(egl.Display) bool { return false }

func (l *Library) BindDeviceExtensions(egl.DeviceProcs) egl.DeviceExtensions { return nil }
