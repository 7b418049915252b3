// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package headless

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bureau-foundation/headless/lib/egl"
)

// gate holds the one-time extension probe. Once ready is true, platform
// and extensions are set and never change; once the probe has failed,
// ready stays false for the life of the Runtime.
type gate struct {
	once  sync.Once
	ready atomic.Bool

	platform   egl.Platform
	extensions egl.DeviceExtensions
}

// CheckSupport reports whether the EGL client library supports device
// enumeration and device platform displays. The first call loads the
// library and probes it; every later or concurrent call returns the
// same answer without probing again.
func (r *Runtime) CheckSupport() bool {
	r.gate.once.Do(func() {
		platform, extensions, err := r.probeSupport()
		if err != nil {
			r.log().Debug("headless EGL displays are not supported", "error", err)
			return
		}
		r.gate.platform = platform
		r.gate.extensions = extensions
		r.gate.ready.Store(true)
	})
	return r.gate.ready.Load()
}

func (r *Runtime) probeSupport() (egl.Platform, egl.DeviceExtensions, error) {
	platform, err := r.open()
	if err != nil {
		return nil, nil, &Error{Kind: Unsupported, Op: "loading EGL client library", Err: err}
	}

	extensions, ok := platform.ClientExtensions()
	if !ok {
		return nil, nil, &Error{Kind: Unsupported, Op: "querying client extensions", Code: platform.LastError()}
	}
	if missing := egl.FirstMissingExtension(extensions, egl.RequiredClientExtensions); missing != "" {
		r.log().Debug("required EGL client extension is missing", "extension", missing)
		return nil, nil, &Error{Kind: Unsupported, Op: "checking client extensions",
			Err: fmt.Errorf("%s is not supported", missing)}
	}

	procs := egl.DeviceProcs{
		QueryDevices:       platform.ProcAddress(egl.ProcQueryDevices),
		QueryDeviceAttrib:  platform.ProcAddress(egl.ProcQueryDeviceAttrib),
		QueryDeviceString:  platform.ProcAddress(egl.ProcQueryDeviceString),
		GetPlatformDisplay: platform.ProcAddress(egl.ProcGetPlatformDisplay),
		QueryDisplayAttrib: platform.ProcAddress(egl.ProcQueryDisplayAttrib),
	}
	if !procs.Complete() {
		return nil, nil, &Error{Kind: Unsupported, Op: "resolving device extension entry points",
			Err: fmt.Errorf("%s could not be resolved", firstUnresolved(procs))}
	}
	return platform, platform.BindDeviceExtensions(procs), nil
}

func firstUnresolved(procs egl.DeviceProcs) string {
	switch {
	case procs.QueryDevices == 0:
		return egl.ProcQueryDevices
	case procs.QueryDeviceAttrib == 0:
		return egl.ProcQueryDeviceAttrib
	case procs.QueryDeviceString == 0:
		return egl.ProcQueryDeviceString
	case procs.GetPlatformDisplay == 0:
		return egl.ProcGetPlatformDisplay
	}
	return ""
}
