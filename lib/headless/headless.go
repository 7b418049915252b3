// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package headless

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/bureau-foundation/headless/lib/drm"
	"github.com/bureau-foundation/headless/lib/egl"
	"github.com/bureau-foundation/headless/lib/egl/native"
)

// Options configures a Runtime.
type Options struct {
	// Open loads the EGL client library. It is called at most once, by
	// the first CheckSupport. Defaults to loading
	// [native.DefaultLibrary].
	Open func() (egl.Platform, error)

	// Resolver locates sysfs and /dev/dri. The zero value means
	// [drm.DefaultResolver].
	Resolver drm.Resolver

	// Logger receives diagnostics. When nil, the runtime logs through
	// the package logger set by [SetLogger].
	Logger *slog.Logger
}

// Runtime brings up headless displays against one EGL client library.
// The extension probe runs once per Runtime; everything else is
// recomputed on every call. A Runtime is safe for concurrent use, but
// the displays it returns are not shared state: each belongs to the
// caller that created it.
type Runtime struct {
	open     func() (egl.Platform, error)
	resolver drm.Resolver
	logger   *slog.Logger

	gate gate
}

// New returns a Runtime. Nothing is loaded until the first call that
// needs the EGL library.
func New(options Options) *Runtime {
	open := options.Open
	if open == nil {
		open = NativeOpener(native.DefaultLibrary)
	}
	resolver := options.Resolver
	if resolver == (drm.Resolver{}) {
		resolver = drm.DefaultResolver
	}
	return &Runtime{
		open:     open,
		resolver: resolver,
		logger:   options.Logger,
	}
}

// NativeOpener returns an Options.Open function that loads the named
// EGL client library through package native.
func NativeOpener(library string) func() (egl.Platform, error) {
	return func() (egl.Platform, error) {
		platform, err := native.Open(library)
		if err != nil {
			return nil, err
		}
		return platform, nil
	}
}

func (r *Runtime) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

var loggerPointer atomic.Pointer[slog.Logger]

// SetLogger sets the logger used by the package-level functions and by
// every Runtime created without Options.Logger. Passing nil restores
// slog.Default(). Safe for concurrent use.
func SetLogger(logger *slog.Logger) {
	loggerPointer.Store(logger)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	if logger := loggerPointer.Load(); logger != nil {
		return logger
	}
	return slog.Default()
}

var (
	defaultOnce    sync.Once
	defaultRuntime *Runtime
)

// Default returns the process-wide Runtime used by the package-level
// functions. It loads [native.DefaultLibrary] on first use.
func Default() *Runtime {
	defaultOnce.Do(func() {
		defaultRuntime = New(Options{})
	})
	return defaultRuntime
}

// CheckSupport reports whether headless displays can be created in
// this process. See [Runtime.CheckSupport].
func CheckSupport() bool {
	return Default().CheckSupport()
}

// CreateDisplay creates a headless display on the default runtime.
// See [Runtime.CreateDisplay].
func CreateDisplay(usage NodeUsage) egl.Display {
	return Default().CreateDisplay(usage)
}

// EnumerateDevices reports probed devices on the default runtime. See
// [Runtime.EnumerateDevices].
func EnumerateDevices(callback func(DeviceInfo), option EnumerateOption) bool {
	return Default().EnumerateDevices(callback, option)
}

// DeviceInfoFor describes the device behind an initialized display on
// the default runtime. See [Runtime.DeviceInfoFor].
func DeviceInfoFor(display egl.Display) (DeviceInfo, bool) {
	return Default().DeviceInfoFor(display)
}
