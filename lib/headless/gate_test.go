// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package headless

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/headless/lib/egl"
)

func TestCheckSupport(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*fakePlatform)
		want   bool
	}{
		{
			name:   "all extensions and entry points",
			modify: func(*fakePlatform) {},
			want:   true,
		},
		{
			name: "missing platform_device",
			modify: func(f *fakePlatform) {
				f.clientExtensions = "EGL_EXT_platform_base EGL_EXT_device_base EGL_EXT_device_query EGL_EXT_device_enumeration"
			},
			want: false,
		},
		{
			name: "required name only as a prefix of a longer token",
			modify: func(f *fakePlatform) {
				f.clientExtensions = strings.Replace(allClientExtensions, "EGL_EXT_device_base", "EGL_EXT_device_base_v2", 1)
			},
			want: false,
		},
		{
			name:   "no client extension string",
			modify: func(f *fakePlatform) { f.clientExtensionsFail = true },
			want:   false,
		},
		{
			name:   "unresolved entry point",
			modify: func(f *fakePlatform) { f.unresolved = map[string]bool{egl.ProcGetPlatformDisplay: true} },
			want:   false,
		},
		{
			name:   "optional display attribute entry point missing",
			modify: func(f *fakePlatform) { f.unresolved = map[string]bool{egl.ProcQueryDisplayAttrib: true} },
			want:   true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			platform := newFakePlatform()
			test.modify(platform)
			runtime, _ := newTestRuntime(platform, Options{})
			if got := runtime.CheckSupport(); got != test.want {
				t.Errorf("CheckSupport() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestCheckSupportLogsMissingExtension(t *testing.T) {
	platform := newFakePlatform()
	platform.clientExtensions = "EGL_EXT_platform_base EGL_EXT_device_base"

	var buffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	runtime, _ := newTestRuntime(platform, Options{Logger: logger})

	if runtime.CheckSupport() {
		t.Fatal("CheckSupport() = true with missing extensions")
	}
	if !strings.Contains(buffer.String(), "extension=EGL_EXT_device_query") {
		t.Errorf("log does not name the first missing extension:\n%s", buffer.String())
	}
}

func TestCheckSupportLoadFailureIsSticky(t *testing.T) {
	var loads int
	runtime := New(Options{
		Open: func() (egl.Platform, error) {
			loads++
			return nil, errLoad
		},
		Logger: slog.New(slog.DiscardHandler),
	})
	for range 3 {
		if runtime.CheckSupport() {
			t.Fatal("CheckSupport() = true after load failure")
		}
	}
	if loads != 1 {
		t.Errorf("library loaded %d times, want 1", loads)
	}
}

func TestCheckSupportProbesOnce(t *testing.T) {
	platform := newFakePlatform()
	runtime, loads := newTestRuntime(platform, Options{})

	const callers = 32
	results := make([]bool, callers)
	var group sync.WaitGroup
	for index := range callers {
		group.Add(1)
		go func() {
			defer group.Done()
			results[index] = runtime.CheckSupport()
		}()
	}
	group.Wait()

	if got := loads.Load(); got != 1 {
		t.Errorf("probe ran %d times, want 1", got)
	}
	for index, result := range results {
		if !result {
			t.Errorf("caller %d observed CheckSupport() = false", index)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	err := &Error{Kind: ProbeFailure, Op: "querying device extensions", Code: egl.BadDeviceEXT}
	if !errors.Is(err, ErrProbe) {
		t.Error("errors.Is(probe error, ErrProbe) = false")
	}
	if errors.Is(err, ErrAcquisition) {
		t.Error("errors.Is(probe error, ErrAcquisition) = true")
	}
	if got, want := err.Error(), "querying device extensions (EGL_BAD_DEVICE_EXT)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("permission denied")
	wrapped := &Error{Kind: AcquisitionFailure, Op: "opening render node", Err: cause}
	if !errors.Is(wrapped, cause) {
		t.Error("Error does not unwrap to its cause")
	}
	if got, want := wrapped.Error(), "opening render node: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	joined := errors.Join(&Error{Kind: DisplayCreationFailure, Op: "a"}, &Error{Kind: DisplayCreationFailure, Op: "b"})
	if !errors.Is(joined, ErrDisplayCreation) {
		t.Error("joined display errors do not match ErrDisplayCreation")
	}
}
