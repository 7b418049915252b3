// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package headless

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bureau-foundation/headless/lib/egl"
)

// allClientExtensions advertises every required client extension plus
// some unrelated ones.
var allClientExtensions = "EGL_EXT_client_extensions " + strings.Join(egl.RequiredClientExtensions, " ") + " EGL_KHR_platform_gbm"

// fakeDevice describes one device as the fake driver reports it.
type fakeDevice struct {
	extensions string

	// extensionsFail makes the device extension query return NULL.
	extensionsFail bool

	drmPath string

	cudaOrdinal egl.Attrib
	cudaFails   bool
}

// fakePlatform implements egl.Platform and egl.DeviceExtensions over a
// scripted device list. Display handles are allocated per successful
// eglGetPlatformDisplayEXT call.
type fakePlatform struct {
	clientExtensions     string
	clientExtensionsFail bool
	unresolved           map[string]bool

	devices      []fakeDevice
	countFails   bool
	devicesFail  bool
	errorCode    egl.ErrorCode
	rejectedNode map[string]bool

	mu             sync.Mutex
	queryCalls     int
	attempts       []string
	displayDevices map[egl.Display]egl.Device
}

func newFakePlatform(devices ...fakeDevice) *fakePlatform {
	return &fakePlatform{
		clientExtensions: allClientExtensions,
		devices:          devices,
		errorCode:        egl.BadAccess,
		rejectedNode:     map[string]bool{},
		displayDevices:   map[egl.Display]egl.Device{},
	}
}

func (f *fakePlatform) ClientExtensions() (string, bool) {
	if f.clientExtensionsFail {
		return "", false
	}
	return f.clientExtensions, true
}

func (f *fakePlatform) ProcAddress(name string) uintptr {
	if f.unresolved[name] {
		return 0
	}
	return 0x1000 + uintptr(len(name))
}

func (f *fakePlatform) LastError() egl.ErrorCode {
	return f.errorCode
}

func (f *fakePlatform) BindDeviceExtensions(procs egl.DeviceProcs) egl.DeviceExtensions {
	return &fakeExtensions{fakePlatform: f, procs: procs}
}

func (f *fakePlatform) attemptedNodes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.attempts...)
}

func (f *fakePlatform) deviceQueries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queryCalls
}

type fakeExtensions struct {
	*fakePlatform
	procs egl.DeviceProcs
}

func (f *fakeExtensions) handle(device egl.Device) (fakeDevice, bool) {
	index := int(device) - 1
	if index < 0 || index >= len(f.devices) {
		return fakeDevice{}, false
	}
	return f.devices[index], true
}

func (f *fakeExtensions) QueryDevices(devices []egl.Device) (int, bool) {
	f.mu.Lock()
	f.queryCalls++
	f.mu.Unlock()

	if devices == nil {
		if f.countFails {
			return 0, false
		}
		return len(f.devices), true
	}
	if f.devicesFail {
		return 0, false
	}
	count := min(len(devices), len(f.devices))
	for index := range count {
		devices[index] = egl.Device(index + 1)
	}
	return count, true
}

func (f *fakeExtensions) QueryDeviceString(device egl.Device, name int32) (string, bool) {
	fake, ok := f.handle(device)
	if !ok {
		return "", false
	}
	switch name {
	case egl.Extensions:
		if fake.extensionsFail {
			return "", false
		}
		return fake.extensions, true
	case egl.DRMDeviceFileEXT:
		if !egl.HasExtension(fake.extensions, egl.ExtensionEXTDeviceDRM) {
			return "", false
		}
		return fake.drmPath, true
	}
	return "", false
}

func (f *fakeExtensions) QueryDeviceAttrib(device egl.Device, attribute int32) (egl.Attrib, bool) {
	fake, ok := f.handle(device)
	if !ok || attribute != egl.CUDADeviceNV || fake.cudaFails {
		return 0, false
	}
	return fake.cudaOrdinal, true
}

func (f *fakeExtensions) GetPlatformDisplay(platform uint32, nativeDisplay uintptr, attributes []int32) egl.Display {
	if platform != egl.PlatformDeviceEXT {
		return egl.NoDisplay
	}
	if len(attributes) != 3 || attributes[0] != egl.DRMMasterFDEXT || attributes[2] != egl.None {
		return egl.NoDisplay
	}

	node := nodeNameForDescriptor(attributes[1])

	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, node)
	if f.rejectedNode[node] {
		return egl.NoDisplay
	}
	display := egl.Display(0x2000 + len(f.attempts))
	f.displayDevices[display] = egl.Device(nativeDisplay)
	return display
}

func (f *fakeExtensions) QueryDisplayAttrib(display egl.Display, attribute int32) (egl.Attrib, bool) {
	if f.procs.QueryDisplayAttrib == 0 || attribute != egl.DeviceEXT {
		return 0, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	device, ok := f.displayDevices[display]
	return egl.Attrib(device), ok
}

// nodeNameForDescriptor returns the base name of the file open on fd,
// which is how the fake tells which DRM node a display was created on.
func nodeNameForDescriptor(fd int32) string {
	target, err := os.Readlink(fmt.Sprintf("/proc/self/fd/%d", fd))
	if err != nil {
		return ""
	}
	return filepath.Base(target)
}

// newTestRuntime returns a Runtime over platform that counts library
// loads.
func newTestRuntime(platform *fakePlatform, options Options) (*Runtime, *atomic.Int32) {
	var loads atomic.Int32
	options.Open = func() (egl.Platform, error) {
		loads.Add(1)
		return platform, nil
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return New(options), &loads
}

var errLoad = errors.New("libEGL.so.1: cannot open shared object file")
