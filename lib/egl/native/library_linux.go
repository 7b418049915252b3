// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux && !cgo

package native

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"

	"github.com/bureau-foundation/headless/lib/egl"
)

// Call interfaces, one per distinct C signature. Prepared once per
// process; they carry no library-specific state.
var (
	prepareOnce  sync.Once
	prepareError error

	// const char *(void *, EGLint): eglQueryString, eglQueryDeviceStringEXT
	signatureQueryString types.CallInterface
	// void *(const char *): eglGetProcAddress
	signatureProcAddress types.CallInterface
	// EGLint (void): eglGetError
	signatureGetError types.CallInterface
	// EGLBoolean (EGLDisplay, EGLint *, EGLint *): eglInitialize
	signatureInitialize types.CallInterface
	// EGLBoolean (EGLDisplay): eglTerminate
	signatureTerminate types.CallInterface
	// EGLBoolean (EGLint, EGLDeviceEXT *, EGLint *): eglQueryDevicesEXT
	signatureQueryDevices types.CallInterface
	// EGLBoolean (void *, EGLint, EGLAttrib *): eglQuery{Device,Display}AttribEXT
	signatureQueryAttrib types.CallInterface
	// EGLDisplay (EGLenum, void *, const EGLint *): eglGetPlatformDisplayEXT
	signaturePlatformDisplay types.CallInterface
)

func prepareSignatures() error {
	prepareOnce.Do(func() {
		pointer := types.PointerTypeDescriptor
		int32Type := types.SInt32TypeDescriptor
		uint32Type := types.UInt32TypeDescriptor

		signatures := []struct {
			name      string
			cif       *types.CallInterface
			result    *types.TypeDescriptor
			arguments []*types.TypeDescriptor
		}{
			{"query string", &signatureQueryString, pointer, []*types.TypeDescriptor{pointer, int32Type}},
			{"proc address", &signatureProcAddress, pointer, []*types.TypeDescriptor{pointer}},
			{"get error", &signatureGetError, int32Type, nil},
			{"initialize", &signatureInitialize, uint32Type, []*types.TypeDescriptor{pointer, pointer, pointer}},
			{"terminate", &signatureTerminate, uint32Type, []*types.TypeDescriptor{pointer}},
			{"query devices", &signatureQueryDevices, uint32Type, []*types.TypeDescriptor{int32Type, pointer, pointer}},
			{"query attrib", &signatureQueryAttrib, uint32Type, []*types.TypeDescriptor{pointer, int32Type, pointer}},
			{"platform display", &signaturePlatformDisplay, pointer, []*types.TypeDescriptor{uint32Type, pointer, pointer}},
		}
		for _, signature := range signatures {
			if err := ffi.PrepareCallInterface(signature.cif, types.DefaultCall, signature.result, signature.arguments); err != nil {
				prepareError = fmt.Errorf("preparing %s call interface: %w", signature.name, err)
				return
			}
		}
	})
	return prepareError
}

// Library is a loaded EGL client library.
type Library struct {
	name   string
	handle unsafe.Pointer

	queryString    unsafe.Pointer
	getProcAddress unsafe.Pointer
	getError       unsafe.Pointer
	initialize     unsafe.Pointer
	terminate      unsafe.Pointer
}

// Open loads the named EGL library (usually [DefaultLibrary]) and
// resolves the core EGL 1.4 entry points it exports directly.
func Open(name string) (*Library, error) {
	if err := prepareSignatures(); err != nil {
		return nil, err
	}

	handle, err := ffi.LoadLibrary(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	library := &Library{name: name, handle: handle}
	symbols := []struct {
		name   string
		target *unsafe.Pointer
	}{
		{"eglQueryString", &library.queryString},
		{"eglGetProcAddress", &library.getProcAddress},
		{"eglGetError", &library.getError},
		{"eglInitialize", &library.initialize},
		{"eglTerminate", &library.terminate},
	}
	for _, symbol := range symbols {
		address, err := ffi.GetSymbol(handle, symbol.name)
		if err != nil {
			_ = ffi.FreeLibrary(handle)
			return nil, fmt.Errorf("resolving %s in %s: %w", symbol.name, name, err)
		}
		*symbol.target = address
	}
	return library, nil
}

// Name returns the name the library was opened with.
func (l *Library) Name() string {
	return l.name
}

// Close unloads the library. Displays created through it must have been
// terminated first.
func (l *Library) Close() error {
	if l.handle == nil {
		return nil
	}
	err := ffi.FreeLibrary(l.handle)
	l.handle = nil
	return err
}

// ClientExtensions implements egl.Platform.
func (l *Library) ClientExtensions() (string, bool) {
	return l.QueryString(egl.NoDisplay, egl.Extensions)
}

// QueryString calls eglQueryString on display.
func (l *Library) QueryString(display egl.Display, name int32) (string, bool) {
	return queryString(l.queryString, uintptr(display), name)
}

// ProcAddress implements egl.Platform.
func (l *Library) ProcAddress(name string) uintptr {
	cName := cString(name)
	namePointer := unsafe.Pointer(&cName[0])

	var address uintptr
	if err := ffi.CallFunction(&signatureProcAddress, l.getProcAddress, unsafe.Pointer(&address),
		[]unsafe.Pointer{unsafe.Pointer(&namePointer)}); err != nil {
		return 0
	}
	runtime.KeepAlive(cName)
	return address
}

// LastError implements egl.Platform.
func (l *Library) LastError() egl.ErrorCode {
	var code int32
	if err := ffi.CallFunction(&signatureGetError, l.getError, unsafe.Pointer(&code), nil); err != nil {
		return egl.Success
	}
	return egl.ErrorCode(code)
}

// Initialize calls eglInitialize and returns the EGL version reported
// by the implementation.
func (l *Library) Initialize(display egl.Display) (major, minor int32, ok bool) {
	handle := uintptr(display)
	majorOut := new(int32)
	minorOut := new(int32)
	majorPointer := unsafe.Pointer(majorOut)
	minorPointer := unsafe.Pointer(minorOut)

	var result uint32
	if err := ffi.CallFunction(&signatureInitialize, l.initialize, unsafe.Pointer(&result),
		[]unsafe.Pointer{unsafe.Pointer(&handle), unsafe.Pointer(&majorPointer), unsafe.Pointer(&minorPointer)}); err != nil {
		return 0, 0, false
	}
	return *majorOut, *minorOut, result == egl.True
}

// Terminate calls eglTerminate.
func (l *Library) Terminate(display egl.Display) bool {
	handle := uintptr(display)
	var result uint32
	if err := ffi.CallFunction(&signatureTerminate, l.terminate, unsafe.Pointer(&result),
		[]unsafe.Pointer{unsafe.Pointer(&handle)}); err != nil {
		return false
	}
	return result == egl.True
}

// BindDeviceExtensions implements egl.Platform.
func (l *Library) BindDeviceExtensions(procs egl.DeviceProcs) egl.DeviceExtensions {
	return &deviceExtensions{procs: procs}
}

// deviceExtensions calls extension entry points by address.
type deviceExtensions struct {
	procs egl.DeviceProcs
}

func (d *deviceExtensions) QueryDevices(devices []egl.Device) (int, bool) {
	maxDevices := int32(len(devices))
	var devicesPointer unsafe.Pointer
	if len(devices) > 0 {
		devicesPointer = unsafe.Pointer(&devices[0])
	}
	count := new(int32)
	countPointer := unsafe.Pointer(count)

	var result uint32
	if err := ffi.CallFunction(&signatureQueryDevices, procPointer(d.procs.QueryDevices), unsafe.Pointer(&result),
		[]unsafe.Pointer{unsafe.Pointer(&maxDevices), unsafe.Pointer(&devicesPointer), unsafe.Pointer(&countPointer)}); err != nil {
		return 0, false
	}
	runtime.KeepAlive(devices)
	return int(*count), result == egl.True
}

func (d *deviceExtensions) QueryDeviceString(device egl.Device, name int32) (string, bool) {
	return queryString(procPointer(d.procs.QueryDeviceString), uintptr(device), name)
}

func (d *deviceExtensions) QueryDeviceAttrib(device egl.Device, attribute int32) (egl.Attrib, bool) {
	return queryAttrib(procPointer(d.procs.QueryDeviceAttrib), uintptr(device), attribute)
}

func (d *deviceExtensions) QueryDisplayAttrib(display egl.Display, attribute int32) (egl.Attrib, bool) {
	if d.procs.QueryDisplayAttrib == 0 {
		return 0, false
	}
	return queryAttrib(procPointer(d.procs.QueryDisplayAttrib), uintptr(display), attribute)
}

func (d *deviceExtensions) GetPlatformDisplay(platform uint32, nativeDisplay uintptr, attributes []int32) egl.Display {
	var attributesPointer unsafe.Pointer
	if len(attributes) > 0 {
		attributesPointer = unsafe.Pointer(&attributes[0])
	}

	var display uintptr
	if err := ffi.CallFunction(&signaturePlatformDisplay, procPointer(d.procs.GetPlatformDisplay), unsafe.Pointer(&display),
		[]unsafe.Pointer{unsafe.Pointer(&platform), unsafe.Pointer(&nativeDisplay), unsafe.Pointer(&attributesPointer)}); err != nil {
		return egl.NoDisplay
	}
	runtime.KeepAlive(attributes)
	return egl.Display(display)
}

func queryString(function unsafe.Pointer, object uintptr, name int32) (string, bool) {
	var result uintptr
	if err := ffi.CallFunction(&signatureQueryString, function, unsafe.Pointer(&result),
		[]unsafe.Pointer{unsafe.Pointer(&object), unsafe.Pointer(&name)}); err != nil {
		return "", false
	}
	if result == 0 {
		return "", false
	}
	return goString(result), true
}

func queryAttrib(function unsafe.Pointer, object uintptr, attribute int32) (egl.Attrib, bool) {
	value := new(egl.Attrib)
	valuePointer := unsafe.Pointer(value)

	var result uint32
	if err := ffi.CallFunction(&signatureQueryAttrib, function, unsafe.Pointer(&result),
		[]unsafe.Pointer{unsafe.Pointer(&object), unsafe.Pointer(&attribute), unsafe.Pointer(&valuePointer)}); err != nil {
		return 0, false
	}
	return *value, result == egl.True
}

// procPointer converts an address returned by eglGetProcAddress. The
// address points into the driver's text segment, never into Go memory.
func procPointer(address uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&address))
}
