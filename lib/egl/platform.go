// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package egl

// Platform is the part of the EGL client library that is usable before
// any extension has been negotiated.
type Platform interface {
	// ClientExtensions returns eglQueryString(EGL_NO_DISPLAY,
	// EGL_EXTENSIONS). ok is false when the query returns NULL, which
	// is how pre-1.5 implementations without EXT_client_extensions
	// answer.
	ClientExtensions() (extensions string, ok bool)

	// ProcAddress returns eglGetProcAddress(name), zero if the entry
	// point cannot be resolved.
	ProcAddress(name string) uintptr

	// LastError returns eglGetError() for the calling thread.
	LastError() ErrorCode

	// BindDeviceExtensions wraps resolved entry points. It is only
	// called after every required address in procs is non-zero.
	BindDeviceExtensions(procs DeviceProcs) DeviceExtensions
}

// DeviceProcs holds the resolved addresses of the device and platform
// extension entry points. QueryDisplayAttrib is optional and may be zero.
type DeviceProcs struct {
	QueryDevices       uintptr
	QueryDeviceAttrib  uintptr
	QueryDeviceString  uintptr
	GetPlatformDisplay uintptr
	QueryDisplayAttrib uintptr
}

// Complete reports whether every mandatory entry point was resolved.
func (p DeviceProcs) Complete() bool {
	return p.QueryDevices != 0 &&
		p.QueryDeviceAttrib != 0 &&
		p.QueryDeviceString != 0 &&
		p.GetPlatformDisplay != 0
}

// DeviceExtensions exposes EXT_device_enumeration, EXT_device_query and
// EXT_platform_base through bound entry points.
type DeviceExtensions interface {
	// QueryDevices calls eglQueryDevicesEXT. With a nil slice it only
	// reports the number of available devices; otherwise it fills
	// devices and reports how many were written. ok mirrors the
	// EGLBoolean result.
	QueryDevices(devices []Device) (count int, ok bool)

	// QueryDeviceString calls eglQueryDeviceStringEXT. ok is false when
	// the call returns NULL. The returned string is a copy.
	QueryDeviceString(device Device, name int32) (value string, ok bool)

	// QueryDeviceAttrib calls eglQueryDeviceAttribEXT.
	QueryDeviceAttrib(device Device, attribute int32) (value Attrib, ok bool)

	// GetPlatformDisplay calls eglGetPlatformDisplayEXT. attributes must
	// be terminated by None.
	GetPlatformDisplay(platform uint32, nativeDisplay uintptr, attributes []int32) Display

	// QueryDisplayAttrib calls eglQueryDisplayAttribEXT. ok is false if
	// the call fails or the entry point was not resolved.
	QueryDisplayAttrib(display Display, attribute int32) (value Attrib, ok bool)
}
