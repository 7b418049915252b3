// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package egl

// Device is an opaque EGLDeviceEXT handle. The driver owns it; it stays
// valid for as long as the driver considers it valid, which in practice
// is the lifetime of the loaded client library.
type Device uintptr

// Display is an opaque EGLDisplay handle.
type Display uintptr

// NoDisplay is EGL_NO_DISPLAY.
const NoDisplay Display = 0

// Attrib mirrors EGLAttrib (intptr_t).
type Attrib int64

// Enum values from EGL/egl.h and EGL/eglext.h.
const (
	True  = 1
	False = 0

	None       int32 = 0x3038
	Vendor     int32 = 0x3053
	Version    int32 = 0x3054
	Extensions int32 = 0x3055

	// EXT_device_query / EXT_device_base
	DeviceEXT int32 = 0x322C

	// EXT_device_drm
	DRMDeviceFileEXT int32 = 0x3233
	DRMMasterFDEXT   int32 = 0x333C

	// NV_device_cuda
	CUDADeviceNV int32 = 0x323A

	// EXT_platform_device
	PlatformDeviceEXT uint32 = 0x313F
)

// Client extensions that must all be present before any device entry
// point is used.
var RequiredClientExtensions = []string{
	"EGL_EXT_platform_base",
	"EGL_EXT_device_base",
	"EGL_EXT_device_query",
	"EGL_EXT_device_enumeration",
	"EGL_EXT_platform_device",
}

// Device extension names probed per device.
const (
	ExtensionNVDeviceCUDA       = "EGL_NV_device_cuda"
	ExtensionEXTDeviceDRM       = "EGL_EXT_device_drm"
	ExtensionMESADeviceSoftware = "EGL_MESA_device_software"
)

// Entry point names resolved through eglGetProcAddress.
const (
	ProcQueryDevices       = "eglQueryDevicesEXT"
	ProcQueryDeviceAttrib  = "eglQueryDeviceAttribEXT"
	ProcQueryDeviceString  = "eglQueryDeviceStringEXT"
	ProcGetPlatformDisplay = "eglGetPlatformDisplayEXT"
	ProcQueryDisplayAttrib = "eglQueryDisplayAttribEXT"
)
