// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package headless

import (
	"errors"

	"github.com/bureau-foundation/headless/lib/egl"
)

// DeviceInfo is a snapshot of one EGL device's capabilities, taken
// when the device was probed.
type DeviceInfo struct {
	// Device is the driver's handle. It is not owned and is only
	// meaningful to the EGL library that produced it.
	Device egl.Device `json:"-"`

	// Extensions is the device extension string.
	Extensions string `json:"extensions"`

	SupportsCUDA bool `json:"supports_cuda"`
	SupportsDRM  bool `json:"supports_drm"`
	Software     bool `json:"software"`

	// DRMDevicePath is the DRM device file (/dev/dri/card0). Set if
	// and only if SupportsDRM.
	DRMDevicePath string `json:"drm_device_path,omitempty"`

	// CUDADevice is the CUDA device ordinal. Non-nil if and only if
	// SupportsCUDA; zero is a valid ordinal.
	CUDADevice *int `json:"cuda_device,omitempty"`
}

// DRMPath returns the DRM device file, if the device has one.
func (info DeviceInfo) DRMPath() (string, bool) {
	return info.DRMDevicePath, info.SupportsDRM && info.DRMDevicePath != ""
}

// CUDADeviceID returns the CUDA device ordinal, if the device has one.
func (info DeviceInfo) CUDADeviceID() (int, bool) {
	if info.CUDADevice == nil {
		return 0, false
	}
	return *info.CUDADevice, true
}

var errNoDevices = errors.New("no devices")

// listDevices returns every device the driver enumerates. Must only be
// called once the gate is ready.
func (r *Runtime) listDevices() ([]egl.Device, error) {
	extensions := r.gate.extensions

	count, ok := extensions.QueryDevices(nil)
	if !ok {
		return nil, &Error{Kind: EnumerationFailure, Op: "querying device count", Code: r.gate.platform.LastError()}
	}
	if count <= 0 {
		return nil, &Error{Kind: EnumerationFailure, Op: "querying device count", Err: errNoDevices}
	}

	devices := make([]egl.Device, count)
	count, ok = extensions.QueryDevices(devices)
	if !ok {
		return nil, &Error{Kind: EnumerationFailure, Op: "querying devices", Code: r.gate.platform.LastError()}
	}
	if count <= 0 {
		return nil, &Error{Kind: EnumerationFailure, Op: "querying devices", Err: errNoDevices}
	}
	return devices[:min(count, len(devices))], nil
}

// probe queries one device. A device advertising EGL_EXT_device_drm
// must report a non-empty device file, and one advertising
// EGL_NV_device_cuda must report its CUDA ordinal; otherwise the probe
// fails rather than returning a half-filled DeviceInfo.
func (r *Runtime) probe(device egl.Device) (DeviceInfo, error) {
	extensions := r.gate.extensions

	deviceExtensions, ok := extensions.QueryDeviceString(device, egl.Extensions)
	if !ok {
		return DeviceInfo{}, &Error{Kind: ProbeFailure, Op: "querying device extensions", Code: r.gate.platform.LastError()}
	}

	info := DeviceInfo{
		Device:       device,
		Extensions:   deviceExtensions,
		SupportsCUDA: egl.HasExtension(deviceExtensions, egl.ExtensionNVDeviceCUDA),
		SupportsDRM:  egl.HasExtension(deviceExtensions, egl.ExtensionEXTDeviceDRM),
		Software:     egl.HasExtension(deviceExtensions, egl.ExtensionMESADeviceSoftware),
	}

	if info.SupportsDRM {
		path, ok := extensions.QueryDeviceString(device, egl.DRMDeviceFileEXT)
		if !ok || path == "" {
			return DeviceInfo{}, &Error{Kind: ProbeFailure, Op: "querying DRM device file", Code: r.gate.platform.LastError()}
		}
		info.DRMDevicePath = path
	}

	if info.SupportsCUDA {
		value, ok := extensions.QueryDeviceAttrib(device, egl.CUDADeviceNV)
		if !ok {
			return DeviceInfo{}, &Error{Kind: ProbeFailure, Op: "querying CUDA device", Code: r.gate.platform.LastError()}
		}
		ordinal := int(value)
		info.CUDADevice = &ordinal
	}

	return info, nil
}

// collect probes every device in order, skipping the ones whose probe
// fails. The returned slice keeps enumeration order.
func (r *Runtime) collect(devices []egl.Device) (infos []DeviceInfo, skipped int) {
	infos = make([]DeviceInfo, 0, len(devices))
	for index, device := range devices {
		info, err := r.probe(device)
		if err != nil {
			skipped++
			r.log().Warn("skipping EGL device", "index", index, "error", err)
			continue
		}
		infos = append(infos, info)
	}
	return infos, skipped
}
