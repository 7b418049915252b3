// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package headless

import (
	"fmt"

	"github.com/bureau-foundation/headless/lib/egl"
)

// EnumerateOption filters the devices EnumerateDevices reports.
type EnumerateOption uint8

const (
	// EnumerateAll reports every device that could be probed.
	EnumerateAll EnumerateOption = iota

	// EnumerateUsable reports only devices CreateDisplay could select:
	// the ones exposing a DRM device file.
	EnumerateUsable
)

func (o EnumerateOption) String() string {
	switch o {
	case EnumerateAll:
		return "all"
	case EnumerateUsable:
		return "usable"
	}
	return fmt.Sprintf("EnumerateOption(%d)", uint8(o))
}

// EnumerateDevices probes every EGL device and calls callback once per
// device, in enumeration order. Devices whose probe fails are skipped.
// It returns false if headless displays are unsupported or enumeration
// itself fails.
func (r *Runtime) EnumerateDevices(callback func(DeviceInfo), option EnumerateOption) bool {
	if !r.CheckSupport() {
		return false
	}
	devices, err := r.listDevices()
	if err != nil {
		r.log().Error("cannot enumerate EGL devices", "error", err)
		return false
	}
	infos, _ := r.collect(devices)
	for _, info := range infos {
		if option == EnumerateUsable && !info.SupportsDRM {
			continue
		}
		callback(info)
	}
	return true
}

// DeviceInfoFor probes the device behind display. The display must be
// initialized (between eglInitialize and eglTerminate), and the EGL
// library must provide eglQueryDisplayAttribEXT.
func (r *Runtime) DeviceInfoFor(display egl.Display) (DeviceInfo, bool) {
	if !r.CheckSupport() {
		return DeviceInfo{}, false
	}
	value, ok := r.gate.extensions.QueryDisplayAttrib(display, egl.DeviceEXT)
	if !ok || value == 0 {
		r.log().Error("cannot query display device",
			"error", &Error{Kind: ProbeFailure, Op: "querying EGL_DEVICE_EXT", Code: r.gate.platform.LastError()},
		)
		return DeviceInfo{}, false
	}
	info, err := r.probe(egl.Device(value))
	if err != nil {
		r.log().Error("cannot probe display device", "error", err)
		return DeviceInfo{}, false
	}
	return info, true
}
