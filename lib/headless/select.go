// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package headless

// pick returns the device to create a display on: the first device
// with both CUDA and DRM support, otherwise the first device with DRM
// support. The result points into infos.
func pick(infos []DeviceInfo) (*DeviceInfo, bool) {
	for index := range infos {
		if infos[index].SupportsCUDA && infos[index].SupportsDRM {
			return &infos[index], true
		}
	}
	for index := range infos {
		if infos[index].SupportsDRM {
			return &infos[index], true
		}
	}
	return nil, false
}
