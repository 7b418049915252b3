// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package headless

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/headless/lib/egl"
)

// CreateDisplay creates a headless EGL display on the best available
// device, acquiring DRM nodes as usage directs. It returns
// egl.NoDisplay on any failure, after logging the reason. The display
// is not initialized; the caller owns it and must eglTerminate it.
func (r *Runtime) CreateDisplay(usage NodeUsage) egl.Display {
	logger := r.log()
	if !usage.Valid() {
		logger.Error("invalid DRM node usage", "node_usage", uint8(usage))
		return egl.NoDisplay
	}
	if !r.CheckSupport() {
		logger.Debug("headless EGL display requested but not supported")
		return egl.NoDisplay
	}

	display, err := r.createDisplay(usage)
	if err != nil {
		logger.Error("cannot create headless EGL display", "node_usage", usage.String(), "error", err)
		return egl.NoDisplay
	}
	return display
}

func (r *Runtime) createDisplay(usage NodeUsage) (egl.Display, error) {
	logger := r.log()

	devices, err := r.listDevices()
	if err != nil {
		return egl.NoDisplay, err
	}
	infos, skipped := r.collect(devices)

	picked, ok := pick(infos)
	if !ok {
		return egl.NoDisplay, &Error{
			Kind: NoSuitableDevice,
			Op:   "selecting EGL device",
			Err:  fmt.Errorf("none of %d devices exposes a DRM node (%d could not be probed)", len(devices), skipped),
		}
	}
	logger.Debug("selected EGL device",
		"device_path", picked.DRMDevicePath,
		"supports_cuda", picked.SupportsCUDA,
		"software", picked.Software,
	)

	device, err := r.resolver.OpenDevice(picked.DRMDevicePath)
	if err != nil {
		return egl.NoDisplay, &Error{Kind: NodeResolutionFailure, Op: "resolving DRM nodes", Err: err}
	}
	defer device.Close()

	nodes, err := r.acquire(device, usage)
	if err != nil {
		return egl.NoDisplay, err
	}

	var failures []error
	for index, node := range nodes {
		display, err := r.createDisplayFor(node, picked.Device)
		if err == nil {
			closeNodes(nodes[index+1:])
			logger.Info("created headless EGL display",
				"device_path", device.Path,
				"node", node.node.String(),
			)
			return display, nil
		}
		failures = append(failures, err)
		if index+1 < len(nodes) {
			logger.Warn("display creation failed, trying fallback node",
				"node", node.node.String(),
				"fallback", nodes[index+1].node.String(),
				"error", err,
			)
		}
	}
	return egl.NoDisplay, errors.Join(failures...)
}

// createDisplayFor creates a device platform display for one node. The
// node file is closed before returning, whatever the outcome: the
// driver duplicates the descriptor if it needs to keep it.
func (r *Runtime) createDisplayFor(node nodeFile, device egl.Device) (egl.Display, error) {
	defer node.file.Close()

	attributes := []int32{egl.DRMMasterFDEXT, int32(node.file.Fd()), egl.None}
	display := r.gate.extensions.GetPlatformDisplay(egl.PlatformDeviceEXT, uintptr(device), attributes)
	if display == egl.NoDisplay {
		return egl.NoDisplay, &Error{
			Kind: DisplayCreationFailure,
			Op:   fmt.Sprintf("creating display on %s node %s", node.node, node.file.Name()),
			Code: r.gate.platform.LastError(),
		}
	}
	return display, nil
}
