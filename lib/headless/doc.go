// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package headless creates GPU-backed EGL displays without a display
// server.
//
// A headless display is an EGLDisplay on the EGL_PLATFORM_DEVICE_EXT
// platform, created against an EGLDeviceEXT and an open DRM node of
// the same GPU. Bringing one up takes five steps:
//
//  1. Check that the client library advertises the device and platform
//     extensions and resolve their entry points ([CheckSupport]). This
//     happens once per [Runtime]; the result is sticky.
//  2. Enumerate the EGL devices and probe each one for its device
//     extensions, DRM device file and CUDA device ID. Devices whose
//     probe fails are skipped.
//  3. Pick a device: the first one with both CUDA and DRM support, or
//     else the first one with DRM support.
//  4. Resolve the device's DRM file to its primary and render nodes
//     through sysfs and open the node(s) the [NodeUsage] asks for.
//  5. Create the display on the preferred node and, for fallback
//     usages, on the fallback node if the first attempt fails.
//
// [CreateDisplay] never returns an error: every failure is logged and
// collapses to [egl.NoDisplay]. Node files are closed before it
// returns; the display itself belongs to the caller, who initializes
// and eventually terminates it.
//
// The package-level functions share a default [Runtime] that loads
// libEGL.so.1 on first use and logs through [SetLogger]'s logger.
// [New] builds an isolated Runtime with its own platform, DRM resolver
// and logger.
package headless
