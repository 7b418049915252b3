// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package drm resolves a DRM character device to the primary and
// render nodes the kernel exposes for the same GPU, and opens them.
//
// # Resolution
//
// The kernel publishes every DRM minor under
// /sys/dev/char/<major>:<minor>/device/drm/, one entry per node class:
// card<N> for the primary node and renderD<N+128> for the render node.
// [StatIdentity] reads (major, minor) from a device file, [Resolver.SysfsDir]
// formats the sysfs directory, and [NodeName] formats the entry name.
//
// # Acquisition
//
// [Resolver.OpenDevice] validates the device file and opens the sysfs
// and /dev/dri directories as O_PATH descriptors. [Device.OpenNode]
// then checks that the node's sysfs entry exists before opening the
// matching /dev/dri entry read-write and close-on-exec. A device-file
// path that does not lead back to a sysfs DRM entry is rejected, which
// guards against stale or spoofed paths.
//
// # Metadata
//
// [Resolver.ReadMetadata] reads the kernel driver name, PCI identity
// and node list from sysfs for diagnostics and reporting.
package drm
