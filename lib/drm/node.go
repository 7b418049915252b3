// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package drm

import (
	"fmt"
	"strings"
)

// Node is a DRM node class, or a set of classes when combined with |.
type Node uint8

const (
	// Primary is the card<N> node. It historically also carries
	// mode-setting and may require DRM master.
	Primary Node = 1 << iota

	// Render is the renderD<N+128> node, render-only and unprivileged.
	Render
)

// BothNodes selects the primary and the render node.
const BothNodes = Primary | Render

// renderMinorOffset is the fixed distance between a card's primary
// minor and its render node minor.
const renderMinorOffset = 128

// Has reports whether every class in other is in n.
func (n Node) Has(other Node) bool {
	return other != 0 && n&other == other
}

func (n Node) String() string {
	switch n {
	case Primary:
		return "primary"
	case Render:
		return "render"
	case BothNodes:
		return "both"
	case 0:
		return "none"
	}
	return fmt.Sprintf("Node(%d)", uint8(n))
}

// NodeName returns the /dev/dri entry name of a single node class for a
// card with the given primary minor: "card3" or "renderD131" for minor
// 3. It returns "" unless node is exactly Primary or Render.
func NodeName(node Node, minor uint32) string {
	switch node {
	case Primary:
		return fmt.Sprintf("card%d", minor)
	case Render:
		return fmt.Sprintf("renderD%d", minor+renderMinorOffset)
	}
	return ""
}

// Identity is the (major, minor) device number of a character device.
type Identity struct {
	Major uint32
	Minor uint32
}

func (id Identity) String() string {
	return fmt.Sprintf("%d:%d", id.Major, id.Minor)
}

// Resolver locates sysfs and /dev/dri. The zero value is not useful;
// use [DefaultResolver] outside tests.
type Resolver struct {
	// SysRoot is the sysfs mount point, normally "/sys".
	SysRoot string

	// DevRoot is the DRM device directory, normally "/dev/dri".
	DevRoot string
}

// DefaultResolver resolves against the live system.
var DefaultResolver = Resolver{SysRoot: "/sys", DevRoot: "/dev/dri"}

// SysfsDir returns the sysfs directory that lists the DRM nodes of the
// device with the given identity, with a trailing slash:
// "/sys/dev/char/226:0/device/drm/".
func (r Resolver) SysfsDir(id Identity) string {
	return fmt.Sprintf("%s/dev/char/%d:%d/device/drm/", strings.TrimSuffix(r.SysRoot, "/"), id.Major, id.Minor)
}

// DeviceDir returns the sysfs directory of the underlying bus device
// (the PCI function for discrete and most integrated GPUs).
func (r Resolver) DeviceDir(id Identity) string {
	return fmt.Sprintf("%s/dev/char/%d:%d/device", strings.TrimSuffix(r.SysRoot, "/"), id.Major, id.Minor)
}
