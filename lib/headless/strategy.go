// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package headless

import (
	"errors"
	"fmt"
	"os"

	"github.com/bureau-foundation/headless/lib/drm"
)

// NodeUsage selects which DRM node class a display is created on, and
// whether the other class is tried when the first attempt fails.
type NodeUsage uint8

const (
	// UsePrimary creates the display on the primary (card) node only.
	UsePrimary NodeUsage = iota + 1

	// UseRender creates the display on the render node only.
	UseRender

	// UsePrimaryFallbackToRender tries the primary node, then the
	// render node.
	UsePrimaryFallbackToRender

	// UseRenderFallbackToPrimary tries the render node, then the
	// primary node.
	UseRenderFallbackToPrimary
)

// DefaultNodeUsage prefers the unprivileged render node.
const DefaultNodeUsage = UseRenderFallbackToPrimary

var nodeUsageNames = map[NodeUsage]string{
	UsePrimary:                 "primary",
	UseRender:                  "render",
	UsePrimaryFallbackToRender: "primary-then-render",
	UseRenderFallbackToPrimary: "render-then-primary",
}

func (u NodeUsage) String() string {
	if name, ok := nodeUsageNames[u]; ok {
		return name
	}
	return fmt.Sprintf("NodeUsage(%d)", uint8(u))
}

// ParseNodeUsage parses the String form of a NodeUsage.
func ParseNodeUsage(text string) (NodeUsage, error) {
	for usage, name := range nodeUsageNames {
		if name == text {
			return usage, nil
		}
	}
	return 0, fmt.Errorf("unknown node usage %q (valid: primary, render, primary-then-render, render-then-primary)", text)
}

// MarshalText implements encoding.TextMarshaler.
func (u NodeUsage) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("invalid node usage %d", uint8(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *NodeUsage) UnmarshalText(text []byte) error {
	parsed, err := ParseNodeUsage(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Valid reports whether u is one of the four usages.
func (u NodeUsage) Valid() bool {
	return u.openSet() != 0
}

// openSet is the set of nodes acquired before any display attempt.
func (u NodeUsage) openSet() drm.Node {
	switch u {
	case UsePrimary:
		return drm.Primary
	case UseRender:
		return drm.Render
	case UsePrimaryFallbackToRender, UseRenderFallbackToPrimary:
		return drm.BothNodes
	}
	return 0
}

func (u NodeUsage) hasFallback() bool {
	switch u {
	case UsePrimary, UseRender:
		return false
	case UsePrimaryFallbackToRender, UseRenderFallbackToPrimary:
		return true
	}
	return false
}

// preferred is the node of the first display attempt.
func (u NodeUsage) preferred() drm.Node {
	switch u {
	case UsePrimary, UsePrimaryFallbackToRender:
		return drm.Primary
	case UseRender, UseRenderFallbackToPrimary:
		return drm.Render
	}
	return 0
}

// fallback is the node of the second attempt, or 0 without one.
func (u NodeUsage) fallback() drm.Node {
	switch u {
	case UsePrimary, UseRender:
		return 0
	case UsePrimaryFallbackToRender:
		return drm.Render
	case UseRenderFallbackToPrimary:
		return drm.Primary
	}
	return 0
}

// attemptOrder lists the nodes to try, preferred first.
func (u NodeUsage) attemptOrder() []drm.Node {
	if u.hasFallback() {
		return []drm.Node{u.preferred(), u.fallback()}
	}
	return []drm.Node{u.preferred()}
}

// nodeFile is an open DRM node awaiting a display attempt.
type nodeFile struct {
	node drm.Node
	file *os.File
}

// acquire opens every node in usage's open set, in attempt order. A
// node that fails to open is logged and left out. Acquisition fails
// only when no node opens: with a fallback usage, a missing preferred
// node moves bring-up straight to the fallback node.
func (r *Runtime) acquire(device *drm.Device, usage NodeUsage) ([]nodeFile, error) {
	var (
		nodes    []nodeFile
		failures []error
	)
	for _, node := range usage.attemptOrder() {
		file, err := device.OpenNode(node)
		if err != nil {
			failures = append(failures, err)
			r.log().Warn("cannot open DRM node",
				"device_path", device.Path,
				"node", node.String(),
				"error", err,
			)
			continue
		}
		nodes = append(nodes, nodeFile{node: node, file: file})
	}
	if len(nodes) == 0 {
		return nil, &Error{
			Kind: AcquisitionFailure,
			Op:   fmt.Sprintf("opening %s node of %s", usage.openSet(), device.Path),
			Err:  errors.Join(failures...),
		}
	}
	return nodes, nil
}

func closeNodes(nodes []nodeFile) {
	for _, node := range nodes {
		node.file.Close()
	}
}
