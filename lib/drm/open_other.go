// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package drm

import (
	"errors"
	"os"
)

// ErrNotCharacterDevice is returned by StatIdentity for paths that
// exist but are not character special files.
var ErrNotCharacterDevice = errors.New("not a character device")

var errUnsupported = errors.New("DRM node resolution is only implemented on linux")

// StatIdentity is only implemented on linux.
func StatIdentity(path string) (Identity, error) {
	return Identity{}, errUnsupported
}

// Device is only implemented on linux.
type Device struct {
	Path     string
	Identity Identity
}

// OpenDevice is only implemented on linux.
func (r Resolver) OpenDevice(devicePath string) (*Device, error) {
	return nil, errUnsupported
}

func (d *Device) SysfsDir() string { return "" }
func (d *Device) NodePath(node Node) string { return "" }
func (d *Device) OpenNode(node Node) (*os.File, error) { return nil, errUnsupported }
func (d *Device) Close() error { return nil }
