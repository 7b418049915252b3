// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package drm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	// Directories are only used as anchors for *at() calls.
	directoryOpenFlags = unix.O_PATH | unix.O_DIRECTORY | unix.O_CLOEXEC

	// The driver issues ioctls on the node, so it needs read-write.
	nodeOpenFlags = unix.O_RDWR | unix.O_CLOEXEC
)

// ErrNotCharacterDevice is returned by StatIdentity for paths that
// exist but are not character special files.
var ErrNotCharacterDevice = errors.New("not a character device")

// StatIdentity stats path and returns its device number. It fails if
// the path does not exist or is not a character device.
func StatIdentity(path string) (Identity, error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return Identity{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFCHR {
		return Identity{}, fmt.Errorf("device %s: %w", path, ErrNotCharacterDevice)
	}
	rdev := uint64(stat.Rdev)
	return Identity{Major: unix.Major(rdev), Minor: unix.Minor(rdev)}, nil
}

// Device is a validated DRM device with its sysfs and /dev/dri
// directories held open. Close releases both descriptors; node files
// returned by OpenNode are owned by the caller and stay valid.
type Device struct {
	// Path is the device file the device was resolved from.
	Path string

	// Identity is the device number of Path.
	Identity Identity

	sysfsDir  string
	devRoot   string
	sysfs     *os.File
	directory *os.File
}

// OpenDevice resolves devicePath to its sysfs DRM directory and opens
// that directory and the /dev/dri directory. A device file without a
// sysfs DRM directory is not a DRM device and is rejected.
func (r Resolver) OpenDevice(devicePath string) (*Device, error) {
	identity, err := StatIdentity(devicePath)
	if err != nil {
		return nil, err
	}

	sysfsDir := r.SysfsDir(identity)
	sysfs, err := openDirectory(sysfsDir)
	if err != nil {
		return nil, fmt.Errorf("opening sysfs for %s (not a DRM device?): %w", devicePath, err)
	}

	directory, err := openDirectory(r.DevRoot)
	if err != nil {
		sysfs.Close()
		return nil, fmt.Errorf("opening DRM device directory: %w", err)
	}

	return &Device{
		Path:      devicePath,
		Identity:  identity,
		sysfsDir:  sysfsDir,
		devRoot:   r.DevRoot,
		sysfs:     sysfs,
		directory: directory,
	}, nil
}

// SysfsDir returns the sysfs directory the device was validated against.
func (d *Device) SysfsDir() string {
	return d.sysfsDir
}

// NodePath returns the /dev/dri path of a node class of this device.
func (d *Device) NodePath(node Node) string {
	return filepath.Join(d.devRoot, NodeName(node, d.Identity.Minor))
}

// OpenNode opens one node class of the device. The node must be listed
// in the device's sysfs directory; the returned file is opened
// read-write and close-on-exec and belongs to the caller.
func (d *Device) OpenNode(node Node) (*os.File, error) {
	name := NodeName(node, d.Identity.Minor)
	if name == "" {
		return nil, fmt.Errorf("open %s node: not a single node class", node)
	}

	if err := unix.Faccessat(int(d.sysfs.Fd()), name, unix.F_OK, 0); err != nil {
		return nil, fmt.Errorf("accessing %s%s: %w", d.sysfsDir, name, err)
	}

	path := filepath.Join(d.devRoot, name)
	descriptor, err := unix.Openat(int(d.directory.Fd()), name, nodeOpenFlags, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return os.NewFile(uintptr(descriptor), path), nil
}

// Close releases the directory descriptors.
func (d *Device) Close() error {
	return errors.Join(d.sysfs.Close(), d.directory.Close())
}

func openDirectory(path string) (*os.File, error) {
	descriptor, err := unix.Open(path, directoryOpenFlags, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return os.NewFile(uintptr(descriptor), path), nil
}
