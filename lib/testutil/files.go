// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file at path within root, creating parent
// directories as needed.
func WriteFile(t testing.TB, root, path, content string) {
	t.Helper()
	fullPath := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(fullPath), err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", fullPath, err)
	}
}

// Mkdir creates the directory path within root and its parents.
func Mkdir(t testing.TB, root, path string) {
	t.Helper()
	fullPath := filepath.Join(root, path)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", fullPath, err)
	}
}

// Symlink creates a symlink at path within root pointing at target.
func Symlink(t testing.TB, root, path, target string) {
	t.Helper()
	fullPath := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(fullPath), err)
	}
	if err := os.Symlink(target, fullPath); err != nil {
		t.Fatalf("symlink %s -> %s: %v", fullPath, target, err)
	}
}

// DRMTree is a synthetic sysfs root and /dev/dri directory for a
// single DRM device identified by (Major, Minor).
type DRMTree struct {
	// SysRoot stands in for /sys.
	SysRoot string

	// DevRoot stands in for /dev/dri.
	DevRoot string

	Major uint32
	Minor uint32
}

// NewDRMTree creates an empty tree under a fresh temporary directory:
// the sysfs DRM directory for major:minor exists but lists no nodes,
// and DevRoot is an empty directory.
func NewDRMTree(t testing.TB, major, minor uint32) *DRMTree {
	t.Helper()
	root := t.TempDir()
	tree := &DRMTree{
		SysRoot: filepath.Join(root, "sys"),
		DevRoot: filepath.Join(root, "dev", "dri"),
		Major:   major,
		Minor:   minor,
	}
	Mkdir(t, tree.SysRoot, tree.drmDir())
	Mkdir(t, tree.DevRoot, ".")
	return tree
}

// DeviceDir returns the bus device directory relative to SysRoot.
func (d *DRMTree) DeviceDir() string {
	return filepath.Join("dev", "char", fmt.Sprintf("%d:%d", d.Major, d.Minor), "device")
}

func (d *DRMTree) drmDir() string {
	return filepath.Join(d.DeviceDir(), "drm")
}

// AddSysfsNode lists name (card0, renderD128, ...) in the sysfs DRM
// directory.
func (d *DRMTree) AddSysfsNode(t testing.TB, name string) {
	t.Helper()
	Mkdir(t, d.SysRoot, filepath.Join(d.drmDir(), name))
}

// AddDevNode creates /dev/dri/name as an empty regular file.
func (d *DRMTree) AddDevNode(t testing.TB, name string) {
	t.Helper()
	WriteFile(t, d.DevRoot, name, "")
}

// AddNode lists name in sysfs and creates it under /dev/dri.
func (d *DRMTree) AddNode(t testing.TB, name string) {
	t.Helper()
	d.AddSysfsNode(t, name)
	d.AddDevNode(t, name)
}
