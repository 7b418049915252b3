// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package drm

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/headless/lib/testutil"
)

// Any character device works as the "DRM device": resolution only
// cares about its (major, minor), which the synthetic sysfs tree is
// keyed on.
const characterDevice = "/dev/null"

func characterIdentity(t *testing.T) Identity {
	t.Helper()
	id, err := StatIdentity(characterDevice)
	if err != nil {
		t.Skipf("no usable character device: %v", err)
	}
	return id
}

func openTree(t *testing.T, nodes ...string) (*testutil.DRMTree, *Device) {
	t.Helper()
	id := characterIdentity(t)
	tree := testutil.NewDRMTree(t, id.Major, id.Minor)
	for _, node := range nodes {
		tree.AddNode(t, node)
	}

	resolver := Resolver{SysRoot: tree.SysRoot, DevRoot: tree.DevRoot}
	device, err := resolver.OpenDevice(characterDevice)
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	t.Cleanup(func() { device.Close() })
	return tree, device
}

func TestStatIdentity(t *testing.T) {
	id := characterIdentity(t)
	// /dev/null is 1:3 on every Linux system.
	if id != (Identity{Major: 1, Minor: 3}) {
		t.Logf("unexpected identity for %s: %v", characterDevice, id)
	}

	if _, err := StatIdentity(t.TempDir()); !errors.Is(err, ErrNotCharacterDevice) {
		t.Errorf("StatIdentity(directory) error = %v, want ErrNotCharacterDevice", err)
	}

	missing := filepath.Join(t.TempDir(), "missing")
	if _, err := StatIdentity(missing); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("StatIdentity(missing) error = %v, want ErrNotExist", err)
	}
}

func TestOpenNodeBothPresent(t *testing.T) {
	id := characterIdentity(t)
	primaryName := NodeName(Primary, id.Minor)
	renderName := NodeName(Render, id.Minor)
	_, device := openTree(t, primaryName, renderName)

	for _, node := range []Node{Primary, Render} {
		file, err := device.OpenNode(node)
		if err != nil {
			t.Fatalf("OpenNode(%v): %v", node, err)
		}
		if want := device.NodePath(node); file.Name() != want {
			t.Errorf("OpenNode(%v) name = %q, want %q", node, file.Name(), want)
		}
		// The node must be writable: drivers issue ioctls on it.
		if _, err := file.Write([]byte("x")); err != nil {
			t.Errorf("write to %v node: %v", node, err)
		}
		file.Close()
	}
}

func TestOpenNodeMissingFromSysfs(t *testing.T) {
	id := characterIdentity(t)
	tree, device := openTree(t, NodeName(Primary, id.Minor))

	// Present in /dev/dri but not listed by sysfs: the kernel did not
	// create a render node for this device.
	tree.AddDevNode(t, NodeName(Render, id.Minor))

	_, err := device.OpenNode(Render)
	if err == nil {
		t.Fatal("OpenNode(Render) succeeded without a sysfs entry")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want ErrNotExist", err)
	}
}

func TestOpenNodeMissingFromDev(t *testing.T) {
	id := characterIdentity(t)
	tree, device := openTree(t)
	tree.AddSysfsNode(t, NodeName(Primary, id.Minor))

	if _, err := device.OpenNode(Primary); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("OpenNode(Primary) error = %v, want ErrNotExist", err)
	}
}

func TestOpenNodeRejectsSets(t *testing.T) {
	_, device := openTree(t)
	if _, err := device.OpenNode(BothNodes); err == nil {
		t.Error("OpenNode(BothNodes) should fail")
	}
}

func TestOpenDeviceWithoutSysfs(t *testing.T) {
	root := t.TempDir()
	resolver := Resolver{
		SysRoot: filepath.Join(root, "sys"),
		DevRoot: filepath.Join(root, "dev"),
	}
	if err := os.MkdirAll(resolver.DevRoot, 0755); err != nil {
		t.Fatal(err)
	}

	_, err := resolver.OpenDevice(characterDevice)
	if err == nil {
		t.Fatal("OpenDevice succeeded without a sysfs DRM directory")
	}
	var pathError *os.PathError
	if !errors.As(err, &pathError) {
		t.Errorf("error = %v, want *os.PathError in chain", err)
	}
}

func TestOpenDeviceMissingPath(t *testing.T) {
	resolver := Resolver{SysRoot: t.TempDir(), DevRoot: t.TempDir()}
	if _, err := resolver.OpenDevice(filepath.Join(t.TempDir(), "card9")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("OpenDevice(missing) error = %v, want ErrNotExist", err)
	}
}

func TestDeviceSysfsDir(t *testing.T) {
	id := characterIdentity(t)
	tree, device := openTree(t)
	want := Resolver{SysRoot: tree.SysRoot}.SysfsDir(id)
	if device.SysfsDir() != want {
		t.Errorf("SysfsDir() = %q, want %q", device.SysfsDir(), want)
	}
}
