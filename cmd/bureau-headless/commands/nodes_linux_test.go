// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/headless/lib/drm"
	"github.com/bureau-foundation/headless/lib/testutil"
)

// nodesFixture points a config file at a synthetic tree keyed on the
// device number of /dev/null.
func nodesFixture(t *testing.T) (tree *testutil.DRMTree, configPath string, minor uint32) {
	t.Helper()
	id, err := drm.StatIdentity("/dev/null")
	if err != nil {
		t.Skipf("no usable character device: %v", err)
	}
	tree = testutil.NewDRMTree(t, id.Major, id.Minor)

	directory := t.TempDir()
	testutil.WriteFile(t, directory, "headless.yaml", fmt.Sprintf(`
library: %s
paths:
  sys_root: %s
  dev_root: %s
log:
  level: error
`, missingLibrary, tree.SysRoot, tree.DevRoot))
	return tree, filepath.Join(directory, "headless.yaml"), id.Minor
}

func TestNodesReportsEachNode(t *testing.T) {
	tree, configPath, minor := nodesFixture(t)
	primary := drm.NodeName(drm.Primary, minor)
	tree.AddNode(t, primary)
	testutil.WriteFile(t, tree.SysRoot, tree.DeviceDir()+"/uevent", "DRIVER=i915\nPCI_ID=8086:56A0\nPCI_SLOT_NAME=0000:03:00.0\n")

	output, err := execute(t, "nodes", "/dev/null", "--config", configPath, "--json")
	if err != nil {
		t.Fatalf("nodes: %v", err)
	}

	var result nodesResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if result.Device != "/dev/null" {
		t.Errorf("Device = %q, want /dev/null", result.Device)
	}
	if !strings.HasPrefix(result.SysfsDir, tree.SysRoot) {
		t.Errorf("SysfsDir = %q, want it under %q", result.SysfsDir, tree.SysRoot)
	}
	if len(result.Nodes) != 2 {
		t.Fatalf("got %d node reports, want 2", len(result.Nodes))
	}

	primaryReport, renderReport := result.Nodes[0], result.Nodes[1]
	if primaryReport.Node != "primary" || !primaryReport.Available || primaryReport.Error != "" {
		t.Errorf("primary report = %+v, want available", primaryReport)
	}
	if primaryReport.Path != filepath.Join(tree.DevRoot, primary) {
		t.Errorf("primary path = %q, want %q", primaryReport.Path, filepath.Join(tree.DevRoot, primary))
	}
	if renderReport.Node != "render" || renderReport.Available || renderReport.Error == "" {
		t.Errorf("render report = %+v, want unavailable with an error", renderReport)
	}

	if result.Metadata.Vendor != "Intel" {
		t.Errorf("Metadata.Vendor = %q, want Intel", result.Metadata.Vendor)
	}
	if result.Metadata.PCISlot != "0000:03:00.0" {
		t.Errorf("Metadata.PCISlot = %q, want 0000:03:00.0", result.Metadata.PCISlot)
	}
}

func TestNodesText(t *testing.T) {
	tree, configPath, minor := nodesFixture(t)
	tree.AddNode(t, drm.NodeName(drm.Render, minor))

	output, err := execute(t, "nodes", "/dev/null", "--config", configPath)
	if err != nil {
		t.Fatalf("nodes: %v", err)
	}
	if !strings.Contains(output, "render:") || !strings.Contains(output, "available") {
		t.Errorf("output = %q, want the render node listed as available", output)
	}
}

func TestNodesNotADRMDevice(t *testing.T) {
	_, configPath, _ := nodesFixture(t)

	// /dev/zero has no sysfs DRM directory in the synthetic tree.
	_, err := execute(t, "nodes", "/dev/zero", "--config", configPath)
	if err == nil || !strings.Contains(err.Error(), "resolving /dev/zero") {
		t.Errorf("error = %v, want a resolution failure", err)
	}
}
