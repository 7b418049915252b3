// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/headless/cmd/bureau-headless/cli"
	"github.com/bureau-foundation/headless/lib/drm"
)

type nodesParams struct {
	SessionParams
	cli.JSONOutput
}

type nodeReport struct {
	Node      string `json:"node"`
	Path      string `json:"path"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

type nodesResult struct {
	Device   string       `json:"device"`
	Identity string       `json:"identity"`
	SysfsDir string       `json:"sysfs_dir"`
	Nodes    []nodeReport `json:"nodes"`
	Metadata drm.Metadata `json:"metadata"`
}

func nodesCommand() *cli.Command {
	var params nodesParams
	return &cli.Command{
		Name:    "nodes",
		Summary: "Show the DRM nodes behind a device file",
		Usage:   "bureau-headless nodes <device> [flags]",
		Description: `Resolve a DRM device file (as reported by EGL_EXT_device_drm) to the
primary and render nodes of the same GPU, and try to open each one the
way display creation does: the node must be listed in the device's
sysfs DRM directory and open read-write under /dev/dri.`,
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one device path, got %d arguments", len(args))
			}
			s, err := params.open()
			if err != nil {
				return err
			}
			defer s.Close()

			device, err := s.resolver.OpenDevice(args[0])
			if err != nil {
				return fmt.Errorf("resolving %s: %w", args[0], err)
			}
			defer device.Close()

			result := nodesResult{
				Device:   device.Path,
				Identity: device.Identity.String(),
				SysfsDir: device.SysfsDir(),
				Metadata: s.resolver.ReadMetadata(device.Identity),
			}
			for _, node := range []drm.Node{drm.Primary, drm.Render} {
				report := nodeReport{Node: node.String(), Path: device.NodePath(node)}
				file, err := device.OpenNode(node)
				if err != nil {
					report.Error = err.Error()
				} else {
					report.Available = true
					file.Close()
				}
				result.Nodes = append(result.Nodes, report)
			}

			if done, err := params.EmitJSON(result); done {
				return err
			}
			fmt.Fprintf(cli.Stdout, "device:   %s (%s)\n", result.Device, result.Identity)
			fmt.Fprintf(cli.Stdout, "sysfs:    %s\n", result.SysfsDir)
			if result.Metadata.Driver != "" {
				fmt.Fprintf(cli.Stdout, "driver:   %s\n", result.Metadata.Driver)
			}
			for _, report := range result.Nodes {
				status := "available"
				if !report.Available {
					status = report.Error
				}
				fmt.Fprintf(cli.Stdout, "%-8s  %s: %s\n", report.Node+":", report.Path, status)
			}
			return nil
		},
	}
}
