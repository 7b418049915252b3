// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the bureau-headless command tree.
package commands

import (
	"github.com/bureau-foundation/headless/cmd/bureau-headless/cli"
)

// Root builds and returns the complete command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "bureau-headless",
		Description: `bureau-headless: GPU-backed EGL displays without a display server.

Checks whether the system EGL library can create headless displays,
lists the EGL devices it exposes, resolves DRM device files to their
primary and render nodes, and creates a display end to end.`,
		Subcommands: []*cli.Command{
			checkCommand(),
			devicesCommand(),
			createCommand(),
			nodesCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Check whether headless displays are supported",
				Command:     "bureau-headless check",
			},
			{
				Description: "List devices a display can be created on, as JSON",
				Command:     "bureau-headless devices --usable --json",
			},
			{
				Description: "Create a display on the render node only and report its device",
				Command:     "bureau-headless create --node-usage render --initialize",
			},
			{
				Description: "Show the DRM nodes behind a device file",
				Command:     "bureau-headless nodes /dev/dri/card0",
			},
		},
	}
}
