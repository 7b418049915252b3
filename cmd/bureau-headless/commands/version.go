// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/headless/cmd/bureau-headless/cli"
	"github.com/bureau-foundation/headless/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func([]string) error {
			if done, err := params.EmitJSON(version.Report()); done {
				return err
			}
			fmt.Fprintf(cli.Stdout, "bureau-headless %s\n", version.Full())
			return nil
		},
	}
}
