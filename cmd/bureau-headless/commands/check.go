// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/bureau-foundation/headless/cmd/bureau-headless/cli"
)

type checkParams struct {
	SessionParams
	cli.JSONOutput
}

type checkResult struct {
	Library   string `json:"library"`
	Supported bool   `json:"supported"`
}

func checkCommand() *cli.Command {
	var params checkParams
	return &cli.Command{
		Name:    "check",
		Summary: "Check whether headless displays are supported",
		Description: `Load the EGL client library and check that it supports device
enumeration and device platform displays (EGL_EXT_platform_base,
EGL_EXT_device_base, EGL_EXT_device_query, EGL_EXT_device_enumeration,
EGL_EXT_platform_device).

Exits 0 when supported and 1 otherwise. The reason for a failure is
logged at debug level.`,
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			s, err := params.open()
			if err != nil {
				return err
			}
			defer s.Close()

			result := checkResult{Library: s.config.Library, Supported: s.runtime.CheckSupport()}
			if done, err := params.EmitJSON(result); done {
				if err == nil && !result.Supported {
					return &cli.ExitError{Code: 1}
				}
				return err
			}
			if err := s.requireSupport(); err != nil {
				return err
			}
			fmt.Fprintf(cli.Stdout, "headless EGL displays are supported by %s\n", result.Library)
			return nil
		},
	}
}
