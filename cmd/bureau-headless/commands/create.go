// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/bureau-foundation/headless/cmd/bureau-headless/cli"
	"github.com/bureau-foundation/headless/lib/egl"
	"github.com/bureau-foundation/headless/lib/headless"
)

type createParams struct {
	SessionParams
	cli.JSONOutput
	NodeUsage  string `json:"node_usage" flag:"node-usage" desc:"primary, render, primary-then-render or render-then-primary (default from config)"`
	Initialize bool   `json:"initialize" flag:"initialize" desc:"initialize the display, report its version and device, then terminate it"`
}

type createResult struct {
	Display   string             `json:"display"`
	NodeUsage headless.NodeUsage `json:"node_usage"`

	// Set with --initialize.
	EGLVersion string               `json:"egl_version,omitempty"`
	EGLVendor  string               `json:"egl_vendor,omitempty"`
	Device     *headless.DeviceInfo `json:"device,omitempty"`
}

func createCommand() *cli.Command {
	var params createParams
	return &cli.Command{
		Name:    "create",
		Summary: "Create a headless EGL display",
		Description: `Create an EGLDisplay on the EGL_PLATFORM_DEVICE_EXT platform.

The device is the first EGL device with CUDA interop and a DRM device
file, or else the first with a DRM device file. Its primary (card) and
render nodes are resolved through sysfs and opened as --node-usage
directs; with a fallback usage, the second node is tried when the first
cannot be opened or the driver rejects it.

Without --initialize the display handle is printed and left to the
driver's process-exit cleanup. With --initialize the display is
initialized, its EGL version and device are reported, and it is
terminated.`,
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Create and inspect a display on the default node usage",
				Command:     "bureau-headless create --initialize",
			},
			{
				Description: "Primary node only, as JSON",
				Command:     "bureau-headless create --node-usage primary --initialize --json",
			},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			s, err := params.open()
			if err != nil {
				return err
			}
			defer s.Close()

			usage := s.config.Usage()
			if params.NodeUsage != "" {
				usage, err = headless.ParseNodeUsage(params.NodeUsage)
				if err != nil {
					return fmt.Errorf("--node-usage: %w", err)
				}
			}

			if err := s.requireSupport(); err != nil {
				return err
			}
			display := s.runtime.CreateDisplay(usage)
			if display == egl.NoDisplay {
				fmt.Fprintf(os.Stderr, "no headless EGL display could be created with node usage %s\n", usage)
				return &cli.ExitError{Code: 1}
			}

			result := createResult{Display: fmt.Sprintf("%#x", uintptr(display)), NodeUsage: usage}
			if params.Initialize {
				if err := s.inspect(display, &result); err != nil {
					return err
				}
			}

			if done, err := params.EmitJSON(result); done {
				return err
			}
			return writeCreateResult(result)
		},
	}
}

// inspect initializes display, fills in its version and device, and
// terminates it.
func (s *session) inspect(display egl.Display, result *createResult) error {
	if s.library == nil {
		return errors.New("EGL library was not loaded")
	}
	major, minor, ok := s.library.Initialize(display)
	if !ok {
		return fmt.Errorf("eglInitialize failed (%s)", s.library.LastError())
	}
	defer func() {
		if !s.library.Terminate(display) {
			s.logger.Warn("eglTerminate failed", "egl_error", s.library.LastError().String())
		}
	}()

	result.EGLVersion = fmt.Sprintf("%d.%d", major, minor)
	if vendor, ok := s.library.QueryString(display, egl.Vendor); ok {
		result.EGLVendor = vendor
	}
	if info, ok := s.runtime.DeviceInfoFor(display); ok {
		result.Device = &info
	}
	return nil
}

func writeCreateResult(result createResult) error {
	fmt.Fprintf(cli.Stdout, "display:     %s\n", result.Display)
	fmt.Fprintf(cli.Stdout, "node usage:  %s\n", result.NodeUsage)
	if result.EGLVersion != "" {
		fmt.Fprintf(cli.Stdout, "EGL version: %s\n", result.EGLVersion)
	}
	if result.EGLVendor != "" {
		fmt.Fprintf(cli.Stdout, "EGL vendor:  %s\n", result.EGLVendor)
	}
	if result.Device != nil {
		if path, ok := result.Device.DRMPath(); ok {
			fmt.Fprintf(cli.Stdout, "DRM device:  %s\n", path)
		}
		if ordinal, ok := result.Device.CUDADeviceID(); ok {
			fmt.Fprintf(cli.Stdout, "CUDA device: %d\n", ordinal)
		}
	}
	return nil
}
