// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/bureau-foundation/headless/cmd/bureau-headless/cli"
	"github.com/bureau-foundation/headless/lib/codec"
	"github.com/bureau-foundation/headless/lib/drm"
	"github.com/bureau-foundation/headless/lib/headless"
)

type devicesParams struct {
	SessionParams
	cli.JSONOutput
	Usable bool `json:"usable" flag:"usable" desc:"only list devices a display can be created on"`
	CBOR   bool `json:"cbor"   flag:"cbor"   desc:"write the report as deterministic CBOR"`
}

// deviceReport is one line of "devices" output.
type deviceReport struct {
	Index int `json:"index"`
	headless.DeviceInfo

	// Metadata describes the bus device behind DRMDevicePath.
	Metadata *drm.Metadata `json:"metadata,omitempty"`
}

func devicesCommand() *cli.Command {
	var params devicesParams
	return &cli.Command{
		Name:    "devices",
		Summary: "List EGL devices and their capabilities",
		Description: `Enumerate the EGL devices exposed by the client library and probe
each one for CUDA interop (EGL_NV_device_cuda), a DRM device file
(EGL_EXT_device_drm) and software rendering (EGL_MESA_device_software).
Devices whose probe fails are skipped with a warning.

For devices with a DRM device file, the kernel driver, PCI vendor and
slot, and DRM nodes are read from sysfs.`,
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			if params.CBOR && params.OutputJSON {
				return fmt.Errorf("--cbor and --json are mutually exclusive")
			}
			s, err := params.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.requireSupport(); err != nil {
				return err
			}

			option := headless.EnumerateAll
			if params.Usable {
				option = headless.EnumerateUsable
			}
			var reports []deviceReport
			enumerated := s.runtime.EnumerateDevices(func(info headless.DeviceInfo) {
				reports = append(reports, s.report(len(reports), info))
			}, option)
			if !enumerated {
				return &cli.ExitError{Code: 1}
			}

			if params.CBOR {
				return codec.NewEncoder(cli.Stdout).Encode(reports)
			}
			if done, err := params.EmitJSON(reports); done {
				return err
			}
			return writeDeviceTable(reports)
		},
	}
}

func (s *session) report(index int, info headless.DeviceInfo) deviceReport {
	report := deviceReport{Index: index, DeviceInfo: info}
	path, ok := info.DRMPath()
	if !ok {
		return report
	}
	id, err := drm.StatIdentity(path)
	if err != nil {
		s.logger.Warn("cannot stat DRM device file", "device_path", path, "error", err)
		return report
	}
	metadata := s.resolver.ReadMetadata(id)
	report.Metadata = &metadata
	return report
}

func writeDeviceTable(reports []deviceReport) error {
	if len(reports) == 0 {
		fmt.Fprintln(cli.Stdout, "no EGL devices")
		return nil
	}
	writer := tabwriter.NewWriter(cli.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "INDEX\tDRM DEVICE\tCUDA\tSOFTWARE\tDRIVER\tVENDOR\tNODES")
	for _, report := range reports {
		drmPath := "-"
		if path, ok := report.DRMPath(); ok {
			drmPath = path
		}
		cuda := "-"
		if ordinal, ok := report.CUDADeviceID(); ok {
			cuda = fmt.Sprintf("%d", ordinal)
		}
		driver, vendor, nodes := "-", "-", "-"
		if report.Metadata != nil {
			driver = orDash(report.Metadata.Driver)
			vendor = orDash(report.Metadata.Vendor)
			if len(report.Metadata.Nodes) > 0 {
				nodes = fmt.Sprint(report.Metadata.Nodes)
			}
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%v\t%s\t%s\t%s\n",
			report.Index, drmPath, cuda, report.Software, driver, vendor, nodes)
	}
	return writer.Flush()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
