// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package drm

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Metadata describes the bus device behind a DRM identity. Every field
// is best-effort: sysfs attributes that cannot be read are left empty.
type Metadata struct {
	// Driver is the bound kernel driver (amdgpu, i915, nvidia, ...).
	Driver string `json:"driver,omitempty"`

	// Vendor is the PCI vendor name, or the hex vendor ID when the
	// vendor is not one of the GPU vendors known here.
	Vendor string `json:"vendor,omitempty"`

	// PCIDeviceID is the PCI device ID ("0x744a").
	PCIDeviceID string `json:"pci_device_id,omitempty"`

	// PCISlot is the PCI address ("0000:c3:00.0").
	PCISlot string `json:"pci_slot,omitempty"`

	// Nodes lists the card and render nodes the kernel created for the
	// device, sorted by name.
	Nodes []string `json:"nodes,omitempty"`
}

// ReadMetadata collects Metadata for the device with the given identity.
func (r Resolver) ReadMetadata(id Identity) Metadata {
	devicePath := r.DeviceDir(id)

	var metadata Metadata
	metadata.Driver = ReadDriverName(devicePath)
	metadata.Vendor, metadata.PCIDeviceID, metadata.PCISlot = ParsePCIUevent(devicePath)

	entries, err := os.ReadDir(filepath.Join(devicePath, "drm"))
	if err == nil {
		for _, entry := range entries {
			if IsCardDevice(entry.Name()) || IsRenderDevice(entry.Name()) {
				metadata.Nodes = append(metadata.Nodes, entry.Name())
			}
		}
		sort.Strings(metadata.Nodes)
	}
	return metadata
}

// IsCardDevice returns true for DRM card device names (card0, card1, ...)
// but not connectors (card0-DP-1) or render nodes (renderD128).
func IsCardDevice(name string) bool {
	return hasNumericSuffix(name, "card")
}

// IsRenderDevice returns true for render node names (renderD128, ...).
func IsRenderDevice(name string) bool {
	return hasNumericSuffix(name, "renderD")
}

func hasNumericSuffix(name, prefix string) bool {
	suffix, found := strings.CutPrefix(name, prefix)
	if !found || suffix == "" {
		return false
	}
	for _, character := range suffix {
		if character < '0' || character > '9' {
			return false
		}
	}
	return true
}

// ReadDriverName returns the kernel driver name for a device by
// reading the basename of the "driver" symlink in the device directory.
func ReadDriverName(devicePath string) string {
	link, err := os.Readlink(filepath.Join(devicePath, "driver"))
	if err != nil {
		return ""
	}
	return filepath.Base(link)
}

// ParsePCIUevent extracts vendor name, device ID, and PCI slot from
// the device's uevent file. The uevent file contains lines like:
//
//	PCI_ID=1002:744A
//	PCI_SLOT_NAME=0000:c3:00.0
func ParsePCIUevent(devicePath string) (vendor, deviceID, pciSlot string) {
	data, err := os.ReadFile(filepath.Join(devicePath, "uevent"))
	if err != nil {
		return "", "", ""
	}

	var rawVendorID, rawDeviceID string
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch key {
		case "PCI_ID":
			// Format: "1002:744A" (vendor:device, uppercase hex).
			if vendorID, productID, ok := strings.Cut(value, ":"); ok {
				rawVendorID = strings.ToLower(vendorID)
				rawDeviceID = strings.ToLower(productID)
			}
		case "PCI_SLOT_NAME":
			pciSlot = value
		}
	}

	vendor = PCIVendorName(rawVendorID)
	if rawDeviceID != "" {
		deviceID = "0x" + rawDeviceID
	}
	return vendor, deviceID, pciSlot
}

// PCIVendorName maps a PCI vendor ID to a human-readable name.
func PCIVendorName(vendorID string) string {
	switch vendorID {
	case "1002":
		return "AMD"
	case "10de":
		return "NVIDIA"
	case "8086":
		return "Intel"
	case "1af4":
		return "Red Hat (virtio)"
	default:
		if vendorID != "" {
			return fmt.Sprintf("0x%s", vendorID)
		}
		return ""
	}
}
