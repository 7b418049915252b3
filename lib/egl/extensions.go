// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package egl

import "strings"

// extensionSeparator delimits names in EGL extension strings.
const extensionSeparator = ' '

// HasExtension reports whether name appears in the space-separated
// extension list as a whole token. "EGL_EXT_device_drm" does not match
// inside "EGL_EXT_device_drm_render_node". Runs of separators and
// leading or trailing separators are tolerated.
func HasExtension(extensions, name string) bool {
	if name == "" {
		return false
	}
	rest := extensions
	for rest != "" {
		var token string
		token, rest, _ = strings.Cut(rest, string(extensionSeparator))
		if token == name {
			return true
		}
	}
	return false
}

// HasAllExtensions reports whether every name in names is present.
func HasAllExtensions(extensions string, names []string) bool {
	return FirstMissingExtension(extensions, names) == ""
}

// FirstMissingExtension returns the first name in names that is absent
// from extensions, or "" when all are present.
func FirstMissingExtension(extensions string, names []string) string {
	for _, name := range names {
		if !HasExtension(extensions, name) {
			return name
		}
	}
	return ""
}
