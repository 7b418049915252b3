// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [WriteFile], [Mkdir] and [Symlink] create entries below a temporary
// root, creating parent directories as needed. [DRMTree] builds a
// synthetic sysfs and /dev/dri pair for one DRM device so that node
// resolution can be tested without a GPU: the sysfs side lists the
// nodes the "kernel" exposes, and the /dev/dri side holds regular files
// that open read-write like the real nodes would.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no dependencies on the rest of the module.
package testutil
