// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bureau-headless checks for, inspects, and creates GPU-backed EGL
// displays that need no display server.
//
// Build with CGO_ENABLED=0: the EGL library is called through a
// zero-cgo FFI that is unavailable in cgo builds.
package main

import (
	"os"

	"github.com/bureau-foundation/headless/cmd/bureau-headless/commands"
	"github.com/bureau-foundation/headless/lib/process"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
