// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"os"
)

// ExitCoder is implemented by errors that request a specific exit code
// after the command has already reported the failure itself.
type ExitCoder interface {
	error
	ExitCode() int
}

// Fatal reports err and exits. An error wrapping an ExitCoder exits
// with its code and prints nothing; any other error is written to
// stderr as "error: err" and exits with code 1.
func Fatal(err error) {
	var coder ExitCoder
	if errors.As(err, &coder) {
		os.Exit(max(coder.ExitCode(), 1))
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
