// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output: "check" exits 1 when headless displays are unsupported,
// and "create" exits 1 when no display could be created.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code, satisfying process.ExitCoder.
func (e *ExitError) ExitCode() int {
	return e.Code
}
