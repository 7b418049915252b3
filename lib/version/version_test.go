// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	savedCommit, savedDirty, savedTime := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() { GitCommit, GitDirty, BuildTime = savedCommit, savedDirty, savedTime })

	GitCommit = "abc1234"
	GitDirty = "true"
	BuildTime = "2026-10-16T00:00:00Z"

	if got, want := Info(), Version+" (abc1234-dirty, 2026-10-16T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
	if !strings.Contains(Full(), runtime.Version()) {
		t.Errorf("Full() does not mention the Go version: %q", Full())
	}

	report := Report()
	if !report.Dirty || report.Commit != "abc1234" {
		t.Errorf("Report() = %+v", report)
	}
	if report.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Report().Platform = %q", report.Platform)
	}
}
