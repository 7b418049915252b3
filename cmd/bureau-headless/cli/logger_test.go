// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerFormats(t *testing.T) {
	tests := []struct {
		format   string
		terminal bool
		wantJSON bool
	}{
		{"auto", true, false},
		{"auto", false, true},
		{"text", false, false},
		{"json", true, true},
	}
	for _, test := range tests {
		var buffer bytes.Buffer
		logger := newLogger(&buffer, slog.LevelInfo, test.format, test.terminal)
		logger.Info("created headless EGL display", "node", "render")

		isJSON := json.Valid(bytes.TrimSpace(buffer.Bytes()))
		if isJSON != test.wantJSON {
			t.Errorf("format %q terminal=%v: JSON output = %v, want %v (%s)",
				test.format, test.terminal, isJSON, test.wantJSON, buffer.String())
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger := newLogger(&buffer, slog.LevelWarn, "text", false)
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buffer.String(), "hidden") || !strings.Contains(buffer.String(), "shown") {
		t.Errorf("level filtering failed: %s", buffer.String())
	}
}
