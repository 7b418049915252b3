// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/headless/lib/headless"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Library != "libEGL.so.1" {
		t.Errorf("expected library=libEGL.so.1, got %s", cfg.Library)
	}
	if cfg.Usage() != headless.DefaultNodeUsage {
		t.Errorf("expected node_usage=%s, got %s", headless.DefaultNodeUsage, cfg.NodeUsage)
	}
	if cfg.Paths.SysRoot != "/sys" || cfg.Paths.DevRoot != "/dev/dri" {
		t.Errorf("unexpected default paths: %+v", cfg.Paths)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when BUREAU_HEADLESS_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "BUREAU_HEADLESS_CONFIG environment variable not set") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_WithEnvironmentVariable(t *testing.T) {
	path := writeConfig(t, "headless.yaml", `
node_usage: primary-then-render
paths:
  dev_root: /run/host/dev/dri
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Usage() != headless.UsePrimaryFallbackToRender {
		t.Errorf("expected node_usage=primary-then-render, got %s", cfg.NodeUsage)
	}
	if cfg.Paths.DevRoot != "/run/host/dev/dri" {
		t.Errorf("expected dev_root=/run/host/dev/dri, got %s", cfg.Paths.DevRoot)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Paths.SysRoot != "/sys" {
		t.Errorf("expected sys_root=/sys, got %s", cfg.Paths.SysRoot)
	}
	if cfg.Library != "libEGL.so.1" {
		t.Errorf("expected library=libEGL.so.1, got %s", cfg.Library)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "headless.jsonc", `{
	// NVIDIA's vendor library, bypassing GLVND.
	"library": "libEGL_nvidia.so.0",
	"log": {
		"level": "debug",
		/* machine-readable */
		"format": "json",
	},
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Library != "libEGL_nvidia.so.0" {
		t.Errorf("expected library=libEGL_nvidia.so.0, got %s", cfg.Library)
	}
	if cfg.Log.Format != FormatJSON {
		t.Errorf("expected log.format=json, got %s", cfg.Log.Format)
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v", level, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfig(t, "bad.yaml", "paths: [unterminated\n")
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error does not name the file: %v", err)
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("HEADLESS_TEST_HOST", "/host")
	t.Setenv("HEADLESS_TEST_UNSET", "")

	path := writeConfig(t, "headless.yaml", `
paths:
  sys_root: ${HEADLESS_TEST_HOST}/sys
  dev_root: ${HEADLESS_TEST_UNSET:-/dev}/dri
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Paths.SysRoot != "/host/sys" {
		t.Errorf("expected sys_root=/host/sys, got %s", cfg.Paths.SysRoot)
	}
	if cfg.Paths.DevRoot != "/dev/dri" {
		t.Errorf("expected dev_root=/dev/dri, got %s", cfg.Paths.DevRoot)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Library = ""
	cfg.NodeUsage = "card"
	cfg.Paths.SysRoot = "sys"
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"library", "node_usage", "paths.sys_root", "log.level", "log.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error does not mention %s: %v", want, err)
		}
	}
	if strings.Contains(err.Error(), "paths.dev_root") {
		t.Errorf("valid dev_root reported as invalid: %v", err)
	}
}
