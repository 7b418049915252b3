// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/headless/lib/headless"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "BUREAU_HEADLESS_CONFIG"

// Config is the bureau-headless configuration.
type Config struct {
	// Library is the EGL client library to load.
	// Default: libEGL.so.1
	Library string `yaml:"library" json:"library"`

	// NodeUsage selects the DRM node class displays are created on:
	// primary, render, primary-then-render, or render-then-primary.
	// Default: render-then-primary
	NodeUsage string `yaml:"node_usage" json:"node_usage"`

	// Paths relocates the kernel filesystems, for containers that
	// bind-mount them elsewhere.
	Paths PathsConfig `yaml:"paths" json:"paths"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log" json:"log"`
}

// PathsConfig configures kernel filesystem locations.
type PathsConfig struct {
	// SysRoot is the sysfs mount point.
	// Default: /sys
	SysRoot string `yaml:"sys_root" json:"sys_root"`

	// DevRoot is the DRM device directory.
	// Default: /dev/dri
	DevRoot string `yaml:"dev_root" json:"dev_root"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	// Default: info
	Level string `yaml:"level" json:"level"`

	// Format is text, json, or auto (text on a terminal, JSON
	// otherwise).
	// Default: auto
	Format string `yaml:"format" json:"format"`
}

// Log formats accepted by LogConfig.Format.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// Default returns the default configuration, matching a stock Linux
// system.
func Default() *Config {
	return &Config{
		Library:   "libEGL.so.1",
		NodeUsage: headless.DefaultNodeUsage.String(),
		Paths: PathsConfig{
			SysRoot: "/sys",
			DevRoot: "/dev/dri",
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatAuto,
		},
	}
}

// Load loads configuration from the file named by
// BUREAU_HEADLESS_CONFIG. It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a bureau-headless config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// Default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.parse(path, data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) parse(path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// Strip comments and trailing commas before parsing as standard JSON.
		return json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return yaml.Unmarshal(data, c)
	}
}

func (c *Config) expandVariables() {
	c.Library = expandVars(c.Library)
	c.Paths.SysRoot = expandVars(c.Paths.SysRoot)
	c.Paths.DevRoot = expandVars(c.Paths.DevRoot)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Library == "" {
		errs = append(errs, errors.New("library is required"))
	}
	if _, err := headless.ParseNodeUsage(c.NodeUsage); err != nil {
		errs = append(errs, fmt.Errorf("node_usage: %w", err))
	}
	if !filepath.IsAbs(c.Paths.SysRoot) {
		errs = append(errs, fmt.Errorf("paths.sys_root must be an absolute path, got %q", c.Paths.SysRoot))
	}
	if !filepath.IsAbs(c.Paths.DevRoot) {
		errs = append(errs, fmt.Errorf("paths.dev_root must be an absolute path, got %q", c.Paths.DevRoot))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	formats := []string{FormatAuto, FormatText, FormatJSON}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	return errors.Join(errs...)
}

// Usage returns the parsed node usage. Call Validate first.
func (c *Config) Usage() headless.NodeUsage {
	usage, err := headless.ParseNodeUsage(c.NodeUsage)
	if err != nil {
		return headless.DefaultNodeUsage
	}
	return usage
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
