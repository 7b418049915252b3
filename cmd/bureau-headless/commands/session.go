// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/headless/cmd/bureau-headless/cli"
	"github.com/bureau-foundation/headless/lib/config"
	"github.com/bureau-foundation/headless/lib/drm"
	"github.com/bureau-foundation/headless/lib/egl"
	"github.com/bureau-foundation/headless/lib/egl/native"
	"github.com/bureau-foundation/headless/lib/headless"
)

// SessionParams are the flags shared by every command that loads
// configuration.
type SessionParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"config file (default: $BUREAU_HEADLESS_CONFIG, else built-in defaults)"`
	Library    string `json:"-" flag:"library" desc:"EGL client library to load (overrides config)"`
	LogLevel   string `json:"-" flag:"log-level" desc:"debug, info, warn or error (overrides config)"`
}

// session is the state of one command run: configuration, logger, and
// a headless runtime that loads the configured library on first use.
type session struct {
	config   *config.Config
	logger   *slog.Logger
	resolver drm.Resolver
	runtime  *headless.Runtime

	// library is set once the runtime has loaded it.
	library *native.Library
}

func (p *SessionParams) open() (*session, error) {
	cfg, err := p.loadConfig()
	if err != nil {
		return nil, err
	}
	if p.Library != "" {
		cfg.Library = p.Library
	}
	if p.LogLevel != "" {
		cfg.Log.Level = p.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.Log.SlogLevel()
	s := &session{
		config:   cfg,
		logger:   cli.NewCommandLogger(level, cfg.Log.Format),
		resolver: drm.Resolver{SysRoot: cfg.Paths.SysRoot, DevRoot: cfg.Paths.DevRoot},
	}
	s.runtime = headless.New(headless.Options{
		Open:     s.openLibrary,
		Resolver: s.resolver,
		Logger:   s.logger,
	})
	return s, nil
}

func (p *SessionParams) loadConfig() (*config.Config, error) {
	switch {
	case p.ConfigPath != "":
		return config.LoadFile(p.ConfigPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		return config.Load()
	}
	return config.Default(), nil
}

func (s *session) openLibrary() (egl.Platform, error) {
	library, err := native.Open(s.config.Library)
	if err != nil {
		return nil, err
	}
	s.library = library
	return library, nil
}

// Close unloads the EGL library if it was loaded. Displays created
// through it must be terminated first.
func (s *session) Close() error {
	if s.library == nil {
		return nil
	}
	return s.library.Close()
}

// requireSupport reports on stderr and returns an exit error when
// headless displays are unsupported.
func (s *session) requireSupport() error {
	if s.runtime.CheckSupport() {
		return nil
	}
	fmt.Fprintf(os.Stderr, "headless EGL displays are not supported by %s (rerun with --log-level debug for the reason)\n", s.config.Library)
	return &cli.ExitError{Code: 1}
}
