// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for bureau-headless.
//
// Configuration is loaded from a single file specified by either the
// BUREAU_HEADLESS_CONFIG environment variable (via [Load]) or a
// --config flag (via [LoadFile]). There is no automatic file search:
// without either, commands run on [Default].
//
// Files ending in .json or .jsonc are parsed as JSON after stripping
// comments and trailing commas; every other file is parsed as YAML.
// Values in the file are merged over [Default], so a file only needs
// the fields it changes.
//
// ${VAR} and ${VAR:-default} patterns are expanded in the library name
// and path fields after loading.
//
// This package depends on no other module packages except
// lib/headless, whose node usage names it validates.
package config
