// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint error handler. It
// reports errors from run() to stderr when the structured logger may
// not be initialized yet, and exits.
package process
