// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

// Package service provides the HTTP scaffolding for GXT's long-lived
// processes — today just the timelock service behind "gxt serve".
//
// The core token library is pure and has no use for any of this; the
// package exists so binaries compose a listener with graceful
// shutdown, readiness signalling, and structured logging instead of
// each open-coding the same lifecycle.
package service
