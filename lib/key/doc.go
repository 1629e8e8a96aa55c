// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

// Package key provides GXT's key primitives.
//
// A user holds exactly one long-term secret: a 32-byte Ed25519 seed.
// Everything else is derived from it. The X25519 encryption secret is
// a pure function of the signing secret via BLAKE3 derive_key under a
// dedicated context string, so even if the seed is reused by another
// protocol the derived scalar never collides with anything that
// protocol computes.
//
// Secrets are plain value types with no lifecycle. The package never
// retains key material across calls; callers that want zeroization own
// it themselves.
//
// Key bundles are tokens too: the seed travels as a "gxk:" token
// carrying a canonical 1-tuple [secret]. Parse also accepts a raw
// 64-character hex seed for interop with older tools.
package key
