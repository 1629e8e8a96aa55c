// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

// Package seal implements GXT's hybrid authenticated encryption: an
// X25519 key agreement feeding a BLAKE3-derived XChaCha20-Poly1305
// key, with a fresh random 24-byte nonce per message.
//
// The sealed form is a small envelope {to, from, alg, n24, ct} that
// replaces the payload of an encrypted token. "to" and "from" are the
// recipient's and sender's X25519 public keys; because X25519 is
// symmetric in its arguments, either side can derive the same AEAD
// key from its own secret and the other's public key.
//
// Nonces must never repeat under the same key pair. Seal draws a
// fresh nonce from crypto/rand on every call and there is no API for
// supplying one.
package seal
