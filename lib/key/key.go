// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package key

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/curve25519"
)

// SecretSize is the size of a signing secret: an Ed25519 seed.
const SecretSize = 32

// encryptionContext is the BLAKE3 derive_key context string for
// deriving the X25519 scalar from the signing seed. Protocol constant
// — changing it severs every existing encryption keypair from its
// signing key.
const encryptionContext = "GXT-ENC-X25519-FROM-ED25519"

// ErrRandomnessUnavailable is returned by Generate when the
// cryptographic randomness source fails.
var ErrRandomnessUnavailable = errors.New("key: randomness source unavailable")

// Secret is a 32-byte signing secret (Ed25519 seed). The zero value
// is a technically valid seed; nothing in this package treats it
// specially, so callers must not use it as a sentinel.
type Secret [SecretSize]byte

// EncryptionSecret is a clamped X25519 scalar derived from a Secret.
type EncryptionSecret [32]byte

// PublicKey is a 32-byte X25519 public key.
type PublicKey [32]byte

// Generate samples a fresh signing secret from crypto/rand.
func Generate() (Secret, error) {
	var secret Secret
	if _, err := io.ReadFull(rand.Reader, secret[:]); err != nil {
		return Secret{}, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	return secret, nil
}

// FromBytes copies a 32-byte seed into a Secret.
func FromBytes(raw []byte) (Secret, error) {
	var secret Secret
	if len(raw) != SecretSize {
		return Secret{}, fmt.Errorf("key: signing secret is %d bytes, want %d", len(raw), SecretSize)
	}
	copy(secret[:], raw)
	return secret, nil
}

// Signer expands the seed into the Ed25519 private key used for
// signing. Ed25519 signing is deterministic, so a single Secret may
// be used concurrently without coordination.
func (s Secret) Signer() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(s[:])
}

// VerificationKey returns the Ed25519 public key for the seed.
func (s Secret) VerificationKey() ed25519.PublicKey {
	return s.Signer().Public().(ed25519.PublicKey)
}

// EncryptionSecret derives the X25519 scalar from the seed:
// BLAKE3 derive_key under the protocol context, then RFC 7748
// clamping (clear bits 0-2 of byte 0, clear bit 7 and set bit 6 of
// byte 31).
func (s Secret) EncryptionSecret() EncryptionSecret {
	var scalar EncryptionSecret
	blake3.DeriveKey(encryptionContext, s[:], scalar[:])
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
	return scalar
}

// EncryptionKey returns the X25519 public key for the seed. This is
// the "encryption_key" field of every token the holder emits.
func (s Secret) EncryptionKey() PublicKey {
	return s.EncryptionSecret().Public()
}

// Public computes the X25519 public key: scalar multiplication with
// the standard base point.
func (e EncryptionSecret) Public() PublicKey {
	raw, err := curve25519.X25519(e[:], curve25519.Basepoint)
	if err != nil {
		// X25519 only errors when the result is the all-zero point,
		// which cannot happen for a clamped scalar times the base
		// point.
		panic("key: X25519 base point multiplication failed: " + err.Error())
	}
	var public PublicKey
	copy(public[:], raw)
	return public
}

// SharedSecret computes the X25519 Diffie-Hellman shared secret
// between this scalar and a peer's public key. Returns an error for
// low-order peer keys (all-zero shared secret).
func (e EncryptionSecret) SharedSecret(peer PublicKey) ([]byte, error) {
	shared, err := curve25519.X25519(e[:], peer[:])
	if err != nil {
		return nil, fmt.Errorf("key: X25519 shared secret: %w", err)
	}
	return shared, nil
}
