// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package timelock

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/gxt-foundation/gxt/lib/key"
)

// HKDF parameters. Protocol constants: changing any of them moves
// every timelock onto a different key.
var (
	saltTimelock = []byte("gxt-timelock-salt:v1")
	infoTimelock = []byte("gxt-timelock|kdf:v1")
	infoSecret   = []byte("gxt-x25519-sk:v1")
)

// Timelock names a derivable key: an RFC 3339 timestamp plus a free
// label so multiple independent locks can share a timestamp.
type Timelock struct {
	Timestamp string `json:"timestamp"`
	Label     string `json:"label"`
}

// Release is the payload of a private-key release message: the
// timelock and its signing secret as hex.
type Release struct {
	Timestamp string `json:"timestamp"`
	Label     string `json:"label"`
	SecretKey string `json:"secret_key"`
}

// Derive computes the signing secret for a timelock. Two HKDF-SHA256
// stages: master plus the "T=<timestamp>|L=<label>" context to an
// intermediate seed, then the seed to the secret. Deterministic —
// the same master and timelock always yield the same key.
func Derive(master key.Secret, lock Timelock) (key.Secret, error) {
	context := fmt.Sprintf("T=%s|L=%s", lock.Timestamp, lock.Label)

	info := make([]byte, 0, len(infoTimelock)+len(context))
	info = append(info, infoTimelock...)
	info = append(info, context...)

	var seed [32]byte
	if _, err := io.ReadFull(hkdf.New(sha256.New, master[:], saltTimelock, info), seed[:]); err != nil {
		return key.Secret{}, fmt.Errorf("timelock: HKDF seed expansion: %w", err)
	}

	var secret key.Secret
	if _, err := io.ReadFull(hkdf.New(sha256.New, seed[:], saltTimelock, infoSecret), secret[:]); err != nil {
		return key.Secret{}, fmt.Errorf("timelock: HKDF secret expansion: %w", err)
	}
	return secret, nil
}
