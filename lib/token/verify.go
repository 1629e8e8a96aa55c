// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"crypto/ed25519"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/gxt-foundation/gxt/lib/codec"
	"github.com/gxt-foundation/gxt/lib/key"
)

// Envelope is the structured view of a verified token. Byte fields
// are surfaced as lowercase hex strings; Parent is nil when the token
// has no parent edge.
type Envelope struct {
	Version         uint64  `json:"version"`
	VerificationKey string  `json:"verification_key"`
	EncryptionKey   string  `json:"encryption_key"`
	Kind            Kind    `json:"kind"`
	Payload         any     `json:"payload"`
	Parent          *string `json:"parent"`
	ID              string  `json:"id"`
	Signature       string  `json:"signature"`
}

// Verify decodes a token string, enforces the record invariants,
// recomputes the content address, and checks the signature. It never
// decrypts: for a message the returned Payload is the opaque
// encryption envelope, decoded but not opened.
func Verify(tokenString string) (*Envelope, error) {
	rec, err := verifyRecord(tokenString)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := codec.Unmarshal(rec.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrBadCanonical, err)
	}
	return view(rec, payload), nil
}

// Decrypt verifies the token, then opens its encryption envelope with
// the recipient's secret and returns the view with Payload replaced
// by the decrypted value. Verification always happens first: no
// plaintext is ever produced from a token with an invalid signature.
//
// Fails with ErrWrongRecipient — before any AEAD work — when the
// envelope is addressed to a different encryption key than the one
// derived from secret.
func Decrypt(tokenString string, secret key.Secret) (*Envelope, error) {
	rec, err := verifyRecord(tokenString)
	if err != nil {
		return nil, err
	}
	if Kind(rec.Kind) != KindMessage {
		return nil, fmt.Errorf("token: decrypt requires kind %q, got %q", KindMessage, rec.Kind)
	}

	envelope, err := rec.envelope()
	if err != nil {
		return nil, err
	}

	recipientKey := secret.EncryptionKey()
	if subtle.ConstantTimeCompare(envelope.To, recipientKey[:]) != 1 {
		return nil, ErrWrongRecipient
	}

	plaintext, err := envelope.Open(secret.EncryptionSecret())
	if err != nil {
		return nil, err
	}

	var payload any
	if err := codec.Unmarshal(plaintext, &payload); err != nil {
		return nil, fmt.Errorf("%w: decrypted payload: %v", ErrBadCanonical, err)
	}
	return view(rec, payload), nil
}

// verifyRecord runs the full decode pipeline short of payload
// interpretation: unarmor, canonical decode, shape checks, content
// address recomputation, signature verification, and (for messages)
// envelope shape validation.
func verifyRecord(tokenString string) (*record, error) {
	prefix, canonical, err := codec.Unarmor(tokenString)
	if err != nil {
		return nil, err
	}
	if prefix == codec.PrefixKey {
		return nil, fmt.Errorf("%w: %q is a key bundle, not a token record", codec.ErrBadPrefix, prefix)
	}

	var rec record
	if err := codec.Unmarshal(canonical, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCanonical, err)
	}
	if err := rec.checkShape(prefix); err != nil {
		return nil, err
	}

	preimage, err := canonicalPreimage(&rec)
	if err != nil {
		return nil, err
	}

	id := blake3.Sum256(preimage)
	if subtle.ConstantTimeCompare(id[:], rec.ID) != 1 {
		return nil, ErrIDMismatch
	}

	if !ed25519.Verify(ed25519.PublicKey(rec.VerificationKey), signedBytes(preimage), rec.Signature) {
		return nil, ErrBadSignature
	}

	if Kind(rec.Kind) == KindMessage {
		if _, err := rec.envelope(); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

// view builds the hex-surfaced envelope view from a verified record.
func view(rec *record, payload any) *Envelope {
	envelope := &Envelope{
		Version:         rec.Version,
		VerificationKey: hex.EncodeToString(rec.VerificationKey),
		EncryptionKey:   hex.EncodeToString(rec.EncryptionKey),
		Kind:            Kind(rec.Kind),
		Payload:         payload,
		ID:              hex.EncodeToString(rec.ID),
		Signature:       hex.EncodeToString(rec.Signature),
	}
	if len(rec.Parent) == 32 {
		parent := hex.EncodeToString(rec.Parent)
		envelope.Parent = &parent
	}
	return envelope
}
