// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"crypto/ed25519"
	"fmt"

	"github.com/gxt-foundation/gxt/lib/codec"
	"github.com/gxt-foundation/gxt/lib/seal"
)

// Version is the only record version this implementation emits or
// accepts.
const Version = 1

// Kind discriminates the two token kinds.
type Kind string

const (
	// KindID is an unencrypted ID card sharing the holder's keys.
	KindID Kind = "id"

	// KindMessage is a message encrypted to one recipient.
	KindMessage Kind = "msg"
)

// record is the canonical 8-tuple. Field order is the wire layout —
// reordering fields changes every content address and signature in
// existence.
type record struct {
	_               struct{} `cbor:",toarray"`
	Version         uint64
	VerificationKey []byte
	EncryptionKey   []byte
	Kind            string
	Payload         codec.RawMessage
	Parent          []byte
	ID              []byte
	Signature       []byte
}

// checkShape validates the field type and length invariants of a
// decoded record. The prefix is the scheme tag the token arrived
// under; kind-specific prefixes must agree with the record's kind.
func (r *record) checkShape(prefix string) error {
	if r.Version != Version {
		return fmt.Errorf("%w: %d", ErrVersionUnsupported, r.Version)
	}
	if len(r.VerificationKey) != ed25519.PublicKeySize {
		return shapeErrorf("verification_key", "32 bytes, got %d", len(r.VerificationKey))
	}
	if len(r.EncryptionKey) != 32 {
		return shapeErrorf("encryption_key", "32 bytes, got %d", len(r.EncryptionKey))
	}
	switch Kind(r.Kind) {
	case KindID:
		if prefix == codec.PrefixMessage {
			return shapeErrorf("kind", "\"msg\" under prefix %q, got %q", prefix, r.Kind)
		}
	case KindMessage:
		if prefix == codec.PrefixIDCard {
			return shapeErrorf("kind", "\"id\" under prefix %q, got %q", prefix, r.Kind)
		}
	default:
		return shapeErrorf("kind", "\"id\" or \"msg\", got %q", r.Kind)
	}
	if len(r.Parent) != 0 && len(r.Parent) != 32 {
		return shapeErrorf("parent", "empty or 32 bytes, got %d", len(r.Parent))
	}
	if len(r.ID) != 32 {
		return shapeErrorf("id", "32 bytes, got %d", len(r.ID))
	}
	if len(r.Signature) != ed25519.SignatureSize {
		return shapeErrorf("signature", "64 bytes, got %d", len(r.Signature))
	}
	if len(r.Payload) == 0 {
		return shapeErrorf("payload", "a canonical value, got nothing")
	}
	return nil
}

// envelope decodes and validates the message payload as an
// encryption envelope. Only meaningful for KindMessage records. The
// envelope's redundant from field must match the record's
// encryption_key — a mismatch means the token was assembled
// inconsistently and cannot have come from a conforming encoder.
func (r *record) envelope() (*seal.Envelope, error) {
	var env seal.Envelope
	if err := codec.Unmarshal(r.Payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", seal.ErrInvalidEnvelope, err)
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if string(env.From) != string(r.EncryptionKey) {
		return nil, fmt.Errorf("%w: from does not match the record's encryption key", seal.ErrInvalidEnvelope)
	}
	return &env, nil
}
