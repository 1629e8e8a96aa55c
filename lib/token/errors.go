// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"errors"
	"fmt"
)

// Errors returned by the verify/decrypt pipeline. Together with the
// armor-layer errors in lib/codec and the envelope errors in
// lib/seal these form the complete failure taxonomy: every decode
// transition fails with exactly one discriminant.
var (
	// ErrBadCanonical is returned when the canonical bytes do not
	// decode as a record tuple (wrong arity, wrong field types,
	// trailing data).
	ErrBadCanonical = errors.New("token: canonical decode failed")

	// ErrBadShape is returned when a decoded field violates a type
	// or length invariant. The concrete error is a *ShapeError
	// naming the field and the violated constraint.
	ErrBadShape = errors.New("token: field shape invariant violated")

	// ErrVersionUnsupported is returned for any record version other
	// than 1.
	ErrVersionUnsupported = errors.New("token: unsupported version")

	// ErrIDMismatch is returned when the recomputed content address
	// differs from the id carried by the record.
	ErrIDMismatch = errors.New("token: content address mismatch")

	// ErrBadSignature is returned when Ed25519 verification of the
	// domain-separated preimage fails.
	ErrBadSignature = errors.New("token: signature verification failed")

	// ErrWrongRecipient is returned by Decrypt when the envelope is
	// addressed to a different encryption key than the one derived
	// from the supplied secret. No AEAD open is attempted.
	ErrWrongRecipient = errors.New("token: message is addressed to a different recipient")
)

// ShapeError reports which field violated which constraint. It
// unwraps to ErrBadShape so callers can discriminate with errors.Is
// without losing the detail.
type ShapeError struct {
	// Field is the record field name (e.g., "verification_key").
	Field string

	// Constraint describes what was expected (e.g., "32 bytes").
	Constraint string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("token: field %s: want %s", e.Field, e.Constraint)
}

func (e *ShapeError) Unwrap() error { return ErrBadShape }

// shapeErrorf builds a *ShapeError with a formatted constraint.
func shapeErrorf(field, format string, args ...any) error {
	return &ShapeError{Field: field, Constraint: fmt.Sprintf(format, args...)}
}
