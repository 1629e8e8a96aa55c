// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package seal

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/gxt-foundation/gxt/lib/key"
)

// Algorithm is the only AEAD this protocol speaks. The envelope
// carries it as a string so a future algorithm can be introduced
// without changing the envelope shape.
const Algorithm = "xchacha20poly1305"

// NonceSize is the XChaCha20-Poly1305 nonce size (24 bytes).
const NonceSize = chacha20poly1305.NonceSizeX

// aeadContext is the BLAKE3 derive_key context string turning the raw
// X25519 shared secret into the AEAD key. Protocol constant.
const aeadContext = "GXT-ENC-XCHACHA20POLY1305"

var (
	// ErrInvalidEnvelope is returned when a message payload does not
	// match the encryption envelope shape.
	ErrInvalidEnvelope = errors.New("seal: payload is not a valid encryption envelope")

	// ErrDecryptionFailed is returned when the AEAD tag does not
	// authenticate: wrong key, tampered ciphertext, or a nonce that
	// does not belong to this ciphertext.
	ErrDecryptionFailed = errors.New("seal: AEAD authentication failed")
)

// Envelope is the encrypted payload of a message token.
type Envelope struct {
	// To is the recipient's X25519 public key.
	To []byte `cbor:"to"`

	// From is the sender's X25519 public key. Redundant with the
	// record's encryption_key field but retained so the envelope is
	// self-contained.
	From []byte `cbor:"from"`

	// Alg names the AEAD. Always Algorithm.
	Alg string `cbor:"alg"`

	// Nonce is the 24-byte random nonce, fresh per message.
	Nonce []byte `cbor:"n24"`

	// Ciphertext is the AEAD output with the Poly1305 tag appended.
	Ciphertext []byte `cbor:"ct"`
}

// Seal encrypts plaintext from the sender to the recipient's X25519
// public key and returns the filled envelope.
func Seal(sender key.EncryptionSecret, recipient key.PublicKey, plaintext []byte) (*Envelope, error) {
	aead, err := pairAEAD(sender, recipient)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", key.ErrRandomnessUnavailable, err)
	}

	senderPublic := sender.Public()
	return &Envelope{
		To:         recipient[:],
		From:       senderPublic[:],
		Alg:        Algorithm,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// Open decrypts the envelope with the recipient's X25519 secret. The
// sender's public key is taken from the From field. Callers are
// responsible for checking that To matches the recipient before
// calling — Open only reports ErrDecryptionFailed for a mismatched
// key, which is less informative.
func (e *Envelope) Open(recipient key.EncryptionSecret) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	var from key.PublicKey
	copy(from[:], e.From)
	aead, err := pairAEAD(recipient, from)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, e.Nonce, e.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// Validate checks the envelope shape: key and nonce lengths, the
// algorithm constant, and that the ciphertext is at least one AEAD
// tag long.
func (e *Envelope) Validate() error {
	if len(e.To) != len(key.PublicKey{}) {
		return fmt.Errorf("%w: to is %d bytes, want 32", ErrInvalidEnvelope, len(e.To))
	}
	if len(e.From) != len(key.PublicKey{}) {
		return fmt.Errorf("%w: from is %d bytes, want 32", ErrInvalidEnvelope, len(e.From))
	}
	if e.Alg != Algorithm {
		return fmt.Errorf("%w: algorithm %q, want %q", ErrInvalidEnvelope, e.Alg, Algorithm)
	}
	if len(e.Nonce) != NonceSize {
		return fmt.Errorf("%w: nonce is %d bytes, want %d", ErrInvalidEnvelope, len(e.Nonce), NonceSize)
	}
	if len(e.Ciphertext) < chacha20poly1305.Overhead {
		return fmt.Errorf("%w: ciphertext is %d bytes, shorter than the AEAD tag", ErrInvalidEnvelope, len(e.Ciphertext))
	}
	return nil
}

// pairAEAD derives the per-pair XChaCha20-Poly1305 cipher from one
// side's secret and the other side's public key. Both directions of a
// pair derive the same cipher.
func pairAEAD(own key.EncryptionSecret, peer key.PublicKey) (cipher.AEAD, error) {
	shared, err := own.SharedSecret(peer)
	if err != nil {
		return nil, err
	}

	var aeadKey [32]byte
	blake3.DeriveKey(aeadContext, shared, aeadKey[:])

	aead, err := chacha20poly1305.NewX(aeadKey[:])
	if err != nil {
		// NewX only rejects keys that are not 32 bytes, which the
		// fixed-size array rules out.
		panic("seal: XChaCha20-Poly1305 initialization failed: " + err.Error())
	}
	return aead, nil
}
