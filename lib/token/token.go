// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"crypto/ed25519"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/gxt-foundation/gxt/lib/codec"
	"github.com/gxt-foundation/gxt/lib/key"
	"github.com/gxt-foundation/gxt/lib/seal"
)

// signatureDomain is prepended to the canonical preimage before
// signing. Any protocol reusing GXT keys must sign under a different
// prefix, so a signature minted here can never be replayed as
// something else.
const signatureDomain = "GXT"

// MakeKey generates a fresh signing secret and returns it as a "gxk:"
// key bundle token.
func MakeKey() (string, error) {
	secret, err := key.Generate()
	if err != nil {
		return "", err
	}
	return secret.Token()
}

// MakeIDCard builds an unencrypted ID card token sharing the secret
// holder's public keys. meta may be any JSON-representable value,
// including nil.
func MakeIDCard(secret key.Secret, meta any) (string, error) {
	payload, err := codec.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("token: encoding meta: %w", err)
	}
	return build(secret, KindID, payload, nil, codec.PrefixIDCard)
}

// MakeMessage builds a message token encrypted to the holder of the
// given ID card. The recipient card is verified before its encryption
// key is trusted. parent is either nil or the 32-byte id of another
// token; the protocol records the edge but does not interpret it.
func MakeMessage(secret key.Secret, recipientCard string, payload any, parent []byte) (string, error) {
	if len(parent) != 0 && len(parent) != 32 {
		return "", shapeErrorf("parent", "empty or 32 bytes, got %d", len(parent))
	}

	recipient, err := verifyRecord(recipientCard)
	if err != nil {
		return "", fmt.Errorf("token: verifying recipient ID card: %w", err)
	}
	if Kind(recipient.Kind) != KindID {
		return "", fmt.Errorf("token: recipient token is kind %q, want %q", recipient.Kind, KindID)
	}
	var recipientKey key.PublicKey
	copy(recipientKey[:], recipient.EncryptionKey)

	plaintext, err := codec.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("token: encoding payload: %w", err)
	}

	envelope, err := seal.Seal(secret.EncryptionSecret(), recipientKey, plaintext)
	if err != nil {
		return "", err
	}
	sealed, err := codec.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("token: encoding envelope: %w", err)
	}

	return build(secret, KindMessage, sealed, parent, codec.PrefixMessage)
}

// build assembles the record, content-addresses and signs it, and
// emits the armored string.
func build(secret key.Secret, kind Kind, payload codec.RawMessage, parent []byte, prefix string) (string, error) {
	encryptionKey := secret.EncryptionKey()
	rec := record{
		Version:         Version,
		VerificationKey: secret.VerificationKey(),
		EncryptionKey:   encryptionKey[:],
		Kind:            string(kind),
		Payload:         payload,
		Parent:          normalizeParent(parent),
	}

	preimage, err := canonicalPreimage(&rec)
	if err != nil {
		return "", err
	}

	id := blake3.Sum256(preimage)
	rec.ID = id[:]
	rec.Signature = ed25519.Sign(secret.Signer(), signedBytes(preimage))

	canonical, err := codec.Marshal(&rec)
	if err != nil {
		return "", fmt.Errorf("token: encoding record: %w", err)
	}
	return codec.Armor(prefix, canonical)
}

// canonicalPreimage encodes the record with id and signature blanked
// to empty byte strings. The parent field is preserved — it is part
// of the signed preimage.
func canonicalPreimage(r *record) ([]byte, error) {
	blanked := *r
	blanked.ID = []byte{}
	blanked.Signature = []byte{}
	preimage, err := codec.Marshal(&blanked)
	if err != nil {
		return nil, fmt.Errorf("token: encoding canonical preimage: %w", err)
	}
	return preimage, nil
}

// signedBytes prepends the signature domain to the preimage.
func signedBytes(preimage []byte) []byte {
	signed := make([]byte, len(signatureDomain)+len(preimage))
	copy(signed, signatureDomain)
	copy(signed[len(signatureDomain):], preimage)
	return signed
}

// normalizeParent maps a nil parent to the canonical empty byte
// string so "no parent" always encodes identically.
func normalizeParent(parent []byte) []byte {
	if len(parent) == 0 {
		return []byte{}
	}
	normalized := make([]byte, len(parent))
	copy(normalized, parent)
	return normalized
}
