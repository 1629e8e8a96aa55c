// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"encoding/hex"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gxt-foundation/gxt/lib/codec"
	"github.com/gxt-foundation/gxt/lib/key"
	"github.com/gxt-foundation/gxt/lib/seal"
)

func testSecret(t *testing.T) key.Secret {
	t.Helper()
	secret, err := key.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return secret
}

func TestMakeKeyProducesParseableBundle(t *testing.T) {
	bundle, err := MakeKey()
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	if !strings.HasPrefix(bundle, "gxk:") {
		t.Fatalf("bundle = %q, want gxk: prefix", bundle)
	}
	if _, err := key.Parse(bundle); err != nil {
		t.Fatalf("Parse of fresh bundle: %v", err)
	}
}

func TestIDCardRoundtrip(t *testing.T) {
	secret := testSecret(t)

	card, err := MakeIDCard(secret, map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}
	if !strings.HasPrefix(card, "gxi:") {
		t.Fatalf("card = %q, want gxi: prefix", card)
	}

	envelope, err := Verify(card)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if envelope.Kind != KindID {
		t.Errorf("Kind = %q, want %q", envelope.Kind, KindID)
	}
	if envelope.Version != Version {
		t.Errorf("Version = %d, want %d", envelope.Version, Version)
	}
	if envelope.VerificationKey != hex.EncodeToString(secret.VerificationKey()) {
		t.Error("verification_key does not match the signing key")
	}
	encryptionKey := secret.EncryptionKey()
	if envelope.EncryptionKey != hex.EncodeToString(encryptionKey[:]) {
		t.Error("encryption_key does not match the derived key")
	}
	if envelope.Parent != nil {
		t.Errorf("Parent = %v, want nil", *envelope.Parent)
	}
	want := map[string]any{"name": "Bob"}
	if !reflect.DeepEqual(envelope.Payload, want) {
		t.Errorf("Payload = %#v, want %#v", envelope.Payload, want)
	}
}

func TestIDCardNullMeta(t *testing.T) {
	secret := testSecret(t)

	card, err := MakeIDCard(secret, nil)
	if err != nil {
		t.Fatalf("MakeIDCard(nil): %v", err)
	}
	envelope, err := Verify(card)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if envelope.Payload != nil {
		t.Errorf("Payload = %#v, want nil", envelope.Payload)
	}
}

func TestIDCardDeterministic(t *testing.T) {
	secret := testSecret(t)
	meta := map[string]any{"name": "Bob", "guild": "northwind"}

	first, err := MakeIDCard(secret, meta)
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}
	second, err := MakeIDCard(secret, meta)
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}
	if first != second {
		t.Fatal("ID card creation is not deterministic for identical inputs")
	}
}

func TestMessageRoundtrip(t *testing.T) {
	alice := testSecret(t)
	bob := testSecret(t)

	bobCard, err := MakeIDCard(bob, map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}

	message, err := MakeMessage(alice, bobCard, map[string]any{"hello": "world"}, nil)
	if err != nil {
		t.Fatalf("MakeMessage: %v", err)
	}
	if !strings.HasPrefix(message, "gxm:") {
		t.Fatalf("message = %q, want gxm: prefix", message)
	}

	// Verify alone never decrypts: the payload stays an envelope.
	verified, err := Verify(message)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if verified.Kind != KindMessage {
		t.Errorf("Kind = %q, want %q", verified.Kind, KindMessage)
	}
	if _, isMap := verified.Payload.(map[string]any); !isMap {
		t.Errorf("undecrypted Payload = %T, want the opaque envelope map", verified.Payload)
	}

	decrypted, err := Decrypt(message, bob)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	want := map[string]any{"hello": "world"}
	if !reflect.DeepEqual(decrypted.Payload, want) {
		t.Errorf("decrypted Payload = %#v, want %#v", decrypted.Payload, want)
	}
	if decrypted.VerificationKey != hex.EncodeToString(alice.VerificationKey()) {
		t.Error("message verification_key is not the sender's")
	}
}

func TestMessageWrongRecipient(t *testing.T) {
	alice := testSecret(t)
	bob := testSecret(t)
	carol := testSecret(t)

	bobCard, err := MakeIDCard(bob, map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}
	message, err := MakeMessage(alice, bobCard, map[string]any{"hello": "world"}, nil)
	if err != nil {
		t.Fatalf("MakeMessage: %v", err)
	}

	if _, err := Decrypt(message, carol); !errors.Is(err, ErrWrongRecipient) {
		t.Fatalf("Decrypt with carol's key: got %v, want ErrWrongRecipient", err)
	}
}

func TestMessageNonceFreshness(t *testing.T) {
	alice := testSecret(t)
	bob := testSecret(t)

	bobCard, err := MakeIDCard(bob, nil)
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}

	payload := map[string]any{"i": int64(1)}
	first, err := MakeMessage(alice, bobCard, payload, nil)
	if err != nil {
		t.Fatalf("MakeMessage: %v", err)
	}
	second, err := MakeMessage(alice, bobCard, payload, nil)
	if err != nil {
		t.Fatalf("MakeMessage: %v", err)
	}

	if first == second {
		t.Fatal("two messages with identical inputs are byte-identical (nonce reuse)")
	}
	for _, message := range []string{first, second} {
		decrypted, err := Decrypt(message, bob)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if !reflect.DeepEqual(decrypted.Payload, payload) {
			t.Errorf("Payload = %#v, want %#v", decrypted.Payload, payload)
		}
	}
}

func TestParentChain(t *testing.T) {
	alice := testSecret(t)
	bob := testSecret(t)

	bobCard, err := MakeIDCard(bob, map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}

	first, err := MakeMessage(alice, bobCard, map[string]any{"i": int64(1)}, nil)
	if err != nil {
		t.Fatalf("MakeMessage: %v", err)
	}
	firstView, err := Verify(first)
	if err != nil {
		t.Fatalf("Verify first: %v", err)
	}

	parent, err := hex.DecodeString(firstView.ID)
	if err != nil {
		t.Fatalf("decoding first id: %v", err)
	}
	second, err := MakeMessage(alice, bobCard, map[string]any{"i": int64(2)}, parent)
	if err != nil {
		t.Fatalf("MakeMessage with parent: %v", err)
	}

	secondView, err := Verify(second)
	if err != nil {
		t.Fatalf("Verify second: %v", err)
	}
	if secondView.Parent == nil || *secondView.Parent != firstView.ID {
		t.Fatalf("second.Parent = %v, want %q", secondView.Parent, firstView.ID)
	}
}

func TestMakeMessageRejectsBadParentLength(t *testing.T) {
	alice := testSecret(t)
	bob := testSecret(t)
	bobCard, err := MakeIDCard(bob, nil)
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}

	if _, err := MakeMessage(alice, bobCard, nil, []byte{1, 2, 3}); !errors.Is(err, ErrBadShape) {
		t.Fatalf("MakeMessage with 3-byte parent: got %v, want ErrBadShape", err)
	}
}

func TestMakeMessageRejectsMessageAsRecipient(t *testing.T) {
	alice := testSecret(t)
	bob := testSecret(t)

	bobCard, err := MakeIDCard(bob, nil)
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}
	message, err := MakeMessage(alice, bobCard, nil, nil)
	if err != nil {
		t.Fatalf("MakeMessage: %v", err)
	}

	if _, err := MakeMessage(alice, message, nil, nil); err == nil {
		t.Fatal("MakeMessage accepted a message token as the recipient ID card")
	}
}

func TestDecryptRejectsIDCard(t *testing.T) {
	bob := testSecret(t)
	card, err := MakeIDCard(bob, nil)
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}

	if _, err := Decrypt(card, bob); err == nil {
		t.Fatal("Decrypt accepted an ID card")
	}
}

func TestVerifyStableAcrossDecodes(t *testing.T) {
	secret := testSecret(t)
	card, err := MakeIDCard(secret, map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}

	first, err := Verify(card)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	second, err := Verify(card)
	if err != nil {
		t.Fatalf("Verify again: %v", err)
	}
	if first.ID != second.ID || first.Signature != second.Signature {
		t.Fatal("verifying the same token twice produced different views")
	}
}

func TestLegacyPrefixAccepted(t *testing.T) {
	secret := testSecret(t)
	card, err := MakeIDCard(secret, map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}

	legacy := codec.PrefixLegacy + strings.TrimPrefix(card, codec.PrefixIDCard)
	envelope, err := Verify(legacy)
	if err != nil {
		t.Fatalf("Verify legacy-prefixed token: %v", err)
	}
	if envelope.Kind != KindID {
		t.Errorf("Kind = %q, want %q", envelope.Kind, KindID)
	}
}

func TestVerifyRejectsKeyBundle(t *testing.T) {
	bundle, err := MakeKey()
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	if _, err := Verify(bundle); !errors.Is(err, codec.ErrBadPrefix) {
		t.Fatalf("Verify(key bundle): got %v, want ErrBadPrefix", err)
	}
}

func TestTamperDetection(t *testing.T) {
	alice := testSecret(t)
	bob := testSecret(t)
	bobCard, err := MakeIDCard(bob, map[string]any{"name": "Bob"})
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}
	message, err := MakeMessage(alice, bobCard, map[string]any{"hello": "world"}, nil)
	if err != nil {
		t.Fatalf("MakeMessage: %v", err)
	}

	body := strings.TrimPrefix(message, "gxm:")

	// Substitute every few positions with a different base58
	// character. Every mutation must fail verification — with which
	// discriminant depends on where the damage lands.
	for position := 0; position < len(body); position += 7 {
		replacement := byte('2')
		if body[position] == replacement {
			replacement = '3'
		}
		tampered := "gxm:" + body[:position] + string(replacement) + body[position+1:]
		if tampered == message {
			continue
		}
		if _, err := Verify(tampered); err == nil {
			t.Fatalf("Verify accepted a token tampered at position %d", position)
		}
	}
}

func TestVerifyRejectsOversizedPayload(t *testing.T) {
	secret := testSecret(t)

	// A payload comfortably past the 64 KiB canonical ceiling.
	huge := strings.Repeat("x", codec.MaxCanonicalSize+1)
	if _, err := MakeIDCard(secret, huge); !errors.Is(err, codec.ErrTokenTooLarge) {
		t.Fatalf("MakeIDCard oversized: got %v, want ErrTokenTooLarge", err)
	}
}

func TestEnvelopeFromMustMatchRecordKey(t *testing.T) {
	// Hand-assemble a message whose envelope "from" disagrees with
	// the record's encryption_key. The signature is valid (the
	// sender signed the inconsistent record), so only the envelope
	// consistency check can catch it.
	alice := testSecret(t)
	bob := testSecret(t)
	mallory := testSecret(t)

	plaintext, err := codec.Marshal(map[string]any{"hello": "world"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	envelope, err := seal.Seal(mallory.EncryptionSecret(), bob.EncryptionKey(), plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	sealed, err := codec.Marshal(envelope)
	if err != nil {
		t.Fatalf("Marshal envelope: %v", err)
	}

	tokenString, err := build(alice, KindMessage, sealed, nil, codec.PrefixMessage)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := Verify(tokenString); !errors.Is(err, seal.ErrInvalidEnvelope) {
		t.Fatalf("Verify inconsistent envelope: got %v, want ErrInvalidEnvelope", err)
	}
}
