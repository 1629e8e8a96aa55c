// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

// Package token implements the GXT token envelope: a signed,
// content-addressed record carrying an opaque payload, printable as
// "<prefix>:<base58>".
//
// A record is a fixed 8-tuple — version, verification key, encryption
// key, kind, payload, parent, id, signature — serialized with the
// deterministic canonical encoding from lib/codec. The id is the
// BLAKE3 hash of the canonical preimage (the record with id and
// signature blanked); the signature is Ed25519 over the domain
// separator "GXT" followed by the same preimage. The parent field is
// part of the preimage, so a token commits to its parent before its
// own id exists — DAG edges cannot form cycles.
//
// Two token kinds exist. An ID card ("id", prefix gxi) carries its
// payload in the clear and shares the holder's public keys. A message
// ("msg", prefix gxm) carries a seal.Envelope encrypted to one
// recipient's encryption key.
//
// Consuming a token is a one-way, fail-closed pipeline:
//
//	raw string → strip prefix → base58 decode → brotli decode
//	  → canonical decode → shape checks → id recompute → signature
//	  → (messages, on request) AEAD open
//
// Each arrow has its own error discriminant, and signature
// verification always precedes decryption: a caller never sees
// plaintext from a token whose outer signature did not verify.
package token
