// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides GXT's canonical encoding pipeline.
//
// A GXT token is built from two layers, both owned by this package:
//
//   - The canonical binary layer: CBOR with Core Deterministic
//     Encoding (RFC 8949 §4.2) — sorted map keys, smallest integer
//     encoding, no indefinite-length items. Same logical data always
//     produces identical bytes. The canonical bytes are the input to
//     content addressing and signing, so determinism here is part of
//     the wire contract, not an optimization.
//   - The armor layer: the printable outer form
//     "<prefix>:<base58btc(brotli(canonical))>". Brotli runs at
//     quality 5 with a 20-bit window; decoders accept any valid
//     Brotli stream. Base58 uses the Bitcoin alphabet.
//
// For buffer-oriented canonical operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For the outer string form:
//
//	token, err := codec.Armor(codec.PrefixIDCard, data)
//	prefix, data, err := codec.Unarmor(token)
//
// Canonical encodings are capped at 64 KiB. Armor rejects larger
// inputs with ErrTokenTooLarge; Unarmor rejects streams that would
// decompress past the cap, so a small token cannot expand into an
// arbitrarily large allocation.
package codec
