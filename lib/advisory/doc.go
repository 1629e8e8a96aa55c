// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

// Package advisory defines the optional shared payload vocabulary for
// trade exchanges: orders, responses, items, effects, and modifiers.
//
// Nothing in the token core interprets payloads — a message carrying
// a TradeOrder is opaque bytes to the codec and the verifier. This
// package exists so independent game integrations that want to talk
// trades agree on one shape instead of inventing near-identical ones.
// Peers are free to ignore it and exchange their own JSON.
//
// Variant-carrying types (TradeResult, ItemKind, Effect, Attribute)
// use a "kind" discriminator string plus variant-specific fields,
// surfaced through json tags so the same structs serve both the
// canonical CBOR payload encoding and plain JSON tooling.
package advisory
