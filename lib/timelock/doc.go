// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

// Package timelock derives time-labelled GXT keys from a single
// master secret and serves them over HTTP.
//
// A timelock is a (timestamp, label) pair. The key for a timelock is
// a pure HKDF-SHA256 function of the master secret and the pair, so
// the service holds one secret and can hand out the ID card for any
// future timestamp on demand. The corresponding private key is
// released only once the timestamp has passed — and only encrypted to
// the requester's own ID card, so the release channel needs no
// transport security of its own.
//
// Anyone can therefore encrypt a message "to the future": fetch the
// public ID card for next Friday, seal to it, and know the service
// will not reveal the matching secret before then. The scheme trusts
// the service operator; it is a convenience lock, not a cryptographic
// time capsule.
package timelock
