// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package key

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gxt-foundation/gxt/lib/codec"
)

// bundleRecord is the canonical form of a key bundle: a 1-element
// tuple holding the raw seed. Encoded through the same pipeline as
// full tokens so key files are themselves valid tokens.
type bundleRecord struct {
	_      struct{} `cbor:",toarray"`
	Secret []byte
}

// Token encodes the secret as a "gxk:" key bundle token.
func (s Secret) Token() (string, error) {
	canonical, err := codec.Marshal(bundleRecord{Secret: s[:]})
	if err != nil {
		return "", fmt.Errorf("key: encoding bundle: %w", err)
	}
	return codec.Armor(codec.PrefixKey, canonical)
}

// Parse reads a signing secret from its textual form: a "gxk:" key
// bundle token (legacy "gxt:" accepted), or a raw 64-character hex
// seed for interop with older tools.
func Parse(text string) (Secret, error) {
	text = strings.TrimSpace(text)

	if !strings.Contains(text, ":") {
		raw, err := hex.DecodeString(text)
		if err != nil {
			return Secret{}, fmt.Errorf("key: parsing hex seed: %w", err)
		}
		return FromBytes(raw)
	}

	prefix, canonical, err := codec.Unarmor(text)
	if err != nil {
		return Secret{}, err
	}
	if prefix != codec.PrefixKey && prefix != codec.PrefixLegacy {
		return Secret{}, fmt.Errorf("%w: %q is not a key bundle prefix", codec.ErrBadPrefix, prefix)
	}

	var bundle bundleRecord
	if err := codec.Unmarshal(canonical, &bundle); err != nil {
		return Secret{}, fmt.Errorf("key: decoding bundle: %w", err)
	}
	return FromBytes(bundle.Secret)
}
