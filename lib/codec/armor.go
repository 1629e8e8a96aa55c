// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/mr-tron/base58"
)

// Token scheme prefixes. Encoders emit the kind-specific prefix; the
// legacy unified prefix is accepted on decode only.
const (
	// PrefixKey marks a private key bundle token.
	PrefixKey = "gxk"

	// PrefixIDCard marks an unencrypted ID card token.
	PrefixIDCard = "gxi"

	// PrefixMessage marks an encrypted message token.
	PrefixMessage = "gxm"

	// PrefixLegacy is the unified prefix emitted by old encoders.
	// Accepted by Unarmor for backward compatibility, never emitted.
	PrefixLegacy = "gxt"
)

// MaxCanonicalSize is the ceiling on the canonical (pre-compression)
// encoding of any token. Armor rejects larger inputs; Unarmor stops
// decompressing past this size. Protocol constant.
const MaxCanonicalSize = 64 * 1024

// Brotli parameters for the armor layer. Protocol constants on the
// encode side; decoders accept any valid Brotli stream.
const (
	brotliQuality    = 5
	brotliWindowBits = 20
)

// Armor layer errors. Each maps to one transition of the decode state
// machine, so callers can report exactly where a token went bad.
var (
	ErrTokenTooLarge  = errors.New("codec: canonical encoding exceeds size ceiling")
	ErrBadPrefix      = errors.New("codec: missing or unknown token prefix")
	ErrBadBase58      = errors.New("codec: base58 decode failed")
	ErrBadCompression = errors.New("codec: brotli decode failed")
)

// Armor wraps canonical bytes in the printable outer form
// "<prefix>:<base58btc(brotli(canonical))>".
func Armor(prefix string, canonical []byte) (string, error) {
	if len(canonical) > MaxCanonicalSize {
		return "", fmt.Errorf("%w: %d bytes, ceiling %d", ErrTokenTooLarge, len(canonical), MaxCanonicalSize)
	}

	var compressed bytes.Buffer
	writer := brotli.NewWriterOptions(&compressed, brotli.WriterOptions{
		Quality: brotliQuality,
		LGWin:   brotliWindowBits,
	})
	if _, err := writer.Write(canonical); err != nil {
		return "", fmt.Errorf("compressing canonical bytes: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing brotli stream: %w", err)
	}

	return prefix + ":" + base58.Encode(compressed.Bytes()), nil
}

// Unarmor strips the prefix, base58-decodes the body, and
// decompresses the Brotli stream back to canonical bytes. Leading and
// trailing whitespace is tolerated — tokens travel through chat and
// paste buffers that love to append newlines.
//
// The returned prefix is the one actually present on the token,
// including PrefixLegacy; callers that care about the kind-specific
// prefix must check it themselves.
func Unarmor(token string) (prefix string, canonical []byte, err error) {
	token = strings.TrimSpace(token)

	prefix, body, found := strings.Cut(token, ":")
	if !found {
		return "", nil, fmt.Errorf("%w: no \":\" separator", ErrBadPrefix)
	}
	switch prefix {
	case PrefixKey, PrefixIDCard, PrefixMessage, PrefixLegacy:
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrBadPrefix, prefix)
	}

	if body == "" {
		return "", nil, fmt.Errorf("%w: empty body", ErrBadBase58)
	}
	compressed, err := base58.Decode(body)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadBase58, err)
	}

	// Decompress with a hard cap: read at most one byte past the
	// ceiling so an over-limit stream is distinguishable from one
	// that stops exactly at it.
	reader := brotli.NewReader(bytes.NewReader(compressed))
	canonical, err = io.ReadAll(io.LimitReader(reader, MaxCanonicalSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadCompression, err)
	}
	if len(canonical) > MaxCanonicalSize {
		return "", nil, fmt.Errorf("%w: decompressed past %d bytes", ErrTokenTooLarge, MaxCanonicalSize)
	}

	return prefix, canonical, nil
}
