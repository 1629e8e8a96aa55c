// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"
	"golang.org/x/term"

	"github.com/gxt-foundation/gxt/lib/key"
)

// readKey loads a signing secret from a key file: a gxk token or a
// raw hex seed.
func readKey(path string) (key.Secret, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return key.Secret{}, fmt.Errorf("reading key file: %w", err)
	}
	return key.Parse(string(raw))
}

// readTokenArg reads a token from the optional positional file
// argument, falling back to stdin.
func readTokenArg(args []string) (string, error) {
	if len(args) > 0 {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading token file: %w", err)
		}
		return string(raw), nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading token from stdin: %w", err)
	}
	return string(raw), nil
}

// readPayload parses a JSON payload from the given flag value,
// falling back to stdin when the flag is unset. Comments and trailing
// commas are tolerated (JSONC) so payloads can be maintained as
// annotated files.
func readPayload(flagValue string) (any, error) {
	raw := []byte(flagValue)
	if flagValue == "" {
		var err error
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading payload from stdin: %w", err)
		}
	}

	var payload any
	if err := json.Unmarshal(jsonc.ToJSON(raw), &payload); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	return payload, nil
}

// writeOut writes a token to the given file, or to stdout when path
// is empty. A newline is appended only for interactive terminals so
// piped output stays byte-exact.
func writeOut(tokenString, path string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(tokenString), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		return nil
	}

	if _, err := os.Stdout.WriteString(tokenString); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println()
	}
	return nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
