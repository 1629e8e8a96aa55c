// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/gxt-foundation/gxt/cmd/gxt/cli"
	"github.com/gxt-foundation/gxt/lib/token"
)

func decryptCommand() *cli.Command {
	return &cli.Command{
		Name:    "decrypt",
		Summary: "verify and decrypt a message token",
		Usage:   "gxt decrypt <key-file> [<token-file>]",
		Description: "Verifies a message token, opens its encryption envelope with\n" +
			"the given key, and prints the envelope view with the decrypted\n" +
			"payload as JSON. Reads the token from stdin when no file is\n" +
			"given. Exits 1 when verification or decryption fails.",
		Run: func(args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("expected a key file argument")
			}
			secret, err := readKey(args[0])
			if err != nil {
				return err
			}
			raw, err := readTokenArg(args[1:])
			if err != nil {
				return err
			}

			envelope, err := token.Decrypt(raw, secret)
			if err != nil {
				fmt.Fprintf(os.Stderr, "decrypt error: %v\n", err)
				return &cli.ExitError{Code: 1}
			}
			return printJSON(envelope)
		},
	}
}
