// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"github.com/gxt-foundation/gxt/cmd/gxt/cli"
	"github.com/gxt-foundation/gxt/lib/token"
)

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:    "verify",
		Summary: "verify a token and print its envelope",
		Usage:   "gxt verify [<token-file>]",
		Description: "Verifies a token's content address and signature and prints the\n" +
			"envelope view as JSON. Message payloads stay encrypted — use\n" +
			"'gxt decrypt' to open them. Reads stdin when no file is given.\n" +
			"Exits 1 for an invalid token.",
		Run: func(args []string) error {
			raw, err := readTokenArg(args)
			if err != nil {
				return err
			}

			envelope, err := token.Verify(raw)
			if err != nil {
				fmt.Fprintf(os.Stderr, "valid:false\nerror:%v\n", err)
				return &cli.ExitError{Code: 1}
			}
			return printJSON(envelope)
		},
	}
}
