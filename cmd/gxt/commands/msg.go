// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/gxt-foundation/gxt/cmd/gxt/cli"
	"github.com/gxt-foundation/gxt/lib/token"
)

func msgCommand() *cli.Command {
	var out, parent, body string
	return &cli.Command{
		Name:    "msg",
		Summary: "encrypt a message to an ID card",
		Usage:   "gxt msg [--out <file>] [--parent <hex-id>] [--body <json>] <key-file> <id-card-file>",
		Description: "Builds a message token encrypted to the holder of the given ID\n" +
			"card. The body is any JSON value; when --body is absent it is\n" +
			"read from stdin. --parent links the message to an earlier\n" +
			"token's id.",
		Examples: []cli.Example{
			{Description: "send a greeting", Command: `gxt msg --body '{"hello":"world"}' me.gxk bob.gxi`},
			{Description: "reply in a thread", Command: `gxt msg --parent "$PARENT_ID" --body '{"i":2}' me.gxk bob.gxi`},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("msg", pflag.ContinueOnError)
			flags.StringVarP(&out, "out", "o", "", "write the token to this file instead of stdout")
			flags.StringVarP(&parent, "parent", "p", "", "parent token id as 64 hex characters")
			flags.StringVarP(&body, "body", "b", "", "message payload as JSON (default: read stdin)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected key file and ID card file arguments")
			}
			secret, err := readKey(args[0])
			if err != nil {
				return err
			}
			card, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading ID card file: %w", err)
			}

			var parentID []byte
			if parent != "" {
				parentID, err = hex.DecodeString(parent)
				if err != nil {
					return fmt.Errorf("parsing --parent: %w", err)
				}
			}

			payload, err := readPayload(body)
			if err != nil {
				return err
			}

			message, err := token.MakeMessage(secret, string(card), payload, parentID)
			if err != nil {
				return err
			}
			return writeOut(message, out)
		},
	}
}
