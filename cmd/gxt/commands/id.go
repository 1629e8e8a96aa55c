// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/gxt-foundation/gxt/cmd/gxt/cli"
	"github.com/gxt-foundation/gxt/lib/token"
)

func idCommand() *cli.Command {
	var out, meta string
	return &cli.Command{
		Name:    "id",
		Summary: "build an ID card from a signing key",
		Usage:   "gxt id [--out <file>] [--meta <json>] <key-file>",
		Description: "Builds an unencrypted ID card token sharing the key's public\n" +
			"keys. Meta is any JSON value; when --meta is absent it is read\n" +
			"from stdin.",
		Examples: []cli.Example{
			{Description: "ID card with a display name", Command: `gxt id --meta '{"name":"Bob"}' me.gxk`},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("id", pflag.ContinueOnError)
			flags.StringVarP(&out, "out", "o", "", "write the token to this file instead of stdout")
			flags.StringVarP(&meta, "meta", "m", "", "meta payload as JSON (default: read stdin)")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one key file argument")
			}
			secret, err := readKey(args[0])
			if err != nil {
				return err
			}
			payload, err := readPayload(meta)
			if err != nil {
				return err
			}
			card, err := token.MakeIDCard(secret, payload)
			if err != nil {
				return err
			}
			return writeOut(card, out)
		},
	}
}
