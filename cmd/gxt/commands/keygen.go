// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/gxt-foundation/gxt/cmd/gxt/cli"
	"github.com/gxt-foundation/gxt/lib/token"
)

func keygenCommand() *cli.Command {
	var out string
	return &cli.Command{
		Name:    "keygen",
		Summary: "generate a fresh signing key bundle",
		Usage:   "gxt keygen [--out <file>]",
		Examples: []cli.Example{
			{Description: "write a new key to a file", Command: "gxt keygen --out me.gxk"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
			flags.StringVarP(&out, "out", "o", "", "write the key bundle to this file instead of stdout")
			return flags
		},
		Run: func(args []string) error {
			bundle, err := token.MakeKey()
			if err != nil {
				return err
			}
			return writeOut(bundle, out)
		},
	}
}
