// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands implements the gxt CLI: thin adapters between the
// filesystem/stdio and the pure operations in lib/token.
package commands

import (
	"github.com/gxt-foundation/gxt/cmd/gxt/cli"
)

// Root builds the gxt command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "gxt",
		Summary: "create, verify, and decrypt GXT tokens",
		Description: "gxt creates and consumes GXT tokens: self-contained signed\n" +
			"strings carrying ID cards and encrypted messages between peers\n" +
			"over any out-of-band channel.",
		Subcommands: []*cli.Command{
			keygenCommand(),
			idCommand(),
			msgCommand(),
			verifyCommand(),
			decryptCommand(),
			serveCommand(),
			viewCommand(),
		},
	}
}
