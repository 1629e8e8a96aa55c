// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	var ran []string
	root := &Command{
		Name: "gxt",
		Subcommands: []*Command{
			{Name: "keygen", Run: func(args []string) error { ran = append(ran, "keygen"); return nil }},
			{Name: "verify", Run: func(args []string) error { ran = append(ran, "verify"); return nil }},
		},
	}

	if err := root.Execute([]string{"verify"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ran) != 1 || ran[0] != "verify" {
		t.Fatalf("ran = %v, want [verify]", ran)
	}
}

func TestExecuteUnknownSubcommand(t *testing.T) {
	root := &Command{
		Name:        "gxt",
		Subcommands: []*Command{{Name: "keygen", Run: func([]string) error { return nil }}},
	}

	err := root.Execute([]string{"kegen"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("Execute unknown: %v", err)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	var out string
	var rest []string
	command := &Command{
		Name: "id",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("id", pflag.ContinueOnError)
			flags.StringVarP(&out, "out", "o", "", "output file")
			return flags
		},
		Run: func(args []string) error { rest = args; return nil },
	}

	if err := command.Execute([]string{"--out", "card.gxt", "key.gxk"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "card.gxt" {
		t.Errorf("out = %q, want card.gxt", out)
	}
	if len(rest) != 1 || rest[0] != "key.gxk" {
		t.Errorf("positional args = %v, want [key.gxk]", rest)
	}
}

func TestExecuteUnknownFlag(t *testing.T) {
	command := &Command{
		Name: "id",
		Flags: func() *pflag.FlagSet {
			return pflag.NewFlagSet("id", pflag.ContinueOnError)
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--bogus"})
	if err == nil || !strings.Contains(err.Error(), "--help") {
		t.Fatalf("Execute with unknown flag: %v", err)
	}
}

func TestPrintHelpListsSubcommands(t *testing.T) {
	root := &Command{
		Name:    "gxt",
		Summary: "token tool",
		Subcommands: []*Command{
			{Name: "keygen", Summary: "generate a key"},
			{Name: "verify", Summary: "verify a token"},
		},
	}

	var help strings.Builder
	root.PrintHelp(&help)
	for _, want := range []string{"keygen", "generate a key", "verify a token", "gxt <command>"} {
		if !strings.Contains(help.String(), want) {
			t.Errorf("help output missing %q:\n%s", want, help.String())
		}
	}
}
