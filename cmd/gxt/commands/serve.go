// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/gxt-foundation/gxt/cmd/gxt/cli"
	"github.com/gxt-foundation/gxt/lib/service"
	"github.com/gxt-foundation/gxt/lib/timelock"
)

func serveCommand() *cli.Command {
	var listen string
	return &cli.Command{
		Name:    "serve",
		Summary: "run the timelock key service",
		Usage:   "gxt serve [--listen <addr>] <master-key-file>",
		Description: "Serves timelock keys derived from the master key over HTTP:\n" +
			"GET /v1/tlock/public issues the ID card for any (timestamp,\n" +
			"label) pair; GET /v1/tlock/private releases the matching secret\n" +
			"— encrypted to the requester's ID card — once the timestamp has\n" +
			"passed.",
		Examples: []cli.Example{
			{Description: "serve on the default port", Command: "gxt serve master.gxk"},
			{Description: "fetch next week's ID card", Command: `curl 'localhost:8487/v1/tlock/public?timestamp=2026-08-13T00:00:00Z&label=auction'`},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
			flags.StringVarP(&listen, "listen", "l", "127.0.0.1:8487", "TCP listen address")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one master key file argument")
			}
			master, err := readKey(args[0])
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			timelockService := timelock.NewService(timelock.ServiceConfig{
				Master: master,
				Logger: logger,
			})
			server := service.NewHTTPServer(service.HTTPServerConfig{
				Address: listen,
				Handler: timelockService.Handler(),
				Logger:  logger,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx)
		},
	}
}
