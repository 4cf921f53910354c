// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Entrypoint for the testshuffle CLI.

// testshuffle reorders a list of test items the same way the Go suite
// runner does, so any host can replay or reproduce an order.
package main

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/getoutreach/testshuffle/pkg/app"
	pkgcli "github.com/getoutreach/testshuffle/pkg/cli"
)

// streams holds the process io the commands use.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	ctx := context.Background()
	logger := pkgcli.NewLogger(os.Stderr)

	a := newApp(logger, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	pkgcli.HookInUrfaveCLI(ctx, a, logger)
}

func newApp(logger logrus.FieldLogger, s streams) *cli.App {
	return &cli.App{
		Name:      "testshuffle",
		Usage:     "Reorder test items with a reproducible seed",
		Version:   app.Version,
		Writer:    s.out,
		ErrWriter: s.err,
		Commands: []*cli.Command{
			newOrderCommand(logger, s),
			newSeedCommand(logger, s),
		},
	}
}
