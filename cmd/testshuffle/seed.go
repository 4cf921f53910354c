// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: The seed command.

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/getoutreach/testshuffle/pkg/shuffler"
)

func newSeedCommand(logger logrus.FieldLogger, s streams) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Print the seed of the last run",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "seed-file", Usage: "where the last seed is recorded"},
		},
		Action: func(c *cli.Context) error {
			store, err := shuffler.NewFileStore(c.String("seed-file"))
			if err != nil {
				return err
			}

			seed, err := store.Load(c.Context)
			if errors.Is(err, shuffler.ErrNoPriorSeed) {
				return cli.Exit("no seed has been recorded yet", 1)
			}
			if err != nil {
				return reportInputError(logger, err)
			}

			_, err = fmt.Fprintln(s.out, shuffler.SeedLine(seed))
			return err
		},
	}
}
