// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: The order command.

package main

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/getoutreach/testshuffle/pkg/cfg"
	"github.com/getoutreach/testshuffle/pkg/orerr"
	"github.com/getoutreach/testshuffle/pkg/shuffler"
)

// exitCodeInput is the exit code for malformed items or seeds.
const exitCodeInput = 2

// This block contains the supported output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// orderResult is the json output of the order command.
type orderResult struct {
	Seed  *int64          `json:"seed,omitempty"`
	Items []shuffler.Item `json:"items"`
}

// nolint:gochecknoglobals
var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newOrderCommand(logger logrus.FieldLogger, s streams) *cli.Command {
	return &cli.Command{
		Name:      "order",
		Usage:     "Print the run order of the items in a YAML or JSON list",
		ArgsUsage: "<items-file|->",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "random", Usage: "shuffle the items"},
			&cli.Int64Flag{Name: "seed", Usage: "replay the order of a previous run"},
			&cli.BoolFlag{Name: "last", Usage: "reuse the seed of the last run"},
			&cli.BoolFlag{Name: "group", Usage: "keep items sharing a fixture adjacent"},
			&cli.StringFlag{Name: "seed-file", Usage: "where the last seed is recorded"},
			&cli.StringFlag{Name: "config", Usage: "config file to read instead of " + shuffler.ConfigFile},
			&cli.StringFlag{Name: "format", Value: formatText, Usage: "output format, text or json"},
		},
		Action: func(c *cli.Context) error {
			return reportInputError(logger, runOrder(c, logger, s))
		},
	}
}

func runOrder(c *cli.Context, logger logrus.FieldLogger, s streams) error {
	format := c.String("format")
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown format %q", format)
	}
	if c.NArg() != 1 {
		return errors.New("expected exactly one items file")
	}

	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	items, err := readItems(c.Args().First(), s.in)
	if err != nil {
		return err
	}

	store, err := conf.Store()
	if err != nil {
		return err
	}

	report := s.out
	if format == formatJSON {
		report = s.err
	}

	p := shuffler.NewPlugin(conf, store, report)
	ordered, err := p.OnTestsCollected(c.Context, items)
	if err != nil {
		return err
	}
	if p.Origin() == shuffler.OriginFallback {
		logger.Warn("No previous seed recorded, using a new one")
	}

	if err := writeOrder(s.out, format, p, ordered); err != nil {
		return err
	}
	return p.Persist(c.Context)
}

// loadConfig reads the config file and applies any flags set on top.
func loadConfig(c *cli.Context) (shuffler.Config, error) {
	var conf shuffler.Config
	if path := c.String("config"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return conf, errors.Wrap(err, "failed to find config")
		}
		if err := conf.LoadFrom(cfg.Reader(os.ReadFile), path); err != nil {
			return conf, err
		}
	} else if err := conf.Load(); err != nil {
		return conf, err
	}

	if c.IsSet("random") {
		conf.Random = c.Bool("random")
	}
	if c.IsSet("seed") {
		seed := c.Int64("seed")
		conf.Seed = &seed
	}
	if c.IsSet("last") {
		conf.Last = c.Bool("last")
	}
	if c.IsSet("group") {
		conf.Group = c.Bool("group")
	}
	if c.IsSet("seed-file") {
		conf.SeedFile = c.String("seed-file")
	}
	return conf, nil
}

// readItems decodes a list of items from path, or from stdin when path
// is "-". Entries are either an item mapping or a bare id.
func readItems(path string, stdin io.Reader) ([]shuffler.Item, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read items")
	}

	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, errors.Wrap(err, "failed to parse items")
	}

	items := make([]shuffler.Item, len(nodes))
	for i := range nodes {
		if nodes[i].Kind == yaml.ScalarNode {
			items[i].ID = nodes[i].Value
			continue
		}
		if err := nodes[i].Decode(&items[i]); err != nil {
			return nil, errors.Wrapf(err, "failed to parse item %d", i)
		}
	}
	return items, nil
}

func writeOrder(w io.Writer, format string, p *shuffler.Plugin, items []shuffler.Item) error {
	if format == formatJSON {
		res := orderResult{Items: items}
		if seed, ok := p.Seed(); ok {
			res.Seed = &seed
		}
		return errors.Wrap(json.NewEncoder(w).Encode(res), "failed to write order")
	}

	for _, id := range shuffler.IDs(items) {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return errors.Wrap(err, "failed to write order")
		}
	}
	return nil
}

// reportInputError logs malformed input errors along with the fields
// attached to them and exits with exitCodeInput. Other errors are
// returned unchanged.
func reportInputError(logger logrus.FieldLogger, err error) error {
	if !orerr.IsOneOf(err, shuffler.ErrInvalidInput, shuffler.ErrInvalidSeed) {
		return err
	}
	logger.WithFields(logrus.Fields(orerr.Fields(err))).Error(err.Error())
	return cli.Exit("", exitCodeInput)
}
