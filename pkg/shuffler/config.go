// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Configuration shared by the shuffler hosts.

package shuffler

import (
	"github.com/getoutreach/testshuffle/pkg/cfg"
	"github.com/getoutreach/testshuffle/pkg/log"
	"github.com/getoutreach/testshuffle/pkg/orerr"
)

// ConfigFile is the name of the config file read by Config.Load.
const ConfigFile = "testshuffle.yaml"

// This block contains the environment variables applied over the config
// file. Explicit flags still win.
const (
	// SeedEnvVar provides an explicit seed.
	SeedEnvVar = "TESTSHUFFLE_SEED"

	// SeedFileEnvVar overrides where the last seed is recorded.
	SeedFileEnvVar = "TESTSHUFFLE_SEED_FILE"
)

// Config drives a Plugin.
type Config struct {
	// Random enables shuffling. When false items pass through untouched.
	Random bool `yaml:"Random"`

	// Seed, when set, is used verbatim to replay an order.
	Seed *int64 `yaml:"Seed,omitempty"`

	// Last reuses the seed recorded by the previous run.
	Last bool `yaml:"Last"`

	// Group keeps items sharing a fixture adjacent.
	Group bool `yaml:"Group"`

	// SeedFile overrides where the last seed is recorded.
	SeedFile string `yaml:"SeedFile,omitempty"`
}

// Load reads ConfigFile through the default cfg reader and applies
// SeedEnvVar and SeedFileEnvVar on top of it.
func (c *Config) Load() error {
	return c.LoadFrom(cfg.DefaultReader(), ConfigFile)
}

// LoadFrom reads fileName with r and applies SeedEnvVar and
// SeedFileEnvVar on top of it.
func (c *Config) LoadFrom(r cfg.Reader, fileName string) error {
	if err := r.Load(fileName, c); err != nil {
		return err
	}

	if s, err := cfg.EnvString(SeedEnvVar); err == nil && s != "" {
		seed, err := ParseSeed(s)
		if err != nil {
			return orerr.Info(err, log.F{"shuffler.env": SeedEnvVar})
		}
		c.Seed = &seed
	}
	if s, err := cfg.EnvString(SeedFileEnvVar); err == nil && s != "" {
		c.SeedFile = s
	}
	return nil
}

// Store returns the FileStore configured by SeedFile.
func (c *Config) Store() (*FileStore, error) {
	return NewFileStore(c.SeedFile)
}

// MarshalLog implements log.Marshaler
func (c *Config) MarshalLog(addField func(key string, v interface{})) {
	addField("shuffler.random", c.Random)
	addField("shuffler.last", c.Last)
	addField("shuffler.group", c.Group)
	if c.Seed != nil {
		addField("shuffler.requested_seed", *c.Seed)
	}
}
