// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: YAML config loading with an overridable reader.

// Package cfg manages config for the shuffler and its hosts.
//
// Every package that needs config should define a strongly
// typed struct for it
//
// Example
//
//	type ShuffleConfig struct {
//	   Random bool   `yaml:"Random"`
//	   Seed   *int64 `yaml:"Seed"`
//	}
//
//	func (c *ShuffleConfig) Load() error {
//	    return cfg.Load("testshuffle.yaml", c)
//	}
//
// The default reader looks for the file in the working directory first
// and then in ~/.outreach/.config/testshuffle/. A missing file is not an
// error for Load; the struct is left untouched.
package cfg

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// UserConfigDir is the non-HOME containing directory that holds user config.
// nolint:gochecknoglobals
var UserConfigDir = filepath.Join(".outreach", ".config", "testshuffle")

// nolint:gochecknoglobals
var defaultReader = Reader(func(fileName string) ([]byte, error) {
	data, err := os.ReadFile(fileName)
	if err == nil || !os.IsNotExist(err) {
		return data, err
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(home, UserConfigDir, fileName))
})

// Reader reads the config from the provided file
type Reader func(fileName string) ([]byte, error)

// Load reads the config.
//
// Usage:
//
//	var appConfig MyConfig
//	err := cfg.Load("myapp.yaml", &appConfig)
//
// This parses the config using YAML, which also accepts JSON.
// A config file that does not exist leaves ptr untouched.
func (r Reader) Load(fileName string, ptr interface{}) error {
	data, err := r(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read config %s", fileName)
	}

	if err := yaml.Unmarshal(data, ptr); err != nil {
		return errors.Wrapf(err, "failed to parse config %s", fileName)
	}
	return nil
}

// Load uses the default config reader to load config
func Load(fileName string, ptr interface{}) error {
	return defaultReader.Load(fileName, ptr)
}

// SetDefaultReader sets the default reader.  Only meant for tests and
// dev environment overrides
func SetDefaultReader(f Reader) {
	defaultReader = f
}

// DefaultReader returns the current default reader. Only meant for
// tests and dev environment overrides
func DefaultReader() Reader {
	return defaultReader
}

// FakeFile makes the default reader serve data for fileName and
// returns a func restoring the previous reader. Other files fall
// through to the previous reader.
func FakeFile(fileName string, data []byte) func() {
	old := DefaultReader()
	SetDefaultReader(func(name string) ([]byte, error) {
		if name == fileName {
			return data, nil
		}
		return old(name)
	})
	return func() { SetDefaultReader(old) }
}
