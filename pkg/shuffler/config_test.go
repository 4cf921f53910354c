package shuffler_test

import (
	"errors"
	"os"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/getoutreach/testshuffle/pkg/cfg"
	"github.com/getoutreach/testshuffle/pkg/shuffler"
)

func readerOf(data string) cfg.Reader {
	return func(string) ([]byte, error) {
		if data == "" {
			return nil, os.ErrNotExist
		}
		return []byte(data), nil
	}
}

func TestConfigLoadFrom(t *testing.T) {
	t.Setenv(shuffler.SeedEnvVar, "")
	t.Setenv(shuffler.SeedFileEnvVar, "")

	conf := shuffler.Config{Random: true}
	err := conf.LoadFrom(readerOf("Group: true\nLast: true\nSeedFile: /tmp/seed\n"), shuffler.ConfigFile)
	assert.NilError(t, err)

	assert.Equal(t, conf.Random, true)
	assert.Equal(t, conf.Group, true)
	assert.Equal(t, conf.Last, true)
	assert.Equal(t, conf.SeedFile, "/tmp/seed")
	assert.Assert(t, conf.Seed == nil)
}

func TestConfigSeedFromEnvironment(t *testing.T) {
	t.Setenv(shuffler.SeedEnvVar, "314")

	conf := shuffler.Config{}
	assert.NilError(t, conf.LoadFrom(readerOf("Seed: 1\n"), shuffler.ConfigFile))
	assert.Equal(t, *conf.Seed, int64(314))
}

func TestConfigSeedFileFromEnvironment(t *testing.T) {
	t.Setenv(shuffler.SeedEnvVar, "")
	t.Setenv(shuffler.SeedFileEnvVar, "/tmp/isolated/lastseed")

	conf := shuffler.Config{}
	assert.NilError(t, conf.LoadFrom(readerOf("SeedFile: /tmp/seed\n"), shuffler.ConfigFile))
	assert.Equal(t, conf.SeedFile, "/tmp/isolated/lastseed")

	s, err := conf.Store()
	assert.NilError(t, err)
	assert.Equal(t, s.Path, "/tmp/isolated/lastseed")
}

func TestConfigRejectsBadEnvironmentSeed(t *testing.T) {
	t.Setenv(shuffler.SeedEnvVar, "-3")

	conf := shuffler.Config{}
	err := conf.LoadFrom(readerOf(""), shuffler.ConfigFile)
	assert.Assert(t, errors.Is(err, shuffler.ErrInvalidSeed))
}

func TestConfigLoadUsesDefaultReader(t *testing.T) {
	t.Setenv(shuffler.SeedEnvVar, "")
	defer cfg.FakeFile(shuffler.ConfigFile, []byte("Random: true\nSeed: 9\n"))()

	var conf shuffler.Config
	assert.NilError(t, conf.Load())
	assert.Equal(t, conf.Random, true)
	assert.Equal(t, *conf.Seed, int64(9))
}
