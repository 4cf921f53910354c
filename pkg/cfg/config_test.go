package cfg_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"

	"github.com/getoutreach/testshuffle/pkg/cfg"
)

type shuffleConfig struct {
	Random bool   `yaml:"Random"`
	Seed   *int64 `yaml:"Seed"`
}

func Example() {
	defer cfg.FakeFile("testshuffle.yaml", []byte("Random: true\nSeed: 42\n"))()

	var c shuffleConfig
	if err := cfg.Load("testshuffle.yaml", &c); err != nil {
		fmt.Println("Unexpected error", err)
	}

	fmt.Println(c.Random, *c.Seed)

	// Output:
	// true 42
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	r := cfg.Reader(func(string) ([]byte, error) {
		return nil, os.ErrNotExist
	})

	c := shuffleConfig{Random: true}
	assert.NilError(t, r.Load("missing.yaml", &c))
	assert.Equal(t, c.Random, true)
}

func TestLoadInvalidYAML(t *testing.T) {
	r := cfg.Reader(func(string) ([]byte, error) {
		return []byte("Random: [unterminated"), nil
	})

	var c shuffleConfig
	err := r.Load("bad.yaml", &c)
	assert.ErrorContains(t, err, "failed to parse config bad.yaml")
}

func TestLoadAcceptsJSON(t *testing.T) {
	r := cfg.Reader(func(string) ([]byte, error) {
		return []byte(`{"Random": true, "Seed": 7}`), nil
	})

	var c shuffleConfig
	assert.NilError(t, r.Load("c.json", &c))
	assert.Equal(t, *c.Seed, int64(7))
}

func TestEnvString(t *testing.T) {
	key := uuid.NewString()
	value := uuid.NewString()
	t.Setenv(key, value)

	t.Run("if key not set; error is returned", func(t *testing.T) {
		notsetKey := uuid.NewString()
		_, err := cfg.EnvString(notsetKey)
		assert.ErrorContains(t, err, notsetKey)
		assert.ErrorContains(t, err, "environment variable not set")
	})

	t.Run("returns set value", func(t *testing.T) {
		v, err := cfg.EnvString(key)
		assert.NilError(t, err)
		assert.Equal(t, v, value)
	})
}
