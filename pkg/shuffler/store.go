// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Persistence of the last seed used by a run.

package shuffler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/getoutreach/testshuffle/pkg/log"
	"github.com/getoutreach/testshuffle/pkg/orerr"
)

// SeedFile is the non-HOME containing path to the default last seed file.
// nolint:gochecknoglobals
var SeedFile = filepath.Join(".outreach", ".cache", "testshuffle", "lastseed")

// Store holds the seed of the most recent run.
type Store interface {
	// Load returns the recorded seed, or ErrNoPriorSeed if there is none.
	Load(ctx context.Context) (int64, error)

	// Save replaces the recorded seed.
	Save(ctx context.Context, seed int64) error
}

// MemoryStore is a Store that lives for the duration of the process.
type MemoryStore struct {
	mu   sync.Mutex
	seed int64
	ok   bool
}

// Load implements Store
func (m *MemoryStore) Load(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ok {
		return 0, ErrNoPriorSeed
	}
	return m.seed, nil
}

// Save implements Store
func (m *MemoryStore) Save(_ context.Context, seed int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seed, m.ok = seed, true
	return nil
}

// FileStore keeps the seed as a single decimal integer in a plain text
// file. Saves replace the whole file atomically.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore at path, or at DefaultSeedFile when
// path is empty.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		if path, err = DefaultSeedFile(); err != nil {
			return nil, err
		}
	}
	return &FileStore{Path: path}, nil
}

// DefaultSeedFile returns SeedFile under the user's home directory.
func DefaultSeedFile() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "failed to find home directory")
	}
	return filepath.Join(home, SeedFile), nil
}

// PackageSeedFile returns the seed file the Go suite runner uses for the
// test binary running in dir. Each package records its own seed next to
// DefaultSeedFile, under a name derived from dir.
func PackageSeedFile(dir string) (string, error) {
	def, err := DefaultSeedFile()
	if err != nil {
		return "", err
	}
	key := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(dir)))
	return filepath.Join(filepath.Dir(def), "packages", key.String()), nil
}

// Load implements Store
func (f *FileStore) Load(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	b, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNoPriorSeed
		}
		return 0, errors.Wrapf(err, "failed to read seed file %s", f.Path)
	}
	if len(b) == 0 {
		return 0, ErrNoPriorSeed
	}

	seed, err := ParseSeed(string(b))
	if err != nil {
		return 0, orerr.Info(err, log.F{"shuffler.seed_file": f.Path})
	}
	return seed, nil
}

// Save implements Store. The seed is written to a temporary file next to
// the target which is then renamed over it, so a crash never leaves a
// partially written seed behind.
func (f *FileStore) Save(ctx context.Context, seed int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary seed file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Why: already renamed on success

	if _, err := fmt.Fprintf(tmp, "%d\n", seed); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write seed")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to sync seed file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close seed file")
	}

	return errors.Wrapf(os.Rename(tmp.Name(), f.Path), "failed to replace %s", f.Path)
}
