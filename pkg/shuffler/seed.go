// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Resolution, generation and reporting of shuffle seeds.

package shuffler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/getoutreach/testshuffle/pkg/log"
	"github.com/getoutreach/testshuffle/pkg/orerr"
)

// This block contains the errors returned by the shuffler.
const (
	// ErrNoPriorSeed is returned when the last seed was requested but
	// none has been recorded yet.
	ErrNoPriorSeed orerr.SentinelError = "no prior seed recorded"

	// ErrInvalidInput is returned by Reorder for malformed item lists.
	ErrInvalidInput orerr.SentinelError = "invalid test items"

	// ErrInvalidSeed is returned for negative or unparsable seeds.
	ErrInvalidSeed orerr.SentinelError = "invalid seed"
)

// SeedOrigin records where a resolved seed came from.
type SeedOrigin string

// This block contains the possible seed origins.
const (
	OriginExplicit  SeedOrigin = "explicit"
	OriginLast      SeedOrigin = "last"
	OriginGenerated SeedOrigin = "generated"

	// OriginFallback is a generated seed used because the last seed was
	// requested but none was recorded.
	OriginFallback SeedOrigin = "fallback"
)

// seedLinePrefix starts the line reporting the seed of a run.
const seedLinePrefix = "Tests are shuffled using seed"

// nolint:gochecknoglobals // Why: keeps generated seeds strictly increasing
var lastGenerated atomic.Int64

// NewSeed generates a fresh non-negative seed from the current time.
// Seeds returned by successive calls within a process are distinct even
// when the clock does not advance between them.
func NewSeed() int64 {
	for {
		last := lastGenerated.Load()
		seed := time.Now().UnixNano()
		if seed < 0 {
			seed = -seed
		}
		if seed <= last {
			seed = last + 1
		}
		if lastGenerated.CompareAndSwap(last, seed) {
			return seed
		}
	}
}

// ResolveSeed returns the seed to use for a run.
//
// An explicit seed always wins. Otherwise, when reuseLast is set the seed
// recorded in store is returned, or ErrNoPriorSeed if there is none; the
// caller decides whether to fall back to NewSeed. Otherwise a fresh seed
// is generated.
//
// The caller is responsible for persisting the returned seed once the run
// completes.
func ResolveSeed(ctx context.Context, explicit *int64, reuseLast bool, store Store) (int64, error) {
	seed, _, err := resolveSeed(ctx, explicit, reuseLast, store)
	return seed, err
}

func resolveSeed(ctx context.Context, explicit *int64, reuseLast bool, store Store) (int64, SeedOrigin, error) {
	switch {
	case explicit != nil:
		if *explicit < 0 {
			return 0, "", orerr.Info(ErrInvalidSeed, log.F{"shuffler.seed": *explicit})
		}
		return *explicit, OriginExplicit, nil
	case reuseLast:
		if store == nil {
			return 0, "", ErrNoPriorSeed
		}
		seed, err := store.Load(ctx)
		if err != nil {
			if errors.Is(err, ErrNoPriorSeed) {
				return 0, "", err
			}
			return 0, "", errors.Wrap(err, "failed to load last seed")
		}
		return seed, OriginLast, nil
	default:
		return NewSeed(), OriginGenerated, nil
	}
}

// SeedLine formats the line reporting the seed used by a run.
func SeedLine(seed int64) string {
	return fmt.Sprintf("%s %d.", seedLinePrefix, seed)
}

// ParseSeedLine recovers the seed from a line produced by SeedLine. The
// seed is the final whitespace separated token, with a trailing period
// stripped.
func ParseSeedLine(line string) (int64, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, seedLinePrefix) {
		return 0, errors.Wrapf(ErrInvalidSeed, "not a seed line: %q", line)
	}

	fields := strings.Fields(line)
	return ParseSeed(strings.TrimSuffix(fields[len(fields)-1], "."))
}

// ParseSeed parses a non-negative decimal seed.
func ParseSeed(s string) (int64, error) {
	seed, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(orerr.Info(ErrInvalidSeed, log.F{"shuffler.seed_text": s}), "failed to parse seed: %v", err)
	}
	if seed < 0 {
		return 0, orerr.Info(ErrInvalidSeed, log.F{"shuffler.seed": seed})
	}
	return seed, nil
}
