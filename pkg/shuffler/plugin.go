// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: The collection hook hosts call before running tests.

package shuffler

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/getoutreach/testshuffle/pkg/events"
	"github.com/getoutreach/testshuffle/pkg/log"
)

// Collector is invoked once by a host after tests are discovered and
// before any of them runs. It returns the order to run them in.
type Collector interface {
	OnTestsCollected(ctx context.Context, items []Item) ([]Item, error)
}

// Plugin is the Collector hosts use. It resolves the seed, reorders the
// items, reports the seed, and persists it when the host calls Persist.
//
// A Plugin serves a single run. A run may collect several batches of
// items (the Go suite runner collects once per suite); the seed is
// resolved on the first collection and every later batch is ordered with
// it, so one recorded seed replays the whole run. A Plugin must not be
// used from several goroutines at once.
type Plugin struct {
	conf  Config
	store Store
	out   io.Writer
	log   log.Logger

	runID    string
	seed     int64
	origin   SeedOrigin
	resolved bool
}

// NewPlugin creates a Plugin. The seed line is written to out; a nil out
// discards it. A nil store behaves as an empty MemoryStore.
func NewPlugin(conf Config, store Store, out io.Writer) *Plugin {
	if store == nil {
		store = &MemoryStore{}
	}
	if out == nil {
		out = io.Discard
	}
	p := &Plugin{
		conf:  conf,
		store: store,
		out:   out,
		runID: uuid.NewString(),
	}
	p.log = log.With(p)
	return p
}

// OnTestsCollected implements Collector.
//
// When the last seed is requested but none is recorded, a fresh seed is
// generated and a warning is logged. The seed line is written on every
// collection.
func (p *Plugin) OnTestsCollected(ctx context.Context, items []Item) ([]Item, error) {
	if !p.conf.Random {
		if err := validate(items); err != nil {
			return nil, err
		}
		out := make([]Item, len(items))
		copy(out, items)
		return out, nil
	}

	if !p.resolved {
		seed, origin, err := resolveSeed(ctx, p.conf.Seed, p.conf.Last, p.store)
		if errors.Is(err, ErrNoPriorSeed) {
			p.log.Warn(ctx, "no previous seed recorded, generating a new one", events.Err(err))
			seed, origin, err = NewSeed(), OriginFallback, nil
		}
		if err != nil {
			return nil, err
		}
		p.seed, p.origin, p.resolved = seed, origin, true
	}

	ordered, err := Reorder(items, p.seed, p.conf.Group)
	if err != nil {
		return nil, err
	}

	if _, err := fmt.Fprintln(p.out, SeedLine(p.seed)); err != nil {
		return nil, errors.Wrap(err, "failed to report seed")
	}

	p.log.Debug(ctx, "tests reordered", log.F{"shuffler.items": len(items)})
	return ordered, nil
}

// Seed returns the seed used by the run, and whether one was resolved.
func (p *Plugin) Seed() (int64, bool) {
	return p.seed, p.resolved
}

// Origin returns where the seed came from. It is empty until a seed is
// resolved.
func (p *Plugin) Origin() SeedOrigin {
	return p.origin
}

// Persist records the seed of this run so a later run can reuse it. It is
// a no-op when shuffling was disabled.
func (p *Plugin) Persist(ctx context.Context) error {
	if !p.resolved {
		return nil
	}
	if err := p.store.Save(ctx, p.seed); err != nil {
		return errors.Wrap(err, "failed to persist seed")
	}
	p.log.Debug(ctx, "seed persisted")
	return nil
}

// MarshalLog implements log.Marshaler
func (p *Plugin) MarshalLog(addField func(key string, v interface{})) {
	addField("shuffler.run_id", p.runID)
	p.conf.MarshalLog(addField)
	if p.resolved {
		addField("shuffler.seed", p.seed)
		addField("shuffler.seed_origin", string(p.origin))
	}
}
