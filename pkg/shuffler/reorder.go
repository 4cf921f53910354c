// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Seeded shuffle and fixture grouping of collected items.

package shuffler

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/getoutreach/testshuffle/pkg/log"
	"github.com/getoutreach/testshuffle/pkg/orerr"
)

// Reorder returns a permutation of items determined entirely by seed.
//
// The same seed and the same input always produce the same output. When
// groupByFixture is set, items sharing a fixture are then pulled together
// into one contiguous block placed where the first of them landed in the
// shuffle; all other items keep their shuffled relative order.
//
// Items that share fixtures with each other transitively end up in the
// same block. Inside a block, items are claimed by walking fixture keys
// first in shuffle order of the items that own them and then in key name
// order.
//
// Reorder fails with ErrInvalidInput when two items have the same ID or an
// item has no ID.
func Reorder(items []Item, seed int64, groupByFixture bool) ([]Item, error) {
	if err := validate(items); err != nil {
		return nil, err
	}

	shuffled := shuffle(items, seed)
	if !groupByFixture {
		return shuffled, nil
	}
	return group(shuffled), nil
}

func validate(items []Item) error {
	seen := make(map[string]int, len(items))
	for i := range items {
		id := items[i].ID
		if id == "" {
			return errors.Wrapf(orerr.Info(ErrInvalidInput, log.F{"item.index": i}), "item %d has no id", i)
		}
		if first, ok := seen[id]; ok {
			return errors.Wrapf(orerr.Info(ErrInvalidInput, log.F{
				"item.id":          id,
				"item.index":       i,
				"item.first_index": first,
			}), "duplicate item id %q", id)
		}
		seen[id] = i
	}
	return nil
}

// newRand returns the generator driving the shuffle. PCG keeps the
// seed to permutation mapping stable across Go releases.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed))) //nolint:gosec // Why: reproducibility, not secrecy
}

// shuffle runs a Fisher-Yates shuffle over a copy of items.
func shuffle(items []Item, seed int64) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	newRand(seed).Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// group coalesces items sharing a fixture key into contiguous blocks.
func group(shuffled []Item) []Item {
	keys := make([][]string, len(shuffled))
	users := make(map[string][]int)
	for i := range shuffled {
		keys[i] = shuffled[i].fixtureKeys()
		for _, k := range keys[i] {
			users[k] = append(users[k], i)
		}
	}

	// only keys used by two or more items group anything
	anyShared := false
	for i := range keys {
		var shared []string
		for _, k := range keys[i] {
			if len(users[k]) > 1 {
				shared = append(shared, k)
			}
		}
		keys[i] = shared
		anyShared = anyShared || len(shared) > 0
	}
	if !anyShared {
		return shuffled
	}

	out := make([]Item, 0, len(shuffled))
	placed := make([]bool, len(shuffled))
	expanded := make(map[string]bool)

	var queue []string
	emit := func(i int) {
		placed[i] = true
		out = append(out, shuffled[i])
		queue = append(queue, keys[i]...)
	}

	for i := range shuffled {
		if placed[i] {
			continue
		}

		emit(i)
		for len(queue) > 0 {
			k := queue[0]
			queue = queue[1:]
			if expanded[k] {
				continue
			}
			expanded[k] = true

			for _, j := range users[k] {
				if !placed[j] {
					emit(j)
				}
			}
		}
	}
	return out
}
