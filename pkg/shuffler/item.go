// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: The unit of work reordered by the shuffler.

package shuffler

import (
	"sort"
	"strings"
)

// Item is a single collected test. ID must be unique within a run.
// Fixtures names the shared dependencies the test requires; the host is
// responsible for populating it before calling Reorder.
type Item struct {
	ID       string   `yaml:"id" json:"id"`
	Fixtures []string `yaml:"fixtures,omitempty" json:"fixtures,omitempty"`
}

// MarshalLog implements log.Marshaler
func (i Item) MarshalLog(addField func(key string, v interface{})) {
	addField("item.id", i.ID)
	if len(i.Fixtures) > 0 {
		addField("item.fixtures", strings.Join(i.Fixtures, ","))
	}
}

// fixtureKeys returns the distinct, non-empty fixture names of the item
// in name order.
func (i Item) fixtureKeys() []string {
	if len(i.Fixtures) == 0 {
		return nil
	}

	keys := make([]string, 0, len(i.Fixtures))
	seen := make(map[string]struct{}, len(i.Fixtures))
	for _, f := range i.Fixtures {
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		keys = append(keys, f)
	}
	sort.Strings(keys)
	return keys
}

// IDs returns the identifiers of items, in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}
