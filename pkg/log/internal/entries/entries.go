// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Bounded buffer of formatted debug entries

package entries

import (
	"sync"
	"time"
)

// MaxItems is the maximum number of debug entries cached
const MaxItems = 200

// MaxDuration is the age past which a debug entry is considered stale.
const MaxDuration = time.Minute * 2

// New returns a new collection of log entries
func New() *Entries {
	return &Entries{}
}

// Entries holds a limited size buffer of formatted debug entries
type Entries struct {
	mu    sync.Mutex
	items []item
}

// Append adds an entry, evicting the oldest one once MaxItems is reached.
func (e *Entries) Append(message string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = append(e.items, item{message, time.Now()})
	if len(e.items) > MaxItems {
		e.items = e.items[1:]
	}
}

// Flush writes out every entry younger than MaxDuration and empties the buffer.
func (e *Entries) Flush(write func(s string)) {
	e.mu.Lock()
	items := e.items
	e.items = nil
	e.mu.Unlock()

	for _, entry := range items {
		if time.Since(entry.ts) <= MaxDuration {
			write(entry.s)
		}
	}
}

// Purge drops all entries.
func (e *Entries) Purge() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
}

// Len reports how many entries are buffered.
func (e *Entries) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.items)
}

type item struct {
	s  string
	ts time.Time
}
