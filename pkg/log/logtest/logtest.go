// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Captures log entries for assertions in tests.

// Package logtest records the entries written through pkg/log.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    logs := logtest.NewLogRecorder(t)
//	    defer logs.Close()
//	    .....
//	    if diff := cmp.Diff(expected, logs.Entries(), differs.Custom()); diff != "" {
//	        t.Fatal("logs unexpected", diff)
//	    }
//	}
package logtest

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/getoutreach/testshuffle/pkg/log"
)

// LogRecorder is an io.Writer installed as the log output that decodes
// every line into a log.F.
type LogRecorder struct {
	t      testing.TB
	prev   io.Writer
	mu     sync.Mutex
	closed bool

	partial []byte
	entries []log.F
}

// NewLogRecorder installs a recorder as the log output. The previous
// output is restored by Close, or when t finishes. t may be nil in
// examples, in which case malformed lines are dropped.
func NewLogRecorder(t testing.TB) *LogRecorder {
	r := &LogRecorder{t: t, prev: log.Output()}
	log.SetOutput(r)
	if t != nil {
		t.Cleanup(r.Close)
	}
	return r
}

// Write implements io.Writer. Input is split into lines, each holding
// one JSON entry.
func (r *LogRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.partial = append(r.partial, b...)
	for {
		i := bytes.IndexByte(r.partial, '\n')
		if i < 0 {
			break
		}
		line := r.partial[:i]
		r.partial = r.partial[i+1:]

		var entry log.F
		if err := json.Unmarshal(line, &entry); err != nil {
			if r.t != nil {
				r.t.Errorf("invalid log entry %q: %v", line, err)
			}
			continue
		}
		r.entries = append(r.entries, entry)
	}
	return len(b), nil
}

// Close restores the previous log output. It is safe to call twice.
func (r *LogRecorder) Close() {
	r.mu.Lock()
	closed := r.closed
	r.closed = true
	r.mu.Unlock()

	if !closed {
		log.SetOutput(r.prev)
	}
}

// Entries returns a copy of the entries recorded so far.
func (r *LogRecorder) Entries() []log.F {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]log.F(nil), r.entries...)
}

// Messages returns the message of every entry recorded so far.
func (r *LogRecorder) Messages() []string {
	entries := r.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i], _ = e["message"].(string)
	}
	return out
}

// Map flattens the fields m produces into a log.F, the way they would
// appear in an entry.
func Map(m log.Marshaler) map[string]interface{} {
	f := log.F{}
	m.MarshalLog(f.Set)
	return f
}
