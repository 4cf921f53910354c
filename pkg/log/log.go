// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Provides a standard means for go logging

// Package log implements structured JSON logging.
//
// For logging:
//
//	log.Info(ctx, "message", log.F{field: 42})
//	log.Warn(...)
//	log.Error(...)
//	log.Debug(...)
//
// log.Debug is not emitted right away. Debug entries are held back and
// written out when an error is logged within a couple of minutes, with
// their original timestamp. Hosts running many units of work (tests, for
// instance) call Flush after a failed unit and Purge after a passing one.
package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/getoutreach/testshuffle/pkg/app"
	"github.com/getoutreach/testshuffle/pkg/log/internal/entries"
)

// level names the severity of an entry as written in the "level" field.
type level string

// This block contains the levels entries are written with.
const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
	levelError level = "ERROR"
)

// output serializes writes so concurrent entries never interleave.
type output struct {
	mu sync.Mutex
	w  io.Writer
}

// nolint:gochecknoglobals // Why: process wide log destination
var (
	out     = &output{w: os.Stdout}
	pending = entries.New()
)

// SetOutput redirects all entries to w. It is meant for program startup
// and for tests.
func SetOutput(w io.Writer) {
	out.mu.Lock()
	defer out.mu.Unlock()
	out.w = w
}

// Output returns the writer entries are currently sent to.
func Output() io.Writer {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.w
}

// Write writes a single preformatted entry as one line.
func Write(s string) {
	out.mu.Lock()
	defer out.mu.Unlock()

	if _, err := io.WriteString(out.w, s+"\n"); err != nil {
		fmt.Fprintln(os.Stderr, "log: write failed:", err)
	}
}

// Debug holds an entry at DEBUG level until the next Error or Flush.
func Debug(ctx context.Context, message string, m ...Marshaler) {
	pending.Append(format(ctx, levelDebug, message, time.Now(), m))
}

// Info emits a log at INFO level.
func Info(ctx context.Context, message string, m ...Marshaler) {
	Write(format(ctx, levelInfo, message, time.Now(), m))
}

// Warn emits a log at WARN level. Warn logs are meant to be investigated if they reach high volumes.
func Warn(ctx context.Context, message string, m ...Marshaler) {
	Write(format(ctx, levelWarn, message, time.Now(), m))
}

// Error writes out the held back debug entries followed by an entry at
// ERROR level.
func Error(ctx context.Context, message string, m ...Marshaler) {
	pending.Flush(Write)
	Write(format(ctx, levelError, message, time.Now(), m))
}

// Flush writes out all held back debug entries.
func Flush(_ context.Context) {
	pending.Flush(Write)
}

// Purge drops all held back debug entries.
func Purge(_ context.Context) {
	pending.Purge()
}

// format renders an entry as a single line of JSON. Fields from m win
// over the app info but never over message, level or timestamp.
func format(ctx context.Context, lvl level, msg string, ts time.Time, m Many) string {
	entry := F{}
	app.Info().MarshalLog(entry.Set)
	m.MarshalLog(entry.Set)

	if sc := trace.SpanContextFromContext(ctx); sc.TraceID().IsValid() {
		entry["traceID"] = sc.TraceID().String()
	}
	entry["message"] = msg
	entry["level"] = string(lvl)
	entry["@timestamp"] = ts.Format(time.RFC3339Nano)

	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(entry); err != nil {
		return encodeFailure(msg, ts, err)
	}
	return strings.TrimSpace(b.String())
}

// encodeFailure reports an entry that could not be encoded as an ERROR
// entry of its own, so that parsers still see valid JSON.
func encodeFailure(msg string, ts time.Time, err error) string {
	b, merr := json.Marshal(map[string]string{
		"message":    fmt.Sprintf("testshuffle/log: failed to JSON encode log entry %s; err=%v", msg, err),
		"level":      string(levelError),
		"@timestamp": ts.Format(time.RFC3339Nano),
	})
	if merr != nil {
		return ""
	}
	return string(b)
}
