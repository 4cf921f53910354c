//go:build !or_e2e

package log_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/getoutreach/testshuffle/pkg/app"
	"github.com/getoutreach/testshuffle/pkg/differs"
	"github.com/getoutreach/testshuffle/pkg/log"
	"github.com/getoutreach/testshuffle/pkg/log/logtest"
)

type withSuite struct{}

func (withSuite) TestWith(t *testing.T) {
	logs := logtest.NewLogRecorder(t)
	defer logs.Close()

	logger := log.With(log.F{"with": "hey"})
	ctx := context.Background()

	logger.Debug(ctx, "Debug message", log.F{"some": "thing"})
	logger.Info(ctx, "Info message", log.F{"some": "thing"})
	logger.Warn(ctx, "Warn message", log.F{"some": "thing"})
	logger.Error(ctx, "Error message", log.F{"some": "thing"})

	expected := []log.F{
		{
			"@timestamp":  differs.RFC3339NanoTime(),
			"app.version": app.Version,
			"level":       "INFO",
			"message":     "Info message",
			"some":        "thing",
			"with":        "hey",
		},
		{
			"@timestamp":  differs.RFC3339NanoTime(),
			"app.version": app.Version,
			"level":       "WARN",
			"message":     "Warn message",
			"some":        "thing",
			"with":        "hey",
		},
		{
			"@timestamp":  differs.RFC3339NanoTime(),
			"app.version": app.Version,
			"level":       "DEBUG",
			"message":     "Debug message",
			"some":        "thing",
			"with":        "hey",
		},
		{
			"@timestamp":  differs.RFC3339NanoTime(),
			"app.version": app.Version,
			"level":       "ERROR",
			"message":     "Error message",
			"some":        "thing",
			"with":        "hey",
		},
	}

	if diff := cmp.Diff(expected, logs.Entries(), differs.Custom()); diff != "" {
		t.Fatal("unexpected log entries", diff)
	}
}

func (withSuite) TestWithChainsAndCallFieldsWin(t *testing.T) {
	logs := logtest.NewLogRecorder(t)
	defer logs.Close()

	base := log.With(log.F{"shuffler.run_id": "run", "shuffler.seed": 1})
	child := base.With(log.F{"shuffler.group": true})

	child.Warn(context.Background(), "chained", log.F{"shuffler.seed": 2})
	base.Warn(context.Background(), "base only")

	expected := []log.F{
		{
			"@timestamp":      differs.RFC3339NanoTime(),
			"app.version":     app.Version,
			"level":           "WARN",
			"message":         "chained",
			"shuffler.run_id": "run",
			"shuffler.seed":   float64(2),
			"shuffler.group":  true,
		},
		{
			"@timestamp":      differs.RFC3339NanoTime(),
			"app.version":     app.Version,
			"level":           "WARN",
			"message":         "base only",
			"shuffler.run_id": "run",
			"shuffler.seed":   float64(1),
		},
	}

	if diff := cmp.Diff(expected, logs.Entries(), differs.Custom()); diff != "" {
		t.Fatal("unexpected log entries", diff)
	}
}

func (withSuite) TestManySkipsNil(t *testing.T) {
	m := logtest.Map(log.Many{log.F{"a": 1}, nil, log.F{"b": 2}})
	if diff := cmp.Diff(map[string]interface{}{"a": 1, "b": 2}, m); diff != "" {
		t.Fatal("unexpected fields", diff)
	}
}

func (withSuite) TestNestedMarshalers(t *testing.T) {
	m := logtest.Map(log.F{"outer": log.F{"inner": "v"}})
	if diff := cmp.Diff(map[string]interface{}{"outer.inner": "v"}, m); diff != "" {
		t.Fatal("unexpected fields", diff)
	}
}
