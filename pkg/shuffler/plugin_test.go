package shuffler_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/getoutreach/testshuffle/pkg/differs"
	"github.com/getoutreach/testshuffle/pkg/log"
	"github.com/getoutreach/testshuffle/pkg/log/logtest"
	"github.com/getoutreach/testshuffle/pkg/shuffler"
)

// runOnce plays the host: collect, order, report, persist.
func runOnce(t *testing.T, conf shuffler.Config, store shuffler.Store) (order []string, seed int64) {
	t.Helper()

	var out bytes.Buffer
	p := shuffler.NewPlugin(conf, store, &out)

	ordered, err := p.OnTestsCollected(context.Background(), sampleItems())
	assert.NilError(t, err)
	assert.NilError(t, p.Persist(context.Background()))

	seed, err = shuffler.ParseSeedLine(out.String())
	assert.NilError(t, err)

	got, ok := p.Seed()
	assert.Assert(t, ok)
	assert.Equal(t, got, seed)
	return shuffler.IDs(ordered), seed
}

func TestPluginDisabledPassesThrough(t *testing.T) {
	var out bytes.Buffer
	store := &shuffler.MemoryStore{}
	p := shuffler.NewPlugin(shuffler.Config{}, store, &out)

	ordered, err := p.OnTestsCollected(context.Background(), sampleItems())
	assert.NilError(t, err)
	assert.DeepEqual(t, ordered, sampleItems())
	assert.Equal(t, out.Len(), 0)

	assert.NilError(t, p.Persist(context.Background()))
	_, err = store.Load(context.Background())
	assert.Assert(t, errors.Is(err, shuffler.ErrNoPriorSeed))

	_, ok := p.Seed()
	assert.Assert(t, !ok)
	assert.Equal(t, p.Origin(), shuffler.SeedOrigin(""))
}

func TestPluginDisabledStillRejectsDuplicates(t *testing.T) {
	p := shuffler.NewPlugin(shuffler.Config{}, nil, nil)
	_, err := p.OnTestsCollected(context.Background(), []shuffler.Item{{ID: "a"}, {ID: "a"}})
	assert.Assert(t, errors.Is(err, shuffler.ErrInvalidInput))
}

func TestPluginReportsSeedAndShuffles(t *testing.T) {
	order, seed := runOnce(t, shuffler.Config{Random: true}, &shuffler.MemoryStore{})

	want, err := shuffler.Reorder(sampleItems(), seed, false)
	assert.NilError(t, err)
	assert.DeepEqual(t, order, shuffler.IDs(want))
	assert.Assert(t, !cmp.Equal(order, shuffler.IDs(sampleItems())))
}

func TestPluginSeedReplay(t *testing.T) {
	store := &shuffler.MemoryStore{}
	first, seed := runOnce(t, shuffler.Config{Random: true}, store)

	second, replayed := runOnce(t, shuffler.Config{Random: true, Seed: &seed}, store)
	assert.Equal(t, replayed, seed)
	assert.DeepEqual(t, first, second)

	next := seed + 1
	third, _ := runOnce(t, shuffler.Config{Random: true, Seed: &next}, store)
	assert.Assert(t, !cmp.Equal(first, third))
}

func TestPluginReusesLastSeed(t *testing.T) {
	dir := t.TempDir()
	store := &shuffler.FileStore{Path: dir + "/lastseed"}

	first, firstSeed := runOnce(t, shuffler.Config{Random: true, Group: true}, store)
	second, secondSeed := runOnce(t, shuffler.Config{Random: true, Group: true, Last: true}, store)

	assert.Equal(t, firstSeed, secondSeed)
	assert.DeepEqual(t, first, second)
}

func TestPluginKeepsSeedAcrossCollections(t *testing.T) {
	logs := logtest.NewLogRecorder(t)
	defer logs.Close()

	ctx := context.Background()
	log.Purge(ctx)

	var out bytes.Buffer
	p := shuffler.NewPlugin(shuffler.Config{Random: true}, nil, &out)

	suiteA := sampleItems()
	suiteB := []shuffler.Item{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}}

	_, err := p.OnTestsCollected(ctx, suiteA)
	assert.NilError(t, err)
	seed, _ := p.Seed()

	orderedB, err := p.OnTestsCollected(ctx, suiteB)
	assert.NilError(t, err)
	again, _ := p.Seed()
	assert.Equal(t, again, seed)
	assert.Equal(t, p.Origin(), shuffler.OriginGenerated)

	want, err := shuffler.Reorder(suiteB, seed, false)
	assert.NilError(t, err)
	assert.DeepEqual(t, orderedB, want)

	line := shuffler.SeedLine(seed) + "\n"
	assert.Equal(t, out.String(), line+line)

	log.Flush(ctx)
	runID := differs.CaptureString()
	entry := func(items int) log.F {
		return log.F{
			"@timestamp":           differs.RFC3339NanoTime(),
			"app.version":          differs.AnyString(),
			"level":                "DEBUG",
			"message":              "tests reordered",
			"shuffler.run_id":      runID,
			"shuffler.random":      true,
			"shuffler.last":        false,
			"shuffler.group":       false,
			"shuffler.seed":        float64(seed),
			"shuffler.seed_origin": "generated",
			"shuffler.items":       float64(items),
		}
	}
	if diff := cmp.Diff([]log.F{entry(12), entry(3)}, logs.Entries(), differs.Custom()); diff != "" {
		t.Fatal("unexpected log entries", diff)
	}
	assert.DeepEqual(t, logs.Messages(), []string{"tests reordered", "tests reordered"})
}

func TestPluginFallsBackWithoutPriorSeed(t *testing.T) {
	logs := logtest.NewLogRecorder(t)
	defer logs.Close()

	var out bytes.Buffer
	p := shuffler.NewPlugin(shuffler.Config{Random: true, Last: true}, &shuffler.MemoryStore{}, &out)

	_, err := p.OnTestsCollected(context.Background(), sampleItems())
	assert.NilError(t, err)
	assert.Equal(t, p.Origin(), shuffler.OriginFallback)
	assert.Assert(t, strings.HasPrefix(out.String(), "Tests are shuffled using seed "))

	expected := []log.F{{
		"@timestamp":          differs.RFC3339NanoTime(),
		"app.version":         differs.AnyString(),
		"level":               "WARN",
		"message":             "no previous seed recorded, generating a new one",
		"shuffler.run_id":     differs.Matches(`^[0-9a-f-]{36}$`),
		"shuffler.random":     true,
		"shuffler.last":       true,
		"shuffler.group":      false,
		"error.kind":          "error",
		"error.error":         "no prior seed recorded",
		"error.message":       "no prior seed recorded",
	}}
	if diff := cmp.Diff(expected, logs.Entries(), differs.Custom()); diff != "" {
		t.Fatal("unexpected log entries", diff)
	}
}

func TestPluginLogsReorderAtDebug(t *testing.T) {
	logs := logtest.NewLogRecorder(t)
	defer logs.Close()

	ctx := context.Background()
	log.Purge(ctx)

	seed := int64(42)
	p := shuffler.NewPlugin(shuffler.Config{Random: true, Seed: &seed}, nil, nil)
	_, err := p.OnTestsCollected(ctx, sampleItems())
	assert.NilError(t, err)
	assert.Equal(t, len(logs.Entries()), 0)
	assert.Equal(t, p.Origin(), shuffler.OriginExplicit)

	log.Flush(ctx)
	entries := logs.Entries()
	assert.Equal(t, len(entries), 1)
	assert.Equal(t, entries[0]["message"], "tests reordered")
	assert.Equal(t, entries[0]["shuffler.seed"], float64(42))
	assert.Equal(t, entries[0]["shuffler.seed_origin"], "explicit")
	assert.Equal(t, entries[0]["shuffler.requested_seed"], float64(42))
	assert.Equal(t, entries[0]["shuffler.items"], float64(12))
}

func TestPluginPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	p := shuffler.NewPlugin(shuffler.Config{Random: true, Last: true}, failingStore{boom}, nil)

	_, err := p.OnTestsCollected(context.Background(), sampleItems())
	assert.Assert(t, errors.Is(err, boom))

	p = shuffler.NewPlugin(shuffler.Config{Random: true}, failingStore{boom}, nil)
	_, err = p.OnTestsCollected(context.Background(), sampleItems())
	assert.NilError(t, err)
	assert.Assert(t, errors.Is(p.Persist(context.Background()), boom))
}

func TestPluginImplementsCollector(t *testing.T) {
	var c shuffler.Collector = shuffler.NewPlugin(shuffler.Config{Random: true}, nil, nil)
	ordered, err := c.OnTestsCollected(context.Background(), nil)
	assert.NilError(t, err)
	assert.Equal(t, len(ordered), 0)
}
