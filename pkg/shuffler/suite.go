//go:build !or_e2e

// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Provides helpers for creating a shuffler test suite
package shuffler

import (
	"context"
	"flag"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"runtime/debug"
	"strconv"
	"sync"
	"testing"

	"github.com/getoutreach/testshuffle/pkg/events"
	"github.com/getoutreach/testshuffle/pkg/log"
)

// seedValue is a flag.Value remembering whether it was set, so that an
// explicit seed of 0 can be told apart from no seed.
type seedValue struct {
	seed int64
	set  bool
}

func (s *seedValue) String() string {
	if s == nil || !s.set {
		return ""
	}
	return strconv.FormatInt(s.seed, 10)
}

func (s *seedValue) Set(v string) error {
	seed, err := ParseSeed(v)
	if err != nil {
		return err
	}
	s.seed, s.set = seed, true
	return nil
}

// nolint:gochecknoglobals // Why: flags used in multiple places
var (
	randomFlag   = flag.Bool("shuffler.random", true, "Randomize the order of test methods")
	lastFlag     = flag.Bool("shuffler.last", false, "Reuse the seed of the previous run")
	groupFlag    = flag.Bool("shuffler.group", false, "Keep test methods sharing a fixture adjacent")
	seedFileFlag = flag.String("shuffler.seedfile", "", "Where the last seed is recorded")
	seedFlag     = &seedValue{}
)

func init() { //nolint:gochecknoinits // Why: registers the custom seed flag
	flag.Var(seedFlag, "shuffler.seed", "Specify a seed for the randomization of test methods")
}

// TestSuite is any struct whose Test* methods take a *testing.T.
type TestSuite interface{}

// FixtureProvider can be implemented by a TestSuite to declare the
// fixtures its test methods depend on, keyed by method name.
type FixtureProvider interface {
	Fixtures() map[string][]string
}

type suiteTest struct {
	item Item
	test testing.InternalTest
}

// failOnPanic exists to ensure we capture the specific test context
// in the panic
func failOnPanic(t *testing.T, finished *bool) {
	err := recover()
	if !*finished && err == nil && !t.Failed() && !t.Skipped() {
		err = fmt.Errorf("panic(nil)")
	}
	if err != nil {
		t.Fatalf("test panicked: %v\n%s", err, debug.Stack())
	}
}

// session shares one Plugin between every Run call of a test binary, so
// all suites are ordered with, and recorded under, a single seed.
type session struct {
	once    sync.Once
	p       *Plugin
	newFunc func(ctx context.Context, t *testing.T) *Plugin
}

// nolint:gochecknoglobals // Why: one session per test binary
var defaultSession = &session{newFunc: newFlagPlugin}

// newFlagPlugin builds the Plugin from the config file, the environment
// and the shuffler.* flags.
func newFlagPlugin(ctx context.Context, t *testing.T) *Plugin {
	conf := flagConfig(ctx)
	return NewPlugin(conf, storeFor(ctx, t, conf), nil)
}

func (s *session) plugin(ctx context.Context, t *testing.T) *Plugin {
	s.once.Do(func() { s.p = s.newFunc(ctx, t) })
	return s.p
}

// Run takes test suites and runs all the exported Test* methods in
// random order.
//
// Every Run call in a test binary uses the same seed, and the seed line
// is logged on each of them. Run must not be called from parallel tests.
func Run(t *testing.T, suites ...TestSuite) {
	t.Helper()
	defaultSession.run(t, suites...)
}

func (s *session) run(t *testing.T, suites ...TestSuite) {
	t.Helper()

	var finished bool
	defer failOnPanic(t, &finished)

	var tests []suiteTest
	for _, suite := range suites {
		tests = append(tests, resolveTests(suite)...)
	}

	ctx := context.Background()
	p := s.plugin(ctx, t)

	ordered, err := orderTests(ctx, p, tests)
	if err != nil {
		t.Fatalf("failed to shuffle tests: %v", err)
	}
	if seed, ok := p.Seed(); ok {
		t.Log(SeedLine(seed))
	}

	runTests(t, ordered)

	if err := p.Persist(ctx); err != nil {
		t.Logf("unable to record shuffle seed: %v", err)
	}
	finished = true
}

// flagConfig builds the Config from the config file, the environment and
// the shuffler.* test flags, in increasing order of precedence.
func flagConfig(ctx context.Context) Config {
	conf := Config{Random: true}
	if err := conf.Load(); err != nil {
		log.Warn(ctx, "ignoring shuffler config", events.Err(err))
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["shuffler.random"] {
		conf.Random = *randomFlag
	}
	if set["shuffler.last"] {
		conf.Last = *lastFlag
	}
	if set["shuffler.group"] {
		conf.Group = *groupFlag
	}
	if set["shuffler.seedfile"] {
		conf.SeedFile = *seedFileFlag
	}
	if seedFlag.set {
		seed := seedFlag.seed
		conf.Seed = &seed
	}

	return conf
}

// storeFor returns the store named by conf, or the seed file of the
// package under test when none is named. It falls back to an in-memory
// store when no home directory is available.
func storeFor(ctx context.Context, t *testing.T, conf Config) Store {
	path := conf.SeedFile
	if path == "" {
		wd, err := os.Getwd()
		if err == nil {
			path, err = PackageSeedFile(wd)
		}
		if err != nil {
			t.Logf("recording the shuffle seed in memory only: %v", err)
			log.Debug(ctx, "no seed file available", events.Err(err))
			return &MemoryStore{}
		}
	}
	return &FileStore{Path: path}
}

// orderTests maps tests to items, lets the collector order them and maps
// the result back.
func orderTests(ctx context.Context, c Collector, tests []suiteTest) ([]testing.InternalTest, error) {
	items := make([]Item, len(tests))
	byID := make(map[string]testing.InternalTest, len(tests))
	for i := range tests {
		items[i] = tests[i].item
		byID[tests[i].item.ID] = tests[i].test
	}

	ordered, err := c.OnTestsCollected(ctx, items)
	if err != nil {
		return nil, err
	}

	out := make([]testing.InternalTest, len(ordered))
	for i := range ordered {
		out[i] = byID[ordered[i].ID]
	}
	return out, nil
}

// resolveTests uses the reflect package to build up the list of all the methods
// that our package consumers have defined on their artisanally crafted TestSuites
func resolveTests(suite TestSuite) []suiteTest {
	tests := []suiteTest{}

	finder := reflect.TypeOf(suite)
	re := regexp.MustCompile("^Test")

	var fixtures map[string][]string
	if fp, ok := suite.(FixtureProvider); ok {
		fixtures = fp.Fixtures()
	}

	for i := 0; i < finder.NumMethod(); i++ {
		method := finder.Method(i)
		if ok := re.MatchString(method.Name); !ok {
			continue
		}

		test := testing.InternalTest{
			Name: method.Name,
			F: func(t *testing.T) {
				var finished bool
				defer failOnPanic(t, &finished)

				method.Func.Call([]reflect.Value{
					reflect.ValueOf(suite),
					reflect.ValueOf(t),
				})
				finished = true
			},
		}
		tests = append(tests, suiteTest{
			item: Item{ID: finder.String() + "." + method.Name, Fixtures: fixtures[method.Name]},
			test: test,
		})
	}
	return tests
}

func runTests(t *testing.T, tests []testing.InternalTest) {
	if len(tests) == 0 {
		t.Log("No tests for this suite")
		return
	}

	// drop anything buffered while collecting so it does not leak into
	// the first test's logs
	log.Purge(context.TODO())

	for _, test := range tests {
		t.Run(test.Name, test.F)
		// Flush all debug logs from the test on failure
		if t.Failed() {
			log.Flush(context.TODO())
		} else {
			// Clear the debug queue so its contents don't contaminate the logs for the next test
			log.Purge(context.TODO())
		}
	}
}
