// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Provide capabilities to shuffle tests during a run.

// Package shuffler reorders a collected list of tests using a
// reproducible seed, optionally keeping tests that share a fixture next
// to each other. Running tests in a random order surfaces hidden
// dependencies between them; reporting the seed makes any failing order
// replayable.
//
// The core is two functions:
//
//	seed, err := shuffler.ResolveSeed(ctx, explicit, reuseLast, store)
//	ordered, err := shuffler.Reorder(items, seed, groupByFixture)
//
// Hosts normally go through a Plugin, which resolves the seed, reorders
// the items, prints the seed line and later persists the seed:
//
//	p := shuffler.NewPlugin(conf, store, os.Stdout)
//	ordered, err := p.OnTestsCollected(ctx, items)
//	... run the tests in order ...
//	err = p.Persist(ctx)
//
// The package also ships a host for testing.T based suites. Methods
// defined on your suite struct will be resolved at runtime, and all
// tests that start with Test will be run in shuffled order:
//
//	type YourTestSuite struct{}
//
//	func (s YourTestSuite) TestThatWeFluxCapacitors(t *testing.T) { ... }
//
//	// Optional: declare shared fixtures so -shuffler.group keeps the
//	// tests using them adjacent.
//	func (s YourTestSuite) Fixtures() map[string][]string {
//	    return map[string][]string{"TestThatWeFluxCapacitors": {"db"}}
//	}
//
//	func TestCapacitorSuite(t *testing.T) {
//	    shuffler.Run(t, YourTestSuite{})
//	}
//
// The suite host understands the following test flags:
//
//	-shuffler.random=false  run tests in declaration order
//	-shuffler.seed=N        replay the order produced by seed N
//	-shuffler.last          replay the seed used by the previous run
//	-shuffler.group         keep tests sharing a fixture adjacent
//	-shuffler.seedfile=P    where the last seed is persisted
//
// The seed used is always logged as "Tests are shuffled using seed N."
//
// Caveat: the suite host only works for testing.T tests. It is strongly
// recommended to not use it with t.Parallel().
package shuffler
