package search

import (
	"testing"

	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
)

func TestSmartPrefersExact(t *testing.T) {
	c := fixtureCorpus(t)
	got := Smart(c, "beta", DefaultFuzzyThreshold, DefaultSlidingThreshold, true, 0)
	if got.Method != MethodExact {
		t.Fatalf("method %q, want %q", got.Method, MethodExact)
	}
	if got.Count != 2 {
		t.Fatalf("count %d, want 2", got.Count)
	}
	verses, ok := got.Results.([]*corpus.Verse)
	if !ok {
		t.Fatalf("results have type %T", got.Results)
	}
	if len(verses) != got.Count {
		t.Fatalf("count %d does not match %d results", got.Count, len(verses))
	}
}

func TestSmartFallsBackToFuzzy(t *testing.T) {
	c := fixtureCorpus(t)
	got := Smart(c, "alpha beta gama", DefaultFuzzyThreshold, DefaultSlidingThreshold, true, 0)
	if got.Method != MethodFuzzy {
		t.Fatalf("method %q, want %q", got.Method, MethodFuzzy)
	}
	if _, ok := got.Results.([]FuzzyMatch); !ok {
		t.Fatalf("results have type %T", got.Results)
	}
	if got.Count != 2 {
		t.Fatalf("count %d, want 2", got.Count)
	}
}

func TestSmartFallsBackToSlidingWindow(t *testing.T) {
	c := fixtureCorpus(t)
	// Spans a verse boundary, so neither exact nor single-verse fuzzy
	// can reach it at default thresholds.
	got := Smart(c, "gamma delta epsilon", DefaultFuzzyThreshold, DefaultSlidingThreshold, true, 0)
	if got.Method != MethodSlidingWindow {
		t.Fatalf("method %q, want %q", got.Method, MethodSlidingWindow)
	}
	if got.Count != 1 {
		t.Fatalf("count %d, want 1", got.Count)
	}
}

func TestSmartNoMatch(t *testing.T) {
	c := fixtureCorpus(t)
	got := Smart(c, "zyx nonexistent qqq", DefaultFuzzyThreshold, DefaultSlidingThreshold, true, 0)
	if got.Method != MethodNone || got.Count != 0 {
		t.Fatalf("got method %q count %d, want none/0", got.Method, got.Count)
	}
}

func TestSmartEmptyQuery(t *testing.T) {
	c := fixtureCorpus(t)
	for _, q := range []string{"", "   "} {
		got := Smart(c, q, DefaultFuzzyThreshold, DefaultSlidingThreshold, true, 0)
		if got.Method != MethodNone || got.Count != 0 {
			t.Fatalf("Smart(%q): method %q count %d, want none/0", q, got.Method, got.Count)
		}
	}
}

func TestSmartMaxResultsCapsExact(t *testing.T) {
	c := fixtureCorpus(t)
	got := Smart(c, "beta", DefaultFuzzyThreshold, DefaultSlidingThreshold, true, 1)
	if got.Method != MethodExact || got.Count != 1 {
		t.Fatalf("got method %q count %d, want exact/1", got.Method, got.Count)
	}
}
