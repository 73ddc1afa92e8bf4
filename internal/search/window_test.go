package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
)

func TestSlidingWindowSpansVerseBoundary(t *testing.T) {
	c := fixtureCorpus(t)
	got := SlidingWindow(c, "gamma delta epsilon", 80, true, 0)
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
	m := got[0]
	if m.Similarity < 80 {
		t.Fatalf("similarity %.2f below threshold", m.Similarity)
	}
	if m.Reference() != "1:1-2" {
		t.Fatalf("reference %q, want 1:1-2", m.Reference())
	}
	if len(m.Verses) != 2 {
		t.Fatalf("got %d verses, want 2", len(m.Verses))
	}
	if m.StartWord != 2 || m.EndWord != 2 {
		t.Fatalf("word span [%d,%d), want start 2 end 2", m.StartWord, m.EndWord)
	}
	if m.MatchedText != "gamma delta epsilon" {
		t.Fatalf("matched text %q", m.MatchedText)
	}
}

func TestSlidingWindowRepeatedPhrase(t *testing.T) {
	c := fixtureCorpus(t)
	got := SlidingWindow(c, "alpha beta gamma", 80, true, 0)
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	refs := []string{got[0].Reference(), got[1].Reference()}
	// Equal scores keep cursor order.
	if refs[0] != "1:1" || refs[1] != "2:1" {
		t.Fatalf("references %v, want [1:1 2:1]", refs)
	}
	for _, m := range got {
		if m.Similarity != 100 {
			t.Fatalf("match %s scored %.2f, want 100", m.Reference(), m.Similarity)
		}
	}
}

func TestSlidingWindowSortedAndDeduped(t *testing.T) {
	c := fixtureCorpus(t)
	got := SlidingWindow(c, "alpha beta", 50, true, 0)
	seen := make(map[spanKey]bool)
	for i, m := range got {
		if i > 0 && got[i-1].Similarity < m.Similarity {
			t.Fatalf("results not sorted: %.2f before %.2f", got[i-1].Similarity, m.Similarity)
		}
		if m.Similarity < 0 || m.Similarity > 100 {
			t.Fatalf("similarity %.2f out of [0,100]", m.Similarity)
		}
		if seen[m.key()] {
			t.Fatalf("duplicate span %+v", m.key())
		}
		seen[m.key()] = true
	}
}

func TestSlidingWindowMaxResults(t *testing.T) {
	c := fixtureCorpus(t)
	if got := SlidingWindow(c, "alpha beta gamma", 80, true, 1); len(got) != 1 {
		t.Fatalf("got %d matches, want cap of 1", len(got))
	}
}

func TestSlidingWindowEmptyQuery(t *testing.T) {
	c := fixtureCorpus(t)
	if got := SlidingWindow(c, "   ", 80, true, 0); len(got) != 0 {
		t.Fatalf("whitespace query returned %d matches", len(got))
	}
}

func TestSlidingWindowEmptyCorpus(t *testing.T) {
	c := corpus.New()
	c.Finalize()
	if got := SlidingWindow(c, "anything", 80, true, 0); len(got) != 0 {
		t.Fatalf("empty corpus returned %d matches", len(got))
	}
}

func TestSlidingWindowNoMatchAtHighThreshold(t *testing.T) {
	c := fixtureCorpus(t)
	if got := SlidingWindow(c, "zyx qqq www", 99.9, true, 0); len(got) != 0 {
		t.Fatalf("got %d matches, want 0", len(got))
	}
}

func TestReferenceFormats(t *testing.T) {
	cases := []struct {
		m    MultiAyahMatch
		want string
	}{
		{MultiAyahMatch{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 1}, "1:1"},
		{MultiAyahMatch{StartSurah: 55, StartAyah: 1, EndSurah: 55, EndAyah: 4}, "55:1-4"},
		{MultiAyahMatch{StartSurah: 93, StartAyah: 11, EndSurah: 94, EndAyah: 1}, "93:11 - 94:1"},
	}
	for _, tc := range cases {
		if got := tc.m.Reference(); got != tc.want {
			t.Fatalf("Reference() = %q, want %q", got, tc.want)
		}
	}
}

// refinementCorpus is a single surah of three verses whose joined text is
// long enough to cut head and tail probes from.
func refinementCorpus(t *testing.T) (*corpus.Corpus, string) {
	t.Helper()
	c := corpus.New()
	addVerse(t, c, 7, 1, "cedar maple willow aspen", false)
	addVerse(t, c, 7, 2, "birch poplar spruce alder", false)
	addVerse(t, c, 7, 3, "rowan hazel juniper laurel", false)
	c.Finalize()
	full := "cedar maple willow aspen birch poplar spruce alder rowan hazel juniper laurel"
	return c, full
}

func TestRefineEqualBoundariesAccepted(t *testing.T) {
	c, query := refinementCorpus(t)
	got := SlidingWindow(c, query, 80, true, 0)
	if len(got) == 0 {
		t.Fatal("no baseline match")
	}
	top := got[0]
	before := top

	// Both probes resolve to exactly the original boundaries; the
	// shrink-only rule is non-strict, so the refinement must apply
	// cleanly and change nothing observable.
	refineBoundaries(c, &top, query, 80, true)

	if top.key() != before.key() {
		t.Fatalf("boundaries moved: %+v -> %+v", before.key(), top.key())
	}
	if top.Similarity != before.Similarity {
		t.Fatalf("similarity changed from %.2f to %.2f", before.Similarity, top.Similarity)
	}
	if len(top.Verses) != 3 {
		t.Fatalf("got %d verses, want 3", len(top.Verses))
	}
	if top.MatchedText != query {
		t.Fatalf("matched text %q, want full span", top.MatchedText)
	}
}

func TestRefineNeverGrowsMatch(t *testing.T) {
	c, query := refinementCorpus(t)
	got := SlidingWindow(c, query, 80, true, 0)
	if len(got) == 0 {
		t.Fatal("no baseline match")
	}
	top := got[0]

	// Claim the match starts one verse later than the probe will find.
	// The probe's earlier boundary would grow the span, so refinement
	// must leave the match untouched.
	top.StartAyah = 2
	top.StartWord = 0
	before := top

	refineBoundaries(c, &top, query, 80, true)

	if top.key() != before.key() || top.MatchedText != before.MatchedText {
		t.Fatalf("refinement grew the match: %+v -> %+v", before.key(), top.key())
	}
}

func TestRefineShortQueryIsNoop(t *testing.T) {
	c, _ := refinementCorpus(t)
	got := SlidingWindow(c, "cedar maple willow aspen", 80, true, 0)
	if len(got) == 0 {
		t.Fatal("no baseline match")
	}
	top := got[0]
	before := top
	refineBoundaries(c, &top, "cedar maple", 80, true)
	if top.key() != before.key() {
		t.Fatal("short query must not trigger refinement")
	}
}

func TestSlidingWindowLongQueryRefinement(t *testing.T) {
	c := corpus.New()
	for i := 1; i <= 40; i++ {
		text := fmt.Sprintf("v%02da v%02db v%02dc v%02dd v%02de", i, i, i, i, i)
		addVerse(t, c, 7, i, text, false)
	}
	c.Finalize()

	var parts []string
	for i := 5; i <= 29; i++ {
		parts = append(parts, fmt.Sprintf("v%02da v%02db v%02dc v%02dd v%02de", i, i, i, i, i))
	}
	query := strings.Join(parts, " ")
	if len(query) <= longQueryRunes {
		t.Fatalf("fixture query too short: %d runes", len(query))
	}

	got := SlidingWindow(c, query, 80, true, 0)
	if len(got) == 0 {
		t.Fatal("no match for long query")
	}
	top := got[0]
	if top.Similarity != 100 {
		t.Fatalf("similarity %.2f, want 100", top.Similarity)
	}
	if top.Reference() != "7:5-29" {
		t.Fatalf("reference %q, want 7:5-29", top.Reference())
	}
	if len(top.Verses) != 25 {
		t.Fatalf("got %d verses, want 25", len(top.Verses))
	}
	if top.MatchedText != query {
		t.Fatalf("matched text does not cover the span")
	}
}
