package search

import (
	"testing"

	"github.com/sayedmahmoud266/quran-lookup/internal/arabic"
	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
)

// fixtureCorpus builds the two-chapter fixture shared across the matcher
// tests: chapter 1 with two verses, chapter 2 with a preamble plus one
// verse that repeats chapter 1's opening words.
func fixtureCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	c := corpus.New()
	addVerse(t, c, 1, 1, "alpha beta gamma", false)
	addVerse(t, c, 1, 2, "delta epsilon", false)
	addVerse(t, c, 2, 0, "omega", true)
	addVerse(t, c, 2, 1, "alpha beta gamma zeta", false)
	c.Finalize()
	return c
}

func addVerse(t *testing.T, c *corpus.Corpus, surah, ayah int, text string, basmala bool) {
	t.Helper()
	err := c.AddVerse(&corpus.Verse{
		Surah:          surah,
		Ayah:           ayah,
		Text:           text,
		TextNormalized: arabic.Normalize(text),
		IsBasmalah:     basmala,
	})
	if err != nil {
		t.Fatalf("AddVerse(%d:%d): %v", surah, ayah, err)
	}
}
