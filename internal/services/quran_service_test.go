package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sayedmahmoud266/quran-lookup/internal/arabic"
	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
	"github.com/sayedmahmoud266/quran-lookup/internal/search"
)

func testService(t *testing.T) *QuranService {
	t.Helper()
	c := corpus.New()
	verses := []struct {
		surah, ayah int
		text        string
		basmala     bool
	}{
		{1, 1, "alpha beta gamma", false},
		{1, 2, "delta epsilon", false},
		{2, 0, "omega", true},
		{2, 1, "alpha beta gamma zeta", false},
	}
	for _, v := range verses {
		err := c.AddVerse(&corpus.Verse{
			Surah:          v.surah,
			Ayah:           v.ayah,
			Text:           v.text,
			TextNormalized: arabic.Normalize(v.text),
			IsBasmalah:     v.basmala,
		})
		if err != nil {
			t.Fatalf("AddVerse(%d:%d): %v", v.surah, v.ayah, err)
		}
	}
	c.Finalize()
	return &QuranService{Corpus: c}
}

func TestGetVerse(t *testing.T) {
	s := testService(t)
	v, err := s.GetVerse(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("GetVerse: %v", err)
	}
	if !v.IsBasmalah {
		t.Fatal("2:0 should be the preamble")
	}

	if _, err := s.GetVerse(context.Background(), 3, 1); !errors.Is(err, corpus.ErrSurahNotFound) {
		t.Fatalf("want ErrSurahNotFound, got %v", err)
	}
}

func TestGetSurahVerses(t *testing.T) {
	s := testService(t)
	vs, err := s.GetSurahVerses(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetSurahVerses: %v", err)
	}
	if len(vs) != 2 || vs[0].Ayah != 0 {
		t.Fatalf("unexpected verses %v", vs)
	}
}

func TestGetPartialRange(t *testing.T) {
	s := testService(t)
	vs, err := s.GetPartialRange(context.Background(), corpus.Ref{Surah: 1, Ayah: 2}, corpus.Ref{Surah: 2, Ayah: 1})
	if err != nil {
		t.Fatalf("GetPartialRange: %v", err)
	}
	if len(vs) != 3 {
		t.Fatalf("got %d verses, want 3", len(vs))
	}
	if _, err := s.GetPartialRange(context.Background(), corpus.Ref{Surah: 2, Ayah: 1}, corpus.Ref{Surah: 1, Ayah: 1}); !errors.Is(err, corpus.ErrInvalidRange) {
		t.Fatalf("want ErrInvalidRange, got %v", err)
	}
}

func TestSearchExactValidation(t *testing.T) {
	s := testService(t)
	if _, err := s.SearchExact(context.Background(), "   ", true); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("want ErrEmptyQuery, got %v", err)
	}

	s.MaxQueryRunes = 5
	if _, err := s.SearchExact(context.Background(), "alpha beta", true); !errors.Is(err, ErrQueryTooLong) {
		t.Fatalf("want ErrQueryTooLong, got %v", err)
	}
}

func TestSearchFuzzyThresholdBounds(t *testing.T) {
	s := testService(t)
	if _, err := s.SearchFuzzy(context.Background(), "alpha", 1.5, true, 0); !errors.Is(err, ErrInvalidFuzzyThreshold) {
		t.Fatalf("want ErrInvalidFuzzyThreshold, got %v", err)
	}
	if _, err := s.SearchFuzzy(context.Background(), "alpha", -0.1, true, 0); !errors.Is(err, ErrInvalidFuzzyThreshold) {
		t.Fatalf("want ErrInvalidFuzzyThreshold, got %v", err)
	}
	if _, err := s.SearchFuzzy(context.Background(), "alpha", 0.7, true, -1); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("want ErrInvalidLimit, got %v", err)
	}
}

func TestSearchSlidingWindowThresholdBounds(t *testing.T) {
	s := testService(t)
	if _, err := s.SearchSlidingWindow(context.Background(), "alpha", 101, true, 0); !errors.Is(err, ErrInvalidSlidingThreshold) {
		t.Fatalf("want ErrInvalidSlidingThreshold, got %v", err)
	}

	got, err := s.SearchSlidingWindow(context.Background(), "gamma delta epsilon", 80, true, 0)
	if err != nil {
		t.Fatalf("SearchSlidingWindow: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1", len(got))
	}
}

func TestSmartSearchCascade(t *testing.T) {
	s := testService(t)

	got, err := s.SmartSearch(context.Background(), "beta", search.DefaultFuzzyThreshold, search.DefaultSlidingThreshold, true, 0)
	if err != nil {
		t.Fatalf("SmartSearch: %v", err)
	}
	if got.Method != search.MethodExact || got.Count != 2 {
		t.Fatalf("got method %q count %d, want exact/2", got.Method, got.Count)
	}

	// Empty query is a valid "none" outcome, not an error.
	got, err = s.SmartSearch(context.Background(), "   ", search.DefaultFuzzyThreshold, search.DefaultSlidingThreshold, true, 0)
	if err != nil {
		t.Fatalf("SmartSearch(empty): %v", err)
	}
	if got.Method != search.MethodNone || got.Count != 0 {
		t.Fatalf("got method %q count %d, want none/0", got.Method, got.Count)
	}

	if _, err := s.SmartSearch(context.Background(), "beta", 2, search.DefaultSlidingThreshold, true, 0); !errors.Is(err, ErrInvalidFuzzyThreshold) {
		t.Fatalf("want ErrInvalidFuzzyThreshold, got %v", err)
	}
}

func TestGetStats(t *testing.T) {
	s := testService(t)
	st := s.GetStats(context.Background())
	if st.TotalSurahs != 2 || st.TotalVerses != 4 || st.TotalAyahs != 3 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if st.Source != "Tanzil.net" {
		t.Fatalf("source %q", st.Source)
	}
}
