// Package services provides QuranService.
//
// This file implements QuranService, the application-level component in
// front of the verse corpus. It validates caller input (query length,
// thresholds, limits), runs the requested lookup or search against the
// immutable corpus, and reports per-method search volume as a Prometheus
// counter.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include coordinates, thresholds, and result counts where applicable.

package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
	"github.com/sayedmahmoud266/quran-lookup/internal/search"
)

// searchesTotal counts completed searches by method, including the method
// the smart cascade settled on.
var searchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quran_searches_total",
		Help: "Completed searches by method.",
	},
	[]string{"method"},
)

// QuranService exposes verse lookups and the three search modes over one
// shared corpus. The corpus is immutable after load, so a single service
// value is safe for concurrent use.
type QuranService struct {
	Corpus *corpus.Corpus

	// MaxQueryRunes caps accepted query length; zero disables the guard.
	MaxQueryRunes int
}

// Stats summarizes the loaded corpus.
type Stats struct {
	TotalSurahs int    `json:"total_surahs"`
	TotalVerses int    `json:"total_verses"`
	TotalAyahs  int    `json:"total_ayahs"`
	Source      string `json:"source"`
}

// GetVerse returns one verse by coordinate. Ayah 0 addresses a chapter's
// Basmala preamble where present.
func (s *QuranService) GetVerse(ctx context.Context, surah, ayah int) (*corpus.Verse, error) {
	tr := otel.Tracer("services/QuranService")
	_, span := tr.Start(ctx, "GetVerse",
		trace.WithAttributes(
			attribute.Int("quran.surah", surah),
			attribute.Int("quran.ayah", ayah),
		),
	)
	defer span.End()

	return s.Corpus.Verse(surah, ayah)
}

// GetSurah returns one chapter.
func (s *QuranService) GetSurah(ctx context.Context, surah int) (*corpus.Chapter, error) {
	tr := otel.Tracer("services/QuranService")
	_, span := tr.Start(ctx, "GetSurah",
		trace.WithAttributes(attribute.Int("quran.surah", surah)),
	)
	defer span.End()

	return s.Corpus.Surah(surah)
}

// GetSurahVerses returns every verse of one chapter in ayah order.
func (s *QuranService) GetSurahVerses(ctx context.Context, surah int) ([]*corpus.Verse, error) {
	tr := otel.Tracer("services/QuranService")
	_, span := tr.Start(ctx, "GetSurahVerses",
		trace.WithAttributes(attribute.Int("quran.surah", surah)),
	)
	defer span.End()

	return s.Corpus.SurahVerses(surah)
}

// GetPartialRange returns the closed verse range between two coordinates in
// canonical order.
func (s *QuranService) GetPartialRange(ctx context.Context, start, end corpus.Ref) ([]*corpus.Verse, error) {
	tr := otel.Tracer("services/QuranService")
	_, span := tr.Start(ctx, "GetPartialRange",
		trace.WithAttributes(
			attribute.String("quran.start", start.String()),
			attribute.String("quran.end", end.String()),
		),
	)
	defer span.End()

	return s.Corpus.PartialRange(start, end)
}

// SearchExact returns every verse containing the query as a literal
// substring.
func (s *QuranService) SearchExact(ctx context.Context, query string, normalized bool) ([]*corpus.Verse, error) {
	tr := otel.Tracer("services/QuranService")
	_, span := tr.Start(ctx, "SearchExact",
		trace.WithAttributes(attribute.Bool("query.normalized", normalized)),
	)
	defer span.End()

	if err := s.checkQuery(query); err != nil {
		return nil, err
	}
	out := search.Exact(s.Corpus, query, normalized)
	searchesTotal.WithLabelValues(search.MethodExact).Inc()
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out, nil
}

// SearchFuzzy runs the single-verse fuzzy matcher. Threshold must lie in
// [0,1]; limit of zero means unlimited.
func (s *QuranService) SearchFuzzy(ctx context.Context, query string, threshold float64, normalized bool, limit int) ([]search.FuzzyMatch, error) {
	tr := otel.Tracer("services/QuranService")
	_, span := tr.Start(ctx, "SearchFuzzy",
		trace.WithAttributes(
			attribute.Float64("query.threshold", threshold),
			attribute.Bool("query.normalized", normalized),
			attribute.Int("query.limit", limit),
		),
	)
	defer span.End()

	if err := s.checkQuery(query); err != nil {
		return nil, err
	}
	if threshold < 0 || threshold > 1 {
		return nil, ErrInvalidFuzzyThreshold
	}
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	out := search.Fuzzy(s.Corpus, query, threshold, normalized, limit)
	searchesTotal.WithLabelValues(search.MethodFuzzy).Inc()
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out, nil
}

// SearchSlidingWindow runs the multi-verse matcher over the flattened word
// stream. Threshold must lie in [0,100]; limit of zero means unlimited.
func (s *QuranService) SearchSlidingWindow(ctx context.Context, query string, threshold float64, normalized bool, limit int) ([]search.MultiAyahMatch, error) {
	tr := otel.Tracer("services/QuranService")
	_, span := tr.Start(ctx, "SearchSlidingWindow",
		trace.WithAttributes(
			attribute.Float64("query.threshold", threshold),
			attribute.Bool("query.normalized", normalized),
			attribute.Int("query.limit", limit),
		),
	)
	defer span.End()

	if err := s.checkQuery(query); err != nil {
		return nil, err
	}
	if threshold < 0 || threshold > 100 {
		return nil, ErrInvalidSlidingThreshold
	}
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	out := search.SlidingWindow(s.Corpus, query, threshold, normalized, limit)
	searchesTotal.WithLabelValues(search.MethodSlidingWindow).Inc()
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out, nil
}

// SmartSearch runs the exact, fuzzy, sliding-window cascade. An empty query
// yields the "none" result rather than an error, matching the cascade
// contract; threshold and limit violations are still rejected.
func (s *QuranService) SmartSearch(ctx context.Context, query string, fuzzyThreshold, slidingThreshold float64, normalized bool, limit int) (search.SmartResult, error) {
	tr := otel.Tracer("services/QuranService")
	_, span := tr.Start(ctx, "SmartSearch",
		trace.WithAttributes(
			attribute.Float64("query.fuzzy_threshold", fuzzyThreshold),
			attribute.Float64("query.sliding_threshold", slidingThreshold),
			attribute.Bool("query.normalized", normalized),
			attribute.Int("query.limit", limit),
		),
	)
	defer span.End()

	if s.MaxQueryRunes > 0 && utf8.RuneCountInString(query) > s.MaxQueryRunes {
		return search.SmartResult{}, ErrQueryTooLong
	}
	if fuzzyThreshold < 0 || fuzzyThreshold > 1 {
		return search.SmartResult{}, ErrInvalidFuzzyThreshold
	}
	if slidingThreshold < 0 || slidingThreshold > 100 {
		return search.SmartResult{}, ErrInvalidSlidingThreshold
	}
	if limit < 0 {
		return search.SmartResult{}, ErrInvalidLimit
	}

	out := search.Smart(s.Corpus, query, fuzzyThreshold, slidingThreshold, normalized, limit)
	searchesTotal.WithLabelValues(out.Method).Inc()
	span.SetAttributes(
		attribute.String("result.method", out.Method),
		attribute.Int("result.count", out.Count),
	)
	return out, nil
}

// GetStats summarizes the loaded corpus.
func (s *QuranService) GetStats(ctx context.Context) Stats {
	tr := otel.Tracer("services/QuranService")
	_, span := tr.Start(ctx, "GetStats")
	defer span.End()

	return Stats{
		TotalSurahs: s.Corpus.SurahCount(),
		TotalVerses: s.Corpus.VerseCount(),
		TotalAyahs:  s.Corpus.AyahCount(),
		Source:      "Tanzil.net",
	}
}

// checkQuery applies the shared query guards for the explicit search modes.
func (s *QuranService) checkQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	if s.MaxQueryRunes > 0 && utf8.RuneCountInString(query) > s.MaxQueryRunes {
		return ErrQueryTooLong
	}
	return nil
}
