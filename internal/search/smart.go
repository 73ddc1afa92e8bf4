package search

import (
	"strings"

	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
)

// Search method names reported by Smart.
const (
	MethodExact         = "exact"
	MethodFuzzy         = "fuzzy"
	MethodSlidingWindow = "sliding_window"
	MethodNone          = "none"
)

// SmartResult is the outcome of the cascading search: which matcher
// produced the results and how many there are. Results holds the matcher's
// native result slice.
type SmartResult struct {
	Method  string `json:"method"`
	Results any    `json:"results"`
	Count   int    `json:"count"`
}

// Smart runs the precision-first cascade: exact substring search, then the
// single-verse fuzzy matcher, then the sliding-window matcher, stopping at
// the first matcher that returns results. Exact is cheapest and most
// precise; sliding-window is the most expensive and the only one that finds
// spans crossing verse boundaries, so it runs last.
func Smart(c *corpus.Corpus, query string, fuzzyThreshold, slidingThreshold float64, normalized bool, maxResults int) SmartResult {
	if strings.TrimSpace(query) == "" {
		return SmartResult{Method: MethodNone, Results: []any{}}
	}

	exact := Exact(c, query, normalized)
	if maxResults > 0 && len(exact) > maxResults {
		exact = exact[:maxResults]
	}
	if len(exact) > 0 {
		return SmartResult{Method: MethodExact, Results: exact, Count: len(exact)}
	}

	if fz := Fuzzy(c, query, fuzzyThreshold, normalized, maxResults); len(fz) > 0 {
		return SmartResult{Method: MethodFuzzy, Results: fz, Count: len(fz)}
	}

	if sw := SlidingWindow(c, query, slidingThreshold, normalized, maxResults); len(sw) > 0 {
		return SmartResult{Method: MethodSlidingWindow, Results: sw, Count: len(sw)}
	}

	return SmartResult{Method: MethodNone, Results: []any{}}
}
