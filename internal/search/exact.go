// Package search implements the three matchers over the verse corpus:
// exact substring lookup, fuzzy matching inside a single verse, and the
// sliding-window matcher for spans that cross verse boundaries. A cascading
// Smart entry point tries them in ascending cost order.
//
// All matchers are pure reads over the finalized corpus and safe for
// concurrent use.
package search

import (
	"strings"

	"github.com/sayedmahmoud266/quran-lookup/internal/arabic"
	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
)

// Exact returns every verse whose text contains query as a literal
// substring, in canonical corpus order. With normalized set, both the query
// and the verse text are compared in normalized form.
func Exact(c *corpus.Corpus, query string, normalized bool) []*corpus.Verse {
	if normalized {
		query = arabic.Normalize(query)
	} else {
		query = strings.TrimSpace(query)
	}
	if query == "" {
		return nil
	}

	var out []*corpus.Verse
	for _, v := range c.AllVerses() {
		if strings.Contains(v.SearchText(normalized), query) {
			out = append(out, v)
		}
	}
	return out
}
