package search

import (
	"math"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/sayedmahmoud266/quran-lookup/internal/arabic"
	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
)

// DefaultFuzzyThreshold is the similarity floor applied when the caller does
// not supply one. Scores range over [0,1].
const DefaultFuzzyThreshold = 0.7

// FuzzyMatch is one verse matched by the single-verse fuzzy matcher.
// StartWord and EndWord delimit the matched word window inside the verse,
// with EndWord exclusive.
type FuzzyMatch struct {
	Verse       *corpus.Verse `json:"verse"`
	Similarity  float64       `json:"similarity"`
	MatchedText string        `json:"matched_text"`
	QueryText   string        `json:"query_text"`
	StartWord   int           `json:"start_word"`
	EndWord     int           `json:"end_word"`
}

// Fuzzy scores the query against every verse and returns the verses whose
// best word window reaches threshold, sorted by similarity descending.
// maxResults of zero or less means unlimited.
func Fuzzy(c *corpus.Corpus, query string, threshold float64, normalized bool, maxResults int) []FuzzyMatch {
	if normalized {
		query = arabic.Normalize(query)
	} else {
		query = strings.Join(strings.Fields(query), " ")
	}
	queryTokens := strings.Fields(query)
	if len(queryTokens) == 0 {
		return nil
	}

	var out []FuzzyMatch
	for _, v := range c.AllVerses() {
		tokens := strings.Fields(v.SearchText(normalized))
		start, end, score := bestWindow(queryTokens, tokens)
		if score < threshold {
			continue
		}
		out = append(out, FuzzyMatch{
			Verse:       v,
			Similarity:  score,
			MatchedText: strings.Join(tokens[start:end], " "),
			QueryText:   query,
			StartWord:   start,
			EndWord:     end,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

// bestWindow slides word windows over the verse tokens and returns the
// best-scoring one. At every offset two window sizes are tried: the query
// length itself, and a flexible size that tolerates inserted words. Each
// window is scored with both a set-based and a sort-based token ratio and
// the maximum wins, since Arabic word-order variants favor one or the other
// depending on the phrase. The score is normalized to [0,1] and rounded to
// three decimals; a score of -1 means no window exists.
func bestWindow(queryTokens, tokens []string) (start, end int, score float64) {
	qLen := len(queryTokens)
	if qLen == 0 || len(tokens) < qLen {
		return 0, 0, -1
	}
	flexible := qLen + 3
	if qLen*2 > flexible {
		flexible = qLen * 2
	}
	query := strings.Join(queryTokens, " ")

	score = -1
	for offset := 0; offset+qLen <= len(tokens); offset++ {
		for _, size := range []int{qLen, flexible} {
			limit := offset + size
			if limit > len(tokens) {
				limit = len(tokens)
			}
			window := strings.Join(tokens[offset:limit], " ")
			s := fuzzy.TokenSetRatio(query, window)
			if sorted := fuzzy.TokenSortRatio(query, window); sorted > s {
				s = sorted
			}
			if r := float64(s) / 100; r > score {
				start, end, score = offset, limit, r
			}
		}
	}
	return start, end, math.Round(score*1000) / 1000
}
