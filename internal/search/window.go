package search

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/sayedmahmoud266/quran-lookup/internal/arabic"
	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
)

// DefaultSlidingThreshold is the similarity floor applied when the caller
// does not supply one. Scores range over [0,100].
const DefaultSlidingThreshold = 80.0

// Refinement constants for long queries: a query longer than longQueryRunes
// gets its top match tightened with probeRunes-sized anchor probes searched
// over a window of probeRadius verses on each side of the match boundary.
const (
	longQueryRunes = 500
	probeRunes     = 30
	probeRadius    = 5
)

// MultiAyahMatch is one span of the flattened word stream matched by the
// sliding-window matcher. The span may cross verse and surah boundaries;
// Verses lists every verse it touches in canonical order. StartWord and
// EndWord are word indices inside the first and last verse, EndWord
// exclusive.
type MultiAyahMatch struct {
	Verses      []*corpus.Verse `json:"verses"`
	Similarity  float64         `json:"similarity"`
	MatchedText string          `json:"matched_text"`
	QueryText   string          `json:"query_text"`
	StartSurah  int             `json:"start_surah"`
	StartAyah   int             `json:"start_ayah"`
	StartWord   int             `json:"start_word"`
	EndSurah    int             `json:"end_surah"`
	EndAyah     int             `json:"end_ayah"`
	EndWord     int             `json:"end_word"`
}

// Reference renders the span in the conventional citation form: "1:1" for a
// single ayah, "55:1-4" within one surah, "93:11 - 94:1" across surahs.
func (m *MultiAyahMatch) Reference() string {
	switch {
	case m.StartSurah != m.EndSurah:
		return fmt.Sprintf("%d:%d - %d:%d", m.StartSurah, m.StartAyah, m.EndSurah, m.EndAyah)
	case m.StartAyah != m.EndAyah:
		return fmt.Sprintf("%d:%d-%d", m.StartSurah, m.StartAyah, m.EndAyah)
	default:
		return fmt.Sprintf("%d:%d", m.StartSurah, m.StartAyah)
	}
}

func (m *MultiAyahMatch) String() string {
	return fmt.Sprintf("MultiAyahMatch(%s, %.2f%%)", m.Reference(), m.Similarity)
}

// spanKey identifies a match span for deduplication.
type spanKey struct {
	startSurah, startAyah, startWord int
	endSurah, endAyah, endWord       int
}

func (m *MultiAyahMatch) key() spanKey {
	return spanKey{m.StartSurah, m.StartAyah, m.StartWord, m.EndSurah, m.EndAyah, m.EndWord}
}

// SlidingWindow finds spans of the flattened corpus word stream whose text
// best approximates the query under partial alignment. Results carry scores
// on a 0-100 scale, do not overlap, and are sorted by similarity descending.
// maxResults of zero or less means unlimited.
func SlidingWindow(c *corpus.Corpus, query string, threshold float64, normalized bool, maxResults int) []MultiAyahMatch {
	return slidingWindow(c, query, threshold, normalized, maxResults, true)
}

// slidingWindow is the worker behind SlidingWindow. Boundary refinement
// re-enters it with refine forced false, so refinement depth is bounded at
// one regardless of query shape.
func slidingWindow(c *corpus.Corpus, query string, threshold float64, normalized bool, maxResults int, refine bool) []MultiAyahMatch {
	if normalized {
		query = arabic.Normalize(query)
	} else {
		query = strings.Join(strings.Fields(query), " ")
	}
	if query == "" {
		return nil
	}

	fv := c.Flat(normalized)
	out := scanFlat(c, fv, query, threshold, maxResults)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })

	if refine && utf8.RuneCountInString(query) > longQueryRunes && len(out) > 0 {
		refineBoundaries(c, &out[0], query, threshold, normalized)
	}
	return out
}

// scanFlat runs the consume-and-advance alignment loop over one flattened
// view. A character cursor walks the joined text; each round aligns the
// query against the remaining suffix, emits the best span, and resumes from
// that span's end so adjacent candidates cannot overlap.
func scanFlat(c *corpus.Corpus, fv *corpus.FlatView, query string, threshold float64, maxResults int) []MultiAyahMatch {
	if len(fv.Words) == 0 {
		return nil
	}

	var out []MultiAyahMatch
	seen := make(map[spanKey]bool)
	startChar := 0
	for startChar < len(fv.Text) {
		startTok := sort.SearchInts(fv.Starts, startChar)
		if startTok >= len(fv.Words) {
			break
		}
		a, ok := alignPartial(fv, startTok, query)
		if !ok || a.score < threshold {
			break
		}

		m := buildMatch(c, fv, a, query)
		if seen[m.key()] {
			startChar = a.endChar
			continue
		}
		seen[m.key()] = true
		out = append(out, m)
		startChar = a.endChar
		if maxResults > 0 && len(out) >= maxResults {
			break
		}
	}
	return out
}

// alignment is the raw result of one partial alignment over a flat view:
// the best-matching character span, the tokens it covers, and its score.
type alignment struct {
	score              float64
	startChar, endChar int
	startTok, endTok   int
}

// alignPartial finds the best-scoring contiguous token span in fv at or
// after startTok against the query. For every start token it grows a window
// until the joined text reaches the query length, then scores that window
// and its one-token-shorter and one-token-longer neighbors, so the span can
// settle on a word boundary slightly off the raw length estimate. Scoring is
// Levenshtein distance normalized by the longer side, on a 0-100 scale.
func alignPartial(fv *corpus.FlatView, startTok int, query string) (alignment, bool) {
	qLen := len(query)
	n := len(fv.Words)
	best := alignment{score: -1}

	for i := startTok; i < n; i++ {
		grown := n - 1
		for end := i; end < n; end++ {
			if fv.TokenEnd(end)-fv.Starts[i] >= qLen {
				grown = end
				break
			}
		}
		for _, e := range [3]int{grown - 1, grown, grown + 1} {
			if e < i || e >= n {
				continue
			}
			cand := fv.Text[fv.Starts[i]:fv.TokenEnd(e)]
			if s := similarity(cand, query); s > best.score {
				best = alignment{
					score:     s,
					startChar: fv.Starts[i],
					endChar:   fv.TokenEnd(e),
					startTok:  i,
					endTok:    e,
				}
			}
		}
	}
	if best.score < 0 {
		return alignment{}, false
	}
	return best, true
}

// similarity scores two strings on a 0-100 scale from their Levenshtein
// distance over the longer length, rounded to two decimals.
func similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longer := la
	if lb > longer {
		longer = lb
	}
	if longer == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	s := (1 - float64(d)/float64(longer)) * 100
	if s < 0 {
		s = 0
	}
	return math.Round(s*100) / 100
}

// buildMatch materializes an alignment into a MultiAyahMatch: boundary
// coordinates from the word origins of the edge tokens, and the verse list
// from every distinct verse the span touches, each listed once in order.
func buildMatch(c *corpus.Corpus, fv *corpus.FlatView, a alignment, query string) MultiAyahMatch {
	startOrig := fv.Origins[a.startTok]
	endOrig := fv.Origins[a.endTok]

	var verses []*corpus.Verse
	var last corpus.Ref
	for t := a.startTok; t <= a.endTok; t++ {
		ref := corpus.Ref{Surah: fv.Origins[t].Surah, Ayah: fv.Origins[t].Ayah}
		if len(verses) > 0 && ref == last {
			continue
		}
		if v, err := c.Verse(ref.Surah, ref.Ayah); err == nil {
			verses = append(verses, v)
			last = ref
		}
	}

	return MultiAyahMatch{
		Verses:      verses,
		Similarity:  a.score,
		MatchedText: fv.Text[a.startChar:a.endChar],
		QueryText:   query,
		StartSurah:  startOrig.Surah,
		StartAyah:   startOrig.Ayah,
		StartWord:   startOrig.Word,
		EndSurah:    endOrig.Surah,
		EndAyah:     endOrig.Ayah,
		EndWord:     endOrig.Word + 1,
	}
}

// refineBoundaries tightens the boundaries of the top match for a long
// query. The query's first and last probeRunes characters anchor two short
// probe searches over small verse windows around the reported start and end.
// Refinement may only shrink the span, never grow it, and keeps the original
// similarity score. Any failure along the way leaves the match unchanged,
// since refinement is best-effort.
func refineBoundaries(c *corpus.Corpus, top *MultiAyahMatch, query string, threshold float64, normalized bool) {
	runes := []rune(query)
	if len(runes) < 2*probeRunes {
		return
	}
	headProbe := string(runes[:probeRunes])
	tailProbe := string(runes[len(runes)-probeRunes:])

	head, ok := probe(c, corpus.Ref{Surah: top.StartSurah, Ayah: top.StartAyah}, headProbe, threshold, normalized)
	if !ok {
		return
	}
	tail, ok := probe(c, corpus.Ref{Surah: top.EndSurah, Ayah: top.EndAyah}, tailProbe, threshold, normalized)
	if !ok {
		return
	}

	newStart := corpus.WordOrigin{Surah: head.StartSurah, Ayah: head.StartAyah, Word: head.StartWord}
	newEnd := corpus.WordOrigin{Surah: tail.EndSurah, Ayah: tail.EndAyah, Word: tail.EndWord - 1}
	oldStart := corpus.WordOrigin{Surah: top.StartSurah, Ayah: top.StartAyah, Word: top.StartWord}
	oldEnd := corpus.WordOrigin{Surah: top.EndSurah, Ayah: top.EndAyah, Word: top.EndWord - 1}

	// Shrink-only: the refined span must sit inside the original one.
	// Equal boundaries are accepted.
	if newStart.Less(oldStart) || oldEnd.Less(newEnd) || newEnd.Less(newStart) {
		return
	}

	fv := c.Flat(normalized)
	i := fv.IndexOf(newStart)
	j := fv.IndexOf(newEnd)
	if i < 0 || j < 0 || j < i {
		return
	}
	verses, err := c.PartialRange(
		corpus.Ref{Surah: newStart.Surah, Ayah: newStart.Ayah},
		corpus.Ref{Surah: newEnd.Surah, Ayah: newEnd.Ayah},
	)
	if err != nil {
		return
	}

	top.StartSurah, top.StartAyah, top.StartWord = newStart.Surah, newStart.Ayah, newStart.Word
	top.EndSurah, top.EndAyah, top.EndWord = newEnd.Surah, newEnd.Ayah, newEnd.Word+1
	top.Verses = verses
	top.MatchedText = fv.Text[fv.Starts[i]:fv.TokenEnd(j)]
}

// probe runs a non-refining sliding-window search over the verses within
// probeRadius of ref and returns its best match.
func probe(c *corpus.Corpus, ref corpus.Ref, query string, threshold float64, normalized bool) (MultiAyahMatch, bool) {
	verses, err := c.VersesAround(ref, probeRadius)
	if err != nil || len(verses) == 0 {
		return MultiAyahMatch{}, false
	}
	fv := corpus.BuildFlatView(verses, normalized)
	out := scanFlat(c, fv, query, threshold, 0)
	if len(out) == 0 {
		return MultiAyahMatch{}, false
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	return out[0], true
}
