package corpus

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Ref is a (surah, ayah) coordinate.
type Ref struct {
	Surah int `json:"surah"`
	Ayah  int `json:"ayah"`
}

// Less reports whether r sorts before o in canonical corpus order
// (surah ascending, then ayah ascending).
func (r Ref) Less(o Ref) bool {
	if r.Surah != o.Surah {
		return r.Surah < o.Surah
	}
	return r.Ayah < o.Ayah
}

// String renders the reference as "surah:ayah".
func (r Ref) String() string { return fmt.Sprintf("%d:%d", r.Surah, r.Ayah) }

// WordOrigin records, for one token of the flattened word stream, the verse
// it came from and its word index within that verse.
type WordOrigin struct {
	Surah int
	Ayah  int
	Word  int
}

// Canonical compare of word origins: surah, then ayah, then word index.
func (w WordOrigin) Less(o WordOrigin) bool {
	if w.Surah != o.Surah {
		return w.Surah < o.Surah
	}
	if w.Ayah != o.Ayah {
		return w.Ayah < o.Ayah
	}
	return w.Word < o.Word
}

// FlatView is a verse sequence rendered as one linear token stream. Starts
// holds the byte offset of every token inside Text (needed to translate a
// character-level alignment span back to a token index). All four slices and
// the string are immutable once built.
type FlatView struct {
	Words   []string
	Origins []WordOrigin
	Starts  []int
	Text    string
}

// BuildFlatView flattens the given verses, in the order supplied, into a
// single token stream with per-token origins and byte offsets.
func BuildFlatView(verses []*Verse, normalized bool) *FlatView {
	fv := &FlatView{}
	var b strings.Builder
	for _, v := range verses {
		for i, w := range strings.Fields(v.SearchText(normalized)) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			fv.Starts = append(fv.Starts, b.Len())
			b.WriteString(w)
			fv.Words = append(fv.Words, w)
			fv.Origins = append(fv.Origins, WordOrigin{Surah: v.Surah, Ayah: v.Ayah, Word: i})
		}
	}
	fv.Text = b.String()
	return fv
}

// TokenAt returns the index of the last token whose start offset is <= pos,
// clamped to the valid range. It assumes Starts is non-empty.
func (fv *FlatView) TokenAt(pos int) int {
	i := sort.SearchInts(fv.Starts, pos+1) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(fv.Starts) {
		i = len(fv.Starts) - 1
	}
	return i
}

// TokenEnd returns the byte offset just past token i within Text.
func (fv *FlatView) TokenEnd(i int) int { return fv.Starts[i] + len(fv.Words[i]) }

// IndexOf returns the token index of the given word origin, or -1 when the
// origin is not part of this view. Origins are in canonical order, so this
// is a binary search.
func (fv *FlatView) IndexOf(o WordOrigin) int {
	i := sort.Search(len(fv.Origins), func(i int) bool {
		return !fv.Origins[i].Less(o)
	})
	if i < len(fv.Origins) && fv.Origins[i] == o {
		return i
	}
	return -1
}

// Corpus holds every chapter of the Quran plus the derived read views built
// by Finalize. The loader populates it once at startup; afterwards it is
// immutable and safe for concurrent readers.
type Corpus struct {
	chapters    map[int]*Chapter
	totalVerses int
	totalAyahs  int // verses excluding Basmalas

	// Reference Basmala, set by Finalize from chapter 1 verse 1.
	basmala     string
	basmalaNorm string

	finalized     bool
	orderedSurahs []int
	orderedRefs   []Ref

	flatOnce     sync.Once
	flatNormOnce sync.Once
	flat         *FlatView
	flatNorm     *FlatView
}

// New returns an empty corpus ready for loading.
func New() *Corpus {
	return &Corpus{chapters: make(map[int]*Chapter)}
}

// AddVerse inserts a verse, creating its chapter on first sight, and keeps
// the running totals current. Only the loader calls this, during the load
// phase; the corpus must not be mutated after Finalize.
func (c *Corpus) AddVerse(v *Verse) error {
	ch, ok := c.chapters[v.Surah]
	if !ok {
		ch = NewChapter(v.Surah)
		c.chapters[v.Surah] = ch
	}
	if err := ch.AddVerse(v); err != nil {
		return err
	}
	c.totalVerses++
	if !v.IsBasmalah {
		c.totalAyahs++
	}
	return nil
}

// Verse returns the verse at (surah, ayah) in O(1).
func (c *Corpus) Verse(surah, ayah int) (*Verse, error) {
	ch, err := c.Surah(surah)
	if err != nil {
		return nil, err
	}
	return ch.Verse(ayah)
}

// Surah returns the chapter with the given number.
func (c *Corpus) Surah(surah int) (*Chapter, error) {
	ch, ok := c.chapters[surah]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrSurahNotFound, surah)
	}
	return ch, nil
}

// SurahVerses returns every verse of a surah in ayah order.
func (c *Corpus) SurahVerses(surah int) ([]*Verse, error) {
	ch, err := c.Surah(surah)
	if err != nil {
		return nil, err
	}
	return ch.Verses(), nil
}

// SurahCount returns the number of loaded surahs.
func (c *Corpus) SurahCount() int { return len(c.chapters) }

// VerseCount returns the total number of verses, Basmalas included.
func (c *Corpus) VerseCount() int { return c.totalVerses }

// AyahCount returns the number of verses excluding Basmalas.
func (c *Corpus) AyahCount() int { return c.totalAyahs }

// Basmala returns the reference Basmala text captured at Finalize, or ""
// when the corpus has no chapter 1 verse 1.
func (c *Corpus) Basmala() string { return c.basmala }

// NormalizedBasmala returns the normalized form of the reference Basmala.
func (c *Corpus) NormalizedBasmala() string { return c.basmalaNorm }

// sortedRefs computes the canonical (surah, ayah) ordering from scratch.
func (c *Corpus) sortedRefs() []Ref {
	surahs := make([]int, 0, len(c.chapters))
	for n := range c.chapters {
		surahs = append(surahs, n)
	}
	sort.Ints(surahs)

	refs := make([]Ref, 0, c.totalVerses)
	for _, s := range surahs {
		for _, v := range c.chapters[s].Verses() {
			refs = append(refs, Ref{Surah: s, Ayah: v.Ayah})
		}
	}
	return refs
}

// AllVerses returns every verse in canonical order. After Finalize this uses
// the cached ordering; before it, the order is computed on demand (slower,
// still correct).
func (c *Corpus) AllVerses() []*Verse {
	refs := c.orderedRefs
	if !c.finalized {
		refs = c.sortedRefs()
	}
	out := make([]*Verse, 0, len(refs))
	for _, r := range refs {
		v, err := c.Verse(r.Surah, r.Ayah)
		if err != nil {
			continue // unreachable for refs derived from the corpus itself
		}
		out = append(out, v)
	}
	return out
}

// Finalize builds the derived read views: sorted surah numbers, the canonical
// verse ordering, and the reference Basmala (taken from chapter 1 verse 1).
// The flattened word streams are built lazily on first use and cached, which
// is safe because the corpus never changes after loading. Finalize is
// idempotent; calling it twice is a no-op.
func (c *Corpus) Finalize() {
	if c.finalized {
		return
	}
	c.orderedRefs = c.sortedRefs()
	c.orderedSurahs = c.orderedSurahs[:0]
	last := 0
	for _, r := range c.orderedRefs {
		if r.Surah != last {
			c.orderedSurahs = append(c.orderedSurahs, r.Surah)
			last = r.Surah
		}
	}
	if v, err := c.Verse(1, 1); err == nil {
		c.basmala = v.Text
		c.basmalaNorm = v.TextNormalized
	}
	c.finalized = true
}

// Flat returns the whole-corpus flattened word stream in the requested
// flavor. The view is built on first use and cached; callers that search
// before Finalize still get a correct (freshly ordered) view.
func (c *Corpus) Flat(normalized bool) *FlatView {
	if normalized {
		c.flatNormOnce.Do(func() { c.flatNorm = BuildFlatView(c.AllVerses(), true) })
		return c.flatNorm
	}
	c.flatOnce.Do(func() { c.flat = BuildFlatView(c.AllVerses(), false) })
	return c.flat
}

// refIndex returns the position of r in the canonical ordering, or -1.
func (c *Corpus) refIndex(refs []Ref, r Ref) int {
	i := sort.Search(len(refs), func(i int) bool { return !refs[i].Less(r) })
	if i < len(refs) && refs[i] == r {
		return i
	}
	return -1
}

// PartialRange returns the closed range of verses between start and end in
// canonical order. It fails with ErrInvalidRange when either endpoint is
// missing or start sorts after end.
func (c *Corpus) PartialRange(start, end Ref) ([]*Verse, error) {
	refs := c.orderedRefs
	if !c.finalized {
		refs = c.sortedRefs()
	}
	si := c.refIndex(refs, start)
	ei := c.refIndex(refs, end)
	if si < 0 || ei < 0 {
		return nil, fmt.Errorf("%w: %s - %s", ErrInvalidRange, start, end)
	}
	if si > ei {
		return nil, fmt.Errorf("%w: %s sorts after %s", ErrInvalidRange, start, end)
	}
	out := make([]*Verse, 0, ei-si+1)
	for _, r := range refs[si : ei+1] {
		v, err := c.Verse(r.Surah, r.Ayah)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// VersesAround returns up to `radius` verses on each side of ref (inclusive
// of ref itself), clipped at the corpus edges. Used by the sliding-window
// matcher to build refinement windows; ref must exist.
func (c *Corpus) VersesAround(ref Ref, radius int) ([]*Verse, error) {
	refs := c.orderedRefs
	if !c.finalized {
		refs = c.sortedRefs()
	}
	i := c.refIndex(refs, ref)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrVerseNotFound, ref)
	}
	lo := i - radius
	if lo < 0 {
		lo = 0
	}
	hi := i + radius
	if hi > len(refs)-1 {
		hi = len(refs) - 1
	}
	return c.PartialRange(refs[lo], refs[hi])
}
