package corpus

import (
	"fmt"
	"sort"
)

// Verse is a single ayah. Ayah number 0 is reserved for the Basmala verse
// extracted by the loader from the first ayah of most surahs. Verses are
// immutable after construction.
type Verse struct {
	Surah          int    `json:"surah_number"`
	Ayah           int    `json:"ayah_number"`
	Text           string `json:"text"`
	TextNormalized string `json:"text_normalized"`
	IsBasmalah     bool   `json:"is_basmalah"`
}

// SearchText returns the normalized or original text of the verse.
func (v *Verse) SearchText(normalized bool) string {
	if normalized {
		return v.TextNormalized
	}
	return v.Text
}

// Ref returns the (surah, ayah) coordinate of the verse.
func (v *Verse) Ref() Ref { return Ref{Surah: v.Surah, Ayah: v.Ayah} }

// String renders a short human-readable form, e.g. "Ayah 2:255".
func (v *Verse) String() string {
	kind := "Ayah"
	if v.IsBasmalah {
		kind = "Basmala"
	}
	return fmt.Sprintf("%s %d:%d", kind, v.Surah, v.Ayah)
}

// Chapter is one surah: a mapping from ayah number to verse with O(1)
// lookup. Ayah numbers are unique within the chapter but not guaranteed
// contiguous (0 is the optional Basmala slot).
type Chapter struct {
	Number int
	ayahs  map[int]*Verse
}

// NewChapter creates an empty chapter for the given surah number.
func NewChapter(number int) *Chapter {
	return &Chapter{Number: number, ayahs: make(map[int]*Verse)}
}

// AddVerse inserts a verse into the chapter. It fails with ErrChapterMismatch
// when the verse belongs to a different surah.
func (ch *Chapter) AddVerse(v *Verse) error {
	if v.Surah != ch.Number {
		return fmt.Errorf("%w: verse %d:%d added to chapter %d",
			ErrChapterMismatch, v.Surah, v.Ayah, ch.Number)
	}
	ch.ayahs[v.Ayah] = v
	return nil
}

// Verse returns the verse with the given ayah number.
func (ch *Chapter) Verse(ayah int) (*Verse, error) {
	v, ok := ch.ayahs[ayah]
	if !ok {
		return nil, fmt.Errorf("%w: %d:%d", ErrVerseNotFound, ch.Number, ayah)
	}
	return v, nil
}

// Has reports whether the chapter contains the given ayah number.
func (ch *Chapter) Has(ayah int) bool {
	_, ok := ch.ayahs[ayah]
	return ok
}

// Verses returns the chapter's verses ordered by ayah number.
func (ch *Chapter) Verses() []*Verse {
	nums := make([]int, 0, len(ch.ayahs))
	for n := range ch.ayahs {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	out := make([]*Verse, len(nums))
	for i, n := range nums {
		out[i] = ch.ayahs[n]
	}
	return out
}

// VerseCount returns the number of verses, including a Basmala if present.
func (ch *Chapter) VerseCount() int { return len(ch.ayahs) }

// HasBasmala reports whether the chapter carries a Basmala verse at ayah 0.
func (ch *Chapter) HasBasmala() bool {
	v, ok := ch.ayahs[0]
	return ok && v.IsBasmalah
}
