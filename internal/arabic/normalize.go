// Package arabic provides normalization of Quranic Arabic text. It reduces the
// fully vocalized Uthmani script to a bare consonantal form that is stable
// under search: diacritics and recitation marks are removed, a small set of
// alef variants is folded to the plain alef, and whitespace is collapsed.
//
// Normalize is pure, total, and idempotent; it is safe to call from any
// number of goroutines.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// tashkeel and recitation signs removed during normalization. Each code point
// is enumerated so the set is reviewable against the Tanzil Uthmani text.
var removedMarks = []rune{
	// Basic diacritics (tashkeel)
	'ً', // FATHATAN
	'ٌ', // DAMMATAN
	'ٍ', // KASRATAN
	'َ', // FATHA
	'ُ', // DAMMA
	'ِ', // KASRA
	'ّ', // SHADDA
	'ْ', // SUKUN

	// Maddah, hamza marks, and small vowel signs
	'ٓ', // MADDAH ABOVE
	'ٔ', // HAMZA ABOVE
	'ٕ', // HAMZA BELOW
	'ٖ', // SUBSCRIPT ALEF
	'ٗ', // INVERTED DAMMA
	'٘', // MARK NOON GHUNNA
	'ٙ', // ZWARAKAY
	'ٚ', // VOWEL SIGN SMALL V ABOVE
	'ٛ', // VOWEL SIGN INVERTED SMALL V ABOVE
	'ٜ', // VOWEL SIGN DOT BELOW
	'ٝ', // REVERSED DAMMA
	'ٞ', // FATHA WITH TWO DOTS
	'ٟ', // WAVY HAMZA BELOW

	// Extended Quranic annotation signs
	'ٰ', // SUPERSCRIPT ALEF
	'ۖ', // SMALL HIGH LIGATURE SAD WITH LAM WITH ALEF MAKSURA
	'ۗ', // SMALL HIGH LIGATURE QAF WITH LAM WITH ALEF MAKSURA
	'ۘ', // SMALL HIGH MEEM INITIAL FORM
	'ۙ', // SMALL HIGH LAM ALEF
	'ۚ', // SMALL HIGH JEEM
	'ۛ', // SMALL HIGH THREE DOTS
	'ۜ', // SMALL HIGH SEEN
	'۟', // SMALL HIGH ROUNDED ZERO
	'۠', // SMALL HIGH UPRIGHT RECTANGULAR ZERO
	'ۡ', // SMALL HIGH DOTLESS HEAD OF KHAH
	'ۢ', // SMALL HIGH MEEM ISOLATED FORM
	'ۣ', // SMALL LOW SEEN
	'ۤ', // SMALL HIGH MADDA
	'ۥ', // SMALL WAW
	'ۦ', // SMALL YEH
	'ۧ', // SMALL HIGH YEH
	'ۨ', // SMALL HIGH NOON
	'۩', // PLACE OF SAJDAH
	'۪', // EMPTY CENTRE LOW STOP
	'۫', // EMPTY CENTRE HIGH STOP
	'۬', // ROUNDED HIGH STOP WITH FILLED CENTRE
	'ۭ', // SMALL LOW MEEM

	// Open tanween and arrowhead marks (Quranic orthography block)
	'ࣰ', // OPEN FATHATAN
	'ࣱ', // OPEN DAMMATAN
	'ࣲ', // OPEN KASRATAN
	'ࣳ', // SMALL HIGH WAW
	'ࣴ', // FATHA WITH RING
	'ࣵ', // FATHA WITH DOT ABOVE
	'ࣶ', // KASRA WITH DOT BELOW
	'ࣷ', // LEFT ARROWHEAD ABOVE
	'ࣸ', // RIGHT ARROWHEAD ABOVE
	'ࣹ', // LEFT ARROWHEAD BELOW
	'ࣺ', // RIGHT ARROWHEAD BELOW
	'ࣻ', // DOUBLE RIGHT ARROWHEAD ABOVE
	'ࣼ', // DOUBLE RIGHT ARROWHEAD ABOVE WITH DOT
	'ࣽ', // RIGHT ARROWHEAD ABOVE WITH DOT
	'ࣾ', // DAMMA WITH DOT
	'ࣿ', // MARK SIDEWAYS NOON GHUNNA

	// Layout and punctuation marks that never carry lexical content
	'۞', // START OF RUB EL HIZB
	'،', // ARABIC COMMA
	'؛', // ARABIC SEMICOLON
	'؟', // ARABIC QUESTION MARK
	'ـ', // ARABIC TATWEEL
}

// markSweep removes every combining mark in the Quranic ranges, including any
// code point the enumerated table above might miss. Kept as a second pass so
// a future corpus revision with a new annotation sign still normalizes clean.
var markSweep = runes.Remove(runes.In(&unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x064B, Hi: 0x065F, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
		{Lo: 0x06D6, Hi: 0x06ED, Stride: 1},
		{Lo: 0x08F0, Hi: 0x08FF, Stride: 1},
	},
}))

// letterFolds maps alef variants to the plain alef. The Uthmani text writes
// alef wasla and the hamza-carrying alefs where searchers type a bare alef.
var letterFolds = strings.NewReplacer(
	"ٱ", "ا", // ALEF WASLA → ALEF
	"أ", "ا", // ALEF WITH HAMZA ABOVE → ALEF
	"إ", "ا", // ALEF WITH HAMZA BELOW → ALEF
)

var markReplacer = newMarkReplacer()

func newMarkReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(removedMarks)*2)
	for _, r := range removedMarks {
		pairs = append(pairs, string(r), "")
	}
	return strings.NewReplacer(pairs...)
}

// Normalize strips diacritics and recitation marks, folds alef variants, and
// collapses runs of whitespace to single spaces. Empty or whitespace-only
// input yields the empty string; Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := markReplacer.Replace(text)
	s, _, _ = transform.String(markSweep, s)
	s = letterFolds.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
