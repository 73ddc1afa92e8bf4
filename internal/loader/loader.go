// Package loader reads the Tanzil verse file and builds the in-memory
// corpus, splitting the Basmala preamble out of each surah opener.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sayedmahmoud266/quran-lookup/internal/arabic"
	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
)

// fallbackBasmala is used when the file does not carry 1:1, e.g. partial
// fixtures in tests. Real Tanzil files always start with Al-Fatihah.
const fallbackBasmala = "بِسْمِ ٱللَّهِ ٱلرَّحْمَـٰنِ ٱلرَّحِيمِ"

// Al-Fatihah opens with the Basmala as its own ayah and At-Tawbah has none,
// so neither surah gets preamble extraction.
func surahWithoutBasmala(surah int) bool {
	return surah == 1 || surah == 9
}

type rawVerse struct {
	surah int
	ayah  int
	text  string
}

// LoadFile reads the verse file at path and returns the finalized corpus.
func LoadFile(path string) (*corpus.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open verse file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses verse lines in "surah|ayah|text" format, extracts Basmala
// preambles, and returns a finalized corpus. Blank lines and lines starting
// with '#' or '=' (Tanzil copyright block) are skipped.
func Load(r io.Reader) (*corpus.Corpus, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var raw []rawVerse
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "=") {
			continue
		}
		v, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		raw = append(raw, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read verse file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("verse file contains no verses")
	}

	basmala := fallbackBasmala
	for _, v := range raw {
		if v.surah == 1 && v.ayah == 1 {
			basmala = v.text
			break
		}
	}
	basmalaNorm := arabic.Normalize(basmala)

	c := corpus.New()
	for _, v := range raw {
		for _, out := range splitBasmala(v, basmala, basmalaNorm) {
			if err := c.AddVerse(out); err != nil {
				return nil, fmt.Errorf("verse %d:%d: %w", v.surah, v.ayah, err)
			}
		}
	}
	c.Finalize()
	return c, nil
}

func parseLine(line string) (rawVerse, error) {
	parts := strings.SplitN(line, "|", 4)
	if len(parts) != 3 {
		return rawVerse{}, fmt.Errorf("expected 3 fields separated by '|', got %d", len(parts))
	}
	surah, err := strconv.Atoi(parts[0])
	if err != nil {
		return rawVerse{}, fmt.Errorf("surah number %q: %w", parts[0], err)
	}
	ayah, err := strconv.Atoi(parts[1])
	if err != nil {
		return rawVerse{}, fmt.Errorf("ayah number %q: %w", parts[1], err)
	}
	if surah < 1 || surah > 114 {
		return rawVerse{}, fmt.Errorf("surah number %d out of range 1..114", surah)
	}
	if ayah < 1 {
		return rawVerse{}, fmt.Errorf("ayah number %d must be positive", ayah)
	}
	text := strings.TrimSpace(parts[2])
	if text == "" {
		return rawVerse{}, fmt.Errorf("empty verse text")
	}
	return rawVerse{surah: surah, ayah: ayah, text: text}, nil
}

// splitBasmala turns one file line into the verses it represents. The first
// ayah of every surah except 1 and 9 carries the Basmala as a prefix in the
// Tanzil format; that prefix becomes its own ayah-0 verse.
func splitBasmala(v rawVerse, basmala, basmalaNorm string) []*corpus.Verse {
	if surahWithoutBasmala(v.surah) || v.ayah != 1 || !strings.HasPrefix(arabic.Normalize(v.text), basmalaNorm) {
		return []*corpus.Verse{{
			Surah:          v.surah,
			Ayah:           v.ayah,
			Text:           v.text,
			TextNormalized: arabic.Normalize(v.text),
		}}
	}

	preamble := &corpus.Verse{
		Surah:          v.surah,
		Ayah:           0,
		Text:           basmala,
		TextNormalized: basmalaNorm,
		IsBasmalah:     true,
	}

	rest := trimBasmala(v.text, basmala, basmalaNorm)
	if rest == "" {
		return []*corpus.Verse{preamble}
	}
	return []*corpus.Verse{preamble, {
		Surah:          v.surah,
		Ayah:           v.ayah,
		Text:           rest,
		TextNormalized: arabic.Normalize(rest),
	}}
}

// trimBasmala removes the Basmala prefix from text. It tries an exact
// prefix first and falls back to word-by-word normalized matching when the
// diacritics differ from the reference text.
func trimBasmala(text, basmala, basmalaNorm string) string {
	if strings.HasPrefix(text, basmala) {
		return strings.TrimSpace(text[len(basmala):])
	}

	words := strings.Fields(text)
	want := strings.Fields(basmalaNorm)
	if len(words) < len(want) {
		return text
	}
	for i, w := range want {
		if arabic.Normalize(words[i]) != w {
			return text
		}
	}
	return strings.Join(words[len(want):], " ")
}
