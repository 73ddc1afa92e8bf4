package arabic

import "testing"

func TestNormalizeStripsDiacritics(t *testing.T) {
	in := "بِسۡمِ ٱللَّهِ ٱلرَّحۡمَـٰنِ ٱلرَّحِیمِ"
	got := Normalize(in)

	for _, r := range got {
		if r >= 0x064B && r <= 0x065F {
			t.Fatalf("tashkeel %U survived normalization: %q", r, got)
		}
		if r == 0x0670 || (r >= 0x06D6 && r <= 0x06ED) {
			t.Fatalf("annotation sign %U survived normalization: %q", r, got)
		}
	}
	if got == "" {
		t.Fatal("normalized basmala must not be empty")
	}
}

func TestNormalizeFoldsAlefVariants(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ٱ", "ا"}, // wasla
		{"أ", "ا"}, // hamza above
		{"إ", "ا"}, // hamza below
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	if got := Normalize("  الحمد \t لله \n رب  "); got != "الحمد لله رب" {
		t.Fatalf("whitespace not collapsed: %q", got)
	}
}

func TestNormalizeTotality(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Fatalf("Normalize(%q) = %q, want empty", "", got)
	}
	if got := Normalize("   "); got != "" {
		t.Fatalf("Normalize(whitespace) = %q, want empty", got)
	}
	if got := Normalize("َّ"); got != "" {
		t.Fatalf("marks-only input should normalize to empty, got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"بِسۡمِ ٱللَّهِ ٱلرَّحۡمَـٰنِ ٱلرَّحِیمِ",
		"ٱلرَّحۡمَـٰنُ عَلَّمَ ٱلۡقُرۡءَانَ",
		"plain ascii text",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeRemovesSpecialMarks(t *testing.T) {
	// rub el hizb, comma, semicolon, question mark, tatweel
	in := "۞ المـ،؛؟"
	got := Normalize(in)
	if got != "الم" {
		t.Fatalf("special marks not removed: %q", got)
	}
}
