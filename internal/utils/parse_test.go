package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		// empty -> default
		{"", 10, 10},
		// valid ints
		{"42", 0, 42},
		{"-13", 1, -13},
		{"0012", 99, 12},
		// invalid -> default (no trim)
		{"x", 5, 5},
		{" 42", 7, 7},
		// overflow -> default
		{"999999999999999999999999", -1, -1},
	}

	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestFloatDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  float64
		want float64
	}{
		{"0.85", 0.7, 0.85},
		{"", 0.7, 0.7},
		{"abc", 0.7, 0.7},
		{"-1", 0.7, -1},
	}
	for _, c := range cases {
		if got := FloatDefault(c.in, c.def); got != c.want {
			t.Fatalf("FloatDefault(%q, %v) = %v, want %v", c.in, c.def, got, c.want)
		}
	}
}

func TestBoolDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"", true, true},
		{"maybe", true, true},
	}
	for _, c := range cases {
		if got := BoolDefault(c.in, c.def); got != c.want {
			t.Fatalf("BoolDefault(%q, %v) = %v, want %v", c.in, c.def, got, c.want)
		}
	}
}
