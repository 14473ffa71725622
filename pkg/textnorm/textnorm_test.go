package textnorm

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Pizza Margherita", "pizza margherita"},
		{"punctuation stripped", `What's on the "menu", please?!`, "whats on the menu please"},
		{"dashes collapsed", "gluten–free — low-carb", "gluten free low carb"},
		{"whitespace collapsed", "  two \t spaces   here ", "two spaces here"},
		{"number words", "table for four at seven", "table 4 at 7"},
		{"small numbers kept as words", "one more, two beers", "one more two beers"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Pizza — Margherita!",
		"TABLE for Four?",
		"  soup;  of the day  ",
		"already normalized text",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	t.Run("drops stop words and short tokens", func(t *testing.T) {
		got := Tokenize("a plate of pasta with the sauce, please")
		want := []string{"plate", "pasta", "sauce"}
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("Tokenize = %v, want %v", got, want)
		}
	})

	t.Run("splits on hyphen via normalization", func(t *testing.T) {
		got := Tokenize("stir-fried rice")
		want := []string{"stir", "fried", "rice"}
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("Tokenize = %v, want %v", got, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := Tokenize(""); len(got) != 0 {
			t.Errorf("expected no tokens, got %v", got)
		}
	})
}

func TestStem(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pizzas", "pizza"},
		{"dressing", "dress"},
		{"Salads", "salad"},
		{"bookings", "book"},
		{"margherita", "margherita"}, // no suffix
		{"es", "es"},                 // stripping would leave nothing
		{"ab", "ab"},
	}
	for _, tc := range cases {
		if got := Stem(tc.in); got != tc.want {
			t.Errorf("Stem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStemNeverEmptyNeverLonger(t *testing.T) {
	words := []string{"s", "es", "ly", "a", "pizzas", "running", "x", "ingly", "ness"}
	for _, w := range words {
		got := Stem(w)
		if got == "" {
			t.Errorf("Stem(%q) returned empty string", w)
		}
		if len(got) > len(w) {
			t.Errorf("Stem(%q) = %q grew the word", w, got)
		}
	}
}

func TestStemText(t *testing.T) {
	got := StemText("Spicy Soups and Salads!")
	want := "spicy soup salad"
	if got != want {
		t.Errorf("StemText = %q, want %q", got, want)
	}
}
