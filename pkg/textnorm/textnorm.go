// Package textnorm provides text normalization, tokenization and a
// lightweight suffix stemmer used by the catalog matcher and the fast-path
// router. It is deterministic and allocation-light; no external NLP.
package textnorm

import (
	"strings"
)

// numberWords maps small spelled-out numbers to digits. Only four..ten are
// converted: one/two/three collide with common phrases ("one more", "to").
var numberWords = map[string]string{
	"four":  "4",
	"five":  "5",
	"six":   "6",
	"seven": "7",
	"eight": "8",
	"nine":  "9",
	"ten":   "10",
}

// punctuation stripped during normalization.
const punctuation = "\"'`«»“”‘’.,?!:;()[]"

// dashReplacer collapses dash variants to a single space.
var dashReplacer = strings.NewReplacer("–", " ", "—", " ", "-", " ")

// stopWords dropped by Tokenize: articles, prepositions and generic
// category nouns that carry no matching signal.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"with": {}, "and": {}, "or": {}, "from": {}, "by": {},
	"please": {}, "some": {},
	"dish": {}, "dishes": {}, "drink": {}, "drinks": {},
	"meal": {}, "meals": {}, "food": {},
}

// suffixes tried by Stem, longest first. The first matching suffix is
// stripped, provided the remaining stem is longer than one character.
var suffixes = []string{
	"ations",
	"ation",
	"ingly",
	"iness",
	"ness",
	"ment",
	"ings",
	"iest",
	"ies",
	"ing",
	"ers",
	"est",
	"ous",
	"ed",
	"es",
	"ly",
	"er",
	"s",
}

// Normalize lowercases text, collapses dash variants to spaces, strips a
// fixed punctuation set, converts spelled-out numbers four..ten to digits
// and collapses runs of whitespace. Normalize is idempotent.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = dashReplacer.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(punctuation, r) {
			continue
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		if digit, ok := numberWords[w]; ok {
			words[i] = digit
		}
	}
	return strings.Join(words, " ")
}

// Tokenize normalizes text and splits it into tokens, dropping stop-words
// and tokens of length <= 1.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) <= 1 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Stem strips the first matching suffix from the longest-first suffix list.
// A suffix is stripped only when the remaining stem is longer than one
// character, so Stem never returns an empty string and never grows a word.
func Stem(word string) string {
	w := strings.ToLower(word)
	for _, suf := range suffixes {
		if strings.HasSuffix(w, suf) && len(w)-len(suf) > 1 {
			return w[:len(w)-len(suf)]
		}
	}
	return w
}

// StemText stems every token of the normalized text, joined by spaces.
func StemText(text string) string {
	tokens := Tokenize(text)
	for i, t := range tokens {
		tokens[i] = Stem(t)
	}
	return strings.Join(tokens, " ")
}

// TokenSet returns the token set of text for overlap scoring.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokenize(text) {
		set[t] = struct{}{}
	}
	return set
}

// StemmedTokenSet returns the stemmed token set of text.
func StemmedTokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokenize(text) {
		set[Stem(t)] = struct{}{}
	}
	return set
}
