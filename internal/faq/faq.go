// Package faq answers near-exact question lookups against an ordered FAQ
// list. Matching is two-stage: normalized exact/prefix equality first,
// then fuzzy candidate ranking with a similarity-ratio acceptance gate.
package faq

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"

	"restaurant-concierge/pkg/textnorm"
)

// Entry is one FAQ triple.
type Entry struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AcceptThreshold is the minimum similarity ratio for a fuzzy FAQ hit.
const AcceptThreshold = 0.7

// maxFuzzyCandidates bounds how many fuzzy-ranked questions get the full
// similarity-ratio computation.
const maxFuzzyCandidates = 3

// Service performs similarity lookup over a read-only FAQ list.
type Service struct {
	entries   []Entry
	questions []string // normalized, same order as entries
}

// New creates a Service over entries. Order is preserved: earlier entries
// win ties.
func New(entries []Entry) *Service {
	s := &Service{entries: entries}
	s.questions = make([]string, len(entries))
	for i, e := range entries {
		s.questions[i] = textnorm.Normalize(e.Question)
	}
	return s
}

// Load reads FAQ entries from a JSON file: [{"id","question","answer"}].
func Load(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("faq: failed to read %s: %w", path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("faq: failed to parse %s: %w", path, err)
	}
	return entries, nil
}

// Lookup finds the FAQ entry matching query, if any. Exact or prefix
// equality on normalized text wins immediately; otherwise the questions
// are fuzzy-ranked and the best candidate is accepted only when its
// similarity ratio exceeds AcceptThreshold.
func (s *Service) Lookup(query string) (Entry, bool) {
	nq := textnorm.Normalize(query)
	if nq == "" {
		return Entry{}, false
	}

	for i, q := range s.questions {
		if q == nq || strings.HasPrefix(q, nq) || strings.HasPrefix(nq, q) {
			return s.entries[i], true
		}
	}

	matches := fuzzy.Find(nq, s.questions)
	bestRatio := 0.0
	bestIdx := -1
	for i, m := range matches {
		if i >= maxFuzzyCandidates {
			break
		}
		if r := similarityRatio(nq, s.questions[m.Index]); r > bestRatio {
			bestRatio = r
			bestIdx = m.Index
		}
	}
	if bestIdx >= 0 && bestRatio > AcceptThreshold {
		return s.entries[bestIdx], true
	}
	return Entry{}, false
}

// PromptExcerpt renders up to max entries as a compact Q/A block for the
// system prompt.
func (s *Service) PromptExcerpt(max int) string {
	if max <= 0 || max > len(s.entries) {
		max = len(s.entries)
	}
	var b strings.Builder
	for _, e := range s.entries[:max] {
		b.WriteString("Q: ")
		b.WriteString(e.Question)
		b.WriteString("\nA: ")
		b.WriteString(e.Answer)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Len returns the number of entries.
func (s *Service) Len() int { return len(s.entries) }

// similarityRatio is a sequence-similarity measure in [0, 1]:
// 2*LCS(a, b) / (len(a)+len(b)) over runes.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}
