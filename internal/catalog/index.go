package catalog

import (
	"sort"
	"strings"

	"restaurant-concierge/pkg/textnorm"
)

// Score tiers of the match cascade. The first matching rule wins.
const (
	scoreExact        = 1000
	scoreStemExact    = 950
	scoreContains     = 900
	scoreStemContains = 850
	scoreOverlapBase  = 100
	scoreOverlapStep  = 50
)

// guardrail excludes a known confusable root pair before scoring: a query
// carrying QueryRoot must never match an item whose name carries ItemRoot,
// because QueryRoot is a substring of ItemRoot and the containment tier
// would produce a high-confidence false positive.
type guardrail struct {
	QueryRoot string
	ItemRoot  string
}

var guardrails = []guardrail{
	{QueryRoot: "pasta", ItemRoot: "antipasti"},
	{QueryRoot: "tea", ItemRoot: "steak"},
	{QueryRoot: "ice", ItemRoot: "juice"},
}

// Index performs fuzzy search over a read-only catalog snapshot.
type Index struct {
	snap *Snapshot
}

// NewIndex creates an Index over snap. A nil snapshot is a valid empty
// catalog: every search returns no candidates.
func NewIndex(snap *Snapshot) *Index {
	return &Index{snap: snap}
}

// Snapshot returns the underlying read-only snapshot.
func (idx *Index) Snapshot() *Snapshot { return idx.snap }

// Recommendable returns the searchable (price > 0) items.
func (idx *Index) Recommendable() []Item {
	if idx.snap == nil {
		return nil
	}
	return idx.snap.Recommendable()
}

// Search scores every candidate against query using the fixed tier cascade
// and returns matches sorted descending by score. Ties keep the original
// candidate order. Guardrail pairs are filtered out before scoring.
func (idx *Index) Search(query string, candidates []Item) []MatchResult {
	nq := textnorm.Normalize(query)
	if nq == "" {
		return nil
	}
	sq := textnorm.StemText(query)
	qTokens := textnorm.TokenSet(query)
	qStems := textnorm.StemmedTokenSet(query)

	results := make([]MatchResult, 0, len(candidates))
	for _, item := range candidates {
		if excludedByGuardrail(nq, textnorm.Normalize(item.Name)) {
			continue
		}
		score, tier, ok := scoreItem(item, nq, sq, qTokens, qStems)
		if !ok {
			continue
		}
		results = append(results, MatchResult{Item: item, Score: score, Tier: tier})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// BestMatch returns the top search result if its score meets threshold.
func (idx *Index) BestMatch(query string, candidates []Item, threshold int) (MatchResult, bool) {
	results := idx.Search(query, candidates)
	if len(results) == 0 || results[0].Score < threshold {
		return MatchResult{}, false
	}
	return results[0], true
}

func excludedByGuardrail(normQuery, normItem string) bool {
	for _, g := range guardrails {
		if strings.Contains(normQuery, g.QueryRoot) &&
			!strings.Contains(normQuery, g.ItemRoot) &&
			strings.Contains(normItem, g.ItemRoot) {
			return true
		}
	}
	return false
}

func scoreItem(item Item, nq, sq string, qTokens, qStems map[string]struct{}) (int, Tier, bool) {
	ni := textnorm.Normalize(item.Name)
	if ni == "" {
		return 0, "", false
	}
	si := textnorm.StemText(item.Name)

	if ni == nq {
		return scoreExact, TierExact, true
	}
	if si != "" && si == sq {
		return scoreStemExact, TierStemExact, true
	}
	if strings.Contains(ni, nq) || strings.Contains(nq, ni) {
		return scoreContains, TierContains, true
	}
	if si != "" && sq != "" && (strings.Contains(si, sq) || strings.Contains(sq, si)) {
		return scoreStemContains, TierStemContains, true
	}

	lit := intersectionSize(textnorm.TokenSet(item.Name), qTokens)
	stemmed := intersectionSize(textnorm.StemmedTokenSet(item.Name), qStems)
	if lit == 0 && stemmed == 0 {
		return 0, "", false
	}
	score := scoreOverlapBase + scoreOverlapStep*lit
	if stemmed > lit {
		score += scoreOverlapStep * (stemmed - lit)
	}
	return score, TierTokenOverlap, true
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
