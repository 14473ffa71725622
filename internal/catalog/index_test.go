package catalog

import (
	"strings"
	"testing"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Menus: []Menu{
			{
				ID: "main",
				Categories: []Category{
					{
						ID:   "pizza",
						Name: "Pizza",
						Items: []Item{
							{Name: "Pizza Margherita", MenuID: "main", CategoryID: "pizza", Price: 500, Calories: 870},
							{Name: "Pizza Pepperoni", MenuID: "main", CategoryID: "pizza", Price: 560, Calories: 940},
						},
					},
					{
						ID:   "starters",
						Name: "Starters",
						Items: []Item{
							{Name: "Antipasti Misti", MenuID: "main", CategoryID: "starters", Price: 420},
							{Name: "Caesar Salad", MenuID: "main", CategoryID: "starters", Price: 380, Calories: 310},
							{Name: "Extra Dressing", MenuID: "main", CategoryID: "starters", Price: 0},
						},
					},
					{
						ID:   "soups",
						Name: "Soups",
						Items: []Item{
							{Name: "Tomato Soup", MenuID: "main", CategoryID: "soups", Price: 290, Calories: 180},
							{Name: "Mushroom Soup", MenuID: "main", CategoryID: "soups", Price: 310, Calories: 220},
						},
					},
				},
			},
		},
	}
}

func TestSearchTiers(t *testing.T) {
	snap := testSnapshot()
	idx := NewIndex(snap)
	candidates := snap.Recommendable()

	t.Run("exact name wins with score 1000", func(t *testing.T) {
		results := idx.Search("Pizza Margherita", candidates)
		if len(results) == 0 {
			t.Fatal("expected results")
		}
		if results[0].Item.Name != "Pizza Margherita" || results[0].Score != 1000 {
			t.Errorf("top result = %q score %d, want Pizza Margherita at 1000", results[0].Item.Name, results[0].Score)
		}
		if results[0].Tier != TierExact {
			t.Errorf("tier = %s, want exact", results[0].Tier)
		}
	})

	t.Run("stemmed equality scores 950", func(t *testing.T) {
		results := idx.Search("tomato soups", candidates)
		if len(results) == 0 || results[0].Item.Name != "Tomato Soup" {
			t.Fatalf("expected Tomato Soup first, got %+v", results)
		}
		if results[0].Score != 950 || results[0].Tier != TierStemExact {
			t.Errorf("got score %d tier %s, want 950 stem_exact", results[0].Score, results[0].Tier)
		}
	})

	t.Run("containment scores 900", func(t *testing.T) {
		result, ok := idx.BestMatch("Margherita", candidates, 800)
		if !ok {
			t.Fatal("expected a match above 800")
		}
		if result.Item.Name != "Pizza Margherita" || result.Score != 900 {
			t.Errorf("got %q at %d, want Pizza Margherita at 900", result.Item.Name, result.Score)
		}
	})

	t.Run("token overlap scoring", func(t *testing.T) {
		results := idx.Search("spicy pizza delivery", candidates)
		if len(results) != 2 {
			t.Fatalf("expected both pizzas, got %d results", len(results))
		}
		for _, r := range results {
			if r.Score != 150 || r.Tier != TierTokenOverlap {
				t.Errorf("%s: score %d tier %s, want 150 token_overlap", r.Item.Name, r.Score, r.Tier)
			}
		}
		// Tie keeps catalog order.
		if results[0].Item.Name != "Pizza Margherita" {
			t.Errorf("tie-break broke catalog order: %q first", results[0].Item.Name)
		}
	})

	t.Run("no overlap excluded", func(t *testing.T) {
		if results := idx.Search("lasagna", candidates); len(results) != 0 {
			t.Errorf("expected no results, got %+v", results)
		}
	})

	t.Run("results sorted descending", func(t *testing.T) {
		results := idx.Search("pizza margherita", candidates)
		for i := 1; i < len(results); i++ {
			if results[i].Score > results[i-1].Score {
				t.Fatalf("results not sorted: %d before %d", results[i-1].Score, results[i].Score)
			}
		}
	})
}

func TestGuardrailPastaAntipasti(t *testing.T) {
	snap := testSnapshot()
	idx := NewIndex(snap)
	candidates := snap.Recommendable()

	// Bare "pasta" is a substring of "antipasti" and would hit the
	// containment tier at 900 without the guardrail.
	for _, query := range []string{"pasta", "pasta carbonara"} {
		for _, r := range idx.Search(query, candidates) {
			if strings.Contains(r.Item.Name, "Antipasti") {
				t.Errorf("guardrail failed: %q matched query %q at score %d", r.Item.Name, query, r.Score)
			}
		}
	}

	// The reverse direction stays searchable.
	if _, ok := idx.BestMatch("antipasti", candidates, 800); !ok {
		t.Error("antipasti query should still match Antipasti Misti")
	}
}

func TestBestMatchThreshold(t *testing.T) {
	snap := testSnapshot()
	idx := NewIndex(snap)
	candidates := snap.Recommendable()

	if _, ok := idx.BestMatch("pizza something unrelated", candidates, 800); ok {
		t.Error("token-overlap score must not pass the high threshold")
	}
	if _, ok := idx.BestMatch("pizza something unrelated", candidates, 150); !ok {
		t.Error("token-overlap score should pass the low threshold")
	}
}

func TestRecommendableExcludesFreeItems(t *testing.T) {
	snap := testSnapshot()
	for _, it := range snap.Recommendable() {
		if it.Price <= 0 {
			t.Errorf("item %q with price %.0f must not be recommendable", it.Name, it.Price)
		}
	}

	idx := NewIndex(snap)
	if _, ok := idx.BestMatch("Extra Dressing", snap.Recommendable(), 150); ok {
		t.Error("zero-price item leaked into search candidates")
	}
}

func TestEmptySnapshot(t *testing.T) {
	idx := NewIndex(nil)
	if results := idx.Search("pizza", idx.Recommendable()); len(results) != 0 {
		t.Errorf("nil snapshot should yield no results, got %+v", results)
	}
}
