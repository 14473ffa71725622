package catalog

// Item is a single catalog entry. The catalog is owned by an external
// loader; the router only ever holds read references. Items with
// Price <= 0 are modifiers or hidden entries and are excluded from
// recommendation-facing searches.
type Item struct {
	Name         string  `json:"name"`
	MenuID       string  `json:"menu_id"`
	CategoryID   string  `json:"category_id"`
	Price        float64 `json:"price"`
	Weight       float64 `json:"weight,omitempty"`
	Calories     float64 `json:"calories,omitempty"`
	Protein      float64 `json:"protein,omitempty"`
	Fat          float64 `json:"fat,omitempty"`
	Carbohydrate float64 `json:"carbohydrate,omitempty"`
	Description  string  `json:"description,omitempty"`
	ImageRef     string  `json:"image_ref,omitempty"`
}

// Category groups items under one menu section.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Menu is one menu (main menu, bar menu, ...) with ordered categories.
type Menu struct {
	ID         string     `json:"id"`
	Categories []Category `json:"categories"`
}

// Snapshot is a read-only view of the full catalog. Slices keep the
// original catalog order, which is the tie-break order for search results.
type Snapshot struct {
	Menus []Menu `json:"menus"`
}

// Tier names the scoring bucket a match came from.
type Tier string

const (
	TierExact        Tier = "exact"
	TierStemExact    Tier = "stem_exact"
	TierContains     Tier = "contains"
	TierStemContains Tier = "stem_contains"
	TierTokenOverlap Tier = "token_overlap"
)

// MatchResult is one scored search hit.
type MatchResult struct {
	Item  Item
	Score int
	Tier  Tier
}

// Items returns every item in catalog iteration order.
func (s *Snapshot) Items() []Item {
	if s == nil {
		return nil
	}
	var items []Item
	for _, m := range s.Menus {
		for _, c := range m.Categories {
			items = append(items, c.Items...)
		}
	}
	return items
}

// Recommendable returns items with a positive price, in catalog order.
func (s *Snapshot) Recommendable() []Item {
	var items []Item
	for _, it := range s.Items() {
		if it.Price > 0 {
			items = append(items, it)
		}
	}
	return items
}

// CategoryByName returns the first category whose name matches name
// case-insensitively, or nil.
func (s *Snapshot) CategoryByName(name string) *Category {
	if s == nil {
		return nil
	}
	for mi := range s.Menus {
		for ci := range s.Menus[mi].Categories {
			c := &s.Menus[mi].Categories[ci]
			if equalFold(c.Name, name) || equalFold(c.ID, name) {
				return c
			}
		}
	}
	return nil
}
