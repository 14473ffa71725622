package catalog

import (
	"encoding/json"
	"fmt"
)

// promptItem is the trimmed item shape embedded in the LLM system prompt.
// Macro fields stay in so the model can answer calorie questions directly.
type promptItem struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Weight       float64 `json:"weight,omitempty"`
	Calories     float64 `json:"calories,omitempty"`
	Protein      float64 `json:"protein,omitempty"`
	Fat          float64 `json:"fat,omitempty"`
	Carbohydrate float64 `json:"carbohydrate,omitempty"`
}

type promptCategory struct {
	Category string       `json:"category"`
	Items    []promptItem `json:"items"`
}

// BuildPromptExcerpt renders the catalog excerpt for the system prompt:
// allow-listed sections only, price > 0 items, at most perCategory items
// per section, keeping catalog order. An empty allowlist means every
// section is eligible.
func BuildPromptExcerpt(snap *Snapshot, allowlist []string, perCategory int) (string, error) {
	if snap == nil {
		return "[]", nil
	}
	if perCategory <= 0 {
		perCategory = 10
	}

	allowed := func(c Category) bool {
		if len(allowlist) == 0 {
			return true
		}
		for _, name := range allowlist {
			if equalFold(c.Name, name) || equalFold(c.ID, name) {
				return true
			}
		}
		return false
	}

	var excerpt []promptCategory
	for _, m := range snap.Menus {
		for _, c := range m.Categories {
			if !allowed(c) {
				continue
			}
			pc := promptCategory{Category: c.Name}
			for _, it := range c.Items {
				if it.Price <= 0 {
					continue
				}
				pc.Items = append(pc.Items, promptItem{
					Name:         it.Name,
					Price:        it.Price,
					Weight:       it.Weight,
					Calories:     it.Calories,
					Protein:      it.Protein,
					Fat:          it.Fat,
					Carbohydrate: it.Carbohydrate,
				})
				if len(pc.Items) >= perCategory {
					break
				}
			}
			if len(pc.Items) > 0 {
				excerpt = append(excerpt, pc)
			}
		}
	}

	raw, err := json.Marshal(excerpt)
	if err != nil {
		return "", fmt.Errorf("catalog: failed to marshal prompt excerpt: %w", err)
	}
	return string(raw), nil
}
