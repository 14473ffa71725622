package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSnapshot reads a catalog snapshot from a JSON file. The file layout
// mirrors Snapshot: {"menus": [{"id", "categories": [{"id", "name",
// "items": [...]}]}]}. Callers should treat a load failure as an empty
// catalog rather than a startup failure; the router works with
// no candidates.
func LoadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse %s: %w", path, err)
	}

	// Backfill menu/category ids on items so search hits can be routed
	// back to their section without a second lookup.
	for mi := range snap.Menus {
		menu := &snap.Menus[mi]
		for ci := range menu.Categories {
			cat := &menu.Categories[ci]
			for ii := range cat.Items {
				if cat.Items[ii].MenuID == "" {
					cat.Items[ii].MenuID = menu.ID
				}
				if cat.Items[ii].CategoryID == "" {
					cat.Items[ii].CategoryID = cat.ID
				}
			}
		}
	}

	return &snap, nil
}
