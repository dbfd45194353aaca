package stylist

import (
	"drip/internal/models"
)

// AvailableGarments computes the eligible set for a generation request:
// active garments not worn within the no-repeat window and not explicitly
// excluded. Locked garments are added back unconditionally; a lock always
// overrides recency and exclusion. An empty result is valid and means
// "no items available", not an error.
func AvailableGarments(all []models.Garment, recentlyWorn, excluded map[int]bool, locked []models.Garment) []models.Garment {
	available := make([]models.Garment, 0, len(all))
	seen := make(map[int]bool, len(all))

	for _, g := range all {
		if recentlyWorn[g.ID] || excluded[g.ID] {
			continue
		}
		available = append(available, g)
		seen[g.ID] = true
	}

	for _, g := range locked {
		if !seen[g.ID] {
			available = append(available, g)
			seen[g.ID] = true
		}
	}

	return available
}

// IDSet builds a membership set from a list of garment ids.
func IDSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
