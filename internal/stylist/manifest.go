package stylist

import (
	"fmt"
	"strings"

	"drip/internal/models"
)

// BuildManifest renders garments into the line-oriented wardrobe manifest
// embedded in the generation prompt, one line per garment. The output
// contains nothing the caller did not supply: no commentary, no truncation.
func BuildManifest(garments []models.Garment) string {
	lines := make([]string, 0, len(garments))
	for _, g := range garments {
		line := fmt.Sprintf(
			"ID:%d | %s | %s/%s | %s | %s | %s | formality:%d | %s",
			g.ID,
			g.Name,
			g.Category,
			g.Subcategory,
			strings.Join(g.Colors, ", "),
			g.Pattern,
			g.Material,
			g.Formality,
			strings.Join(g.Seasons, ","),
		)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatLockedItems renders the locked-items prompt block, or "None" when
// nothing is locked.
func FormatLockedItems(garments []models.Garment) string {
	if len(garments) == 0 {
		return "None"
	}

	lines := make([]string, 0, len(garments))
	for _, g := range garments {
		lines = append(lines, fmt.Sprintf("ID:%d - %s (%s)", g.ID, g.Name, g.Category))
	}
	return strings.Join(lines, "\n")
}
