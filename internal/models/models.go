package models

import (
	"time"
)

// Closed sets for garment classification. Values outside these sets are
// coerced to the default rather than rejected, because most garment data
// arrives from an AI model and is inherently unreliable.
var (
	ValidCategories = map[string]bool{
		"top": true, "bottom": true, "outerwear": true,
		"shoes": true, "accessory": true, "underwear": true,
	}

	ValidPatterns = map[string]bool{
		"solid": true, "striped": true, "plaid": true, "checkered": true,
		"floral": true, "graphic": true, "abstract": true, "camo": true,
		"polka-dot": true, "herringbone": true, "paisley": true,
	}

	ValidSeasons = map[string]bool{
		"spring": true, "summer": true, "fall": true, "winter": true,
	}
)

const (
	DefaultCategory  = "top"
	DefaultPattern   = "solid"
	DefaultFormality = 3
)

// AllSeasons returns the full season set, the fallback when a garment has
// no valid seasons.
func AllSeasons() []string {
	return []string{"spring", "summer", "fall", "winter"}
}

type Garment struct {
	ID            int       `json:"id" db:"id"`
	ImageFilename string    `json:"image_filename" db:"image_filename"`
	Name          string    `json:"name" db:"name"`
	Category      string    `json:"category" db:"category"`
	Subcategory   string    `json:"subcategory" db:"subcategory"`
	Colors        []string  `json:"colors" db:"colors"`
	Pattern       string    `json:"pattern" db:"pattern"`
	Material      string    `json:"material" db:"material"`
	Formality     int       `json:"formality" db:"formality"`
	Seasons       []string  `json:"seasons" db:"seasons"`
	Notes         string    `json:"notes" db:"notes"`
	Active        bool      `json:"active" db:"active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Normalize coerces out-of-set fields to their defaults. It never rejects.
func (g *Garment) Normalize() {
	if !ValidCategories[g.Category] {
		g.Category = DefaultCategory
	}
	if !ValidPatterns[g.Pattern] {
		g.Pattern = DefaultPattern
	}
	if g.Formality < 1 || g.Formality > 5 {
		g.Formality = DefaultFormality
	}
	if g.Colors == nil {
		g.Colors = []string{}
	}
	seasons := make([]string, 0, len(g.Seasons))
	for _, s := range g.Seasons {
		if ValidSeasons[s] {
			seasons = append(seasons, s)
		}
	}
	if len(seasons) == 0 {
		seasons = AllSeasons()
	}
	g.Seasons = seasons
}

// OutfitCandidate is an ephemeral outfit proposal produced by the
// recommendation client. It becomes a persisted Outfit only on an explicit
// save action.
type OutfitCandidate struct {
	Name       string `json:"name"`
	ItemIDs    []int  `json:"item_ids"`
	Reasoning  string `json:"reasoning"`
	StyleNotes string `json:"style_notes,omitempty"`
}

type Outfit struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Occasion       string    `json:"occasion" db:"occasion"`
	WeatherSummary string    `json:"weather_summary" db:"weather_summary"`
	ItemIDs        []int     `json:"item_ids" db:"item_ids"`
	Reasoning      string    `json:"reasoning" db:"reasoning"`
	Rating         *int      `json:"rating,omitempty" db:"rating"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// WearEntry records one garment worn on one date. Dates are ISO
// YYYY-MM-DD strings; at most one entry exists per (item, date) pair.
type WearEntry struct {
	ID       int    `json:"id" db:"id"`
	ItemID   int    `json:"item_id" db:"item_id"`
	OutfitID *int   `json:"outfit_id,omitempty" db:"outfit_id"`
	DateWorn string `json:"date_worn" db:"date_worn"`

	// Joined from wardrobe_items for display.
	ItemName     string `json:"item_name,omitempty"`
	ItemCategory string `json:"item_category,omitempty"`
	ItemImage    string `json:"item_image,omitempty"`
}

// Battle is an immutable record of one pairwise outfit comparison.
// Battles are append-only; they are never updated or deleted except by a
// full data wipe.
type Battle struct {
	ID             int       `json:"id" db:"id"`
	OutfitAIDs     []int     `json:"outfit_a_ids" db:"outfit_a_ids"`
	OutfitBIDs     []int     `json:"outfit_b_ids" db:"outfit_b_ids"`
	OutfitAName    string    `json:"outfit_a_name" db:"outfit_a_name"`
	OutfitBName    string    `json:"outfit_b_name" db:"outfit_b_name"`
	Winner         string    `json:"winner" db:"winner"`
	Occasion       string    `json:"occasion" db:"occasion"`
	WeatherSummary string    `json:"weather_summary" db:"weather_summary"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
