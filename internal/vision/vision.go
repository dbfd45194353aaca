package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"drip/internal/ai"
	"drip/internal/logger"
	"drip/internal/models"
)

const identifyMaxTokens = 1024

const identifyPrompt = `You are a fashion-savvy wardrobe cataloger. Analyze this clothing item photograph and return ONLY a JSON object with these fields:

{
  "name": "descriptive name, e.g. 'Navy Blue Oxford Button-Down'",
  "category": "one of: top, bottom, outerwear, shoes, accessory, underwear",
  "subcategory": "specific type, e.g. oxford-shirt, chinos, bomber-jacket, sneakers, watch, belt",
  "colors": ["primary color", "secondary color if applicable"],
  "pattern": "one of: solid, striped, plaid, checkered, floral, graphic, abstract, camo, polka-dot, herringbone, paisley",
  "material": "best guess, e.g. cotton, wool, denim, leather, suede, polyester, linen, silk, cashmere",
  "formality": 3,
  "seasons": ["fall", "winter"],
  "notes": "any notable details: brand visible, distressing, slim fit, etc."
}

Be specific with colors (not just "blue" — say "navy blue" or "light blue").
Be practical with seasons (a heavy wool sweater is fall/winter, a linen shirt is spring/summer).
Return ONLY the JSON object, no markdown fencing, no explanation.`

// ImageGenerator is the slice of the AI client this package needs.
type ImageGenerator interface {
	GenerateFromImage(ctx context.Context, prompt, imageB64, mediaType string, maxTokens int64) (string, error)
}

// Profile is the structured identification of one photographed garment,
// sanitized to the closed sets.
type Profile struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Colors      []string `json:"colors"`
	Pattern     string   `json:"pattern"`
	Material    string   `json:"material"`
	Formality   int      `json:"formality"`
	Seasons     []string `json:"seasons"`
	Notes       string   `json:"notes"`
}

// Identify sends a garment photo to the model and returns a sanitized
// profile. A response that cannot be parsed returns a *ai.ParseError with
// the raw text; the user retries.
func Identify(ctx context.Context, gen ImageGenerator, imageBytes []byte, mediaType string) (*Profile, error) {
	imageB64 := base64.StdEncoding.EncodeToString(imageBytes)

	raw, err := gen.GenerateFromImage(ctx, identifyPrompt, imageB64, mediaType, identifyMaxTokens)
	if err != nil {
		return nil, err
	}

	return parseProfile(raw)
}

func parseProfile(raw string) (*Profile, error) {
	text := ai.StripFence(raw)

	var profile Profile
	if err := json.Unmarshal([]byte(text), &profile); err != nil {
		logger.Warn("failed to parse vision response", "length", len(raw))
		return nil, &ai.ParseError{Raw: raw}
	}

	sanitize(&profile)
	return &profile, nil
}

// sanitize coerces out-of-set values to defaults; the model's output is
// never rejected for a bad field.
func sanitize(p *Profile) {
	if p.Name == "" {
		p.Name = "Unknown Item"
	}
	if !models.ValidCategories[p.Category] {
		p.Category = models.DefaultCategory
	}
	if !models.ValidPatterns[p.Pattern] {
		p.Pattern = models.DefaultPattern
	}
	if p.Formality < 1 || p.Formality > 5 {
		p.Formality = models.DefaultFormality
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}

	seasons := make([]string, 0, len(p.Seasons))
	for _, s := range p.Seasons {
		if models.ValidSeasons[s] {
			seasons = append(seasons, s)
		}
	}
	if len(seasons) == 0 {
		seasons = models.AllSeasons()
	}
	p.Seasons = seasons
}
