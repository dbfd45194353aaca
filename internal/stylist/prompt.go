package stylist

import (
	"fmt"
	"time"
)

// Request carries everything a generation prompt needs. WeatherSummary is a
// one-line sentence; TempF and Conditions repeat the numeric/qualitative
// parts so the rules section can reference them.
type Request struct {
	Occasion        string
	WeatherSummary  string
	TempF           float64
	Conditions      string
	StyleVibe       string
	VibeOverride    string
	LockedItemsText string
	Manifest        string
}

const promptTemplate = `You are a personal stylist with excellent taste. Your job is to create complete, cohesive outfits from the user's actual wardrobe.

## Context
- Occasion: %s
- Weather: %s (%.0f°F, %s)
- Vibe: %s
- Date: %s
- Style preference: %s

## Locked Items (MUST include these):
%s

## Available Wardrobe:
%s

## Rules:
1. Every outfit MUST include at minimum: one top, one bottom (or a dress), and shoes
2. Add outerwear if weather demands it (below 60°F or rain)
3. Accessories are encouraged but not required
4. NEVER suggest items not in the wardrobe — use ONLY the item IDs provided
5. Consider color coordination, formality matching, and seasonal appropriateness
6. If locked items are specified, build the outfit AROUND them
7. Generate exactly 2 outfit options. Make them genuinely distinct — different color palettes, different energy levels, different interpretations of the occasion. The user will pick a winner, so give them a real choice. Don't just swap one piece.

Return ONLY a JSON array of exactly 2 outfit objects:
[
  {
    "name": "creative outfit name",
    "item_ids": [1, 5, 12, 3],
    "reasoning": "2-3 sentences explaining why these pieces work together for this occasion and weather. Be specific about color/texture coordination.",
    "style_notes": "Optional: one quick tip like 'roll the sleeves for a more relaxed look' or 'tuck the shirt in for this one'"
  }
]

Return ONLY the JSON array. No markdown fencing.`

// BuildPrompt assembles the outfit-generation prompt for a request.
func BuildPrompt(req Request) string {
	vibe := req.VibeOverride
	if vibe == "" {
		vibe = "none specified"
	}

	locked := req.LockedItemsText
	if locked == "" {
		locked = "None"
	}

	return fmt.Sprintf(promptTemplate,
		req.Occasion,
		req.WeatherSummary,
		req.TempF,
		req.Conditions,
		vibe,
		time.Now().Format("2006-01-02"),
		req.StyleVibe,
		locked,
		req.Manifest,
	)
}
