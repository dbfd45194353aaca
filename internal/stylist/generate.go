package stylist

import (
	"context"
	"database/sql"
	"encoding/json"

	"drip/internal/ai"
	"drip/internal/database"
	"drip/internal/logger"
	"drip/internal/models"
)

const generateMaxTokens = 2048

// TextGenerator is the slice of the AI client this package needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int64) (string, error)
}

// GenerateOutfits asks the model for two distinct outfit candidates. Exactly
// one external call is made; retries are user-initiated.
//
// A malformed response returns a *ai.ParseError carrying the raw text — a
// reported failure the caller surfaces for a user-driven retry. A lone JSON
// object is wrapped into a one-element slice; the caller detects the
// fewer-than-two condition separately.
func GenerateOutfits(ctx context.Context, gen TextGenerator, req Request) ([]models.OutfitCandidate, error) {
	raw, err := gen.GenerateText(ctx, BuildPrompt(req), generateMaxTokens)
	if err != nil {
		return nil, err
	}

	return parseCandidates(raw)
}

func parseCandidates(raw string) ([]models.OutfitCandidate, error) {
	text := ai.StripFence(raw)

	var candidates []models.OutfitCandidate
	if err := json.Unmarshal([]byte(text), &candidates); err == nil {
		return candidates, nil
	}

	var single models.OutfitCandidate
	if err := json.Unmarshal([]byte(text), &single); err == nil {
		return []models.OutfitCandidate{single}, nil
	}

	logger.Warn("failed to parse outfit response", "length", len(raw))
	return nil, &ai.ParseError{Raw: raw}
}

// ResolveItems maps a candidate's item ids onto garment records, silently
// dropping ids that no longer resolve. A candidate with stale ids is still
// usable; the stale references are skipped at the point of use.
func ResolveItems(db *sql.DB, candidate models.OutfitCandidate) []models.Garment {
	garments := make([]models.Garment, 0, len(candidate.ItemIDs))
	for _, id := range candidate.ItemIDs {
		garment, err := database.GetGarment(db, id)
		if err != nil {
			continue
		}
		garments = append(garments, *garment)
	}
	return garments
}
