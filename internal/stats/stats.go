package stats

import (
	"drip/internal/models"
)

// BattleStats holds per-garment win and loss counts derived from battle
// history. A garment that never appeared in a played battle has no entry;
// absence means zero.
type BattleStats struct {
	Wins   map[int]int `json:"wins"`
	Losses map[int]int `json:"losses"`
}

// Compute folds battle history into win/loss counts: every garment on the
// winning side is credited one win, every garment on the losing side one
// loss. The fold is pure; re-running it on the same history yields the
// same result.
func Compute(battles []models.Battle) BattleStats {
	stats := BattleStats{
		Wins:   make(map[int]int),
		Losses: make(map[int]int),
	}

	for _, b := range battles {
		winnerIDs, loserIDs := b.OutfitBIDs, b.OutfitAIDs
		if b.Winner == "a" {
			winnerIDs, loserIDs = b.OutfitAIDs, b.OutfitBIDs
		}

		for _, id := range winnerIDs {
			stats.Wins[id]++
		}
		for _, id := range loserIDs {
			stats.Losses[id]++
		}
	}

	return stats
}

// MostWinning returns the garment id with the most wins. Ties break to the
// lowest id so the result is deterministic. ok is false when no garment
// has a win.
func (s BattleStats) MostWinning() (id int, ok bool) {
	return argmax(s.Wins, func(candidate int) int {
		return s.Wins[candidate]
	})
}

// LosingStreak returns the garment id with the largest losses-minus-wins
// margin among garments with at least one loss. Ties break to the lowest
// id. ok is false when no garment has a loss.
func (s BattleStats) LosingStreak() (id int, ok bool) {
	return argmax(s.Losses, func(candidate int) int {
		return s.Losses[candidate] - s.Wins[candidate]
	})
}

func argmax(candidates map[int]int, score func(int) int) (int, bool) {
	best, bestScore, found := 0, 0, false
	for id := range candidates {
		sc := score(id)
		if !found || sc > bestScore || (sc == bestScore && id < best) {
			best, bestScore, found = id, sc, true
		}
	}
	return best, found
}
