package battle

import (
	"database/sql"
	"fmt"
	"sync"

	"drip/internal/database"
	"drip/internal/logger"
	"drip/internal/models"
	"drip/internal/stylist"
)

// State is the battle round lifecycle. A round holds two candidates from
// Generated until a vote lands or the user deals again.
type State int

const (
	StateIdle State = iota
	StateGenerated
	StateVoted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerated:
		return "generated"
	case StateVoted:
		return "voted"
	default:
		return "unknown"
	}
}

// RoundContext is the occasion/weather context a pair of candidates was
// generated under. It travels with the round so the persisted battle and
// any saved outfit record the conditions they were judged in.
type RoundContext struct {
	Occasion       string `json:"occasion"`
	WeatherSummary string `json:"weather_summary"`
}

// VoteResult reports the side effects of a cast vote.
type VoteResult struct {
	BattleID    int    `json:"battle_id"`
	Winner      string `json:"winner"`
	WornLogged  int    `json:"worn_logged"`
	WornSkipped int    `json:"worn_skipped"`
}

// Engine is the outfit-battle state machine: Idle -> Generated (two valid
// candidates) -> Voted -> back to Idle. All persistence happens on the
// Generated -> Voted transition and on explicit save-outfit actions; every
// other transition is write-free.
//
// The system is single-session, but gin serves requests concurrently, so
// transitions are serialized with a mutex.
type Engine struct {
	db *sql.DB

	mu         sync.Mutex
	state      State
	candidates []models.OutfitCandidate
	round      RoundContext
	winner     string
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db, state: StateIdle}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Candidates returns the current round's candidates, or nil when idle.
func (e *Engine) Candidates() []models.OutfitCandidate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.OutfitCandidate(nil), e.candidates...)
}

// Begin moves Idle -> Generated with a fresh pair of candidates. Fewer than
// two candidates is rejected and the engine stays Idle; there is no partial
// Generated state. Beginning from a non-Idle state replaces the round (the
// previous candidates were never persisted).
func (e *Engine) Begin(candidates []models.OutfitCandidate, round RoundContext) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(candidates) < 2 {
		return fmt.Errorf("need 2 outfit candidates, got %d", len(candidates))
	}

	e.state = StateGenerated
	e.candidates = candidates[:2]
	e.round = round
	e.winner = ""

	return nil
}

// Vote moves Generated -> Voted. It appends the immutable battle record,
// then logs one wear event per winning garment for today. Stale garment
// ids in the winning candidate are dropped; duplicate wear entries are
// counted as skipped, never treated as errors.
func (e *Engine) Vote(winner string) (*VoteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateGenerated {
		return nil, fmt.Errorf("no battle in progress")
	}
	if winner != "a" && winner != "b" {
		return nil, fmt.Errorf("winner must be \"a\" or \"b\"")
	}

	a, b := e.candidates[0], e.candidates[1]

	winning := a
	if winner == "b" {
		winning = b
	}

	// Resolve before writing anything; a failed resolution costs nothing.
	wornGarments := stylist.ResolveItems(e.db, winning)

	battleID, err := database.SaveBattle(e.db, models.Battle{
		OutfitAIDs:     a.ItemIDs,
		OutfitBIDs:     b.ItemIDs,
		OutfitAName:    a.Name,
		OutfitBName:    b.Name,
		Winner:         winner,
		Occasion:       e.round.Occasion,
		WeatherSummary: e.round.WeatherSummary,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record battle: %w", err)
	}

	result := &VoteResult{BattleID: battleID, Winner: winner}
	for _, garment := range wornGarments {
		logged, err := database.LogWear(e.db, garment.ID, "", nil)
		if err != nil {
			logger.Warn("failed to log wear for battle winner", "item_id", garment.ID)
			continue
		}
		if logged {
			result.WornLogged++
		} else {
			result.WornSkipped++
		}
	}

	e.state = StateVoted
	e.winner = winner

	return result, nil
}

// Winner returns the winning candidate after a vote.
func (e *Engine) Winner() (models.OutfitCandidate, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateVoted {
		return models.OutfitCandidate{}, false
	}
	if e.winner == "b" {
		return e.candidates[1], true
	}
	return e.candidates[0], true
}

// SaveWinner persists the winning candidate as a saved outfit with an
// optional 1-5 rating. Allowed from Voted only; each call creates a new
// outfit row and never touches the battle record, so repeating it is safe.
// All validation happens before the insert; a rejected save writes nothing.
func (e *Engine) SaveWinner(rating *int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateVoted {
		return 0, fmt.Errorf("no voted battle to save from")
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return 0, fmt.Errorf("rating must be between 1 and 5")
	}

	winning := e.candidates[0]
	if e.winner == "b" {
		winning = e.candidates[1]
	}

	outfitID, err := database.SaveOutfit(e.db, models.Outfit{
		Name:           winning.Name,
		Occasion:       e.round.Occasion,
		WeatherSummary: e.round.WeatherSummary,
		ItemIDs:        winning.ItemIDs,
		Reasoning:      winning.Reasoning,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save outfit: %w", err)
	}

	if rating != nil {
		if err := database.RateOutfit(e.db, outfitID, *rating); err != nil {
			return 0, fmt.Errorf("failed to rate outfit: %w", err)
		}
	}

	return outfitID, nil
}

// Reset discards the current round and returns to Idle. From Generated this
// is "deal me again"; from Voted it is "run it back". Nothing is persisted
// either way.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = StateIdle
	e.candidates = nil
	e.round = RoundContext{}
	e.winner = ""
}
