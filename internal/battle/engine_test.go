package battle

import (
	"database/sql"
	"testing"

	"drip/internal/database"
	"drip/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createGarments(t *testing.T, db *sql.DB, names ...string) []int {
	t.Helper()

	ids := make([]int, 0, len(names))
	for _, name := range names {
		created, err := database.CreateGarment(db, models.Garment{
			Name: name, Category: "top", Formality: 3, Active: true,
		})
		if err != nil {
			t.Fatalf("failed to create garment: %v", err)
		}
		ids = append(ids, created.ID)
	}
	return ids
}

func testPair(aIDs, bIDs []int) []models.OutfitCandidate {
	return []models.OutfitCandidate{
		{Name: "Outfit A", ItemIDs: aIDs, Reasoning: "first option"},
		{Name: "Outfit B", ItemIDs: bIDs, Reasoning: "second option"},
	}
}

func TestEngineStartsIdle(t *testing.T) {
	engine := NewEngine(setupTestDB(t))

	if engine.State() != StateIdle {
		t.Errorf("expected idle state, got %s", engine.State())
	}
	if candidates := engine.Candidates(); len(candidates) != 0 {
		t.Errorf("expected no candidates when idle, got %d", len(candidates))
	}
}

func TestBeginRequiresTwoCandidates(t *testing.T) {
	engine := NewEngine(setupTestDB(t))

	err := engine.Begin([]models.OutfitCandidate{{Name: "Lonely"}}, RoundContext{})
	if err == nil {
		t.Fatal("expected error for fewer than 2 candidates")
	}
	if engine.State() != StateIdle {
		t.Errorf("engine must stay idle after rejected begin, got %s", engine.State())
	}
}

func TestBeginMovesToGenerated(t *testing.T) {
	engine := NewEngine(setupTestDB(t))

	if err := engine.Begin(testPair([]int{1}, []int{2}), RoundContext{Occasion: "work"}); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if engine.State() != StateGenerated {
		t.Errorf("expected generated state, got %s", engine.State())
	}
	if candidates := engine.Candidates(); len(candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(candidates))
	}
}

func TestVoteRequiresGeneratedState(t *testing.T) {
	engine := NewEngine(setupTestDB(t))

	if _, err := engine.Vote("a"); err == nil {
		t.Error("expected error voting from idle")
	}
}

func TestVoteRejectsInvalidWinner(t *testing.T) {
	engine := NewEngine(setupTestDB(t))
	engine.Begin(testPair([]int{1}, []int{2}), RoundContext{})

	if _, err := engine.Vote("c"); err != nil {
		if engine.State() != StateGenerated {
			t.Errorf("state must not change on invalid vote, got %s", engine.State())
		}
	} else {
		t.Error("expected error for winner other than a/b")
	}
}

func TestVotePersistsBattleAndWear(t *testing.T) {
	db := setupTestDB(t)
	ids := createGarments(t, db, "Shirt", "Pants", "Jacket")
	engine := NewEngine(db)

	engine.Begin(testPair(ids[:2], ids[2:]), RoundContext{Occasion: "date night", WeatherSummary: "72°F, Clear sky"})

	result, err := engine.Vote("a")
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if engine.State() != StateVoted {
		t.Errorf("expected voted state, got %s", engine.State())
	}
	if result.WornLogged != 2 {
		t.Errorf("expected 2 wear events for winning side, got %d", result.WornLogged)
	}

	battles, err := database.ListBattles(db, 10)
	if err != nil {
		t.Fatalf("ListBattles failed: %v", err)
	}
	if len(battles) != 1 {
		t.Fatalf("expected 1 battle record, got %d", len(battles))
	}
	if battles[0].Winner != "a" || battles[0].Occasion != "date night" {
		t.Errorf("unexpected battle record: %+v", battles[0])
	}

	// Losing side gets no wear events.
	last, _ := database.GetLastWornDate(db, ids[2])
	if last != "" {
		t.Error("losing garment must not be logged as worn")
	}
	last, _ = database.GetLastWornDate(db, ids[0])
	if last != database.Today() {
		t.Errorf("winning garment should be logged today, got %q", last)
	}
}

func TestVoteSkipsAlreadyWornToday(t *testing.T) {
	db := setupTestDB(t)
	ids := createGarments(t, db, "Shirt", "Pants")
	engine := NewEngine(db)

	database.LogWear(db, ids[0], "", nil)

	engine.Begin(testPair(ids[:1], ids[1:]), RoundContext{})
	result, err := engine.Vote("a")
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if result.WornLogged != 0 || result.WornSkipped != 1 {
		t.Errorf("expected 0 logged / 1 skipped, got %d/%d", result.WornLogged, result.WornSkipped)
	}
}

func TestVoteDropsStaleGarmentIDs(t *testing.T) {
	db := setupTestDB(t)
	ids := createGarments(t, db, "Shirt")
	engine := NewEngine(db)

	// 999 never existed; the vote still lands and the battle is recorded.
	engine.Begin(testPair([]int{ids[0], 999}, []int{998}), RoundContext{})
	result, err := engine.Vote("a")
	if err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if result.WornLogged != 1 {
		t.Errorf("expected 1 wear event for the surviving garment, got %d", result.WornLogged)
	}

	count, _ := database.CountBattles(db)
	if count != 1 {
		t.Errorf("expected battle recorded despite stale ids, got %d", count)
	}
}

func TestWinnerOnlyAfterVote(t *testing.T) {
	db := setupTestDB(t)
	ids := createGarments(t, db, "Shirt", "Pants")
	engine := NewEngine(db)

	if _, ok := engine.Winner(); ok {
		t.Error("expected no winner when idle")
	}

	engine.Begin(testPair(ids[:1], ids[1:]), RoundContext{})
	if _, ok := engine.Winner(); ok {
		t.Error("expected no winner before vote")
	}

	engine.Vote("b")
	winner, ok := engine.Winner()
	if !ok {
		t.Fatal("expected winner after vote")
	}
	if winner.Name != "Outfit B" {
		t.Errorf("expected Outfit B, got %q", winner.Name)
	}
}

func TestSaveWinnerFromVotedOnly(t *testing.T) {
	db := setupTestDB(t)
	ids := createGarments(t, db, "Shirt", "Pants")
	engine := NewEngine(db)

	if _, err := engine.SaveWinner(nil); err == nil {
		t.Error("expected error saving from idle")
	}

	engine.Begin(testPair(ids[:1], ids[1:]), RoundContext{Occasion: "work"})
	if _, err := engine.SaveWinner(nil); err == nil {
		t.Error("expected error saving before vote")
	}

	engine.Vote("a")

	rating := 4
	outfitID, err := engine.SaveWinner(&rating)
	if err != nil {
		t.Fatalf("SaveWinner failed: %v", err)
	}

	outfit, err := database.GetOutfit(db, outfitID)
	if err != nil {
		t.Fatalf("GetOutfit failed: %v", err)
	}
	if outfit.Name != "Outfit A" || outfit.Occasion != "work" {
		t.Errorf("unexpected saved outfit: %+v", outfit)
	}
	if outfit.Rating == nil || *outfit.Rating != 4 {
		t.Errorf("expected rating 4, got %v", outfit.Rating)
	}
}

func TestSaveWinnerRejectedRatingWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	ids := createGarments(t, db, "Shirt", "Pants")
	engine := NewEngine(db)

	engine.Begin(testPair(ids[:1], ids[1:]), RoundContext{})
	engine.Vote("a")

	rating := 7
	if _, err := engine.SaveWinner(&rating); err == nil {
		t.Fatal("expected error for out-of-range rating")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM outfits").Scan(&count); err != nil {
		t.Fatalf("failed to count outfits: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected save must not persist an outfit, got %d rows", count)
	}

	// The engine stays in Voted, so a corrected retry succeeds cleanly.
	rating = 4
	if _, err := engine.SaveWinner(&rating); err != nil {
		t.Fatalf("retry with valid rating failed: %v", err)
	}
	db.QueryRow("SELECT COUNT(*) FROM outfits").Scan(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 outfit after retry, got %d", count)
	}
}

func TestResetPersistsNothing(t *testing.T) {
	db := setupTestDB(t)
	ids := createGarments(t, db, "Shirt", "Pants")
	engine := NewEngine(db)

	engine.Begin(testPair(ids[:1], ids[1:]), RoundContext{})
	engine.Reset()

	if engine.State() != StateIdle {
		t.Errorf("expected idle after reset, got %s", engine.State())
	}

	count, _ := database.CountBattles(db)
	if count != 0 {
		t.Errorf("deal-again must not persist a battle, got %d", count)
	}
	last, _ := database.GetLastWornDate(db, ids[0])
	if last != "" {
		t.Error("deal-again must not log wear")
	}
}

func TestBeginReplacesExistingRound(t *testing.T) {
	db := setupTestDB(t)
	ids := createGarments(t, db, "Shirt", "Pants", "Jacket", "Shoes")
	engine := NewEngine(db)

	engine.Begin(testPair(ids[:1], ids[1:2]), RoundContext{})

	replacement := []models.OutfitCandidate{
		{Name: "New A", ItemIDs: ids[2:3]},
		{Name: "New B", ItemIDs: ids[3:]},
	}
	if err := engine.Begin(replacement, RoundContext{}); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	candidates := engine.Candidates()
	if candidates[0].Name != "New A" {
		t.Errorf("expected replaced round, got %q", candidates[0].Name)
	}

	// The discarded round was never persisted.
	count, _ := database.CountBattles(db)
	if count != 0 {
		t.Errorf("replacing a round must not persist anything, got %d battles", count)
	}
}
