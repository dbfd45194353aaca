package database

import (
	"fmt"
	"testing"
	"time"
)

func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(wearDateLayout)
}

func TestLogWearDuplicateIsNoOp(t *testing.T) {
	db := setupTestDB(t)

	created, _ := CreateGarment(db, testGarment("Shirt"))

	logged, err := LogWear(db, created.ID, "2026-08-15", nil)
	if err != nil {
		t.Fatalf("LogWear failed: %v", err)
	}
	if !logged {
		t.Error("expected first log to report logged")
	}

	logged, err = LogWear(db, created.ID, "2026-08-15", nil)
	if err != nil {
		t.Fatalf("duplicate LogWear returned error: %v", err)
	}
	if logged {
		t.Error("expected duplicate log to report not logged")
	}

	entries, _ := GetWearLog(db, created.ID, "", "")
	if len(entries) != 1 {
		t.Errorf("expected exactly 1 wear entry, got %d", len(entries))
	}
}

func TestLogWearDefaultsToToday(t *testing.T) {
	db := setupTestDB(t)

	created, _ := CreateGarment(db, testGarment("Shirt"))
	if _, err := LogWear(db, created.ID, "", nil); err != nil {
		t.Fatalf("LogWear failed: %v", err)
	}

	last, err := GetLastWornDate(db, created.ID)
	if err != nil {
		t.Fatalf("GetLastWornDate failed: %v", err)
	}
	if last != Today() {
		t.Errorf("expected last worn %s, got %s", Today(), last)
	}
}

func TestGetLastWornDateNeverWorn(t *testing.T) {
	db := setupTestDB(t)

	created, _ := CreateGarment(db, testGarment("Shirt"))

	last, err := GetLastWornDate(db, created.ID)
	if err != nil {
		t.Fatalf("GetLastWornDate failed: %v", err)
	}
	if last != "" {
		t.Errorf("expected empty last worn date, got %q", last)
	}
}

func TestRecentWearIDsWindow(t *testing.T) {
	db := setupTestDB(t)

	created, _ := CreateGarment(db, testGarment("Shirt"))
	if _, err := LogWear(db, created.ID, daysAgo(10), nil); err != nil {
		t.Fatalf("LogWear failed: %v", err)
	}

	// Worn 10 days ago: outside a 7-day window, inside a 14-day one.
	recent, err := RecentWearIDs(db, 7)
	if err != nil {
		t.Fatalf("RecentWearIDs failed: %v", err)
	}
	if recent[created.ID] {
		t.Error("expected garment outside 7-day window")
	}

	recent, err = RecentWearIDs(db, 14)
	if err != nil {
		t.Fatalf("RecentWearIDs failed: %v", err)
	}
	if !recent[created.ID] {
		t.Error("expected garment inside 14-day window")
	}
}

func TestGetWearLogDateRange(t *testing.T) {
	db := setupTestDB(t)

	created, _ := CreateGarment(db, testGarment("Shirt"))
	LogWear(db, created.ID, "2026-08-01", nil)
	LogWear(db, created.ID, "2026-08-10", nil)
	LogWear(db, created.ID, "2026-08-20", nil)

	entries, err := GetWearLog(db, 0, "2026-08-05", "2026-08-15")
	if err != nil {
		t.Fatalf("GetWearLog failed: %v", err)
	}
	if len(entries) != 1 || entries[0].DateWorn != "2026-08-10" {
		t.Errorf("unexpected entries in range: %v", entries)
	}

	if entries, _ := GetWearLog(db, created.ID, "", ""); len(entries) != 3 {
		t.Errorf("expected 3 entries for item, got %d", len(entries))
	}
}

func TestGetMostWornGarments(t *testing.T) {
	db := setupTestDB(t)

	favorite, _ := CreateGarment(db, testGarment("Favorite"))
	occasional, _ := CreateGarment(db, testGarment("Occasional"))

	for i := 1; i <= 3; i++ {
		LogWear(db, favorite.ID, fmt.Sprintf("2026-08-%02d", i), nil)
	}
	LogWear(db, occasional.ID, "2026-08-01", nil)

	worn, err := GetMostWornGarments(db, 10)
	if err != nil {
		t.Fatalf("GetMostWornGarments failed: %v", err)
	}
	if len(worn) != 2 {
		t.Fatalf("expected 2 worn garments, got %d", len(worn))
	}
	if worn[0].ID != favorite.ID || worn[0].WearCount != 3 {
		t.Errorf("expected favorite first with 3 wears, got id=%d count=%d", worn[0].ID, worn[0].WearCount)
	}
}

func TestGetForgottenGarments(t *testing.T) {
	db := setupTestDB(t)

	forgotten, _ := CreateGarment(db, testGarment("Forgotten"))
	LogWear(db, forgotten.ID, daysAgo(60), nil)

	current, _ := CreateGarment(db, testGarment("Current"))
	LogWear(db, current.ID, daysAgo(2), nil)

	neverWorn, _ := CreateGarment(db, testGarment("Never Worn"))

	result, err := GetForgottenGarments(db, 30)
	if err != nil {
		t.Fatalf("GetForgottenGarments failed: %v", err)
	}

	ids := make(map[int]bool)
	for _, g := range result {
		ids[g.ID] = true
	}
	if !ids[forgotten.ID] {
		t.Error("expected stale garment in forgotten set")
	}
	if !ids[neverWorn.ID] {
		t.Error("expected never-worn garment in forgotten set")
	}
	if ids[current.ID] {
		t.Error("did not expect recently worn garment in forgotten set")
	}
}
