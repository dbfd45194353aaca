package stylist

import (
	"testing"

	"drip/internal/models"
)

func garmentList(ids ...int) []models.Garment {
	garments := make([]models.Garment, 0, len(ids))
	for _, id := range ids {
		garments = append(garments, models.Garment{ID: id})
	}
	return garments
}

func availableIDs(garments []models.Garment) map[int]bool {
	ids := make(map[int]bool)
	for _, g := range garments {
		ids[g.ID] = true
	}
	return ids
}

func TestAvailableGarmentsExcludesRecentAndExcluded(t *testing.T) {
	all := garmentList(1, 2, 3, 4)

	available := AvailableGarments(all, map[int]bool{2: true}, map[int]bool{4: true}, nil)

	ids := availableIDs(available)
	if !ids[1] || !ids[3] {
		t.Errorf("expected 1 and 3 available, got %v", ids)
	}
	if ids[2] {
		t.Error("recently worn garment should be excluded")
	}
	if ids[4] {
		t.Error("explicitly excluded garment should be excluded")
	}
}

func TestLockOverridesRecencyAndExclusion(t *testing.T) {
	all := garmentList(1, 2)
	locked := garmentList(2)

	available := AvailableGarments(all, map[int]bool{2: true}, map[int]bool{2: true}, locked)

	ids := availableIDs(available)
	if !ids[2] {
		t.Error("locked garment must be available regardless of recency and exclusion")
	}

	// No duplicate entry for a locked garment that was already eligible.
	available = AvailableGarments(all, nil, nil, garmentList(1))
	if len(available) != 2 {
		t.Errorf("expected 2 garments without duplicates, got %d", len(available))
	}
}

func TestWiderWindowShrinksAvailability(t *testing.T) {
	all := garmentList(1, 2, 3, 4, 5)

	// A wider no-repeat window can only mark more garments recently worn,
	// so the available set at the wider window is a subset of the narrower.
	narrow := map[int]bool{2: true}
	wide := map[int]bool{2: true, 3: true, 5: true}

	atNarrow := availableIDs(AvailableGarments(all, narrow, nil, nil))
	atWide := availableIDs(AvailableGarments(all, wide, nil, nil))

	for id := range atWide {
		if !atNarrow[id] {
			t.Errorf("garment %d available at wide window but not narrow", id)
		}
	}
}

func TestAvailableGarmentsEmptyResult(t *testing.T) {
	all := garmentList(1, 2)

	available := AvailableGarments(all, map[int]bool{1: true, 2: true}, nil, nil)
	if len(available) != 0 {
		t.Errorf("expected empty availability, got %v", available)
	}
}

func TestIDSet(t *testing.T) {
	set := IDSet([]int{3, 7})
	if !set[3] || !set[7] || set[5] {
		t.Errorf("unexpected set: %v", set)
	}
	if len(IDSet(nil)) != 0 {
		t.Error("expected empty set from nil input")
	}
}
