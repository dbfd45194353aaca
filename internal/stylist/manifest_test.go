package stylist

import (
	"strings"
	"testing"

	"drip/internal/models"
)

func TestBuildManifestOneLinePerGarment(t *testing.T) {
	garments := []models.Garment{
		{
			ID: 12, Name: "Navy Oxford", Category: "top", Subcategory: "oxford-shirt",
			Colors: []string{"navy blue", "white"}, Pattern: "solid", Material: "cotton",
			Formality: 3, Seasons: []string{"spring", "fall"},
		},
		{
			ID: 40, Name: "White Sneakers", Category: "shoes", Subcategory: "sneakers",
			Colors: []string{"white"}, Pattern: "solid", Material: "leather",
			Formality: 2, Seasons: []string{"spring", "summer", "fall", "winter"},
		},
	}

	manifest := BuildManifest(garments)

	lines := strings.Split(manifest, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	want := "ID:12 | Navy Oxford | top/oxford-shirt | navy blue, white | solid | cotton | formality:3 | spring,fall"
	if lines[0] != want {
		t.Errorf("line = %q, want %q", lines[0], want)
	}
	if !strings.Contains(lines[1], "ID:40") {
		t.Errorf("expected ID:40 in line, got %q", lines[1])
	}
}

func TestBuildManifestEmptyFields(t *testing.T) {
	garments := []models.Garment{
		{ID: 5, Name: "Mystery", Category: "top", Formality: 3},
	}

	manifest := BuildManifest(garments)

	if !strings.HasPrefix(manifest, "ID:5 | Mystery | top/") {
		t.Errorf("unexpected manifest line: %q", manifest)
	}
	if strings.Count(manifest, "|") != 7 {
		t.Errorf("expected 7 separators even with empty fields, got %q", manifest)
	}
}

func TestBuildManifestEmptyWardrobe(t *testing.T) {
	if manifest := BuildManifest(nil); manifest != "" {
		t.Errorf("expected empty manifest, got %q", manifest)
	}
}

func TestFormatLockedItems(t *testing.T) {
	if text := FormatLockedItems(nil); text != "None" {
		t.Errorf("expected 'None' for no locked items, got %q", text)
	}

	garments := []models.Garment{
		{ID: 3, Name: "Navy Oxford", Category: "top"},
		{ID: 9, Name: "Brown Loafers", Category: "shoes"},
	}

	text := FormatLockedItems(garments)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "ID:3 - Navy Oxford (top)" {
		t.Errorf("unexpected locked line: %q", lines[0])
	}
}

func TestBuildPromptIncludesContext(t *testing.T) {
	prompt := BuildPrompt(Request{
		Occasion:        "date night",
		WeatherSummary:  "58°F (feels like 55°F), Rain, humidity 80%, wind 10mph",
		TempF:           58,
		Conditions:      "Rain",
		StyleVibe:       "smart casual",
		LockedItemsText: "ID:3 - Navy Oxford (top)",
		Manifest:        "ID:3 | Navy Oxford | top/oxford-shirt | navy | solid | cotton | formality:3 | fall",
	})

	for _, want := range []string{
		"Occasion: date night",
		"ID:3 - Navy Oxford (top)",
		"Style preference: smart casual",
		"Vibe: none specified",
		"exactly 2 outfit options",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptVibeOverride(t *testing.T) {
	prompt := BuildPrompt(Request{Occasion: "work", VibeOverride: "bold"})
	if !strings.Contains(prompt, "Vibe: bold") {
		t.Error("expected vibe override in prompt")
	}
}
