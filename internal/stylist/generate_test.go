package stylist

import (
	"context"
	"errors"
	"testing"

	"drip/internal/ai"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	f.calls++
	return f.response, f.err
}

const twoCandidatesJSON = `[
  {"name": "Campus Classic", "item_ids": [1, 2, 3], "reasoning": "clean and coordinated"},
  {"name": "Night Moves", "item_ids": [4, 5, 6], "reasoning": "darker palette", "style_notes": "roll the sleeves"}
]`

func TestGenerateOutfitsParsesArray(t *testing.T) {
	gen := &fakeGenerator{response: twoCandidatesJSON}

	candidates, err := GenerateOutfits(context.Background(), gen, Request{Occasion: "class"})
	if err != nil {
		t.Fatalf("GenerateOutfits failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Name != "Campus Classic" || len(candidates[0].ItemIDs) != 3 {
		t.Errorf("unexpected first candidate: %+v", candidates[0])
	}
	if candidates[1].StyleNotes != "roll the sleeves" {
		t.Errorf("style notes not parsed: %+v", candidates[1])
	}
}

func TestGenerateOutfitsFencedEqualsUnfenced(t *testing.T) {
	plain := &fakeGenerator{response: twoCandidatesJSON}
	fenced := &fakeGenerator{response: "```json\n" + twoCandidatesJSON + "\n```"}

	fromPlain, err := GenerateOutfits(context.Background(), plain, Request{Occasion: "class"})
	if err != nil {
		t.Fatalf("unfenced parse failed: %v", err)
	}
	fromFenced, err := GenerateOutfits(context.Background(), fenced, Request{Occasion: "class"})
	if err != nil {
		t.Fatalf("fenced parse failed: %v", err)
	}

	if len(fromPlain) != len(fromFenced) || fromPlain[0].Name != fromFenced[0].Name {
		t.Errorf("fenced and unfenced responses parsed differently: %v vs %v", fromPlain, fromFenced)
	}
}

func TestGenerateOutfitsWrapsSingleObject(t *testing.T) {
	gen := &fakeGenerator{response: `{"name": "Solo", "item_ids": [1], "reasoning": "only option"}`}

	candidates, err := GenerateOutfits(context.Background(), gen, Request{Occasion: "class"})
	if err != nil {
		t.Fatalf("GenerateOutfits failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Name != "Solo" {
		t.Errorf("expected single wrapped candidate, got %v", candidates)
	}
}

func TestGenerateOutfitsGarbageReturnsParseError(t *testing.T) {
	raw := "Sorry, I can't produce JSON for that."
	gen := &fakeGenerator{response: raw}

	_, err := GenerateOutfits(context.Background(), gen, Request{Occasion: "class"})
	if err == nil {
		t.Fatal("expected parse error")
	}

	var parseErr *ai.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ai.ParseError, got %T", err)
	}
	if parseErr.Raw != raw {
		t.Errorf("parse error should carry raw text, got %q", parseErr.Raw)
	}
}

func TestGenerateOutfitsMakesExactlyOneCall(t *testing.T) {
	gen := &fakeGenerator{response: "not json at all"}

	GenerateOutfits(context.Background(), gen, Request{Occasion: "class"})
	if gen.calls != 1 {
		t.Errorf("expected exactly 1 model call with no retry, got %d", gen.calls)
	}
}

func TestGenerateOutfitsPropagatesTransportError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}

	_, err := GenerateOutfits(context.Background(), gen, Request{Occasion: "class"})
	if err == nil {
		t.Fatal("expected error")
	}
	var parseErr *ai.ParseError
	if errors.As(err, &parseErr) {
		t.Error("transport error must not be reported as a parse error")
	}
}
