package recipes

import (
	"errors"
	"testing"
)

const validArray = `[
	{"title": "Tomato Pasta", "ingredients": ["pasta", "tomatoes"], "instructions": ["boil", "mix"], "missing_ingredients": ["basil"]},
	{"title": "Bruschetta", "ingredients": ["bread", "tomatoes"], "instructions": ["toast", "top"], "missing_ingredients": []}
]`

func TestParseResponse_PlainArray(t *testing.T) {
	rs, err := ParseResponse(validArray)
	if err != nil {
		t.Fatalf("ParseResponse() error: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(rs))
	}
	if rs[0].Title != "Tomato Pasta" {
		t.Errorf("unexpected title %q", rs[0].Title)
	}
	if len(rs[0].MissingIngredients) != 1 || rs[0].MissingIngredients[0] != "basil" {
		t.Errorf("unexpected missing ingredients %v", rs[0].MissingIngredients)
	}
}

func TestParseResponse_CodeFenced(t *testing.T) {
	for _, raw := range []string{
		"```json\n" + validArray + "\n```",
		"```\n" + validArray + "\n```",
	} {
		rs, err := ParseResponse(raw)
		if err != nil {
			t.Fatalf("ParseResponse() error for fenced input: %v", err)
		}
		if len(rs) != 2 {
			t.Errorf("expected 2 recipes, got %d", len(rs))
		}
	}
}

func TestParseResponse_SurroundingText(t *testing.T) {
	raw := "Here are your recipes:\n" + validArray + "\nEnjoy!"
	rs, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("ParseResponse() error: %v", err)
	}
	if len(rs) != 2 {
		t.Errorf("expected 2 recipes, got %d", len(rs))
	}
}

func TestParseResponse_NoArray(t *testing.T) {
	_, err := ParseResponse("I cannot help with that.")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestParseResponse_MalformedJSON(t *testing.T) {
	_, err := ParseResponse(`[{"title": "broken"`)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestParseResponse_EmptyArray(t *testing.T) {
	_, err := ParseResponse("[]")
	if !errors.Is(err, ErrNoRecipes) {
		t.Errorf("expected ErrNoRecipes, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	good := []Recipe{{
		Title:        "Soup",
		Ingredients:  []string{"water"},
		Instructions: []string{"heat"},
	}}
	if err := Validate(good); err != nil {
		t.Errorf("Validate() error for valid recipe: %v", err)
	}

	noInstructions := []Recipe{{
		Title:       "Soup",
		Ingredients: []string{"water"},
	}}
	if err := Validate(noInstructions); err == nil {
		t.Error("Validate() should reject a recipe without instructions")
	}

	noTitle := []Recipe{{
		Ingredients:  []string{"water"},
		Instructions: []string{"heat"},
	}}
	if err := Validate(noTitle); err == nil {
		t.Error("Validate() should reject a recipe without a title")
	}
}

func TestSplitIngredients(t *testing.T) {
	got := SplitIngredients(" Tomatoes, pasta , , OLIVE oil")
	want := []string{"tomatoes", "pasta", "olive oil"}

	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
