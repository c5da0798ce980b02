package recipes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for response handling. Check with errors.Is.
var (
	// ErrInvalidResponse indicates the model's reply was not a JSON
	// array of recipe objects.
	ErrInvalidResponse = errors.New("invalid model response")
	// ErrNoRecipes indicates the reply parsed but contained no recipes.
	ErrNoRecipes = errors.New("no recipes in response")
)

// ParseResponse extracts the JSON array of recipes from a raw model
// reply. Markdown code fences and any text around the array are
// tolerated; everything else is an ErrInvalidResponse.
func ParseResponse(raw string) ([]Recipe, error) {
	cleaned := stripCodeFences(raw)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array found", ErrInvalidResponse)
	}

	var rs []Recipe
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &rs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(rs) == 0 {
		return nil, ErrNoRecipes
	}

	return rs, nil
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx != -1 {
		// Drop the language tag line (e.g., "json")
		first := strings.TrimSpace(trimmed[:idx])
		if len(first) <= 10 && !strings.ContainsAny(first, "[{") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
