// Package recipes generates recipe suggestions with retrieval-augmented
// LLM prompting and parses the model's JSON reply.
package recipes

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Recipe is a single generated recipe. The LLM is instructed to return
// exactly these four fields.
type Recipe struct {
	Title              string   `json:"title" validate:"required"`
	Ingredients        []string `json:"ingredients" validate:"required,min=1"`
	Instructions       []string `json:"instructions" validate:"required,min=1"`
	MissingIngredients []string `json:"missing_ingredients"`
}

var validate = validator.New()

// Validate checks that every recipe has a title, ingredients, and at
// least one instruction step.
func Validate(rs []Recipe) error {
	for i, r := range rs {
		if err := validate.Struct(r); err != nil {
			return fmt.Errorf("recipe %d (%q): %w", i, r.Title, err)
		}
	}
	return nil
}

// SplitIngredients splits a comma-separated ingredient list into
// trimmed, lowercased entries. Empty entries are dropped.
func SplitIngredients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
