package menu

import (
	"context"
	"strings"
)

// Recognizer validates free text against the fixed lunch menu. Matching is
// case-insensitive on the trimmed input; anything off-menu is rejected and
// the card layer asks the user to try again.
type Recognizer struct {
	entrees map[string]struct{}
	drinks  map[string]struct{}
}

// NewRecognizer builds a recognizer for the given menu. Empty slices fall
// back to the default menu.
func NewRecognizer(entrees, drinks []string) *Recognizer {
	if len(entrees) == 0 {
		entrees = []string{"chicken", "beef", "fish", "tofu", "sandwich", "salad", "soup"}
	}
	if len(drinks) == 0 {
		drinks = []string{"coffee", "tea", "water", "soda", "juice", "milk"}
	}
	return &Recognizer{
		entrees: toSet(entrees),
		drinks:  toSet(drinks),
	}
}

func (r *Recognizer) ValidateEntree(ctx context.Context, text string) bool {
	return contains(r.entrees, text)
}

func (r *Recognizer) ValidateDrink(ctx context.Context, text string) bool {
	return contains(r.drinks, text)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(strings.TrimSpace(item))] = struct{}{}
	}
	return set
}

func contains(set map[string]struct{}, text string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(text))]
	return ok
}
