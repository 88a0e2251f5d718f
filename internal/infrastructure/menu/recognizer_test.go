package menu

import (
	"context"
	"testing"
)

func TestRecognizer_MatchesIgnoringCaseAndSpace(t *testing.T) {
	r := NewRecognizer([]string{"Chicken", "Beef"}, []string{"Tea"})
	ctx := context.Background()

	cases := []struct {
		text string
		want bool
	}{
		{"chicken", true},
		{"  Chicken  ", true},
		{"BEEF", true},
		{"lobster", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := r.ValidateEntree(ctx, tc.text); got != tc.want {
			t.Errorf("ValidateEntree(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestRecognizer_EntreesAndDrinksAreSeparate(t *testing.T) {
	r := NewRecognizer([]string{"Chicken"}, []string{"Tea"})
	ctx := context.Background()

	if r.ValidateDrink(ctx, "Chicken") {
		t.Fatalf("entree accepted as drink")
	}
	if r.ValidateEntree(ctx, "Tea") {
		t.Fatalf("drink accepted as entree")
	}
}

func TestRecognizer_DefaultMenu(t *testing.T) {
	r := NewRecognizer(nil, nil)
	ctx := context.Background()

	if !r.ValidateEntree(ctx, "sandwich") {
		t.Fatalf("default menu missing sandwich")
	}
	if !r.ValidateDrink(ctx, "coffee") {
		t.Fatalf("default menu missing coffee")
	}
}
