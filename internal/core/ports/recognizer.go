package ports

import "context"

// Recognizer validates free text the user typed in place of a menu option.
type Recognizer interface {
	ValidateEntree(ctx context.Context, text string) bool
	ValidateDrink(ctx context.Context, text string) bool
}
