package ports

import (
	"context"

	"github.com/cateringworks/lunchbot/internal/core/domain"
)

// Scope keys all conversation state. Records for different scopes must never
// interfere; concurrent turns for the same scope resolve last-writer-wins.
type Scope struct {
	ConversationID string
	UserID         string
}

// StateStore is the conversation-scoped keyed store for the cross-turn
// records (order state and pending-auth state). Reads within a turn see the
// turn's own writes; nothing becomes durable until Flush, which the
// dispatcher calls exactly once per turn.
type StateStore interface {
	// User returns the order state for scope, creating a fresh record with
	// the given user id when none exists yet.
	User(ctx context.Context, scope Scope) (*domain.User, error)
	SetUser(ctx context.Context, scope Scope, user *domain.User) error

	// AuthState returns the pending-auth tag for scope, defaulting to
	// domain.AuthIdle when none exists.
	AuthState(ctx context.Context, scope Scope) (domain.AuthState, error)
	SetAuthState(ctx context.Context, scope Scope, state domain.AuthState) error

	// Flush persists all records written for scope during this turn.
	Flush(ctx context.Context, scope Scope) error
}
