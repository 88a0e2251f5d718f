package ports

import (
	"context"

	"github.com/cateringworks/lunchbot/internal/core/domain"
)

// ExchangeResult is the outcome of one token-exchange step. Exactly one of
// Token and Response is set: a token means the flow completed, a response
// means the client must continue the flow (typically a loginRequest).
type ExchangeResult struct {
	Token    string
	Response *domain.InvokeResponse
}

// TokenProvider performs the token exchange for one named sign-in connection.
// The coordinator holds one immutable instance per flow and never inspects
// token contents.
type TokenProvider interface {
	// Begin starts the exchange for the given user.
	Begin(ctx context.Context, scope Scope) (*ExchangeResult, error)

	// Complete finishes an exchange previously started by Begin, after the
	// platform has delivered the continuation invoke.
	Complete(ctx context.Context, scope Scope) (*ExchangeResult, error)

	// SignOut revokes the user's token for this connection.
	SignOut(ctx context.Context, scope Scope) (*domain.InvokeResponse, error)
}
