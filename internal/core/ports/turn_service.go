package ports

import (
	"context"

	"github.com/cateringworks/lunchbot/internal/core/domain"
)

// TurnResult is what a processed turn hands back to the transport.
// InvokeResponse is nil for non-invoke activities, whose replies (if any)
// were sent through the ActivitySender instead.
type TurnResult struct {
	InvokeResponse *domain.InvokeResponse
}

// TurnService processes one inbound activity end to end.
type TurnService interface {
	Process(ctx context.Context, activity *domain.Activity) (*TurnResult, error)
}
