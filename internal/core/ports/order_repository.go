package ports

import (
	"context"

	"github.com/cateringworks/lunchbot/internal/core/domain"
)

// OrderRepository is the durable store of confirmed orders. Only the
// confirmation step writes; everything else is read-only.
type OrderRepository interface {
	// RecentOrders returns past confirmed orders, newest first, bounded by
	// the repository's own limit.
	RecentOrders(ctx context.Context) ([]domain.User, error)

	// UpsertOrder stores the user's confirmed order, replacing any previous
	// order for the same user.
	UpsertOrder(ctx context.Context, user *domain.User) error
}
