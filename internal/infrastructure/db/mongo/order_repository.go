package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cateringworks/lunchbot/internal/core/domain"
)

const (
	collectionOrders  = "orders"
	recentOrdersLimit = 5
)

// OrderRepository stores confirmed lunch orders, one document per user.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

// RecentOrders returns the most recently confirmed orders, newest first.
func (r *OrderRepository) RecentOrders(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "lunch.order_timestamp", Value: -1}}).
		SetLimit(recentOrdersLimit)

	cursor, err := r.col.Find(ctx, bson.M{"lunch.order_timestamp": bson.M{"$exists": true}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpsertOrder stores the user's confirmed order, replacing any previous
// order for the same user.
func (r *OrderRepository) UpsertOrder(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": user.ID},
		user,
		options.Replace().SetUpsert(true))
	return err
}

// EnsureIndexes creates the indexes the repository queries rely on.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "lunch.order_timestamp", Value: -1}},
	})
	return err
}
