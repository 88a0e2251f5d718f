package domain

import "time"

// Lunch is the order a user is assembling. OrderTimestamp stays zero until
// the confirmation step commits the order.
type Lunch struct {
	Entree         string    `json:"entree,omitempty" bson:"entree,omitempty"`
	Drink          string    `json:"drink,omitempty" bson:"drink,omitempty"`
	OrderTimestamp time.Time `json:"order_timestamp,omitempty" bson:"order_timestamp,omitempty"`
}

// User is the per-conversation order state for one chat user. Created lazily
// on the first turn, overwritten in place on the next order, never deleted.
type User struct {
	ID    string `json:"id" bson:"_id"`
	Lunch Lunch  `json:"lunch" bson:"lunch"`
}
