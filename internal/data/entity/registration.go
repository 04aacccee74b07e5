package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Registration records a user's enrollment in a bootcamp.
// At most one exists per (user, bootcamp) pair, enforced by a unique index.
type Registration struct {
	Base         `bson:",inline"`
	UserID       bson.ObjectID `bson:"user"`
	BootcampID   bson.ObjectID `bson:"bootcamp"`
	RegisteredAt time.Time     `bson:"registered_at"`
}
