package model

import "time"

// SlotLock is an advisory lock taken while a confirmed booking is checked
// and inserted. The _id encodes the slot coordinates, so a concurrent
// insert for the same slot fails with a duplicate key error. A TTL index on
// expires_at clears locks left behind by crashed requests.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
