package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChallengeAnswer records a user's answer to the daily challenge
// question. At most one answer exists per user per calendar date,
// enforced by a unique compound index on (owner_id, date).
type ChallengeAnswer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	OwnerID   string             `bson:"owner_id" json:"owner_id,omitempty"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD
	Question  string             `bson:"question" json:"question"`
	Answer    string             `bson:"answer" json:"answer"`
}
