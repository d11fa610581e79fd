package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mood is one of the fixed mood labels a journal entry can carry.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodNeutral  Mood = "neutral"
	MoodExcited  Mood = "excited"
	MoodAnxious  Mood = "anxious"
	MoodCalm     Mood = "calm"
	MoodAngry    Mood = "angry"
	MoodGrateful Mood = "grateful"
)

// Moods lists every valid mood value.
var Moods = []Mood{
	MoodHappy, MoodSad, MoodNeutral, MoodExcited,
	MoodAnxious, MoodCalm, MoodAngry, MoodGrateful,
}

// ValidMood reports whether m is one of the fixed mood values.
func ValidMood(m Mood) bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}

// Journal represents a private journaling entry for a user.
// Mood always mirrors the enrichment result computed for the current
// content; AISummary and AIMood stay empty strings until enrichment
// has run at least once.
type Journal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	OwnerID   string             `bson:"owner_id" json:"owner_id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Mood      Mood               `bson:"mood" json:"mood"`
	AISummary string             `bson:"ai_summary" json:"ai_summary"`
	AIMood    Mood               `bson:"ai_mood" json:"ai_mood"`
	Tags      []string           `bson:"tags" json:"tags"`
}
