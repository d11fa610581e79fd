package services

import (
	"context"
	"errors"
	"hash/fnv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/ai"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/database"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
)

const challengeCollection = "challenge_answers"

var (
	// ErrAlreadyAnswered means the user has already submitted an answer
	// for this date.
	ErrAlreadyAnswered = errors.New("challenge already answered for this date")
	// ErrAnswerNotFound means no answer exists for the user and date.
	ErrAnswerNotFound = errors.New("challenge answer not found")
)

// challengeQuestions is the fixed question pool. Selection is
// deterministic per calendar date, so every user sees the same
// question on a given day.
var challengeQuestions = []string{
	"What is one thing you're grateful for today?",
	"What made you smile today?",
	"What is one thing you'd like to improve about tomorrow?",
	"Describe today in exactly three words.",
	"What is something new you learned today?",
	"Who made a difference in your day, and how?",
	"What was the most challenging moment of your day?",
	"If you could relive one moment from today, which would it be?",
	"What is one small win you had today?",
	"What are you looking forward to this week?",
	"What drained your energy today, and what restored it?",
	"What would you tell your past self from one year ago?",
	"What habit are you most proud of right now?",
	"What is one thing you did today just for yourself?",
	"How did you handle stress today?",
}

// QuestionForDate picks the question for a calendar date (YYYY-MM-DD).
func QuestionForDate(date string) string {
	h := fnv.New32a()
	h.Write([]byte(date))
	return challengeQuestions[int(h.Sum32())%len(challengeQuestions)]
}

// ChallengeStore is the persistence surface for challenge answers.
// Insert reports ErrAlreadyAnswered when an answer for the same
// (owner, date) already exists.
type ChallengeStore interface {
	Insert(ctx context.Context, record *models.ChallengeAnswer) error
	Find(ctx context.Context, ownerID, date string) (*models.ChallengeAnswer, error)
}

// FactsCache caches the per-date trivia facts so one provider call
// serves every user that day.
type FactsCache interface {
	Get(key string, dest interface{}) (bool, error)
	SetWithTTL(key string, value interface{}, ttl time.Duration) error
}

// MongoChallengeStore stores answers in the "challenge_answers"
// collection, whose unique (owner_id, date) index backs the
// one-answer-per-day rule even under concurrent submissions.
type MongoChallengeStore struct{}

func NewMongoChallengeStore() *MongoChallengeStore {
	return &MongoChallengeStore{}
}

func (s *MongoChallengeStore) collection() *mongo.Collection {
	return database.DB.Collection(challengeCollection)
}

func (s *MongoChallengeStore) Insert(ctx context.Context, record *models.ChallengeAnswer) error {
	_, err := s.collection().InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyAnswered
		}
		return err
	}
	return nil
}

func (s *MongoChallengeStore) Find(ctx context.Context, ownerID, date string) (*models.ChallengeAnswer, error) {
	var record models.ChallengeAnswer
	err := s.collection().FindOne(ctx, bson.M{"owner_id": ownerID, "date": date}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ChallengeService serves the question of the day, stores one answer
// per user per date, and decorates the challenge with best-effort
// trivia facts about the date.
type ChallengeService struct {
	store ChallengeStore
	facts ai.FactProvider
	cache FactsCache
}

func NewChallengeService(store ChallengeStore, facts ai.FactProvider, cache FactsCache) *ChallengeService {
	return &ChallengeService{store: store, facts: facts, cache: cache}
}

// Today describes the current challenge state for a user.
type Today struct {
	Date     string   `json:"date"`
	Question string   `json:"question"`
	Answered bool     `json:"answered"`
	Answer   string   `json:"answer,omitempty"`
	Facts    []string `json:"facts"`
}

// Today returns the question for the current date, whether the user
// already answered it, and the trivia facts for the date.
func (s *ChallengeService) Today(ctx context.Context, ownerID string, now time.Time) (*Today, error) {
	date := now.Format(dateLayout)
	today := &Today{
		Date:     date,
		Question: QuestionForDate(date),
		Facts:    s.factsForDate(ctx, date, now),
	}

	record, err := s.store.Find(ctx, ownerID, date)
	if err == nil {
		today.Answered = true
		today.Answer = record.Answer
	} else if !errors.Is(err, ErrAnswerNotFound) {
		return nil, err
	}
	return today, nil
}

// SubmitAnswer stores the user's answer for the current date. A second
// submission for the same date is rejected with ErrAlreadyAnswered.
func (s *ChallengeService) SubmitAnswer(ctx context.Context, ownerID, answer string, now time.Time) (*models.ChallengeAnswer, error) {
	date := now.Format(dateLayout)
	record := &models.ChallengeAnswer{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		OwnerID:   ownerID,
		Date:      date,
		Question:  QuestionForDate(date),
		Answer:    answer,
	}

	if err := s.store.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// factsForDate returns the trivia facts for a date, cached until the
// date rolls over so one provider call serves every user that day.
// Cache problems fall through to a direct fetch.
func (s *ChallengeService) factsForDate(ctx context.Context, date string, now time.Time) []string {
	cacheKey := CacheKey("challenge_facts", date)

	var facts []string
	if hit, err := s.cache.Get(cacheKey, &facts); err == nil && hit && len(facts) > 0 {
		return facts
	}

	facts = s.facts.DailyFacts(ctx, date)

	nextMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	_ = s.cache.SetWithTTL(cacheKey, facts, nextMidnight.Sub(now))
	return facts
}
