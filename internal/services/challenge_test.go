package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
)

func TestQuestionForDateIsDeterministic(t *testing.T) {
	q1 := QuestionForDate("2026-08-30")
	q2 := QuestionForDate("2026-08-30")
	assert.Equal(t, q1, q2)
	assert.Contains(t, challengeQuestions, q1)
}

func TestQuestionForDateVariesAcrossDates(t *testing.T) {
	seen := make(map[string]bool)
	dates := []string{
		"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27",
		"2026-08-28", "2026-08-29", "2026-08-30", "2026-08-31",
		"2026-09-01", "2026-09-02",
	}
	for _, d := range dates {
		seen[QuestionForDate(d)] = true
	}
	// A reasonable hash should not map ten dates onto one question.
	assert.Greater(t, len(seen), 1)
}

// memChallengeStore is an in-memory ChallengeStore enforcing the
// one-answer-per-owner-per-date rule like the unique Mongo index does.
type memChallengeStore struct {
	answers map[string]models.ChallengeAnswer
}

func newMemChallengeStore() *memChallengeStore {
	return &memChallengeStore{answers: make(map[string]models.ChallengeAnswer)}
}

func (m *memChallengeStore) key(ownerID, date string) string {
	return ownerID + "|" + date
}

func (m *memChallengeStore) Insert(ctx context.Context, record *models.ChallengeAnswer) error {
	k := m.key(record.OwnerID, record.Date)
	if _, ok := m.answers[k]; ok {
		return ErrAlreadyAnswered
	}
	m.answers[k] = *record
	return nil
}

func (m *memChallengeStore) Find(ctx context.Context, ownerID, date string) (*models.ChallengeAnswer, error) {
	a, ok := m.answers[m.key(ownerID, date)]
	if !ok {
		return nil, ErrAnswerNotFound
	}
	out := a
	return &out, nil
}

type fakeFactProvider struct {
	facts []string
	calls int
}

func (f *fakeFactProvider) DailyFacts(ctx context.Context, date string) []string {
	f.calls++
	return f.facts
}

// memFactsCache is a map-backed FactsCache recording the TTL it was
// given.
type memFactsCache struct {
	values  map[string][]string
	lastTTL time.Duration
}

func newMemFactsCache() *memFactsCache {
	return &memFactsCache{values: make(map[string][]string)}
}

func (m *memFactsCache) Get(key string, dest interface{}) (bool, error) {
	v, ok := m.values[key]
	if !ok {
		return false, nil
	}
	*(dest.(*[]string)) = v
	return true, nil
}

func (m *memFactsCache) SetWithTTL(key string, value interface{}, ttl time.Duration) error {
	m.values[key] = value.([]string)
	m.lastTTL = ttl
	return nil
}

func newTestChallengeService() (*ChallengeService, *memChallengeStore, *fakeFactProvider, *memFactsCache) {
	store := newMemChallengeStore()
	facts := &fakeFactProvider{facts: []string{"Fact one.", "Fact two.", "Fact three."}}
	cache := newMemFactsCache()
	return NewChallengeService(store, facts, cache), store, facts, cache
}

func TestChallengeTodayBeforeAndAfterAnswering(t *testing.T) {
	svc, _, _, _ := newTestChallengeService()
	now := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)

	today, err := svc.Today(context.Background(), "alice", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", today.Date)
	assert.Equal(t, QuestionForDate("2026-08-30"), today.Question)
	assert.False(t, today.Answered)
	assert.Empty(t, today.Answer)
	assert.Equal(t, []string{"Fact one.", "Fact two.", "Fact three."}, today.Facts)

	record, err := svc.SubmitAnswer(context.Background(), "alice", "Grateful for coffee.", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", record.Date)
	assert.Equal(t, today.Question, record.Question)

	today, err = svc.Today(context.Background(), "alice", now)
	require.NoError(t, err)
	assert.True(t, today.Answered)
	assert.Equal(t, "Grateful for coffee.", today.Answer)
}

func TestChallengeSecondAnswerSameDayRejected(t *testing.T) {
	svc, _, _, _ := newTestChallengeService()
	now := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)

	_, err := svc.SubmitAnswer(context.Background(), "alice", "First answer.", now)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), "alice", "Second try.", now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyAnswered)

	// A new date accepts an answer again, and other users are
	// unaffected.
	_, err = svc.SubmitAnswer(context.Background(), "alice", "Next day.", now.AddDate(0, 0, 1))
	assert.NoError(t, err)
	_, err = svc.SubmitAnswer(context.Background(), "bob", "Bob's answer.", now)
	assert.NoError(t, err)
}

func TestChallengeFactsCachedUntilMidnight(t *testing.T) {
	svc, _, facts, cache := newTestChallengeService()
	now := time.Date(2026, time.August, 30, 18, 0, 0, 0, time.UTC)

	_, err := svc.Today(context.Background(), "alice", now)
	require.NoError(t, err)
	assert.Equal(t, 1, facts.calls)
	assert.Equal(t, 6*time.Hour, cache.lastTTL)

	// Second read the same day is served from cache.
	_, err = svc.Today(context.Background(), "bob", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, facts.calls)
}
