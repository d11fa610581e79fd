package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/ai"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
)

type fakeAnalyzer struct {
	result ai.Result
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, content string) ai.Result {
	f.calls++
	return f.result
}

// memStore is an in-memory JournalStore for orchestrator tests.
type memStore struct {
	journals map[string]models.Journal
}

func newMemStore() *memStore {
	return &memStore{journals: make(map[string]models.Journal)}
}

func (m *memStore) Insert(ctx context.Context, journal *models.Journal) error {
	m.journals[journal.ID.Hex()] = *journal
	return nil
}

func (m *memStore) FindByID(ctx context.Context, id string) (*models.Journal, error) {
	j, ok := m.journals[id]
	if !ok {
		return nil, ErrJournalNotFound
	}
	out := j
	return &out, nil
}

func (m *memStore) FindByOwner(ctx context.Context, ownerID string, limit, skip int) ([]models.Journal, int64, error) {
	var out []models.Journal
	for _, j := range m.journals {
		if j.OwnerID == ownerID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, int64(len(out)), nil
}

func (m *memStore) FindByOwnerInRange(ctx context.Context, ownerID string, from, to time.Time) ([]models.Journal, error) {
	var out []models.Journal
	for _, j := range m.journals {
		if j.OwnerID == ownerID && !j.CreatedAt.Before(from) && j.CreatedAt.Before(to) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (m *memStore) Replace(ctx context.Context, journal *models.Journal) error {
	existing, ok := m.journals[journal.ID.Hex()]
	if !ok || existing.OwnerID != journal.OwnerID {
		return ErrJournalNotFound
	}
	m.journals[journal.ID.Hex()] = *journal
	return nil
}

func (m *memStore) Delete(ctx context.Context, id, ownerID string) error {
	existing, ok := m.journals[id]
	if !ok || existing.OwnerID != ownerID {
		return ErrJournalNotFound
	}
	delete(m.journals, id)
	return nil
}

func newTestService(result ai.Result) (*JournalService, *memStore, *fakeAnalyzer) {
	store := newMemStore()
	analyzer := &fakeAnalyzer{result: result}
	svc := NewJournalService(store, analyzer)
	return svc, store, analyzer
}

func TestCreateSetsConsistentMoodFields(t *testing.T) {
	svc, _, analyzer := newTestService(ai.Result{Summary: "Went hiking.", Mood: models.MoodExcited})

	journal, err := svc.Create(context.Background(), "user-1", CreateJournalInput{
		Title:   "Hike",
		Content: "Climbed the hill behind the house today.",
		Tags:    []string{" outdoors ", "", "exercise"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, analyzer.calls)
	assert.Equal(t, models.MoodExcited, journal.Mood)
	assert.Equal(t, journal.AIMood, journal.Mood)
	assert.Equal(t, "Went hiking.", journal.AISummary)
	assert.Equal(t, []string{"outdoors", "exercise"}, journal.Tags)
	assert.Equal(t, "user-1", journal.OwnerID)
	assert.False(t, journal.ID.IsZero())
}

func TestCreateRequiresTitleAndContent(t *testing.T) {
	svc, _, analyzer := newTestService(ai.Result{Summary: "x", Mood: models.MoodHappy})

	_, err := svc.Create(context.Background(), "user-1", CreateJournalInput{Title: "", Content: "body"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(context.Background(), "user-1", CreateJournalInput{Title: "t", Content: "   "})
	assert.ErrorIs(t, err, ErrMissingFields)

	// Validation failures never reach the provider.
	assert.Equal(t, 0, analyzer.calls)
}

func TestUpdateUnchangedContentIsIdempotent(t *testing.T) {
	svc, _, analyzer := newTestService(ai.Result{Summary: "First summary.", Mood: models.MoodCalm})

	journal, err := svc.Create(context.Background(), "user-1", CreateJournalInput{Title: "Day", Content: "Same content."})
	require.NoError(t, err)
	require.Equal(t, 1, analyzer.calls)

	// Change what the analyzer would return; if enrichment re-ran we
	// would see it.
	analyzer.result = ai.Result{Summary: "Different.", Mood: models.MoodAngry}

	for i := 0; i < 3; i++ {
		updated, err := svc.Update(context.Background(), "user-1", journal.ID.Hex(), UpdateJournalInput{
			Title:   "Renamed",
			Content: "Same content.",
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "First summary.", updated.AISummary)
		assert.Equal(t, models.MoodCalm, updated.Mood)
		assert.Equal(t, models.MoodCalm, updated.AIMood)
	}
	assert.Equal(t, 1, analyzer.calls)
}

func TestUpdateChangedContentReEnriches(t *testing.T) {
	svc, _, analyzer := newTestService(ai.Result{Summary: "Old.", Mood: models.MoodNeutral})

	journal, err := svc.Create(context.Background(), "user-1", CreateJournalInput{Title: "Day", Content: "Original."})
	require.NoError(t, err)

	analyzer.result = ai.Result{Summary: "New summary.", Mood: models.MoodGrateful}

	updated, err := svc.Update(context.Background(), "user-1", journal.ID.Hex(), UpdateJournalInput{Content: "Rewritten."})
	require.NoError(t, err)

	assert.Equal(t, 2, analyzer.calls)
	assert.Equal(t, "Rewritten.", updated.Content)
	assert.Equal(t, "New summary.", updated.AISummary)
	assert.Equal(t, models.MoodGrateful, updated.Mood)
	assert.Equal(t, updated.AIMood, updated.Mood)
	// Omitted fields keep their previous values.
	assert.Equal(t, "Day", updated.Title)
}

func TestOwnershipForbiddenVsNotFound(t *testing.T) {
	svc, _, _ := newTestService(ai.Result{Summary: "s", Mood: models.MoodNeutral})

	journal, err := svc.Create(context.Background(), "alice", CreateJournalInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	// Another user's access to an existing journal is Forbidden.
	_, err = svc.Get(context.Background(), "bob", journal.ID.Hex())
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Update(context.Background(), "bob", journal.ID.Hex(), UpdateJournalInput{Title: "x"})
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Delete(context.Background(), "bob", journal.ID.Hex())
	assert.ErrorIs(t, err, ErrNotOwner)

	// A missing journal is NotFound, for any user.
	missing := primitive.NewObjectID().Hex()
	_, err = svc.Get(context.Background(), "alice", missing)
	assert.ErrorIs(t, err, ErrJournalNotFound)
}

func TestDeleteRemovesJournal(t *testing.T) {
	svc, store, _ := newTestService(ai.Result{Summary: "s", Mood: models.MoodNeutral})

	journal, err := svc.Create(context.Background(), "alice", CreateJournalInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "alice", journal.ID.Hex()))
	assert.Empty(t, store.journals)

	err = svc.Delete(context.Background(), "alice", journal.ID.Hex())
	assert.ErrorIs(t, err, ErrJournalNotFound)
}

func TestUpdateTagSemantics(t *testing.T) {
	svc, _, _ := newTestService(ai.Result{Summary: "s", Mood: models.MoodNeutral})

	journal, err := svc.Create(context.Background(), "alice", CreateJournalInput{
		Title:   "t",
		Content: "c",
		Tags:    []string{"one", "two"},
	})
	require.NoError(t, err)

	// Omitted tags (nil) leave the stored tags alone.
	updated, err := svc.Update(context.Background(), "alice", journal.ID.Hex(), UpdateJournalInput{Title: "t2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, updated.Tags)

	// An explicit empty list clears them; there is no other way to
	// remove every tag.
	updated, err = svc.Update(context.Background(), "alice", journal.ID.Hex(), UpdateJournalInput{Tags: []string{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
}

func TestListRangeFiltersByCreatedAt(t *testing.T) {
	svc, _, _ := newTestService(ai.Result{Summary: "s", Mood: models.MoodNeutral})

	base := time.Date(2026, time.August, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		day := base.AddDate(0, 0, i)
		svc.now = func() time.Time { return day }
		_, err := svc.Create(context.Background(), "alice", CreateJournalInput{Title: "t", Content: "c"})
		require.NoError(t, err)
	}

	// Half-open window: days 11 and 12 only.
	from := time.Date(2026, time.August, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 13, 0, 0, 0, 0, time.UTC)
	journals, err := svc.ListRange(context.Background(), "alice", from, to)
	require.NoError(t, err)
	assert.Len(t, journals, 2)
	// Newest first.
	assert.True(t, journals[0].CreatedAt.After(journals[1].CreatedAt))
}

func TestUpdateTouchesUpdatedAtOnly(t *testing.T) {
	svc, _, _ := newTestService(ai.Result{Summary: "s", Mood: models.MoodNeutral})

	created := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	later := created.Add(48 * time.Hour)
	svc.now = func() time.Time { return created }

	journal, err := svc.Create(context.Background(), "alice", CreateJournalInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	svc.now = func() time.Time { return later }
	updated, err := svc.Update(context.Background(), "alice", journal.ID.Hex(), UpdateJournalInput{Title: "t2"})
	require.NoError(t, err)

	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)
}
