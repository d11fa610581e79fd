package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/ai"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
)

// ErrMissingFields means a required field (title or content) was
// missing or empty on create.
var ErrMissingFields = errors.New("title and content are required")

// CreateJournalInput carries the fields a user submits for a new entry.
type CreateJournalInput struct {
	Title   string
	Content string
	Tags    []string
}

// UpdateJournalInput carries a partial update. An empty field means
// "leave unchanged"; Tags is applied only when non-nil.
type UpdateJournalInput struct {
	Title   string
	Content string
	Tags    []string
}

// JournalService owns journal entries: it validates input, runs
// enrichment, and persists through the store. Enrichment is a single
// best-effort call; its failure can never fail a create or update
// because the Analyzer contract always yields a usable result.
type JournalService struct {
	store    JournalStore
	analyzer ai.Analyzer
	now      func() time.Time
}

func NewJournalService(store JournalStore, analyzer ai.Analyzer) *JournalService {
	return &JournalService{
		store:    store,
		analyzer: analyzer,
		now:      time.Now,
	}
}

// Create enriches and persists a new journal entry for ownerID.
func (s *JournalService) Create(ctx context.Context, ownerID string, input CreateJournalInput) (*models.Journal, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrMissingFields
	}

	result := s.analyzer.Analyze(ctx, input.Content)

	now := s.now()
	journal := &models.Journal{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		OwnerID:   ownerID,
		Title:     input.Title,
		Content:   input.Content,
		Tags:      trimTags(input.Tags),
		// The three mood fields are set together so a reader never
		// sees content paired with a mood computed for other content.
		Mood:      result.Mood,
		AISummary: result.Summary,
		AIMood:    result.Mood,
	}

	if err := s.store.Insert(ctx, journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// Get returns the journal when it exists and belongs to ownerID.
// A journal owned by someone else yields ErrNotOwner, never
// ErrJournalNotFound, so callers can tell 403 from 404.
func (s *JournalService) Get(ctx context.Context, ownerID, id string) (*models.Journal, error) {
	journal, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if journal.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return journal, nil
}

// List returns the owner's journals newest first with the total count.
func (s *JournalService) List(ctx context.Context, ownerID string, limit, skip int) ([]models.Journal, int64, error) {
	return s.store.FindByOwner(ctx, ownerID, limit, skip)
}

// ListRange returns the owner's journals created in [from, to),
// newest first.
func (s *JournalService) ListRange(ctx context.Context, ownerID string, from, to time.Time) ([]models.Journal, error) {
	return s.store.FindByOwnerInRange(ctx, ownerID, from, to)
}

// Update applies a partial update. Enrichment re-runs only when the
// submitted content is non-empty and differs from the stored content;
// otherwise the existing summary and mood fields are kept as-is, so
// repeated updates with unchanged content are idempotent.
func (s *JournalService) Update(ctx context.Context, ownerID, id string, input UpdateJournalInput) (*models.Journal, error) {
	journal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) != "" {
		journal.Title = input.Title
	}
	if input.Tags != nil {
		journal.Tags = trimTags(input.Tags)
	}

	if input.Content != "" && input.Content != journal.Content {
		journal.Content = input.Content
		result := s.analyzer.Analyze(ctx, input.Content)
		journal.AISummary = result.Summary
		journal.AIMood = result.Mood
		journal.Mood = result.Mood
	}

	journal.UpdatedAt = s.now()

	if err := s.store.Replace(ctx, journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// Delete removes the journal after the ownership check. No soft
// delete; the document is gone.
func (s *JournalService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id, ownerID)
}

func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
