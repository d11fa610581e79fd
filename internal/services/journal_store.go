package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/database"
	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
)

const journalCollection = "journals"

var (
	// ErrJournalNotFound means no journal exists with the requested ID.
	ErrJournalNotFound = errors.New("journal not found")
	// ErrNotOwner means the journal exists but belongs to another user.
	ErrNotOwner = errors.New("journal belongs to another user")
)

// JournalStore is the persistence surface the journal service depends
// on. The Mongo implementation below is the real one; tests substitute
// an in-memory fake.
type JournalStore interface {
	Insert(ctx context.Context, journal *models.Journal) error
	FindByID(ctx context.Context, id string) (*models.Journal, error)
	FindByOwner(ctx context.Context, ownerID string, limit, skip int) ([]models.Journal, int64, error)
	FindByOwnerInRange(ctx context.Context, ownerID string, from, to time.Time) ([]models.Journal, error)
	Replace(ctx context.Context, journal *models.Journal) error
	Delete(ctx context.Context, id, ownerID string) error
}

// MongoJournalStore stores journals in the "journals" collection.
type MongoJournalStore struct{}

// NewMongoJournalStore returns a store backed by the shared Mongo handle.
func NewMongoJournalStore() *MongoJournalStore {
	return &MongoJournalStore{}
}

func (s *MongoJournalStore) collection() *mongo.Collection {
	return database.DB.Collection(journalCollection)
}

func (s *MongoJournalStore) Insert(ctx context.Context, journal *models.Journal) error {
	_, err := s.collection().InsertOne(ctx, journal)
	return err
}

func (s *MongoJournalStore) FindByID(ctx context.Context, id string) (*models.Journal, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrJournalNotFound
	}

	var journal models.Journal
	err = s.collection().FindOne(ctx, bson.M{"_id": objectID}).Decode(&journal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrJournalNotFound
		}
		return nil, err
	}
	return &journal, nil
}

// FindByOwner returns the owner's journals newest first, along with
// the total count for pagination.
func (s *MongoJournalStore) FindByOwner(ctx context.Context, ownerID string, limit, skip int) ([]models.Journal, int64, error) {
	filter := bson.M{"owner_id": ownerID}

	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	if skip > 0 {
		findOptions.SetSkip(int64(skip))
	}

	cursor, err := s.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var journals []models.Journal
	if err = cursor.All(ctx, &journals); err != nil {
		return nil, 0, err
	}
	return journals, total, nil
}

// FindByOwnerInRange returns the owner's journals with created_at in
// [from, to), newest first.
func (s *MongoJournalStore) FindByOwnerInRange(ctx context.Context, ownerID string, from, to time.Time) ([]models.Journal, error) {
	filter := bson.M{
		"owner_id":   ownerID,
		"created_at": bson.M{"$gte": from, "$lt": to},
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1})

	cursor, err := s.collection().Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var journals []models.Journal
	if err = cursor.All(ctx, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

// Replace overwrites the stored document. The filter includes the
// owner so an update can never cross user boundaries; if the document
// was deleted since it was read, the write resolves to
// ErrJournalNotFound (last writer wins, delete takes precedence).
func (s *MongoJournalStore) Replace(ctx context.Context, journal *models.Journal) error {
	filter := bson.M{"_id": journal.ID, "owner_id": journal.OwnerID}
	result, err := s.collection().ReplaceOne(ctx, filter, journal)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrJournalNotFound
	}
	return nil
}

func (s *MongoJournalStore) Delete(ctx context.Context, id, ownerID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrJournalNotFound
	}

	result, err := s.collection().DeleteOne(ctx, bson.M{"_id": objectID, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrJournalNotFound
	}
	return nil
}

// EnsureJournalIndexes creates the Mongo indexes the journal and
// challenge collections rely on. Called once at startup.
func EnsureJournalIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := database.DB.Collection(journalCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = database.DB.Collection(challengeCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
