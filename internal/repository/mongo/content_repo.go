package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	contentCollectionName  = "daily_contents"
	overrideCollectionName = "content_overrides"
)

// mongoContentRepository implements repository.ContentRepository over the
// default library (keyed by day of year) and its date-keyed overrides.
type mongoContentRepository struct {
	defaults  *mongo.Collection
	overrides *mongo.Collection
}

// NewMongoContentRepository creates a new instance of mongoContentRepository.
func NewMongoContentRepository(db *mongo.Database) repository.ContentRepository {
	return &mongoContentRepository{
		defaults:  db.Collection(contentCollectionName),
		overrides: db.Collection(overrideCollectionName),
	}
}

// GetDefaultByDay fetches the default entry for a day of year (1..365).
func (r *mongoContentRepository) GetDefaultByDay(ctx context.Context, dayOfYear int) (*domain.DailyContent, error) {
	var content domain.DailyContent
	err := r.defaults.FindOne(ctx, bson.M{"dayOfYear": dayOfYear}).Decode(&content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &content, nil
}

// GetOverrideByDateKey fetches the override for an exact ISO date, if any.
func (r *mongoContentRepository) GetOverrideByDateKey(ctx context.Context, dateKey string) (*domain.ContentOverride, error) {
	var override domain.ContentOverride
	err := r.overrides.FindOne(ctx, bson.M{"dateKey": dateKey}).Decode(&override)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &override, nil
}

// UpsertOverride creates or replaces the override for its date key.
func (r *mongoContentRepository) UpsertOverride(ctx context.Context, override *domain.ContentOverride) error {
	if override.DateKey == "" {
		return errors.New("override date key is required")
	}
	now := time.Now().UTC()
	override.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"tip":       override.Tip,
			"quote":     override.Quote,
			"author":    override.Author,
			"updatedAt": override.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"dateKey":   override.DateKey,
			"createdAt": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.overrides.UpdateOne(ctx, bson.M{"dateKey": override.DateKey}, update, opts)
	return err
}

// DeleteOverride removes the override for an exact date.
func (r *mongoContentRepository) DeleteOverride(ctx context.Context, dateKey string) error {
	result, err := r.overrides.DeleteOne(ctx, bson.M{"dateKey": dateKey})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReplaceDefaults wipes and reseeds the whole default library. Used by the
// superadmin seeding endpoint; entries arrive already keyed 1..365.
func (r *mongoContentRepository) ReplaceDefaults(ctx context.Context, entries []domain.DailyContent) error {
	if _, err := r.defaults.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(entries))
	now := time.Now().UTC()
	for i := range entries {
		entries[i].ID = primitive.NewObjectID()
		entries[i].CreatedAt = now
		docs = append(docs, entries[i])
	}
	_, err := r.defaults.InsertMany(ctx, docs)
	return err
}

// EnsureContentIndexes creates indexes for both content collections.
func EnsureContentIndexes(ctx context.Context, db *mongo.Database) {
	defaults := db.Collection(contentCollectionName)
	_, err := defaults.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "dayOfYear", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("WARN: Index creation for %s failed: %v", defaults.Name(), err)
	}

	overrides := db.Collection(overrideCollectionName)
	_, err = overrides.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "dateKey", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("WARN: Index creation for %s failed: %v", overrides.Name(), err)
	}
}
