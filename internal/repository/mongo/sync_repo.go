package mongo

import (
	"context"
	"time"

	"fitcoach/coach-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const syncStateCollectionName = "sync_states"

// mongoSyncStateRepository implements repository.SyncStateRepository.
// The mobile sync job only maintains a checkpoint today; the document is the
// hook for the eventual sync implementation.
type mongoSyncStateRepository struct {
	collection *mongo.Collection
}

// NewMongoSyncStateRepository creates a new sync state repository backed by MongoDB.
func NewMongoSyncStateRepository(db *mongo.Database) repository.SyncStateRepository {
	return &mongoSyncStateRepository{
		collection: db.Collection(syncStateCollectionName),
	}
}

// Touch upserts the mobile sync checkpoint with the given timestamp.
func (r *mongoSyncStateRepository) Touch(ctx context.Context, at time.Time) error {
	update := bson.M{"$set": bson.M{"lastSyncedAt": at.UTC()}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": "mobile"}, update, opts)
	return err
}
