package mongo

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	foodCollectionName    = "foods"
	workoutCollectionName = "workouts"
)

// mongoCatalogRepository implements repository.CatalogRepository over the
// shared (tenant-agnostic) food and workout reference collections.
type mongoCatalogRepository struct {
	foods    *mongo.Collection
	workouts *mongo.Collection
}

// NewMongoCatalogRepository creates a new instance of mongoCatalogRepository.
func NewMongoCatalogRepository(db *mongo.Database) repository.CatalogRepository {
	return &mongoCatalogRepository{
		foods:    db.Collection(foodCollectionName),
		workouts: db.Collection(workoutCollectionName),
	}
}

// searchFilter builds a case-insensitive substring match on the name field.
// The query is regex-quoted so user input cannot inject regex syntax.
func searchFilter(nameField, query string) bson.M {
	if query == "" {
		return bson.M{}
	}
	return bson.M{nameField: bson.M{
		"$regex":   regexp.QuoteMeta(query),
		"$options": "i",
	}}
}

// SearchFoods runs a paged, case-insensitive substring search on food_name,
// sorted alphabetically, returning the flat row projection.
func (r *mongoCatalogRepository) SearchFoods(ctx context.Context, query string, page, limit int) ([]domain.FoodRow, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "food_name", Value: 1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"food_name": 1, "category": 1, "calories": 1})

	cursor, err := r.foods.Find(ctx, searchFilter("food_name", query), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []domain.FoodRow{}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchWorkouts mirrors SearchFoods over the workouts collection.
func (r *mongoCatalogRepository) SearchWorkouts(ctx context.Context, query string, page, limit int) ([]domain.WorkoutRow, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "workoutName", Value: 1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"workoutName": 1, "category": 1, "difficulty": 1})

	cursor, err := r.workouts.Find(ctx, searchFilter("workoutName", query), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []domain.WorkoutRow{}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetFoodsByIDs fetches full catalog records for the given ids. Unknown ids
// are silently absent from the result.
func (r *mongoCatalogRepository) GetFoodsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.FoodItem, error) {
	if len(ids) == 0 {
		return []domain.FoodItem{}, nil
	}
	cursor, err := r.foods.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []domain.FoodItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetWorkoutsByIDs fetches full catalog records for the given ids.
func (r *mongoCatalogRepository) GetWorkoutsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.WorkoutItem, error) {
	if len(ids) == 0 {
		return []domain.WorkoutItem{}, nil
	}
	cursor, err := r.workouts.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []domain.WorkoutItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateFood inserts a catalog food entry (superadmin only at the API layer).
func (r *mongoCatalogRepository) CreateFood(ctx context.Context, item *domain.FoodItem) (primitive.ObjectID, error) {
	if item.FoodName == "" {
		return primitive.NilObjectID, errors.New("food name is required")
	}
	item.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := r.foods.InsertOne(ctx, item); err != nil {
		return primitive.NilObjectID, err
	}
	return item.ID, nil
}

// CreateWorkout inserts a catalog workout entry.
func (r *mongoCatalogRepository) CreateWorkout(ctx context.Context, item *domain.WorkoutItem) (primitive.ObjectID, error) {
	if item.WorkoutName == "" {
		return primitive.NilObjectID, errors.New("workout name is required")
	}
	item.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := r.workouts.InsertOne(ctx, item); err != nil {
		return primitive.NilObjectID, err
	}
	return item.ID, nil
}

// DeleteFood removes a catalog food entry.
func (r *mongoCatalogRepository) DeleteFood(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.foods.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteWorkout removes a catalog workout entry.
func (r *mongoCatalogRepository) DeleteWorkout(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.workouts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCatalogIndexes creates indexes for both catalog collections.
func EnsureCatalogIndexes(ctx context.Context, db *mongo.Database) {
	foods := db.Collection(foodCollectionName)
	_, err := foods.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "food_name", Value: 1}},
		Options: options.Index(),
	})
	if err != nil {
		log.Printf("WARN: Index creation for %s failed: %v", foods.Name(), err)
	}

	workouts := db.Collection(workoutCollectionName)
	_, err = workouts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "workoutName", Value: 1}},
		Options: options.Index(),
	})
	if err != nil {
		log.Printf("WARN: Index creation for %s failed: %v", workouts.Name(), err)
	}
}
