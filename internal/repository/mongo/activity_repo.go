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

const activityCollectionName = "daily_activities"

// mongoActivityRepository implements repository.ActivityRepository.
// The trend reads are aggregation pipelines grouping by the calendar day
// string of the activity date.
type mongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new instance of mongoActivityRepository.
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	return &mongoActivityRepository{
		collection: db.Collection(activityCollectionName),
	}
}

// Create inserts one daily activity document.
func (r *mongoActivityRepository) Create(ctx context.Context, activity *domain.DailyActivity) (primitive.ObjectID, error) {
	if activity.TenantID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("activity tenant ID is required")
	}
	activity.ID = primitive.NewObjectID()
	activity.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, activity); err != nil {
		return primitive.NilObjectID, err
	}
	return activity.ID, nil
}

// LatestSince returns the most recent activity document at/after the given
// instant, or repository.ErrNotFound when the tenant has none.
func (r *mongoActivityRepository) LatestSince(ctx context.Context, tenantID primitive.ObjectID, since time.Time) (*domain.DailyActivity, error) {
	filter := bson.M{"tenantId": tenantID, "date": bson.M{"$gte": since}}
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var activity domain.DailyActivity
	err := r.collection.FindOne(ctx, filter, opts).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &activity, nil
}

// LifetimeTotals runs a single-group aggregation over all of the tenant's
// activity documents: counters are summed, sleep hours averaged.
func (r *mongoActivityRepository) LifetimeTotals(ctx context.Context, tenantID primitive.ObjectID) (*domain.ActivityTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tenantId": tenantID}}},
		{{Key: "$group", Value: bson.M{
			"_id":                 nil,
			"totalSteps":          bson.M{"$sum": "$steps"},
			"totalCaloriesBurned": bson.M{"$sum": "$caloriesBurned"},
			"avgSleepHours":       bson.M{"$avg": "$sleepHours"},
			"totalNutritionKcal":  bson.M{"$sum": "$nutritionCalories"},
			"days":                bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []domain.ActivityTotals
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		// Tenant without data gets zeroed totals, never an error.
		return &domain.ActivityTotals{}, nil
	}
	return &results[0], nil
}

// dayTrend is the shared shape of the four per-day series: match the tenant,
// group by the YYYY-MM-DD string of the date, accumulate, sort ascending.
func (r *mongoActivityRepository) dayTrend(ctx context.Context, tenantID primitive.ObjectID, accumulate bson.M) ([]domain.DayPoint, error) {
	group := bson.M{
		"_id": bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$date"}},
	}
	for k, v := range accumulate {
		group[k] = v
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tenantId": tenantID}}},
		{{Key: "$group", Value: group}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	points := []domain.DayPoint{}
	if err = cursor.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// StepsByDay sums steps per calendar day.
func (r *mongoActivityRepository) StepsByDay(ctx context.Context, tenantID primitive.ObjectID) ([]domain.DayPoint, error) {
	return r.dayTrend(ctx, tenantID, bson.M{"value": bson.M{"$sum": "$steps"}})
}

// CaloriesByDay averages calories burned per calendar day.
func (r *mongoActivityRepository) CaloriesByDay(ctx context.Context, tenantID primitive.ObjectID) ([]domain.DayPoint, error) {
	return r.dayTrend(ctx, tenantID, bson.M{"value": bson.M{"$avg": "$caloriesBurned"}})
}

// WeightByDay averages weight per calendar day.
func (r *mongoActivityRepository) WeightByDay(ctx context.Context, tenantID primitive.ObjectID) ([]domain.DayPoint, error) {
	return r.dayTrend(ctx, tenantID, bson.M{"value": bson.M{"$avg": "$weightKg"}})
}

// NutritionByDay sums consumed calories and counts meals per calendar day.
func (r *mongoActivityRepository) NutritionByDay(ctx context.Context, tenantID primitive.ObjectID) ([]domain.DayPoint, error) {
	return r.dayTrend(ctx, tenantID, bson.M{
		"value": bson.M{"$sum": "$nutritionCalories"},
		"count": bson.M{"$sum": "$mealCount"},
	})
}

// EnsureActivityIndexes creates indexes for the daily activity collection.
func EnsureActivityIndexes(ctx context.Context, db *mongo.Database) {
	collection := db.Collection(activityCollectionName)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index(),
	})
	if err != nil {
		log.Printf("WARN: Index creation for %s failed: %v", collection.Name(), err)
	}
}
