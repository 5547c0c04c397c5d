package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodItem is a shared catalog entry. The catalog is tenant-agnostic
// reference data; plans copy the fields they need at assignment time.
type FoodItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FoodName   string             `bson:"food_name" json:"food_name"`
	Category   string             `bson:"category,omitempty" json:"category,omitempty"`
	Calories   float64            `bson:"calories,omitempty" json:"calories,omitempty"` // kcal per serving
	ProteinG   float64            `bson:"protein_g,omitempty" json:"protein_g,omitempty"`
	CarbsG     float64            `bson:"carbs_g,omitempty" json:"carbs_g,omitempty"`
	FatG       float64            `bson:"fat_g,omitempty" json:"fat_g,omitempty"`
	ServingQty string             `bson:"serving_qty,omitempty" json:"serving_qty,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutItem is a shared catalog entry for a single workout/exercise.
type WorkoutItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutName string             `bson:"workoutName" json:"workoutName"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"` // e.g. "Chest", "Cardio"
	Difficulty  string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	DurationMin *int               `bson:"durationMin,omitempty" json:"durationMin,omitempty"` // suggested duration
	VideoURL    string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FoodRow is the flat projection returned by catalog search.
type FoodRow struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	FoodName string             `bson:"food_name" json:"food_name"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
	Calories float64            `bson:"calories,omitempty" json:"calories,omitempty"`
}

// WorkoutRow is the flat projection returned by catalog search.
type WorkoutRow struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	WorkoutName string             `bson:"workoutName" json:"workoutName"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Difficulty  string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
}
