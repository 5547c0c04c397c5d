package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyActivity is one day of tracked metrics for a tenant's client,
// typically synced from the mobile app.
type DailyActivity struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID          primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	ClientID          primitive.ObjectID `bson:"clientId,omitempty" json:"clientId,omitempty"`
	Date              time.Time          `bson:"date" json:"date"`
	Steps             int                `bson:"steps,omitempty" json:"steps,omitempty"`
	CaloriesBurned    float64            `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"`
	WeightKg          float64            `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	SleepHours        float64            `bson:"sleepHours,omitempty" json:"sleepHours,omitempty"`
	NutritionCalories float64            `bson:"nutritionCalories,omitempty" json:"nutritionCalories,omitempty"`
	MealCount         int                `bson:"mealCount,omitempty" json:"mealCount,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// ActivityTotals is the single-group lifetime rollup for a tenant.
type ActivityTotals struct {
	TotalSteps          int     `bson:"totalSteps" json:"totalSteps"`
	TotalCaloriesBurned float64 `bson:"totalCaloriesBurned" json:"totalCaloriesBurned"`
	AvgSleepHours       float64 `bson:"avgSleepHours" json:"avgSleepHours"`
	TotalNutritionKcal  float64 `bson:"totalNutritionKcal" json:"totalNutritionKcal"`
	Days                int     `bson:"days" json:"days"`
}

// DayPoint is one point of a per-day trend series. Day is a calendar day
// string (YYYY-MM-DD); series are always sorted ascending by Day.
type DayPoint struct {
	Day   string  `bson:"_id" json:"day"`
	Value float64 `bson:"value" json:"value"`
	Count int     `bson:"count,omitempty" json:"count,omitempty"`
}
