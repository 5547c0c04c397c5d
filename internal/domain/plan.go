package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanKind distinguishes the two embedded plan flavors on a Client.
type PlanKind string

const (
	PlanKindWorkout PlanKind = "workout"
	PlanKindMeal    PlanKind = "meal"
)

// PlanStatus type for plan and plan item lifecycle
type PlanStatus string

const (
	PlanStatusAssigned  PlanStatus = "assigned"
	PlanStatusCompleted PlanStatus = "completed"
)

// MealType slots a meal item into a section of the day.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// ValidMealType reports whether m is one of the known meal slots.
func ValidMealType(m MealType) bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// PlanItem is one catalog entry scheduled on one day of the plan's week.
// Display fields are denormalized from the catalog at assignment time so
// historical plans stay stable if the catalog entry later changes.
type PlanItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CatalogItemID primitive.ObjectID `bson:"catalogItemId" json:"catalogItemId"`
	DisplayName   string             `bson:"displayName" json:"displayName"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"` // muscle group / cuisine
	MealType      MealType           `bson:"mealType,omitempty" json:"mealType,omitempty"` // meals only
	DayOfWeek     int                `bson:"dayOfWeek" json:"dayOfWeek"`                   // 0=Sunday .. 6=Saturday
	DurationMin   *int               `bson:"durationMin,omitempty" json:"durationMin,omitempty"` // workouts only
	EnergyKcal    *float64           `bson:"energyKcal,omitempty" json:"energyKcal,omitempty"`   // meals only
	Status        PlanStatus         `bson:"status" json:"status"`
	AssignedAt    time.Time          `bson:"assignedAt" json:"assignedAt"`
	CompletedAt   *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// Key returns the uniqueness key for the item within its plan:
// (catalogItemId, dayOfWeek) for workouts, (catalogItemId, mealType, dayOfWeek)
// for meals. No two items in a plan may share a key.
func (it PlanItem) Key(kind PlanKind) string {
	if kind == PlanKindMeal {
		return it.CatalogItemID.Hex() + "|" + string(it.MealType) + "|" + weekdayDigit(it.DayOfWeek)
	}
	return it.CatalogItemID.Hex() + "|" + weekdayDigit(it.DayOfWeek)
}

func weekdayDigit(d int) string {
	return string(rune('0' + d))
}

// Plan is a client's assigned schedule for exactly one calendar week.
// WeekStart is always a Sunday at midnight; WeekEnd is the following Saturday
// at 23:59:59.999.
type Plan struct {
	Name        string     `bson:"name,omitempty" json:"name,omitempty"`
	Status      PlanStatus `bson:"status" json:"status"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Notes       string     `bson:"notes,omitempty" json:"notes,omitempty"`
	WeekStart   time.Time  `bson:"weekStart" json:"weekStart"`
	WeekEnd     time.Time  `bson:"weekEnd" json:"weekEnd"`
	Items       []PlanItem `bson:"items" json:"items"`
	AssignedAt  time.Time  `bson:"assignedAt" json:"assignedAt"`

	// Display-only aggregates recomputed on every assignment.
	TotalDurationMin int     `bson:"totalDurationMin,omitempty" json:"totalDurationMin,omitempty"`
	TotalEnergyKcal  float64 `bson:"totalEnergyKcal,omitempty" json:"totalEnergyKcal,omitempty"`
}

// IsEmpty reports whether the plan has never been assigned.
func (p *Plan) IsEmpty() bool {
	return p == nil || p.WeekStart.IsZero()
}

// AllItemsCompleted reports whether every item is completed. An empty item
// list never counts as completed.
func (p *Plan) AllItemsCompleted() bool {
	if p == nil || len(p.Items) == 0 {
		return false
	}
	for _, it := range p.Items {
		if it.Status != PlanStatusCompleted {
			return false
		}
	}
	return true
}
