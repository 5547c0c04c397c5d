package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a paying client of a coach, created either directly or by
// converting a lead. The weekly meal and workout plans are embedded so a
// single read serves the client detail screen.
type Client struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	TenantID  primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`

	MealPlan    *Plan `bson:"mealPlan,omitempty" json:"mealPlan,omitempty"`
	WorkoutPlan *Plan `bson:"workoutPlan,omitempty" json:"workoutPlan,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PlanFor returns the embedded plan of the given kind (may be nil).
func (c *Client) PlanFor(kind PlanKind) *Plan {
	if kind == PlanKindMeal {
		return c.MealPlan
	}
	return c.WorkoutPlan
}

// SetPlan replaces the embedded plan of the given kind.
func (c *Client) SetPlan(kind PlanKind, p *Plan) {
	if kind == PlanKindMeal {
		c.MealPlan = p
		return
	}
	c.WorkoutPlan = p
}
