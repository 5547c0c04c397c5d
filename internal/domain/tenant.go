package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PricingTier type for a tenant's offered subscription tiers
type PricingTier string

const (
	TierStandard PricingTier = "standard"
	TierSilver   PricingTier = "silver"
	TierGold     PricingTier = "gold"
	TierDiamond  PricingTier = "diamond"
)

// ValidPricingTier reports whether t is one of the known tiers.
func ValidPricingTier(t PricingTier) bool {
	switch t {
	case TierStandard, TierSilver, TierGold, TierDiamond:
		return true
	}
	return false
}

// MaxPricingPlans caps how many plans a tenant may offer.
const MaxPricingPlans = 4

// PricingPlan is one subscription offering of a tenant. A tenant always
// retains exactly one standard plan and at most MaxPricingPlans total.
type PricingPlan struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tier     PricingTier        `bson:"tier" json:"tier"`
	Price    float64            `bson:"price" json:"price"`
	Features []string           `bson:"features,omitempty" json:"features,omitempty"`
}

// Tenant is one coach's isolated data partition.
type Tenant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	ContactEmail string             `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ContactPhone string             `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	// FacebookPageID routes leadgen webhook notifications to this tenant.
	FacebookPageID string        `bson:"facebookPageId,omitempty" json:"facebookPageId,omitempty"`
	PricingPlans   []PricingPlan `bson:"pricingPlans" json:"pricingPlans"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// PlanByID returns the pricing plan with the given id, or nil.
func (t *Tenant) PlanByID(id primitive.ObjectID) *PricingPlan {
	for i := range t.PricingPlans {
		if t.PricingPlans[i].ID == id {
			return &t.PricingPlans[i]
		}
	}
	return nil
}

// PlanByTier returns the pricing plan with the given tier, or nil.
func (t *Tenant) PlanByTier(tier PricingTier) *PricingPlan {
	for i := range t.PricingPlans {
		if t.PricingPlans[i].Tier == tier {
			return &t.PricingPlans[i]
		}
	}
	return nil
}
