package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleSuperAdmin Role = "superadmin"
	RoleCoach      Role = "coach"
	RoleConsumer   Role = "consumer" // a prospect (lead) before conversion
	RoleClient     Role = "client"   // a converted lead; the Client document carries the plans
)

// LeadStatus tracks how warm a prospect currently is.
type LeadStatus string

const (
	LeadStatusNew  LeadStatus = "new"
	LeadStatusHot  LeadStatus = "hot"
	LeadStatusWarm LeadStatus = "warm"
	LeadStatusCold LeadStatus = "cold"
)

// ValidLeadStatus reports whether s is one of the known lead statuses.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusHot, LeadStatusWarm, LeadStatusCold:
		return true
	}
	return false
}

// ValidFollowUpStatus reports whether s may be recorded on a follow-up.
// "new" marks a lead nobody has called yet, so a call outcome cannot carry it.
func ValidFollowUpStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusHot, LeadStatusWarm, LeadStatusCold:
		return true
	}
	return false
}

// FollowUp is one call/contact record on a lead. The list is append-only;
// reads always present entries sorted by CreatedAt ascending.
type FollowUp struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Asked      string             `bson:"asked,omitempty" json:"asked,omitempty"`
	Response   string             `bson:"response,omitempty" json:"response,omitempty"`
	Status     LeadStatus         `bson:"status" json:"status"`
	CallbackAt *time.Time         `bson:"callbackAt,omitempty" json:"callbackAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	CreatedBy  primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
}

// User represents any person in the system: platform staff (superadmin),
// a coach, or a prospect/converted lead owned by a coach's tenant.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	FirstName    string             `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName     string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Email        string             `bson:"email" json:"email"` // Unique per tenant
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	TenantID     primitive.ObjectID `bson:"tenantId,omitempty" json:"tenantId,omitempty"`
	UniqueID     string             `bson:"unique_id,omitempty" json:"unique_id,omitempty"` // Opaque external-facing id

	// --- Lead-specific ---
	LeadStatus LeadStatus `bson:"leadStatus,omitempty" json:"leadStatus,omitempty"`
	LeadSource string     `bson:"leadSource,omitempty" json:"leadSource,omitempty"` // "manual" or "facebook"
	FollowUps  []FollowUp `bson:"followUps,omitempty" json:"followUps,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

// IsLead reports whether the user is still an unconverted prospect.
func (u *User) IsLead() bool {
	return u.Role == RoleConsumer
}

// SortedFollowUps returns the follow-up history ordered by CreatedAt ascending.
func (u *User) SortedFollowUps() []FollowUp {
	out := make([]FollowUp, len(u.FollowUps))
	copy(out, u.FollowUps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
