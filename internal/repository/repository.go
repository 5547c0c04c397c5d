package repository

import (
	"context"
	"time"

	"fitcoach/coach-platform/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
// Leads, coaches, and superadmins all live in the users collection.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// GetStaffByEmail looks up a coach or superadmin account by email. Lead
	// emails are only unique per tenant and may collide with staff emails,
	// so credential lookups must never match lead documents.
	GetStaffByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByTenantAndEmail(ctx context.Context, tenantID primitive.ObjectID, email string) (*domain.User, error)
	ListLeads(ctx context.Context, tenantID primitive.ObjectID, status domain.LeadStatus) ([]domain.User, error)
	// LeadsWithCallbacksBetween returns leads owning at least one follow-up
	// whose callbackAt falls in [from, to).
	LeadsWithCallbacksBetween(ctx context.Context, tenantID primitive.ObjectID, from, to time.Time) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// ClientRepository defines the interface for interacting with client data.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	ListByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]domain.Client, error)
	// ReplacePlan swaps the whole embedded plan sub-document of the given kind.
	ReplacePlan(ctx context.Context, clientID primitive.ObjectID, kind domain.PlanKind, plan *domain.Plan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CatalogRepository provides access to the shared food/workout reference data.
type CatalogRepository interface {
	SearchFoods(ctx context.Context, query string, page, limit int) ([]domain.FoodRow, error)
	SearchWorkouts(ctx context.Context, query string, page, limit int) ([]domain.WorkoutRow, error)
	GetFoodsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.FoodItem, error)
	GetWorkoutsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.WorkoutItem, error)
	CreateFood(ctx context.Context, item *domain.FoodItem) (primitive.ObjectID, error)
	CreateWorkout(ctx context.Context, item *domain.WorkoutItem) (primitive.ObjectID, error)
	DeleteFood(ctx context.Context, id primitive.ObjectID) error
	DeleteWorkout(ctx context.Context, id primitive.ObjectID) error
}

// TenantRepository defines the interface for interacting with tenant data.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tenant, error)
	GetByFacebookPage(ctx context.Context, pageID string) (*domain.Tenant, error)
	List(ctx context.Context) ([]domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
}

// ActivityRepository provides writes and the aggregation-backed reads over
// daily activity documents.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.DailyActivity) (primitive.ObjectID, error)
	LatestSince(ctx context.Context, tenantID primitive.ObjectID, since time.Time) (*domain.DailyActivity, error)
	LifetimeTotals(ctx context.Context, tenantID primitive.ObjectID) (*domain.ActivityTotals, error)
	StepsByDay(ctx context.Context, tenantID primitive.ObjectID) ([]domain.DayPoint, error)
	CaloriesByDay(ctx context.Context, tenantID primitive.ObjectID) ([]domain.DayPoint, error)
	WeightByDay(ctx context.Context, tenantID primitive.ObjectID) ([]domain.DayPoint, error)
	NutritionByDay(ctx context.Context, tenantID primitive.ObjectID) ([]domain.DayPoint, error)
}

// ContentRepository stores the default daily content library and its
// date-keyed overrides.
type ContentRepository interface {
	GetDefaultByDay(ctx context.Context, dayOfYear int) (*domain.DailyContent, error)
	GetOverrideByDateKey(ctx context.Context, dateKey string) (*domain.ContentOverride, error)
	UpsertOverride(ctx context.Context, override *domain.ContentOverride) error
	DeleteOverride(ctx context.Context, dateKey string) error
	ReplaceDefaults(ctx context.Context, entries []domain.DailyContent) error
}

// PhotoRepository stores progress photo metadata.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressPhoto, error)
	ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.ProgressPhoto, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SyncStateRepository tracks the mobile sync checkpoint document.
type SyncStateRepository interface {
	Touch(ctx context.Context, at time.Time) error
}
