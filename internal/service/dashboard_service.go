package service

import (
	"context"
	"errors"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardSummary bundles everything the coach dashboard renders in one
// response: today's snapshot, lifetime totals, and the four trend series.
type DashboardSummary struct {
	Today     *domain.DailyActivity  `json:"today,omitempty"`
	Totals    *domain.ActivityTotals `json:"totals"`
	Steps     []domain.DayPoint      `json:"steps"`
	Calories  []domain.DayPoint      `json:"calories"`
	Weight    []domain.DayPoint      `json:"weight"`
	Nutrition []domain.DayPoint      `json:"nutrition"`
}

// RecordActivityInput carries one day of tracked client metrics.
type RecordActivityInput struct {
	ClientID          primitive.ObjectID
	Date              time.Time
	Steps             int
	CaloriesBurned    float64
	WeightKg          float64
	SleepHours        float64
	NutritionCalories float64
	MealCount         int
}

// --- Service Interface ---
type DashboardService interface {
	Summary(ctx context.Context, tenantID primitive.ObjectID, now time.Time) (*DashboardSummary, error)
	RecordActivity(ctx context.Context, tenantID primitive.ObjectID, input RecordActivityInput) (*domain.DailyActivity, error)
}

// --- Service Implementation ---

// dashboardService implements the DashboardService interface. Read-only over
// activity data apart from the ingest endpoint.
type dashboardService struct {
	activityRepo repository.ActivityRepository
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(activityRepo repository.ActivityRepository) DashboardService {
	return &dashboardService{activityRepo: activityRepo}
}

// Summary assembles the dashboard payload. A tenant without data gets empty
// series and zeroed totals, never an error.
func (s *dashboardService) Summary(ctx context.Context, tenantID primitive.ObjectID, now time.Time) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	today, err := s.activityRepo.LatestSince(ctx, tenantID, dayStart(now))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	summary.Today = today // nil when no document today

	if summary.Totals, err = s.activityRepo.LifetimeTotals(ctx, tenantID); err != nil {
		return nil, err
	}
	if summary.Steps, err = s.activityRepo.StepsByDay(ctx, tenantID); err != nil {
		return nil, err
	}
	if summary.Calories, err = s.activityRepo.CaloriesByDay(ctx, tenantID); err != nil {
		return nil, err
	}
	if summary.Weight, err = s.activityRepo.WeightByDay(ctx, tenantID); err != nil {
		return nil, err
	}
	if summary.Nutrition, err = s.activityRepo.NutritionByDay(ctx, tenantID); err != nil {
		return nil, err
	}
	return summary, nil
}

// RecordActivity stores one day of tracked metrics for the tenant.
func (s *dashboardService) RecordActivity(ctx context.Context, tenantID primitive.ObjectID, input RecordActivityInput) (*domain.DailyActivity, error) {
	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	activity := &domain.DailyActivity{
		TenantID:          tenantID,
		ClientID:          input.ClientID,
		Date:              date,
		Steps:             input.Steps,
		CaloriesBurned:    input.CaloriesBurned,
		WeightKg:          input.WeightKg,
		SleepHours:        input.SleepHours,
		NutritionCalories: input.NutritionCalories,
		MealCount:         input.MealCount,
	}

	id, err := s.activityRepo.Create(ctx, activity)
	if err != nil {
		return nil, err
	}
	activity.ID = id
	return activity, nil
}
