package service

import (
	"context"
	"errors"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrCatalogItemsNotFound = errors.New("none of the requested catalog items exist")
	ErrPlanNotFound         = errors.New("client has no plan of this kind")
	ErrPlanItemNotFound     = errors.New("plan item not found")
	ErrInvalidMealType      = errors.New("invalid meal type")
	ErrInvalidPlanStatus    = errors.New("invalid plan status")
)

// Labels used when a plan holds more than one distinct catalog item.
const (
	customWorkoutPlanName = "Custom Workout Plan"
	customMealPlanName    = "Custom Meal Plan"
)

// AssignWorkoutInput describes one workout assignment request.
type AssignWorkoutInput struct {
	WorkoutIDs  []primitive.ObjectID
	DayOfWeek   *int       // nil means "the reference date's weekday"
	ApplyToWeek bool       // overrides DayOfWeek with all seven days
	WeekRef     *time.Time // any instant inside the target week; nil means now
	DurationMin *int       // caller override; falls back to the catalog suggestion
	Notes       string
}

// AssignMealInput describes one meal assignment request.
type AssignMealInput struct {
	FoodIDs     []primitive.ObjectID
	MealType    domain.MealType
	DayOfWeek   *int
	ApplyToWeek bool
	WeekRef     *time.Time
	Notes       string
}

// --- Service Interface ---
type PlanService interface {
	AssignWorkout(ctx context.Context, tenantID, clientID primitive.ObjectID, input AssignWorkoutInput) (*domain.Client, error)
	AssignMeal(ctx context.Context, tenantID, clientID primitive.ObjectID, input AssignMealInput) (*domain.Client, error)
	// UpdatePlanStatus marks a single item (itemID set) or the whole plan
	// (itemID empty) as assigned/completed.
	UpdatePlanStatus(ctx context.Context, tenantID, clientID primitive.ObjectID, kind domain.PlanKind, itemID string, status domain.PlanStatus) (*domain.Client, error)
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	clientRepo  repository.ClientRepository
	catalogRepo repository.CatalogRepository
	now         func() time.Time
}

// NewPlanService creates a new instance of planService.
func NewPlanService(clientRepo repository.ClientRepository, catalogRepo repository.CatalogRepository) PlanService {
	return &planService{
		clientRepo:  clientRepo,
		catalogRepo: catalogRepo,
		now:         time.Now,
	}
}

// AssignWorkout merges the requested workouts into the client's weekly
// workout plan. Re-assigning an item to the same day never duplicates it;
// at most a missing duration is backfilled.
func (s *planService) AssignWorkout(ctx context.Context, tenantID, clientID primitive.ObjectID, input AssignWorkoutInput) (*domain.Client, error) {
	client, err := s.getTenantClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	ref := s.now()
	if input.WeekRef != nil {
		ref = *input.WeekRef
	}
	days, err := targetDays(input.ApplyToWeek, input.DayOfWeek, ref)
	if err != nil {
		return nil, err
	}

	items, err := s.catalogRepo.GetWorkoutsByIDs(ctx, input.WorkoutIDs)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCatalogItemsNotFound
	}

	assignedAt := s.now().UTC()
	candidates := make([]domain.PlanItem, 0, len(items)*len(days))
	for _, day := range days {
		for _, item := range items {
			duration := input.DurationMin
			if duration == nil {
				duration = item.DurationMin
			}
			candidates = append(candidates, domain.PlanItem{
				ID:            primitive.NewObjectID(),
				CatalogItemID: item.ID,
				DisplayName:   item.WorkoutName,
				Category:      item.Category,
				DayOfWeek:     day,
				DurationMin:   duration,
				Status:        domain.PlanStatusAssigned,
				AssignedAt:    assignedAt,
			})
		}
	}

	plan := buildPlan(domain.PlanKindWorkout, client.PlanFor(domain.PlanKindWorkout), candidates, ref, input.Notes, assignedAt)
	if err := s.clientRepo.ReplacePlan(ctx, clientID, domain.PlanKindWorkout, plan); err != nil {
		return nil, err
	}
	client.SetPlan(domain.PlanKindWorkout, plan)
	return client, nil
}

// AssignMeal merges the requested foods into the client's weekly meal plan.
// The uniqueness key additionally carries the meal type, so the same food can
// appear at breakfast and dinner on the same day.
func (s *planService) AssignMeal(ctx context.Context, tenantID, clientID primitive.ObjectID, input AssignMealInput) (*domain.Client, error) {
	if !domain.ValidMealType(input.MealType) {
		return nil, ErrInvalidMealType
	}

	client, err := s.getTenantClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	ref := s.now()
	if input.WeekRef != nil {
		ref = *input.WeekRef
	}
	days, err := targetDays(input.ApplyToWeek, input.DayOfWeek, ref)
	if err != nil {
		return nil, err
	}

	items, err := s.catalogRepo.GetFoodsByIDs(ctx, input.FoodIDs)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCatalogItemsNotFound
	}

	assignedAt := s.now().UTC()
	candidates := make([]domain.PlanItem, 0, len(items)*len(days))
	for _, day := range days {
		for _, item := range items {
			kcal := item.Calories
			candidates = append(candidates, domain.PlanItem{
				ID:            primitive.NewObjectID(),
				CatalogItemID: item.ID,
				DisplayName:   item.FoodName,
				Category:      item.Category,
				MealType:      input.MealType,
				DayOfWeek:     day,
				EnergyKcal:    &kcal,
				Status:        domain.PlanStatusAssigned,
				AssignedAt:    assignedAt,
			})
		}
	}

	plan := buildPlan(domain.PlanKindMeal, client.PlanFor(domain.PlanKindMeal), candidates, ref, input.Notes, assignedAt)
	if err := s.clientRepo.ReplacePlan(ctx, clientID, domain.PlanKindMeal, plan); err != nil {
		return nil, err
	}
	client.SetPlan(domain.PlanKindMeal, plan)
	return client, nil
}

// buildPlan resolves the target week, resets the existing plan when the week
// changed, merges candidates, and recomputes aggregates and the plan name.
func buildPlan(kind domain.PlanKind, existing *domain.Plan, candidates []domain.PlanItem, ref time.Time, notes string, assignedAt time.Time) *domain.Plan {
	weekStart, weekEnd := weekBounds(ref)

	var existingItems []domain.PlanItem
	priorName := ""
	priorNotes := ""
	if !existing.IsEmpty() {
		priorName = existing.Name
		priorNotes = existing.Notes
		// A plan belongs to exactly one (client, week) pair: a different week
		// discards all prior items before merging.
		if existing.WeekStart.Equal(weekStart) {
			existingItems = existing.Items
		}
	}

	merged := mergePlanItems(kind, existingItems, candidates)

	plan := &domain.Plan{
		Name:       planName(kind, merged, priorName),
		Status:     domain.PlanStatusAssigned,
		Notes:      priorNotes,
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		Items:      merged,
		AssignedAt: assignedAt,
	}
	if notes != "" {
		plan.Notes = notes
	}

	for _, it := range merged {
		if it.DurationMin != nil {
			plan.TotalDurationMin += *it.DurationMin
		}
		if it.EnergyKcal != nil {
			plan.TotalEnergyKcal += *it.EnergyKcal
		}
	}
	return plan
}

// mergePlanItems de-duplicates existing + candidate items by their composite
// key. On collision the existing item wins; only a missing numeric field may
// be backfilled from the candidate. New keys append in candidate order.
func mergePlanItems(kind domain.PlanKind, existing, candidates []domain.PlanItem) []domain.PlanItem {
	merged := make([]domain.PlanItem, 0, len(existing)+len(candidates))
	index := make(map[string]int, len(existing))

	for _, it := range existing {
		key := it.Key(kind)
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = len(merged)
		merged = append(merged, it)
	}

	for _, cand := range candidates {
		key := cand.Key(kind)
		if i, ok := index[key]; ok {
			if merged[i].DurationMin == nil && cand.DurationMin != nil {
				merged[i].DurationMin = cand.DurationMin
			}
			if merged[i].EnergyKcal == nil && cand.EnergyKcal != nil {
				merged[i].EnergyKcal = cand.EnergyKcal
			}
			continue
		}
		index[key] = len(merged)
		merged = append(merged, cand)
	}
	return merged
}

// planName labels the plan: the single item's name when there is exactly one
// distinct catalog item, a generic label for more, the prior name otherwise.
func planName(kind domain.PlanKind, items []domain.PlanItem, prior string) string {
	distinct := map[primitive.ObjectID]string{}
	for _, it := range items {
		distinct[it.CatalogItemID] = it.DisplayName
	}
	switch len(distinct) {
	case 0:
		return prior
	case 1:
		for _, name := range distinct {
			return name
		}
	}
	if kind == domain.PlanKindMeal {
		return customMealPlanName
	}
	return customWorkoutPlanName
}

// UpdatePlanStatus toggles one item's status (rolling the plan status up from
// its items) or, without an item id, sets the whole plan's status directly.
func (s *planService) UpdatePlanStatus(ctx context.Context, tenantID, clientID primitive.ObjectID, kind domain.PlanKind, itemID string, status domain.PlanStatus) (*domain.Client, error) {
	if status != domain.PlanStatusAssigned && status != domain.PlanStatusCompleted {
		return nil, ErrInvalidPlanStatus
	}

	client, err := s.getTenantClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	plan := client.PlanFor(kind)
	if plan.IsEmpty() {
		return nil, ErrPlanNotFound
	}

	now := s.now().UTC()
	if itemID != "" {
		oid, err := primitive.ObjectIDFromHex(itemID)
		if err != nil {
			return nil, ErrPlanItemNotFound
		}
		found := false
		for i := range plan.Items {
			if plan.Items[i].ID != oid {
				continue
			}
			plan.Items[i].Status = status
			if status == domain.PlanStatusCompleted {
				plan.Items[i].CompletedAt = &now
			} else {
				plan.Items[i].CompletedAt = nil
			}
			found = true
			break
		}
		if !found {
			return nil, ErrPlanItemNotFound
		}
		// The plan is completed exactly when every item is.
		if plan.AllItemsCompleted() {
			plan.Status = domain.PlanStatusCompleted
			plan.CompletedAt = &now
		} else {
			plan.Status = domain.PlanStatusAssigned
			plan.CompletedAt = nil
		}
	} else {
		plan.Status = status
		if status == domain.PlanStatusCompleted {
			plan.CompletedAt = &now
		} else {
			plan.CompletedAt = nil
		}
	}

	if err := s.clientRepo.ReplacePlan(ctx, clientID, kind, plan); err != nil {
		return nil, err
	}
	client.SetPlan(kind, plan)
	return client, nil
}

// getTenantClient fetches a client and hides cross-tenant records behind ErrClientNotFound.
func (s *planService) getTenantClient(ctx context.Context, tenantID, clientID primitive.ObjectID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if client.TenantID != tenantID {
		return nil, ErrClientNotFound
	}
	return client, nil
}
