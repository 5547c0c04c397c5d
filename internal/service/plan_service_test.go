package service

import (
	"context"
	"testing"
	"time"

	"fitcoach/coach-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// planFixture wires a planService with a frozen clock and one client.
type planFixture struct {
	svc         *planService
	clientRepo  *fakeClientRepo
	catalogRepo *fakeCatalogRepo
	tenantID    primitive.ObjectID
	clientID    primitive.ObjectID
	now         time.Time
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	clientRepo := newFakeClientRepo()
	catalogRepo := newFakeCatalogRepo()

	f := &planFixture{
		clientRepo:  clientRepo,
		catalogRepo: catalogRepo,
		tenantID:    primitive.NewObjectID(),
		now:         time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC), // Wednesday
	}
	f.svc = &planService{
		clientRepo:  clientRepo,
		catalogRepo: catalogRepo,
		now:         func() time.Time { return f.now },
	}

	clientID, err := clientRepo.Create(context.Background(), &domain.Client{
		FirstName: "Test",
		LastName:  "Client",
		Email:     "client@example.com",
		TenantID:  f.tenantID,
	})
	require.NoError(t, err)
	f.clientID = clientID
	return f
}

func intPtr(v int) *int { return &v }

func TestAssignWorkout(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a week-bounded plan with denormalized fields", func(t *testing.T) {
		f := newPlanFixture(t)
		workoutID := f.catalogRepo.addWorkout(domain.WorkoutItem{
			WorkoutName: "Bench Press",
			Category:    "Chest",
			DurationMin: intPtr(30),
		})

		client, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, AssignWorkoutInput{
			WorkoutIDs: []primitive.ObjectID{workoutID},
			DayOfWeek:  intPtr(1),
		})
		require.NoError(t, err)

		plan := client.WorkoutPlan
		require.NotNil(t, plan)
		assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), plan.WeekStart)
		assert.Equal(t, time.Date(2024, 5, 18, 23, 59, 59, 999000000, time.UTC), plan.WeekEnd)
		assert.Equal(t, "Bench Press", plan.Name)
		assert.Equal(t, domain.PlanStatusAssigned, plan.Status)
		assert.Equal(t, 30, plan.TotalDurationMin)

		require.Len(t, plan.Items, 1)
		item := plan.Items[0]
		assert.Equal(t, workoutID, item.CatalogItemID)
		assert.Equal(t, "Bench Press", item.DisplayName)
		assert.Equal(t, 1, item.DayOfWeek)
		assert.Equal(t, 30, *item.DurationMin)
	})

	t.Run("apply to week fans out over seven days", func(t *testing.T) {
		f := newPlanFixture(t)
		workoutID := f.catalogRepo.addWorkout(domain.WorkoutItem{WorkoutName: "Plank", DurationMin: intPtr(10)})

		client, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, AssignWorkoutInput{
			WorkoutIDs:  []primitive.ObjectID{workoutID},
			ApplyToWeek: true,
		})
		require.NoError(t, err)

		assert.Len(t, client.WorkoutPlan.Items, 7)
		assert.Equal(t, 70, client.WorkoutPlan.TotalDurationMin)
	})

	t.Run("reassignment to the same day is idempotent", func(t *testing.T) {
		f := newPlanFixture(t)
		workoutID := f.catalogRepo.addWorkout(domain.WorkoutItem{WorkoutName: "Squat", DurationMin: intPtr(20)})

		input := AssignWorkoutInput{WorkoutIDs: []primitive.ObjectID{workoutID}, DayOfWeek: intPtr(2)}
		_, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, input)
		require.NoError(t, err)
		client, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, input)
		require.NoError(t, err)

		assert.Len(t, client.WorkoutPlan.Items, 1)
		assert.Equal(t, 20, client.WorkoutPlan.TotalDurationMin)
	})

	t.Run("existing item wins but a missing duration is backfilled", func(t *testing.T) {
		f := newPlanFixture(t)
		workoutID := f.catalogRepo.addWorkout(domain.WorkoutItem{WorkoutName: "Deadlift"}) // no suggested duration

		_, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, AssignWorkoutInput{
			WorkoutIDs: []primitive.ObjectID{workoutID},
			DayOfWeek:  intPtr(4),
		})
		require.NoError(t, err)

		client, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, AssignWorkoutInput{
			WorkoutIDs:  []primitive.ObjectID{workoutID},
			DayOfWeek:   intPtr(4),
			DurationMin: intPtr(45),
		})
		require.NoError(t, err)

		require.Len(t, client.WorkoutPlan.Items, 1)
		require.NotNil(t, client.WorkoutPlan.Items[0].DurationMin)
		assert.Equal(t, 45, *client.WorkoutPlan.Items[0].DurationMin)
	})

	t.Run("a new week resets the items but keeps name and notes", func(t *testing.T) {
		f := newPlanFixture(t)
		first := f.catalogRepo.addWorkout(domain.WorkoutItem{WorkoutName: "Rowing", DurationMin: intPtr(25)})
		second := f.catalogRepo.addWorkout(domain.WorkoutItem{WorkoutName: "Cycling", DurationMin: intPtr(40)})

		_, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, AssignWorkoutInput{
			WorkoutIDs: []primitive.ObjectID{first},
			DayOfWeek:  intPtr(1),
			Notes:      "easy start",
		})
		require.NoError(t, err)

		f.now = f.now.AddDate(0, 0, 7)
		client, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, AssignWorkoutInput{
			WorkoutIDs: []primitive.ObjectID{second},
			DayOfWeek:  intPtr(1),
		})
		require.NoError(t, err)

		plan := client.WorkoutPlan
		require.Len(t, plan.Items, 1)
		assert.Equal(t, second, plan.Items[0].CatalogItemID)
		assert.Equal(t, time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC), plan.WeekStart)
		assert.Equal(t, "Cycling", plan.Name)
		assert.Equal(t, "easy start", plan.Notes)
		assert.Equal(t, 40, plan.TotalDurationMin)
	})

	t.Run("multiple distinct workouts get the generic name", func(t *testing.T) {
		f := newPlanFixture(t)
		first := f.catalogRepo.addWorkout(domain.WorkoutItem{WorkoutName: "Push Ups"})
		second := f.catalogRepo.addWorkout(domain.WorkoutItem{WorkoutName: "Pull Ups"})

		client, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, AssignWorkoutInput{
			WorkoutIDs: []primitive.ObjectID{first, second},
			DayOfWeek:  intPtr(3),
		})
		require.NoError(t, err)

		assert.Equal(t, "Custom Workout Plan", client.WorkoutPlan.Name)
	})

	t.Run("unknown catalog ids rejected", func(t *testing.T) {
		f := newPlanFixture(t)
		_, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, AssignWorkoutInput{
			WorkoutIDs: []primitive.ObjectID{primitive.NewObjectID()},
		})
		assert.ErrorIs(t, err, ErrCatalogItemsNotFound)
	})

	t.Run("cross-tenant client reads as absent", func(t *testing.T) {
		f := newPlanFixture(t)
		workoutID := f.catalogRepo.addWorkout(domain.WorkoutItem{WorkoutName: "Lunges"})

		_, err := f.svc.AssignWorkout(ctx, primitive.NewObjectID(), f.clientID, AssignWorkoutInput{
			WorkoutIDs: []primitive.ObjectID{workoutID},
		})
		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestAssignMeal(t *testing.T) {
	ctx := context.Background()

	t.Run("same food in different meal slots coexists on one day", func(t *testing.T) {
		f := newPlanFixture(t)
		foodID := f.catalogRepo.addFood(domain.FoodItem{FoodName: "Oatmeal", Calories: 150})

		_, err := f.svc.AssignMeal(ctx, f.tenantID, f.clientID, AssignMealInput{
			FoodIDs:   []primitive.ObjectID{foodID},
			MealType:  domain.MealTypeBreakfast,
			DayOfWeek: intPtr(2),
		})
		require.NoError(t, err)

		client, err := f.svc.AssignMeal(ctx, f.tenantID, f.clientID, AssignMealInput{
			FoodIDs:   []primitive.ObjectID{foodID},
			MealType:  domain.MealTypeSnack,
			DayOfWeek: intPtr(2),
		})
		require.NoError(t, err)

		plan := client.MealPlan
		assert.Len(t, plan.Items, 2)
		assert.Equal(t, 300.0, plan.TotalEnergyKcal)
		// One distinct catalog item keeps the item's name.
		assert.Equal(t, "Oatmeal", plan.Name)
	})

	t.Run("same slot same day stays deduplicated", func(t *testing.T) {
		f := newPlanFixture(t)
		foodID := f.catalogRepo.addFood(domain.FoodItem{FoodName: "Salad", Calories: 90})

		input := AssignMealInput{
			FoodIDs:   []primitive.ObjectID{foodID},
			MealType:  domain.MealTypeLunch,
			DayOfWeek: intPtr(5),
		}
		_, err := f.svc.AssignMeal(ctx, f.tenantID, f.clientID, input)
		require.NoError(t, err)
		client, err := f.svc.AssignMeal(ctx, f.tenantID, f.clientID, input)
		require.NoError(t, err)

		assert.Len(t, client.MealPlan.Items, 1)
		assert.Equal(t, 90.0, client.MealPlan.TotalEnergyKcal)
	})

	t.Run("unknown meal type rejected", func(t *testing.T) {
		f := newPlanFixture(t)
		_, err := f.svc.AssignMeal(ctx, f.tenantID, f.clientID, AssignMealInput{
			FoodIDs:  []primitive.ObjectID{primitive.NewObjectID()},
			MealType: "brunch",
		})
		assert.ErrorIs(t, err, ErrInvalidMealType)
	})
}

func TestUpdatePlanStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (f *planFixture, itemIDs []string) {
		t.Helper()
		f = newPlanFixture(t)
		first := f.catalogRepo.addWorkout(domain.WorkoutItem{WorkoutName: "Push Ups"})
		second := f.catalogRepo.addWorkout(domain.WorkoutItem{WorkoutName: "Sit Ups"})

		client, err := f.svc.AssignWorkout(ctx, f.tenantID, f.clientID, AssignWorkoutInput{
			WorkoutIDs: []primitive.ObjectID{first, second},
			DayOfWeek:  intPtr(3),
		})
		require.NoError(t, err)
		for _, it := range client.WorkoutPlan.Items {
			itemIDs = append(itemIDs, it.ID.Hex())
		}
		require.Len(t, itemIDs, 2)
		return f, itemIDs
	}

	t.Run("completing every item completes the plan", func(t *testing.T) {
		f, itemIDs := setup(t)

		client, err := f.svc.UpdatePlanStatus(ctx, f.tenantID, f.clientID, domain.PlanKindWorkout, itemIDs[0], domain.PlanStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, domain.PlanStatusAssigned, client.WorkoutPlan.Status)

		client, err = f.svc.UpdatePlanStatus(ctx, f.tenantID, f.clientID, domain.PlanKindWorkout, itemIDs[1], domain.PlanStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, domain.PlanStatusCompleted, client.WorkoutPlan.Status)
		assert.NotNil(t, client.WorkoutPlan.CompletedAt)
	})

	t.Run("reopening one item reopens the plan", func(t *testing.T) {
		f, itemIDs := setup(t)

		for _, id := range itemIDs {
			_, err := f.svc.UpdatePlanStatus(ctx, f.tenantID, f.clientID, domain.PlanKindWorkout, id, domain.PlanStatusCompleted)
			require.NoError(t, err)
		}

		client, err := f.svc.UpdatePlanStatus(ctx, f.tenantID, f.clientID, domain.PlanKindWorkout, itemIDs[0], domain.PlanStatusAssigned)
		require.NoError(t, err)

		assert.Equal(t, domain.PlanStatusAssigned, client.WorkoutPlan.Status)
		assert.Nil(t, client.WorkoutPlan.CompletedAt)
		assert.Nil(t, client.WorkoutPlan.Items[0].CompletedAt)
	})

	t.Run("empty item id sets the whole plan", func(t *testing.T) {
		f, _ := setup(t)

		client, err := f.svc.UpdatePlanStatus(ctx, f.tenantID, f.clientID, domain.PlanKindWorkout, "", domain.PlanStatusCompleted)
		require.NoError(t, err)

		assert.Equal(t, domain.PlanStatusCompleted, client.WorkoutPlan.Status)
		// Item statuses are untouched by a whole-plan set.
		assert.Equal(t, domain.PlanStatusAssigned, client.WorkoutPlan.Items[0].Status)
	})

	t.Run("unknown item id rejected", func(t *testing.T) {
		f, _ := setup(t)

		_, err := f.svc.UpdatePlanStatus(ctx, f.tenantID, f.clientID, domain.PlanKindWorkout, primitive.NewObjectID().Hex(), domain.PlanStatusCompleted)
		assert.ErrorIs(t, err, ErrPlanItemNotFound)
	})

	t.Run("client without a plan of this kind rejected", func(t *testing.T) {
		f, _ := setup(t)

		_, err := f.svc.UpdatePlanStatus(ctx, f.tenantID, f.clientID, domain.PlanKindMeal, "", domain.PlanStatusCompleted)
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		f, itemIDs := setup(t)

		_, err := f.svc.UpdatePlanStatus(ctx, f.tenantID, f.clientID, domain.PlanKindWorkout, itemIDs[0], "paused")
		assert.ErrorIs(t, err, ErrInvalidPlanStatus)
	})
}
