package service

import (
	"context"
	"testing"

	"fitcoach/coach-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchPagingClamped(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "zero values take defaults", page: 0, limit: 0, wantPage: 1, wantLimit: 20},
		{name: "negative page clamps to 1", page: -3, limit: 10, wantPage: 1, wantLimit: 10},
		{name: "limit above max clamps to 50", page: 2, limit: 500, wantPage: 2, wantLimit: 50},
		{name: "in-range values pass through", page: 3, limit: 25, wantPage: 3, wantLimit: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeCatalogRepo()
			svc := NewCatalogService(repo)

			_, err := svc.SearchFoods(ctx, "chicken", tt.page, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, repo.lastPage)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)

			_, err = svc.SearchWorkouts(ctx, "press", tt.page, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, repo.lastPage)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)
		})
	}
}

func TestCatalogCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	t.Run("create assigns ids and requires names", func(t *testing.T) {
		food, err := svc.CreateFood(ctx, &domain.FoodItem{FoodName: "Grilled Chicken", Calories: 220})
		require.NoError(t, err)
		assert.False(t, food.ID.IsZero())

		_, err = svc.CreateFood(ctx, &domain.FoodItem{})
		assert.Error(t, err)

		workout, err := svc.CreateWorkout(ctx, &domain.WorkoutItem{WorkoutName: "Deadlift"})
		require.NoError(t, err)
		assert.False(t, workout.ID.IsZero())
	})

	t.Run("delete of absent entries reads as not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteFood(ctx, primitive.NewObjectID()), ErrCatalogItemNotFound)
		assert.ErrorIs(t, svc.DeleteWorkout(ctx, primitive.NewObjectID()), ErrCatalogItemNotFound)
	})
}
