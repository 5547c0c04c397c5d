package service

import (
	"context"
	"testing"
	"time"

	"fitcoach/coach-platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveContent(t *testing.T) {
	ctx := context.Background()

	t.Run("default entry by day of year", func(t *testing.T) {
		repo := newFakeContentRepo()
		svc := NewContentService(repo)
		date := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) // day 10
		repo.defaults[10] = domain.DailyContent{DayOfYear: 10, Tip: "Drink water", Quote: "Keep going", Author: "Coach"}

		got, err := svc.Resolve(ctx, date)
		require.NoError(t, err)

		assert.Equal(t, "2024-01-10", got.DateKey)
		assert.Equal(t, 10, got.DayOfYear)
		assert.Equal(t, "Drink water", got.Tip)
		assert.Equal(t, "Keep going", got.Quote)
		assert.False(t, got.Overridden)
	})

	t.Run("override wins verbatim even when partially filled", func(t *testing.T) {
		repo := newFakeContentRepo()
		svc := NewContentService(repo)
		date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		repo.defaults[10] = domain.DailyContent{DayOfYear: 10, Tip: "Default tip", Quote: "Default quote"}
		repo.overrides["2024-01-10"] = domain.ContentOverride{DateKey: "2024-01-10", Tip: "Special tip"}

		got, err := svc.Resolve(ctx, date)
		require.NoError(t, err)

		assert.True(t, got.Overridden)
		assert.Equal(t, "Special tip", got.Tip)
		// The default's quote does not bleed through a partial override.
		assert.Empty(t, got.Quote)
	})

	t.Run("unseeded library resolves to empty content", func(t *testing.T) {
		svc := NewContentService(newFakeContentRepo())

		got, err := svc.Resolve(ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Empty(t, got.Tip)
		assert.Empty(t, got.Quote)
		assert.False(t, got.Overridden)
	})

	t.Run("leap year day 366 reuses the last entry", func(t *testing.T) {
		repo := newFakeContentRepo()
		svc := NewContentService(repo)
		repo.defaults[365] = domain.DailyContent{DayOfYear: 365, Tip: "Year-end push"}

		got, err := svc.Resolve(ctx, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, 365, got.DayOfYear)
		assert.Equal(t, "Year-end push", got.Tip)
	})
}

func TestUpsertOverride(t *testing.T) {
	ctx := context.Background()
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	t.Run("stores by date key", func(t *testing.T) {
		override, err := svc.UpsertOverride(ctx, OverrideInput{DateKey: "2024-05-01", Tip: "May day tip"})
		require.NoError(t, err)

		assert.Equal(t, "2024-05-01", override.DateKey)
		stored, ok := repo.overrides["2024-05-01"]
		require.True(t, ok)
		assert.Equal(t, "May day tip", stored.Tip)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		_, err := svc.UpsertOverride(ctx, OverrideInput{DateKey: "05/01/2024"})
		assert.Error(t, err)
	})
}

func TestDeleteOverride(t *testing.T) {
	ctx := context.Background()
	repo := newFakeContentRepo()
	svc := NewContentService(repo)
	repo.overrides["2024-05-01"] = domain.ContentOverride{DateKey: "2024-05-01"}

	require.NoError(t, svc.DeleteOverride(ctx, "2024-05-01"))
	assert.ErrorIs(t, svc.DeleteOverride(ctx, "2024-05-01"), ErrOverrideNotFound)
}

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	entries := []SeedEntry{
		{Tip: "tip one", Quote: "quote one"},
		{Tip: "tip two", Quote: "quote two"},
		{Tip: "tip three", Quote: "quote three"},
	}
	seeded, err := svc.SeedDefaults(ctx, entries)
	require.NoError(t, err)

	assert.Equal(t, domain.ContentLibrarySize, seeded)
	assert.Len(t, repo.defaults, domain.ContentLibrarySize)
	// Round-robin assignment: day 1 -> entry 0, day 2 -> entry 1, day 4 wraps to entry 0.
	assert.Equal(t, "tip one", repo.defaults[1].Tip)
	assert.Equal(t, "tip two", repo.defaults[2].Tip)
	assert.Equal(t, "tip three", repo.defaults[3].Tip)
	assert.Equal(t, "tip one", repo.defaults[4].Tip)
	assert.Equal(t, "tip two", repo.defaults[365].Tip)

	_, err = svc.SeedDefaults(ctx, nil)
	assert.Error(t, err)
}
