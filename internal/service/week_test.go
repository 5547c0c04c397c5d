package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
	}{
		{
			name:      "midweek wednesday",
			ref:       time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC), // Wednesday
			wantStart: time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),   // previous Sunday
		},
		{
			name:      "sunday maps to itself",
			ref:       time.Date(2024, 5, 12, 23, 59, 0, 0, time.UTC),
			wantStart: time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "saturday end of week",
			ref:       time.Date(2024, 5, 18, 0, 0, 1, 0, time.UTC),
			wantStart: time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "year boundary",
			ref:       time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),    // Monday
			wantStart: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), // Sunday
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := weekBounds(tt.ref)

			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, time.Weekday(0), start.Weekday(), "week starts on Sunday")
			assert.Equal(t, tt.wantStart.AddDate(0, 0, 7).Add(-time.Millisecond), end)

			// The reference instant always falls inside its own week.
			assert.False(t, tt.ref.Before(start))
			assert.False(t, tt.ref.After(end))
		})
	}
}

func TestTargetDays(t *testing.T) {
	wednesday := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)

	t.Run("whole week", func(t *testing.T) {
		day := 2
		days, err := targetDays(true, &day, wednesday)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, days)
	})

	t.Run("explicit day", func(t *testing.T) {
		day := 5
		days, err := targetDays(false, &day, wednesday)
		require.NoError(t, err)
		assert.Equal(t, []int{5}, days)
	})

	t.Run("defaults to the reference weekday", func(t *testing.T) {
		days, err := targetDays(false, nil, wednesday)
		require.NoError(t, err)
		assert.Equal(t, []int{3}, days)
	})

	t.Run("out of range day rejected", func(t *testing.T) {
		day := 7
		_, err := targetDays(false, &day, wednesday)
		assert.ErrorIs(t, err, ErrInvalidDayOfWeek)
	})
}
