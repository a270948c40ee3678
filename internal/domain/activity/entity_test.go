package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

func floatPtr(f float64) *float64 { return &f }

func TestCalculatePoints_BaseRates(t *testing.T) {
	tests := []struct {
		category Category
		duration int
		want     profile.Points
	}{
		{CategoryRunning, 30, 60},
		{CategoryWalking, 30, 15},
		{CategoryCycling, 30, 45},
		{CategorySwimming, 30, 75},
		{CategoryYoga, 30, 30},
		{CategoryStrength, 30, 60},
		{CategoryOther, 30, 22},
		{CategoryRunning, 23, 46},
		{CategoryWalking, 1, 0},
		{CategoryWalking, 3, 1},
	}

	for _, tt := range tests {
		got := CalculatePoints(tt.category, tt.duration, nil)
		assert.Equal(t, tt.want, got, "%s %dmin", tt.category, tt.duration)
	}
}

func TestCalculatePoints_DistanceBonusFlooredIndependently(t *testing.T) {
	// base floor(2.0*10)=20, bonus floor(2.5*5)=12
	got := CalculatePoints(CategoryRunning, 10, floatPtr(2.5))
	assert.Equal(t, profile.Points(32), got)

	// bonus floor(0.9*5)=4, not floored together with the base
	got = CalculatePoints(CategoryWalking, 10, floatPtr(0.9))
	assert.Equal(t, profile.Points(5+4), got)
}

func TestCalculatePoints_ZeroDistanceNoBonus(t *testing.T) {
	assert.Equal(t, profile.Points(20), CalculatePoints(CategoryRunning, 10, floatPtr(0)))
	assert.Equal(t, profile.Points(20), CalculatePoints(CategoryRunning, 10, nil))
}

func TestCalculatePoints_UnknownCategoryUsesOtherRate(t *testing.T) {
	got := CalculatePoints(Category("UNKNOWN"), 10, nil)
	assert.Equal(t, profile.Points(7), got)
}

func TestNewActivity(t *testing.T) {
	a, err := NewActivity(NewActivityParams{
		ID:              "act-1",
		ProfileID:       "prof-1",
		Category:        CategoryRunning,
		DurationMinutes: 25,
		DistanceKM:      floatPtr(4.0),
	})
	require.NoError(t, err)

	assert.Equal(t, "act-1", a.ID)
	assert.Equal(t, "prof-1", a.ProfileID)
	assert.Equal(t, profile.Points(70), a.Points)
	assert.False(t, a.Date.IsZero(), "date defaults to now")
}

func TestNewActivity_ExplicitDate(t *testing.T) {
	date := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a, err := NewActivity(NewActivityParams{
		ID:              "act-1",
		ProfileID:       "prof-1",
		Category:        CategoryYoga,
		DurationMinutes: 40,
		Date:            date,
	})
	require.NoError(t, err)
	assert.Equal(t, date, a.Date)
}

func TestNewActivity_Validation(t *testing.T) {
	base := NewActivityParams{
		ID:              "act-1",
		ProfileID:       "prof-1",
		Category:        CategoryRunning,
		DurationMinutes: 10,
	}

	t.Run("missing owner", func(t *testing.T) {
		params := base
		params.ProfileID = ""
		_, err := NewActivity(params)
		assert.ErrorIs(t, err, shared.ErrInvalidOwner)
	})

	t.Run("zero duration", func(t *testing.T) {
		params := base
		params.DurationMinutes = 0
		_, err := NewActivity(params)
		assert.ErrorIs(t, err, shared.ErrInvalidDuration)
	})

	t.Run("negative duration", func(t *testing.T) {
		params := base
		params.DurationMinutes = -5
		_, err := NewActivity(params)
		assert.ErrorIs(t, err, shared.ErrInvalidDuration)
	})

	t.Run("negative distance", func(t *testing.T) {
		params := base
		params.DistanceKM = floatPtr(-1)
		_, err := NewActivity(params)
		assert.ErrorIs(t, err, shared.ErrInvalidDistance)
	})

	t.Run("unknown category is accepted", func(t *testing.T) {
		params := base
		params.Category = Category("PARKOUR")
		a, err := NewActivity(params)
		require.NoError(t, err)
		assert.Equal(t, profile.Points(7), a.Points)
	})
}

func TestSummarize(t *testing.T) {
	mk := func(cat Category, dur int, dist *float64) *Activity {
		a, err := NewActivity(NewActivityParams{
			ID:              "act",
			ProfileID:       "prof-1",
			Category:        cat,
			DurationMinutes: dur,
			DistanceKM:      dist,
		})
		require.NoError(t, err)
		return a
	}

	activities := []*Activity{
		mk(CategoryRunning, 30, floatPtr(5.0)),
		mk(CategoryRunning, 20, nil),
		mk(CategoryYoga, 60, nil),
	}

	s := Summarize(activities)

	assert.Equal(t, 3, s.TotalActivities)
	assert.Equal(t, 110, s.TotalDurationMinutes)
	assert.Equal(t, 5.0, s.TotalDistanceKM)
	assert.Equal(t, profile.Points(85+40+60), s.TotalPoints)
	assert.Equal(t, map[Category]int{CategoryRunning: 2, CategoryYoga: 1}, s.ByCategory)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.TotalActivities)
	assert.Equal(t, 0.0, s.TotalDistanceKM, "distance is 0.0, never unset")
	assert.Empty(t, s.ByCategory, "zero-count categories are omitted")
}

func TestActivity_Clone(t *testing.T) {
	a, err := NewActivity(NewActivityParams{
		ID:              "act-1",
		ProfileID:       "prof-1",
		Category:        CategoryCycling,
		DurationMinutes: 45,
		DistanceKM:      floatPtr(12.0),
	})
	require.NoError(t, err)

	clone := a.Clone()
	*clone.DistanceKM = 99

	assert.Equal(t, 12.0, *a.DistanceKM)
}
