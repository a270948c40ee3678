package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	mk := func(daysAgo int, dur int, dist *float64) *Activity {
		a, err := NewActivity(NewActivityParams{
			ID:              "act",
			ProfileID:       "prof-1",
			Category:        CategoryWalking,
			DurationMinutes: dur,
			DistanceKM:      dist,
			Date:            now.AddDate(0, 0, -daysAgo),
		})
		require.NoError(t, err)
		return a
	}

	t.Run("no recent activity", func(t *testing.T) {
		tips := Suggest(nil, false, now)
		assert.Equal(t, []string{TipGetStarted}, tips)
	})

	t.Run("only old activity counts as none", func(t *testing.T) {
		tips := Suggest([]*Activity{mk(8, 60, floatPtr(10))}, false, now)
		assert.Equal(t, []string{TipGetStarted}, tips)
	})

	t.Run("low distance", func(t *testing.T) {
		tips := Suggest([]*Activity{mk(1, 30, floatPtr(2))}, false, now)
		assert.Equal(t, []string{TipWalkDaily}, tips)
	})

	t.Run("distance ok but short sessions", func(t *testing.T) {
		tips := Suggest([]*Activity{
			mk(1, 15, floatPtr(3)),
			mk(2, 15, floatPtr(3)),
		}, false, now)
		assert.Equal(t, []string{TipLongerSessions}, tips)
	})

	t.Run("active user gets nothing", func(t *testing.T) {
		tips := Suggest([]*Activity{
			mk(1, 30, floatPtr(4)),
			mk(2, 30, floatPtr(4)),
		}, false, now)
		assert.Empty(t, tips)
	})

	t.Run("low distance and short sessions stack", func(t *testing.T) {
		tips := Suggest([]*Activity{mk(1, 10, floatPtr(1))}, false, now)
		assert.Equal(t, []string{TipWalkDaily, TipLongerSessions}, tips)
	})

	t.Run("team member stacks the team tip", func(t *testing.T) {
		tips := Suggest([]*Activity{mk(1, 10, floatPtr(1))}, true, now)
		assert.Equal(t, []string{TipWalkDaily, TipLongerSessions, TipHelpTeam}, tips)
	})

	t.Run("active team member gets only the team tip", func(t *testing.T) {
		tips := Suggest([]*Activity{
			mk(1, 40, floatPtr(6)),
		}, true, now)
		assert.Equal(t, []string{TipHelpTeam}, tips)
	})

	t.Run("missing distance counts as zero", func(t *testing.T) {
		tips := Suggest([]*Activity{mk(1, 50, nil)}, false, now)
		assert.Equal(t, []string{TipWalkDaily}, tips)
	})
}
