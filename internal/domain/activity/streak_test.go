package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreak(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	mk := func(daysAgo int) *Activity {
		a, err := NewActivity(NewActivityParams{
			ID:              "act",
			ProfileID:       "prof-1",
			Category:        CategoryRunning,
			DurationMinutes: 30,
			Date:            now.AddDate(0, 0, -daysAgo),
		})
		require.NoError(t, err)
		return a
	}

	t.Run("no activities", func(t *testing.T) {
		assert.Equal(t, 0, Streak(nil, now))
	})

	t.Run("single day today", func(t *testing.T) {
		assert.Equal(t, 1, Streak([]*Activity{mk(0)}, now))
	})

	t.Run("three consecutive days", func(t *testing.T) {
		acts := []*Activity{mk(0), mk(1), mk(2)}
		assert.Equal(t, 3, Streak(acts, now))
	})

	t.Run("streak ending yesterday is alive", func(t *testing.T) {
		acts := []*Activity{mk(1), mk(2)}
		assert.Equal(t, 2, Streak(acts, now))
	})

	t.Run("gap two days ago breaks the streak", func(t *testing.T) {
		acts := []*Activity{mk(0), mk(1), mk(3), mk(4)}
		assert.Equal(t, 2, Streak(acts, now))
	})

	t.Run("last activity too old", func(t *testing.T) {
		acts := []*Activity{mk(2), mk(3)}
		assert.Equal(t, 0, Streak(acts, now))
	})

	t.Run("multiple activities on one day count once", func(t *testing.T) {
		acts := []*Activity{mk(0), mk(0), mk(1)}
		assert.Equal(t, 2, Streak(acts, now))
	})

	t.Run("unsorted input", func(t *testing.T) {
		acts := []*Activity{mk(2), mk(0), mk(1)}
		assert.Equal(t, 3, Streak(acts, now))
	})
}
