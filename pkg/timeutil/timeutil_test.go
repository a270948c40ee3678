package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(date(2025, time.March, 14, 17))
	assert.Equal(t, date(2025, time.March, 14, 0), got)
}

func TestStartOfWeek(t *testing.T) {
	// 2025-03-14 is a Friday; the week starts Monday 2025-03-10.
	assert.Equal(t, date(2025, time.March, 10, 0), StartOfWeek(date(2025, time.March, 14, 9)))

	// Sunday belongs to the week that started the previous Monday.
	assert.Equal(t, date(2025, time.March, 10, 0), StartOfWeek(date(2025, time.March, 16, 23)))

	// Monday is its own week start.
	assert.Equal(t, date(2025, time.March, 10, 0), StartOfWeek(date(2025, time.March, 10, 0)))
}

func TestIsSameDay(t *testing.T) {
	assert.True(t, IsSameDay(date(2025, time.March, 14, 0), date(2025, time.March, 14, 23)))
	assert.False(t, IsSameDay(date(2025, time.March, 14, 23), date(2025, time.March, 15, 0)))
}

func TestIsConsecutiveDay(t *testing.T) {
	assert.True(t, IsConsecutiveDay(date(2025, time.March, 14, 23), date(2025, time.March, 15, 1)))
	assert.False(t, IsConsecutiveDay(date(2025, time.March, 14, 0), date(2025, time.March, 16, 0)))
	assert.False(t, IsConsecutiveDay(date(2025, time.March, 15, 0), date(2025, time.March, 14, 0)))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date(2025, time.March, 14, 1), date(2025, time.March, 14, 23)))
	assert.Equal(t, 2, DaysBetween(date(2025, time.March, 14, 23), date(2025, time.March, 16, 0)))
	assert.Equal(t, -1, DaysBetween(date(2025, time.March, 15, 0), date(2025, time.March, 14, 23)))
}
