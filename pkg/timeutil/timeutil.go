// Package timeutil provides calendar helpers for activity date math.
//
// All helpers operate in UTC. Activity dates are stored in UTC and every
// window computation (summaries, suggestions, streaks) must agree on where
// a day starts, so the boundary lives here.
package timeutil

import "time"

// ══════════════════════════════════════════════════════════════════════════════
// DAY AND WEEK BOUNDARIES
// ══════════════════════════════════════════════════════════════════════════════

// StartOfDay returns midnight UTC of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last nanosecond of the day containing t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// StartOfWeek returns midnight UTC of the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = StartOfDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// EndOfWeek returns the last nanosecond of the Sunday of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// ══════════════════════════════════════════════════════════════════════════════
// DAY COMPARISONS
// ══════════════════════════════════════════════════════════════════════════════

// IsSameDay reports whether t1 and t2 fall on the same UTC calendar day.
func IsSameDay(t1, t2 time.Time) bool {
	return StartOfDay(t1).Equal(StartOfDay(t2))
}

// IsConsecutiveDay reports whether t2 falls on the UTC calendar day
// immediately after t1's.
func IsConsecutiveDay(t1, t2 time.Time) bool {
	return StartOfDay(t1).AddDate(0, 0, 1).Equal(StartOfDay(t2))
}

// DaysBetween returns the number of UTC calendar days from t1 to t2.
// The result is negative when t2 is before t1.
func DaysBetween(t1, t2 time.Time) int {
	d1 := StartOfDay(t1)
	d2 := StartOfDay(t2)
	return int(d2.Sub(d1) / (24 * time.Hour))
}

// DaysSince returns the number of whole UTC calendar days from t to now.
func DaysSince(t time.Time) int {
	return DaysBetween(t, time.Now())
}
