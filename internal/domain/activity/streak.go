package activity

import (
	"sort"
	"time"

	"github.com/octofit-hub/octofit-tracker/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// STREAK
// ══════════════════════════════════════════════════════════════════════════════

// Streak returns the number of consecutive UTC calendar days, ending today
// or yesterday, on which the user logged at least one activity.
//
// A streak that ended yesterday still counts: the user has until the end of
// today to extend it. Multiple activities on one day count as one day. The
// input does not need to be sorted.
func Streak(activities []*Activity, now time.Time) int {
	if len(activities) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(activities))
	for _, a := range activities {
		seen[timeutil.StartOfDay(a.Date)] = struct{}{}
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	// The streak is only alive if the most recent day is today or yesterday.
	latest := days[0]
	if !timeutil.IsSameDay(latest, now) && !timeutil.IsConsecutiveDay(latest, now) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if !timeutil.IsConsecutiveDay(days[i], days[i-1]) {
			break
		}
		streak++
	}
	return streak
}
