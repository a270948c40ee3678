package activity

import "time"

// ══════════════════════════════════════════════════════════════════════════════
// SUGGESTIONS
// ══════════════════════════════════════════════════════════════════════════════

// SuggestionWindow is how far back the suggestion rules look.
const SuggestionWindow = 7 * 24 * time.Hour

// Thresholds for the suggestion rules.
const (
	minWeeklyDistanceKM    = 5.0
	minMeanDurationMinutes = 20.0
)

// Tip texts, in rule evaluation order.
const (
	TipGetStarted     = "Start with light stretching + 10-minute walk"
	TipWalkDaily      = "Daily 1 km walk for 5 days"
	TipLongerSessions = "Target 25 minutes per session"
	TipHelpTeam       = "Contribute 50 points this week to help your team climb the leaderboard"
)

// Suggest derives personalized tips from the user's recent activity.
//
// Only activities dated within the window before now are considered; the
// caller passes the full history and membership flag. Rules:
//
//  1. No recent activity: suggest getting started. Rules 2 and 3 need
//     recent activity to say anything, so they are skipped.
//  2. Total recent distance under 5 km: suggest daily walks.
//  3. Mean recent duration under 20 minutes: suggest longer sessions.
//     Independent of rule 2; a user can collect both tips.
//  4. Team members always get the team contribution tip, regardless of
//     the rules above.
//
// Every matching rule emits its tip, in rule order. The result may be empty.
func Suggest(activities []*Activity, hasTeam bool, now time.Time) []string {
	cutoff := now.Add(-SuggestionWindow)

	var (
		count         int
		totalDistance float64
		totalDuration int
	)

	for _, a := range activities {
		if a.Date.Before(cutoff) {
			continue
		}
		count++
		totalDistance += a.Distance()
		totalDuration += a.DurationMinutes
	}

	tips := make([]string, 0, 3)

	if count == 0 {
		tips = append(tips, TipGetStarted)
	} else {
		if totalDistance < minWeeklyDistanceKM {
			tips = append(tips, TipWalkDaily)
		}
		if float64(totalDuration)/float64(count) < minMeanDurationMinutes {
			tips = append(tips, TipLongerSessions)
		}
	}

	if hasTeam {
		tips = append(tips, TipHelpTeam)
	}

	return tips
}
