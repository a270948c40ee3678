package query

import (
	"context"
	"fmt"
	"time"

	"github.com/octofit-hub/octofit-tracker/internal/domain/activity"
	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ACTIVITY SUMMARY QUERY
// Aggregates a profile's full activity history: counts, sums, a
// per-category breakdown that omits empty categories, and the current
// daily activity streak.
// ══════════════════════════════════════════════════════════════════════════════

// ActivitySummaryDTO is the per-user summary response.
type ActivitySummaryDTO struct {
	ProfileID            string         `json:"profile_id"`
	TotalActivities      int            `json:"total_activities"`
	TotalDurationMinutes int            `json:"total_duration_minutes"`
	TotalDistanceKM      float64        `json:"total_distance_km"`
	TotalPoints          int            `json:"total_points"`
	ActivitiesByType     map[string]int `json:"activities_by_type"`
	CurrentStreakDays    int            `json:"current_streak_days"`
}

// GetActivitySummaryHandler handles per-user summary queries.
type GetActivitySummaryHandler struct {
	profileRepo  profile.Repository
	activityRepo activity.Repository

	// now is injectable for tests.
	now func() time.Time
}

// NewGetActivitySummaryHandler creates a new GetActivitySummaryHandler.
func NewGetActivitySummaryHandler(
	profileRepo profile.Repository,
	activityRepo activity.Repository,
) *GetActivitySummaryHandler {
	return &GetActivitySummaryHandler{
		profileRepo:  profileRepo,
		activityRepo: activityRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Handle computes the summary for one profile.
func (h *GetActivitySummaryHandler) Handle(ctx context.Context, profileID string) (*ActivitySummaryDTO, error) {
	if _, err := h.profileRepo.GetByID(ctx, profileID); err != nil {
		return nil, fmt.Errorf("get_activity_summary: %w", err)
	}

	activities, err := h.activityRepo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get_activity_summary: %w", err)
	}

	s := activity.Summarize(activities)

	byType := make(map[string]int, len(s.ByCategory))
	for cat, count := range s.ByCategory {
		byType[string(cat)] = count
	}

	return &ActivitySummaryDTO{
		ProfileID:            profileID,
		TotalActivities:      s.TotalActivities,
		TotalDurationMinutes: s.TotalDurationMinutes,
		TotalDistanceKM:      s.TotalDistanceKM,
		TotalPoints:          int(s.TotalPoints),
		ActivitiesByType:     byType,
		CurrentStreakDays:    activity.Streak(activities, h.now()),
	}, nil
}
