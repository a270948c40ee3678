package query

import (
	"context"
	"fmt"
	"time"

	"github.com/octofit-hub/octofit-tracker/internal/domain/activity"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST ACTIVITIES QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ActivityDTO is the serialized form of a logged activity.
type ActivityDTO struct {
	ID              string   `json:"id"`
	ProfileID       string   `json:"profile_id"`
	Category        string   `json:"category"`
	DurationMinutes int      `json:"duration_minutes"`
	DistanceKM      *float64 `json:"distance_km,omitempty"`
	Calories        *int     `json:"calories,omitempty"`
	Date            string   `json:"date"`
	Points          int      `json:"points"`
}

// ListActivitiesQuery filters the activity listing.
type ListActivitiesQuery struct {
	// ProfileID narrows the listing to one profile; empty lists everything.
	ProfileID string
}

// ListActivitiesHandler handles the activity listing query.
type ListActivitiesHandler struct {
	activityRepo activity.Repository
}

// NewListActivitiesHandler creates a new ListActivitiesHandler.
func NewListActivitiesHandler(activityRepo activity.Repository) *ListActivitiesHandler {
	return &ListActivitiesHandler{activityRepo: activityRepo}
}

// Handle lists activities, newest first.
func (h *ListActivitiesHandler) Handle(ctx context.Context, q ListActivitiesQuery) ([]ActivityDTO, error) {
	var (
		activities []*activity.Activity
		err        error
	)

	if q.ProfileID != "" {
		activities, err = h.activityRepo.ListByProfile(ctx, q.ProfileID)
	} else {
		activities, err = h.activityRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list_activities: %w", err)
	}

	out := make([]ActivityDTO, 0, len(activities))
	for _, a := range activities {
		out = append(out, ToActivityDTO(a))
	}
	return out, nil
}

// ToActivityDTO converts a domain activity into its serialized form.
func ToActivityDTO(a *activity.Activity) ActivityDTO {
	return ActivityDTO{
		ID:              a.ID,
		ProfileID:       a.ProfileID,
		Category:        string(a.Category),
		DurationMinutes: a.DurationMinutes,
		DistanceKM:      a.DistanceKM,
		Calories:        a.Calories,
		Date:            a.Date.Format(time.RFC3339),
		Points:          int(a.Points),
	}
}
