package query

import (
	"context"
	"fmt"
	"time"

	"github.com/octofit-hub/octofit-tracker/internal/domain/activity"
	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SUGGESTIONS QUERY
// Derives personalized tips from the profile's last 7 days of activity.
// ══════════════════════════════════════════════════════════════════════════════

// SuggestionsDTO is the tips response. Tips may be empty, never null.
type SuggestionsDTO struct {
	ProfileID string   `json:"profile_id"`
	Tips      []string `json:"tips"`
}

// GetSuggestionsHandler handles the suggestions query.
type GetSuggestionsHandler struct {
	profileRepo  profile.Repository
	activityRepo activity.Repository

	// now is swappable for tests.
	now func() time.Time
}

// NewGetSuggestionsHandler creates a new GetSuggestionsHandler.
func NewGetSuggestionsHandler(
	profileRepo profile.Repository,
	activityRepo activity.Repository,
) *GetSuggestionsHandler {
	return &GetSuggestionsHandler{
		profileRepo:  profileRepo,
		activityRepo: activityRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Handle returns suggestions for one profile.
func (h *GetSuggestionsHandler) Handle(ctx context.Context, profileID string) (*SuggestionsDTO, error) {
	p, err := h.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get_suggestions: %w", err)
	}

	now := h.now()
	recent, err := h.activityRepo.ListByProfileSince(ctx, profileID, now.Add(-activity.SuggestionWindow))
	if err != nil {
		return nil, fmt.Errorf("get_suggestions: %w", err)
	}

	return &SuggestionsDTO{
		ProfileID: profileID,
		Tips:      activity.Suggest(recent, p.HasTeam(), now),
	}, nil
}
