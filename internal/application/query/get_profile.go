package query

import (
	"context"
	"fmt"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// ProfileDTO is the serialized form of a profile.
type ProfileDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Age         int     `json:"age"`
	Grade       string  `json:"grade,omitempty"`
	TeamID      *string `json:"team_id,omitempty"`
	TotalPoints int     `json:"total_points"`
}

// ToProfileDTO converts a domain profile into its serialized form.
func ToProfileDTO(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		ID:          p.ID,
		Name:        p.Name,
		Age:         p.Age,
		Grade:       string(p.Grade),
		TeamID:      p.TeamID,
		TotalPoints: int(p.TotalPoints),
	}
}

// GetProfileHandler looks up a single profile.
type GetProfileHandler struct {
	profileRepo profile.Repository
}

// NewGetProfileHandler creates a new GetProfileHandler.
func NewGetProfileHandler(profileRepo profile.Repository) *GetProfileHandler {
	return &GetProfileHandler{profileRepo: profileRepo}
}

// Handle returns one profile by ID.
func (h *GetProfileHandler) Handle(ctx context.Context, profileID string) (*ProfileDTO, error) {
	p, err := h.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get_profile: %w", err)
	}

	dto := ToProfileDTO(p)
	return &dto, nil
}

// ListProfilesQuery filters the profile listing.
type ListProfilesQuery struct {
	// Name filters profiles by case-insensitive substring; empty lists all.
	Name string
}

// ListProfilesHandler lists or searches profiles.
type ListProfilesHandler struct {
	profileRepo profile.Repository
}

// NewListProfilesHandler creates a new ListProfilesHandler.
func NewListProfilesHandler(profileRepo profile.Repository) *ListProfilesHandler {
	return &ListProfilesHandler{profileRepo: profileRepo}
}

// Handle lists profiles, optionally filtered by name.
func (h *ListProfilesHandler) Handle(ctx context.Context, q ListProfilesQuery) ([]ProfileDTO, error) {
	var (
		profiles []*profile.Profile
		err      error
	)

	if q.Name != "" {
		profiles, err = h.profileRepo.FindByName(ctx, q.Name)
	} else {
		profiles, err = h.profileRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list_profiles: %w", err)
	}

	out := make([]ProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ToProfileDTO(p))
	}
	return out, nil
}
