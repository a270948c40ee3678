package query

import (
	"context"
	"fmt"

	"github.com/octofit-hub/octofit-tracker/internal/domain/team"
)

// ══════════════════════════════════════════════════════════════════════════════
// TEAM QUERIES
// ══════════════════════════════════════════════════════════════════════════════

// TeamDTO is the serialized form of a team.
type TeamDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TotalPoints int    `json:"total_points"`
}

// ToTeamDTO converts a domain team into its serialized form.
func ToTeamDTO(t *team.Team) TeamDTO {
	return TeamDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		TotalPoints: int(t.TotalPoints),
	}
}

// GetTeamHandler looks up a single team.
type GetTeamHandler struct {
	teamRepo team.Repository
}

// NewGetTeamHandler creates a new GetTeamHandler.
func NewGetTeamHandler(teamRepo team.Repository) *GetTeamHandler {
	return &GetTeamHandler{teamRepo: teamRepo}
}

// Handle returns one team by ID.
func (h *GetTeamHandler) Handle(ctx context.Context, teamID string) (*TeamDTO, error) {
	t, err := h.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get_team: %w", err)
	}

	dto := ToTeamDTO(t)
	return &dto, nil
}

// ListTeamsHandler lists all teams ordered by total points descending.
type ListTeamsHandler struct {
	teamRepo team.Repository
}

// NewListTeamsHandler creates a new ListTeamsHandler.
func NewListTeamsHandler(teamRepo team.Repository) *ListTeamsHandler {
	return &ListTeamsHandler{teamRepo: teamRepo}
}

// Handle lists all teams.
func (h *ListTeamsHandler) Handle(ctx context.Context) ([]TeamDTO, error) {
	teams, err := h.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_teams: %w", err)
	}

	out := make([]TeamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, ToTeamDTO(t))
	}
	return out, nil
}
