package query

import (
	"context"
	"fmt"

	"github.com/octofit-hub/octofit-tracker/internal/domain/team"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET TEAM SUMMARY QUERY
// Returns every team with membership statistics and a rank ordered by total
// points descending. Ties keep the store's ordering; this view has no
// secondary sort key, unlike the leaderboard.
// ══════════════════════════════════════════════════════════════════════════════

// TeamSummaryDTO is one team's row in the summary response.
type TeamSummaryDTO struct {
	TeamID              string  `json:"team_id"`
	Name                string  `json:"name"`
	Rank                int     `json:"rank"`
	TotalPoints         int     `json:"total_points"`
	MemberCount         int     `json:"member_count"`
	AverageMemberPoints float64 `json:"average_member_points"`
}

// GetTeamSummaryHandler handles the team summary query.
type GetTeamSummaryHandler struct {
	teamRepo team.Repository
}

// NewGetTeamSummaryHandler creates a new GetTeamSummaryHandler.
func NewGetTeamSummaryHandler(teamRepo team.Repository) *GetTeamSummaryHandler {
	return &GetTeamSummaryHandler{teamRepo: teamRepo}
}

// Handle returns summaries for all teams.
func (h *GetTeamSummaryHandler) Handle(ctx context.Context) ([]TeamSummaryDTO, error) {
	summaries, err := h.teamRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("get_team_summary: %w", err)
	}

	out := make([]TeamSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, TeamSummaryDTO{
			TeamID:              s.Team.ID,
			Name:                s.Team.Name,
			Rank:                s.Rank,
			TotalPoints:         int(s.Team.TotalPoints),
			MemberCount:         s.MemberCount,
			AverageMemberPoints: s.AverageMemberPoints,
		})
	}

	return out, nil
}
