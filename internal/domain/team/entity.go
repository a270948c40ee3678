// Package team contains the domain model for teams.
// A team is a named group of profiles; its total reflects points contributed
// by activities logged while the contributor was a member.
package team

import (
	"fmt"
	"strings"
	"time"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// Team groups profiles and tracks their aggregate points.
type Team struct {
	// ID is the internal unique identifier (UUID in string form).
	ID string

	// Name is the unique team name.
	Name string

	// Description is optional free text.
	Description string

	// TotalPoints is the sum of points contributed by member activities,
	// credited at contribution time. History is not replayed when members
	// join or leave.
	TotalPoints profile.Points

	// CreatedAt is when the team was created.
	CreatedAt time.Time

	// UpdatedAt is when the team was last updated.
	UpdatedAt time.Time
}

// NewTeamParams contains parameters for creating a new team.
type NewTeamParams struct {
	ID          string
	Name        string
	Description string
}

// NewTeam creates a new team with validation. Total points start at zero.
func NewTeam(params NewTeamParams) (*Team, error) {
	if params.ID == "" {
		return nil, shared.NewDomainError("team", "Create", shared.ErrInvalidID, "team id is required")
	}

	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 255 {
		return nil, shared.ErrInvalidTeamName
	}

	now := time.Now().UTC()

	return &Team{
		ID:          params.ID,
		Name:        name,
		Description: strings.TrimSpace(params.Description),
		TotalPoints: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ApplyPoints adds a point delta to the team total. Called by the ledger only.
func (t *Team) ApplyPoints(delta profile.Points) {
	t.TotalPoints = t.TotalPoints.Add(delta)
	t.UpdatedAt = time.Now().UTC()
}

// String returns a string representation of the team for logging.
func (t *Team) String() string {
	return fmt.Sprintf("Team{ID: %s, Name: %s, Points: %d}", t.ID, t.Name, t.TotalPoints)
}

// Clone creates a copy of the team.
func (t *Team) Clone() *Team {
	if t == nil {
		return nil
	}

	clone := *t
	return &clone
}

// ══════════════════════════════════════════════════════════════════════════════
// SUMMARY
// ══════════════════════════════════════════════════════════════════════════════

// Summary describes a team's aggregate standing: current membership size,
// the mean of member totals, and a rank among all teams ordered by
// total_points descending.
type Summary struct {
	Team                *Team
	Rank                int
	MemberCount         int
	AverageMemberPoints float64
}

// Summarize ranks all teams by total points descending and attaches
// membership statistics. Teams with equal totals keep the order the caller
// supplied; the summary view does not apply the leaderboard's id tie-break.
func Summarize(teams []*Team, memberCounts map[string]int, memberAverages map[string]float64) []Summary {
	summaries := make([]Summary, 0, len(teams))

	for rank, t := range teams {
		avg := memberAverages[t.ID]
		summaries = append(summaries, Summary{
			Team:                t,
			Rank:                rank + 1,
			MemberCount:         memberCounts[t.ID],
			AverageMemberPoints: avg,
		})
	}

	return summaries
}
