package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

func TestNewTeam(t *testing.T) {
	tm, err := NewTeam(NewTeamParams{
		ID:          "team-1",
		Name:        " Blue ",
		Description: "the blue team",
	})
	require.NoError(t, err)

	assert.Equal(t, "Blue", tm.Name)
	assert.Equal(t, "the blue team", tm.Description)
	assert.Zero(t, tm.TotalPoints)
}

func TestNewTeam_Validation(t *testing.T) {
	_, err := NewTeam(NewTeamParams{ID: "team-1", Name: "  "})
	assert.ErrorIs(t, err, shared.ErrInvalidTeamName)

	_, err = NewTeam(NewTeamParams{ID: "", Name: "Blue"})
	assert.Error(t, err)
}

func TestTeam_ApplyPoints(t *testing.T) {
	tm, err := NewTeam(NewTeamParams{ID: "team-1", Name: "Blue"})
	require.NoError(t, err)

	tm.ApplyPoints(46)
	assert.Equal(t, 46, int(tm.TotalPoints))
}

func TestSummarize_RankFollowsInputOrder(t *testing.T) {
	teams := []*Team{
		{ID: "z", Name: "Zeta", TotalPoints: 30},
		{ID: "a", Name: "Alpha", TotalPoints: 30},
		{ID: "m", Name: "Mu", TotalPoints: 10},
	}

	summaries := Summarize(teams,
		map[string]int{"z": 2, "a": 3},
		map[string]float64{"z": 15.0, "a": 10.0},
	)

	require.Len(t, summaries, 3)

	// Ties keep the caller's order: no ID tie-break in the summary view.
	assert.Equal(t, "z", summaries[0].Team.ID)
	assert.Equal(t, 1, summaries[0].Rank)
	assert.Equal(t, 2, summaries[0].MemberCount)
	assert.Equal(t, 15.0, summaries[0].AverageMemberPoints)

	assert.Equal(t, "a", summaries[1].Team.ID)
	assert.Equal(t, 2, summaries[1].Rank)

	assert.Equal(t, "m", summaries[2].Team.ID)
	assert.Equal(t, 3, summaries[2].Rank)
	assert.Equal(t, 0, summaries[2].MemberCount)
	assert.Equal(t, 0.0, summaries[2].AverageMemberPoints, "empty team averages to 0.0")
}
