package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
)

func TestRank_TieBrokenByAscendingID(t *testing.T) {
	candidates := []Candidate{
		{ID: "c", Name: "Carol", TotalPoints: 30},
		{ID: "a", Name: "Alice", TotalPoints: 30},
		{ID: "b", Name: "Bob", TotalPoints: 10},
	}

	ranking := BuildRanking(KindProfiles, candidates, 2)

	require.Len(t, ranking.Entries, 2)
	assert.Equal(t, Entry{Rank: 1, ID: "a", Name: "Alice", TotalPoints: 30}, ranking.Entries[0])
	assert.Equal(t, Entry{Rank: 2, ID: "c", Name: "Carol", TotalPoints: 30}, ranking.Entries[1])
}

func TestRank_DistinctConsecutiveRanks(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", TotalPoints: 50},
		{ID: "b", TotalPoints: 50},
		{ID: "c", TotalPoints: 50},
	}

	ranking := BuildRanking(KindTeams, candidates, 10)

	require.Len(t, ranking.Entries, 3)
	for i, e := range ranking.Entries {
		assert.Equal(t, Rank(i+1), e.Rank)
	}
}

func TestRank_NonPositiveLimitFallsBack(t *testing.T) {
	candidates := make([]Candidate, 0, 15)
	for i := 0; i < 15; i++ {
		candidates = append(candidates, Candidate{
			ID:          string(rune('a' + i)),
			TotalPoints: profile.Points(i),
		})
	}

	ranking := BuildRanking(KindProfiles, candidates, 0)
	assert.Equal(t, DefaultLimit, ranking.Len())

	ranking = BuildRanking(KindProfiles, candidates, -3)
	assert.Equal(t, DefaultLimit, ranking.Len())
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	candidates := []Candidate{
		{ID: "b", TotalPoints: 1},
		{ID: "a", TotalPoints: 2},
	}

	BuildRanking(KindProfiles, candidates, 10)

	assert.Equal(t, "b", candidates[0].ID)
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 5, ParseLimit("5"))
	assert.Equal(t, DefaultLimit, ParseLimit(""))
	assert.Equal(t, DefaultLimit, ParseLimit("abc"))
	assert.Equal(t, DefaultLimit, ParseLimit("0"))
	assert.Equal(t, DefaultLimit, ParseLimit("-1"))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("profiles")
	require.NoError(t, err)
	assert.Equal(t, KindProfiles, k)

	k, err = ParseKind("teams")
	require.NoError(t, err)
	assert.Equal(t, KindTeams, k)

	_, err = ParseKind("users")
	assert.Error(t, err)
}

func TestRanking_Top(t *testing.T) {
	empty := BuildRanking(KindProfiles, nil, 10)
	assert.Nil(t, empty.Top())

	ranking := BuildRanking(KindProfiles, []Candidate{{ID: "a", TotalPoints: 7}}, 10)
	top := ranking.Top()
	require.NotNil(t, top)
	assert.Equal(t, Rank(1), top.Rank)
}
