package eventhandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
	"github.com/octofit-hub/octofit-tracker/pkg/logger"
)

type fakeCache struct {
	invalidated []leaderboard.Kind
}

func (c *fakeCache) GetPage(_ context.Context, _ leaderboard.Kind, _ int) (leaderboard.Ranking, bool, error) {
	return leaderboard.Ranking{}, false, nil
}

func (c *fakeCache) SetPage(_ context.Context, _ leaderboard.Ranking, _ int) error {
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, kind leaderboard.Kind) error {
	c.invalidated = append(c.invalidated, kind)
	return nil
}

func TestOnPointsApplied_InvalidatesProfilesOnly(t *testing.T) {
	cache := &fakeCache{}
	h := NewOnPointsAppliedHandler(cache, logger.New(logger.Options{Level: logger.LevelError}))

	event := shared.NewPointsAppliedEvent("prof-1", "", 32, 32, 0)
	require.NoError(t, h.Handle(event))

	assert.Equal(t, []leaderboard.Kind{leaderboard.KindProfiles}, cache.invalidated)
}

func TestOnPointsApplied_InvalidatesTeamsForMembers(t *testing.T) {
	cache := &fakeCache{}
	h := NewOnPointsAppliedHandler(cache, logger.New(logger.Options{Level: logger.LevelError}))

	event := shared.NewPointsAppliedEvent("prof-1", "team-1", 32, 32, 32)
	require.NoError(t, h.Handle(event))

	assert.Equal(t, []leaderboard.Kind{leaderboard.KindProfiles, leaderboard.KindTeams}, cache.invalidated)
}

func TestOnPointsApplied_IgnoresOtherEvents(t *testing.T) {
	cache := &fakeCache{}
	h := NewOnPointsAppliedHandler(cache, logger.New(logger.Options{Level: logger.LevelError}))

	require.NoError(t, h.Handle(shared.NewTeamCreatedEvent("team-1", "Blue")))
	assert.Empty(t, cache.invalidated)
}
