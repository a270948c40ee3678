package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/pkg/circuitbreaker"
)

type flakyCache struct {
	err   error
	calls int
	page  leaderboard.Ranking
}

func (f *flakyCache) GetPage(_ context.Context, kind leaderboard.Kind, _ int) (leaderboard.Ranking, bool, error) {
	f.calls++
	if f.err != nil {
		return leaderboard.Ranking{}, false, f.err
	}
	return f.page, true, nil
}

func (f *flakyCache) SetPage(_ context.Context, _ leaderboard.Ranking, _ int) error {
	f.calls++
	return f.err
}

func (f *flakyCache) Invalidate(_ context.Context, _ leaderboard.Kind) error {
	f.calls++
	return f.err
}

func TestGuardedCache_PassesThroughWhenHealthy(t *testing.T) {
	inner := &flakyCache{page: leaderboard.Ranking{Kind: leaderboard.KindProfiles}}
	guarded := NewGuardedLeaderboardCache(inner, nil)

	ranking, ok, err := guarded.GetPage(context.Background(), leaderboard.KindProfiles, 10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, leaderboard.KindProfiles, ranking.Kind)
}

func TestGuardedCache_OpenBreakerReportsMiss(t *testing.T) {
	inner := &flakyCache{err: errors.New("connection refused")}
	guarded := NewGuardedLeaderboardCache(inner, nil)
	ctx := context.Background()

	// Trip the breaker
	for guarded.BreakerState() != circuitbreaker.StateOpen {
		_, _, err := guarded.GetPage(ctx, leaderboard.KindProfiles, 10)
		require.Error(t, err)
	}
	callsWhenOpen := inner.calls

	// Rejected reads look like plain misses and never reach Redis
	ranking, ok, err := guarded.GetPage(ctx, leaderboard.KindProfiles, 10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, ranking.Entries)
	assert.Equal(t, callsWhenOpen, inner.calls)
}

func TestGuardedCache_WriteErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	inner := &flakyCache{err: boom}
	guarded := NewGuardedLeaderboardCache(inner, nil)

	err := guarded.SetPage(context.Background(), leaderboard.Ranking{Kind: leaderboard.KindTeams}, 10)
	assert.ErrorIs(t, err, boom)
}
