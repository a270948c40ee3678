package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

type fakeLeaderboardRepo struct {
	profiles leaderboard.Ranking
	teams    leaderboard.Ranking
	err      error
}

func (f *fakeLeaderboardRepo) TopProfiles(ctx context.Context, limit int) (leaderboard.Ranking, error) {
	return f.profiles, f.err
}

func (f *fakeLeaderboardRepo) TopTeams(ctx context.Context, limit int) (leaderboard.Ranking, error) {
	return f.teams, f.err
}

type fakeCache struct {
	pages map[string]leaderboard.Ranking
	err   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{pages: make(map[string]leaderboard.Ranking)}
}

func (f *fakeCache) GetPage(ctx context.Context, kind leaderboard.Kind, limit int) (leaderboard.Ranking, bool, error) {
	page, ok := f.pages[string(kind)]
	return page, ok, nil
}

func (f *fakeCache) SetPage(ctx context.Context, ranking leaderboard.Ranking, limit int) error {
	if f.err != nil {
		return f.err
	}
	f.pages[string(ranking.Kind)] = ranking
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, kind leaderboard.Kind) error {
	delete(f.pages, string(kind))
	return nil
}

type fakePublisher struct {
	events []shared.Event
}

func (f *fakePublisher) Publish(event shared.Event) error {
	f.events = append(f.events, event)
	return nil
}

func ranking(kind leaderboard.Kind, names ...string) leaderboard.Ranking {
	r := leaderboard.Ranking{Kind: kind}
	for i, name := range names {
		r.Entries = append(r.Entries, leaderboard.Entry{
			Rank:        leaderboard.Rank(i + 1),
			ID:          name,
			Name:        name,
			TotalPoints: profile.Points(100 - i),
		})
	}
	return r
}

func TestRebuildLeaderboardJob_WarmsBothKinds(t *testing.T) {
	repo := &fakeLeaderboardRepo{
		profiles: ranking(leaderboard.KindProfiles, "alice", "bob"),
		teams:    ranking(leaderboard.KindTeams, "blue"),
	}
	cache := newFakeCache()
	publisher := &fakePublisher{}

	var rebuiltAt time.Time
	cfg := DefaultRebuildLeaderboardConfig()
	cfg.OnRebuilt = func(at time.Time) { rebuiltAt = at }

	job := NewRebuildLeaderboardJob(repo, cache, publisher, nil, cfg)
	require.NoError(t, job.Run(context.Background()))

	assert.Len(t, cache.pages[string(leaderboard.KindProfiles)].Entries, 2)
	assert.Len(t, cache.pages[string(leaderboard.KindTeams)].Entries, 1)
	assert.False(t, rebuiltAt.IsZero())

	require.Len(t, publisher.events, 2)
	assert.Equal(t, shared.EventLeaderboardRebuilt, publisher.events[0].EventType())

	stats := job.LastRebuildStats()
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.PagesWarmed)
	assert.Equal(t, 3, stats.Entries)
}

func TestRebuildLeaderboardJob_StoreErrorReported(t *testing.T) {
	repo := &fakeLeaderboardRepo{err: errors.New("connection refused")}
	cache := newFakeCache()

	var rebuilt bool
	cfg := DefaultRebuildLeaderboardConfig()
	cfg.OnRebuilt = func(time.Time) { rebuilt = true }

	job := NewRebuildLeaderboardJob(repo, cache, &fakePublisher{}, nil, cfg)
	err := job.Run(context.Background())

	require.Error(t, err)
	assert.Empty(t, cache.pages)
	assert.False(t, rebuilt)
}

func TestRebuildLeaderboardJob_Metadata(t *testing.T) {
	job := NewRebuildLeaderboardJob(&fakeLeaderboardRepo{}, newFakeCache(), nil, nil, DefaultRebuildLeaderboardConfig())

	assert.Equal(t, "rebuild_leaderboard", job.Name())
	assert.NotEmpty(t, job.Description())
}
