package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit-hub/octofit-tracker/internal/domain/activity"
	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
	"github.com/octofit-hub/octofit-tracker/internal/domain/team"
	"github.com/octofit-hub/octofit-tracker/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY FAKES
// ══════════════════════════════════════════════════════════════════════════════

type fakeProfileRepo struct {
	profiles map[string]*profile.Profile
}

func newFakeProfileRepo(ps ...*profile.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[string]*profile.Profile)}
	for _, p := range ps {
		repo.profiles[p.ID] = p
	}
	return repo
}

func (r *fakeProfileRepo) Create(_ context.Context, p *profile.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*profile.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, shared.ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *profile.Profile) error { return nil }
func (r *fakeProfileRepo) Delete(_ context.Context, id string) error          { return nil }

func (r *fakeProfileRepo) List(_ context.Context) ([]*profile.Profile, error) {
	out := make([]*profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *fakeProfileRepo) FindByName(_ context.Context, _ string) ([]*profile.Profile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) ListByTeam(_ context.Context, _ string) ([]*profile.Profile, error) {
	return nil, nil
}

type fakeActivityRepo struct {
	activities []*activity.Activity
}

func (r *fakeActivityRepo) GetByID(_ context.Context, id string) (*activity.Activity, error) {
	for _, a := range r.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, shared.ErrActivityNotFound
}

func (r *fakeActivityRepo) ListByProfile(_ context.Context, profileID string) ([]*activity.Activity, error) {
	var out []*activity.Activity
	for _, a := range r.activities {
		if a.ProfileID == profileID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) ListByProfileSince(_ context.Context, profileID string, cutoff time.Time) ([]*activity.Activity, error) {
	var out []*activity.Activity
	for _, a := range r.activities {
		if a.ProfileID == profileID && !a.Date.Before(cutoff) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) List(_ context.Context) ([]*activity.Activity, error) {
	return r.activities, nil
}

func (r *fakeActivityRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeLeaderboardRepo struct {
	profiles []leaderboard.Candidate
	teams    []leaderboard.Candidate
	reads    int
}

func (r *fakeLeaderboardRepo) TopProfiles(_ context.Context, limit int) (leaderboard.Ranking, error) {
	r.reads++
	return leaderboard.BuildRanking(leaderboard.KindProfiles, r.profiles, limit), nil
}

func (r *fakeLeaderboardRepo) TopTeams(_ context.Context, limit int) (leaderboard.Ranking, error) {
	r.reads++
	return leaderboard.BuildRanking(leaderboard.KindTeams, r.teams, limit), nil
}

type fakeLeaderboardCache struct {
	pages map[string]leaderboard.Ranking
}

func newFakeLeaderboardCache() *fakeLeaderboardCache {
	return &fakeLeaderboardCache{pages: make(map[string]leaderboard.Ranking)}
}

func cacheKey(kind leaderboard.Kind, limit int) string {
	return string(kind) + ":" + string(rune('0'+limit%10))
}

func (c *fakeLeaderboardCache) GetPage(_ context.Context, kind leaderboard.Kind, limit int) (leaderboard.Ranking, bool, error) {
	r, ok := c.pages[cacheKey(kind, limit)]
	return r, ok, nil
}

func (c *fakeLeaderboardCache) SetPage(_ context.Context, ranking leaderboard.Ranking, limit int) error {
	c.pages[cacheKey(ranking.Kind, limit)] = ranking
	return nil
}

func (c *fakeLeaderboardCache) Invalidate(_ context.Context, kind leaderboard.Kind) error {
	for k := range c.pages {
		delete(c.pages, k)
	}
	return nil
}

type fakeTeamRepo struct {
	summaries []team.Summary
}

func (r *fakeTeamRepo) Create(_ context.Context, _ *team.Team) error { return nil }
func (r *fakeTeamRepo) GetByID(_ context.Context, id string) (*team.Team, error) {
	return nil, shared.ErrTeamNotFound
}
func (r *fakeTeamRepo) Update(_ context.Context, _ *team.Team) error { return nil }
func (r *fakeTeamRepo) Delete(_ context.Context, _ string) error     { return nil }
func (r *fakeTeamRepo) List(_ context.Context) ([]*team.Team, error) { return nil, nil }
func (r *fakeTeamRepo) ListSummaries(_ context.Context) ([]team.Summary, error) {
	return r.summaries, nil
}

func mustProfile(t *testing.T, id, name string) *profile.Profile {
	t.Helper()
	p, err := profile.NewProfile(profile.NewProfileParams{ID: id, Name: name, Age: 20})
	require.NoError(t, err)
	return p
}

func mustActivity(t *testing.T, profileID string, cat activity.Category, dur int, dist *float64, date time.Time) *activity.Activity {
	t.Helper()
	a, err := activity.NewActivity(activity.NewActivityParams{
		ID:              "act-" + string(cat),
		ProfileID:       profileID,
		Category:        cat,
		DurationMinutes: dur,
		DistanceKM:      dist,
		Date:            date,
	})
	require.NoError(t, err)
	return a
}

func floatPtr(f float64) *float64 { return &f }

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Level: logger.LevelError})
}

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD
// ══════════════════════════════════════════════════════════════════════════════

func TestGetLeaderboard_LimitFallback(t *testing.T) {
	repo := &fakeLeaderboardRepo{}
	for i := 0; i < 15; i++ {
		repo.profiles = append(repo.profiles, leaderboard.Candidate{
			ID:          string(rune('a' + i)),
			TotalPoints: profile.Points(i),
		})
	}
	handler := NewGetLeaderboardHandler(repo, nil, testLogger())

	for _, raw := range []string{"", "abc", "0", "-4"} {
		dto, err := handler.Handle(context.Background(), GetLeaderboardQuery{
			Kind:     leaderboard.KindProfiles,
			RawLimit: raw,
		})
		require.NoError(t, err)
		assert.Equal(t, 10, dto.Limit, "raw=%q", raw)
		assert.Len(t, dto.Entries, 10)
	}
}

func TestGetLeaderboard_TieBreakAndRanks(t *testing.T) {
	repo := &fakeLeaderboardRepo{profiles: []leaderboard.Candidate{
		{ID: "c", Name: "Carol", TotalPoints: 30},
		{ID: "a", Name: "Alice", TotalPoints: 30},
		{ID: "b", Name: "Bob", TotalPoints: 10},
	}}
	handler := NewGetLeaderboardHandler(repo, nil, testLogger())

	dto, err := handler.Handle(context.Background(), GetLeaderboardQuery{
		Kind:     leaderboard.KindProfiles,
		RawLimit: "2",
	})
	require.NoError(t, err)

	require.Len(t, dto.Entries, 2)
	assert.Equal(t, LeaderboardEntryDTO{Rank: 1, ID: "a", Name: "Alice", TotalPoints: 30}, dto.Entries[0])
	assert.Equal(t, LeaderboardEntryDTO{Rank: 2, ID: "c", Name: "Carol", TotalPoints: 30}, dto.Entries[1])
}

func TestGetLeaderboard_UnknownKind(t *testing.T) {
	handler := NewGetLeaderboardHandler(&fakeLeaderboardRepo{}, nil, testLogger())

	_, err := handler.Handle(context.Background(), GetLeaderboardQuery{Kind: "users"})
	assert.Error(t, err)
}

func TestGetLeaderboard_CacheHitSkipsStore(t *testing.T) {
	repo := &fakeLeaderboardRepo{profiles: []leaderboard.Candidate{
		{ID: "a", Name: "Alice", TotalPoints: 5},
	}}
	cache := newFakeLeaderboardCache()
	handler := NewGetLeaderboardHandler(repo, cache, testLogger())

	q := GetLeaderboardQuery{Kind: leaderboard.KindProfiles, RawLimit: "5"}

	_, err := handler.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.reads)

	_, err = handler.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.reads, "second read served from cache")
}

// ══════════════════════════════════════════════════════════════════════════════
// SUMMARY
// ══════════════════════════════════════════════════════════════════════════════

func TestGetActivitySummary(t *testing.T) {
	now := time.Now().UTC()
	profiles := newFakeProfileRepo(mustProfile(t, "prof-1", "Alice"))
	activities := &fakeActivityRepo{activities: []*activity.Activity{
		mustActivity(t, "prof-1", activity.CategoryRunning, 30, floatPtr(5), now),
		mustActivity(t, "prof-1", activity.CategoryRunning, 20, nil, now),
		mustActivity(t, "prof-1", activity.CategoryYoga, 60, nil, now),
		mustActivity(t, "prof-2", activity.CategorySwimming, 10, nil, now),
	}}

	handler := NewGetActivitySummaryHandler(profiles, activities)
	dto, err := handler.Handle(context.Background(), "prof-1")
	require.NoError(t, err)

	assert.Equal(t, 3, dto.TotalActivities)
	assert.Equal(t, 110, dto.TotalDurationMinutes)
	assert.Equal(t, 5.0, dto.TotalDistanceKM)
	assert.Equal(t, map[string]int{"RUN": 2, "YOGA": 1}, dto.ActivitiesByType)
	assert.Equal(t, 1, dto.CurrentStreakDays)
}

func TestGetActivitySummary_Streak(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	profiles := newFakeProfileRepo(mustProfile(t, "prof-1", "Alice"))
	activities := &fakeActivityRepo{activities: []*activity.Activity{
		mustActivity(t, "prof-1", activity.CategoryRunning, 30, nil, now),
		mustActivity(t, "prof-1", activity.CategoryWalking, 20, nil, now.AddDate(0, 0, -1)),
		mustActivity(t, "prof-1", activity.CategoryYoga, 40, nil, now.AddDate(0, 0, -2)),
		mustActivity(t, "prof-1", activity.CategoryYoga, 40, nil, now.AddDate(0, 0, -5)),
	}}

	handler := NewGetActivitySummaryHandler(profiles, activities)
	handler.now = func() time.Time { return now }

	dto, err := handler.Handle(context.Background(), "prof-1")
	require.NoError(t, err)
	assert.Equal(t, 3, dto.CurrentStreakDays)
}

func TestGetActivitySummary_NoActivities(t *testing.T) {
	profiles := newFakeProfileRepo(mustProfile(t, "prof-1", "Alice"))
	handler := NewGetActivitySummaryHandler(profiles, &fakeActivityRepo{})

	dto, err := handler.Handle(context.Background(), "prof-1")
	require.NoError(t, err)

	assert.Equal(t, 0, dto.TotalActivities)
	assert.Equal(t, 0.0, dto.TotalDistanceKM)
	assert.Empty(t, dto.ActivitiesByType)
}

func TestGetActivitySummary_ProfileNotFound(t *testing.T) {
	handler := NewGetActivitySummaryHandler(newFakeProfileRepo(), &fakeActivityRepo{})

	_, err := handler.Handle(context.Background(), "missing")
	assert.ErrorIs(t, err, shared.ErrProfileNotFound)
}

func TestGetTeamSummary(t *testing.T) {
	blue := &team.Team{ID: "t1", Name: "Blue", TotalPoints: 40}
	red := &team.Team{ID: "t2", Name: "Red", TotalPoints: 10}

	repo := &fakeTeamRepo{summaries: []team.Summary{
		{Team: blue, Rank: 1, MemberCount: 2, AverageMemberPoints: 20.0},
		{Team: red, Rank: 2, MemberCount: 0, AverageMemberPoints: 0.0},
	}}

	handler := NewGetTeamSummaryHandler(repo)
	out, err := handler.Handle(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Rank)
	assert.Equal(t, 20.0, out[0].AverageMemberPoints)
	assert.Equal(t, 0.0, out[1].AverageMemberPoints)
}

// ══════════════════════════════════════════════════════════════════════════════
// SUGGESTIONS
// ══════════════════════════════════════════════════════════════════════════════

func TestGetSuggestions_InactiveUser(t *testing.T) {
	profiles := newFakeProfileRepo(mustProfile(t, "prof-1", "Alice"))
	handler := NewGetSuggestionsHandler(profiles, &fakeActivityRepo{})

	dto, err := handler.Handle(context.Background(), "prof-1")
	require.NoError(t, err)

	assert.Equal(t, []string{activity.TipGetStarted}, dto.Tips)
}

func TestGetSuggestions_TeamMemberStacksTips(t *testing.T) {
	p := mustProfile(t, "prof-1", "Alice")
	require.NoError(t, p.JoinTeam("team-1"))
	profiles := newFakeProfileRepo(p)

	now := time.Now().UTC()
	activities := &fakeActivityRepo{activities: []*activity.Activity{
		mustActivity(t, "prof-1", activity.CategoryWalking, 10, floatPtr(1), now.AddDate(0, 0, -1)),
	}}

	handler := NewGetSuggestionsHandler(profiles, activities)
	dto, err := handler.Handle(context.Background(), "prof-1")
	require.NoError(t, err)

	assert.Equal(t, []string{activity.TipWalkDaily, activity.TipLongerSessions, activity.TipHelpTeam}, dto.Tips)
}

func TestGetSuggestions_ProfileNotFound(t *testing.T) {
	handler := NewGetSuggestionsHandler(newFakeProfileRepo(), &fakeActivityRepo{})

	_, err := handler.Handle(context.Background(), "missing")
	assert.ErrorIs(t, err, shared.ErrProfileNotFound)
}
