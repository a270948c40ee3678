package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit-hub/octofit-tracker/internal/domain/activity"
	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
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
	if _, ok := r.profiles[p.ID]; ok {
		return shared.ErrProfileAlreadyExists
	}
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

func (r *fakeProfileRepo) Update(_ context.Context, p *profile.Profile) error {
	if _, ok := r.profiles[p.ID]; !ok {
		return shared.ErrProfileNotFound
	}
	r.profiles[p.ID] = p.Clone()
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.profiles[id]; !ok {
		return shared.ErrProfileNotFound
	}
	delete(r.profiles, id)
	return nil
}

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

func (r *fakeProfileRepo) ListByTeam(_ context.Context, teamID string) ([]*profile.Profile, error) {
	var out []*profile.Profile
	for _, p := range r.profiles {
		if p.HasTeam() && *p.TeamID == teamID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// fakeLedger applies points to in-memory totals the way the transactional
// ledger applies them to database rows.
type fakeLedger struct {
	profiles   *fakeProfileRepo
	teamTotals map[string]int
	appended   []*activity.Activity
}

func newFakeLedger(profiles *fakeProfileRepo) *fakeLedger {
	return &fakeLedger{profiles: profiles, teamTotals: make(map[string]int)}
}

func (l *fakeLedger) Append(_ context.Context, a *activity.Activity) (int, int, error) {
	p, ok := l.profiles.profiles[a.ProfileID]
	if !ok {
		return 0, 0, shared.ErrProfileNotFound
	}

	p.ApplyPoints(a.Points)
	l.appended = append(l.appended, a)

	teamTotal := 0
	if p.HasTeam() {
		l.teamTotals[*p.TeamID] += int(a.Points)
		teamTotal = l.teamTotals[*p.TeamID]
	}

	return int(p.TotalPoints), teamTotal, nil
}

type fakePublisher struct {
	events []shared.Event
}

func (p *fakePublisher) Publish(event shared.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) byType(t shared.EventType) []shared.Event {
	var out []shared.Event
	for _, e := range p.events {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}

func mustProfile(t *testing.T, id, name string) *profile.Profile {
	t.Helper()
	p, err := profile.NewProfile(profile.NewProfileParams{ID: id, Name: name, Age: 20})
	require.NoError(t, err)
	return p
}

// ══════════════════════════════════════════════════════════════════════════════
// TESTS
// ══════════════════════════════════════════════════════════════════════════════

func TestLogActivity_CreditsProfileTotal(t *testing.T) {
	repo := newFakeProfileRepo(mustProfile(t, "prof-1", "Alice"))
	ledger := newFakeLedger(repo)
	publisher := &fakePublisher{}
	handler := NewLogActivityHandler(repo, ledger, publisher)

	dist := 2.5
	result, err := handler.Handle(context.Background(), LogActivityCommand{
		ProfileID:       "prof-1",
		Category:        "RUN",
		DurationMinutes: 10,
		DistanceKM:      &dist,
	})
	require.NoError(t, err)

	assert.Equal(t, profile.Points(32), result.Activity.Points)
	assert.Equal(t, 32, result.NewProfileTotal)
	assert.Nil(t, result.NewTeamTotal)

	stored := repo.profiles["prof-1"]
	assert.Equal(t, profile.Points(32), stored.TotalPoints)
}

func TestLogActivity_CreditsTeamTotal(t *testing.T) {
	p := mustProfile(t, "prof-1", "Alice")
	require.NoError(t, p.JoinTeam("team-1"))

	repo := newFakeProfileRepo(p)
	ledger := newFakeLedger(repo)
	publisher := &fakePublisher{}
	handler := NewLogActivityHandler(repo, ledger, publisher)

	result, err := handler.Handle(context.Background(), LogActivityCommand{
		ProfileID:       "prof-1",
		Category:        "CYCLE",
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, 45, result.NewProfileTotal)
	require.NotNil(t, result.NewTeamTotal)
	assert.Equal(t, 45, *result.NewTeamTotal)
	assert.Equal(t, 45, ledger.teamTotals["team-1"])
}

func TestLogActivity_ZeroPointTeamTotalIsReported(t *testing.T) {
	p := mustProfile(t, "prof-1", "Alice")
	require.NoError(t, p.JoinTeam("team-1"))

	repo := newFakeProfileRepo(p)
	handler := NewLogActivityHandler(repo, newFakeLedger(repo), &fakePublisher{})

	// 1 minute of walking scores int(0.5*1) = 0 points
	result, err := handler.Handle(context.Background(), LogActivityCommand{
		ProfileID:       "prof-1",
		Category:        "WALK",
		DurationMinutes: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, profile.Points(0), result.Activity.Points)
	require.NotNil(t, result.NewTeamTotal, "team members always get a team total, even zero")
	assert.Equal(t, 0, *result.NewTeamTotal)
}

func TestLogActivity_OwnerNotFound(t *testing.T) {
	repo := newFakeProfileRepo()
	handler := NewLogActivityHandler(repo, newFakeLedger(repo), &fakePublisher{})

	_, err := handler.Handle(context.Background(), LogActivityCommand{
		ProfileID:       "missing",
		Category:        "RUN",
		DurationMinutes: 10,
	})

	assert.ErrorIs(t, err, shared.ErrProfileNotFound)
}

func TestLogActivity_Validation(t *testing.T) {
	repo := newFakeProfileRepo(mustProfile(t, "prof-1", "Alice"))
	ledger := newFakeLedger(repo)
	handler := NewLogActivityHandler(repo, ledger, &fakePublisher{})

	_, err := handler.Handle(context.Background(), LogActivityCommand{
		ProfileID:       "prof-1",
		Category:        "RUN",
		DurationMinutes: 0,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidDuration)
	assert.True(t, shared.IsValidation(err), "validation failures keep their kind through wrapping")
	assert.Empty(t, ledger.appended, "nothing reaches the ledger on invalid input")
}

func TestLogActivity_UnknownCategoryScoredAtFallbackRate(t *testing.T) {
	repo := newFakeProfileRepo(mustProfile(t, "prof-1", "Alice"))
	handler := NewLogActivityHandler(repo, newFakeLedger(repo), &fakePublisher{})

	result, err := handler.Handle(context.Background(), LogActivityCommand{
		ProfileID:       "prof-1",
		Category:        "UNKNOWN",
		DurationMinutes: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, profile.Points(7), result.Activity.Points)
}

func TestLogActivity_PublishesEvents(t *testing.T) {
	p := mustProfile(t, "prof-1", "Alice")
	require.NoError(t, p.JoinTeam("team-1"))

	repo := newFakeProfileRepo(p)
	publisher := &fakePublisher{}
	handler := NewLogActivityHandler(repo, newFakeLedger(repo), publisher)

	_, err := handler.Handle(context.Background(), LogActivityCommand{
		ProfileID:       "prof-1",
		Category:        "SWIM",
		DurationMinutes: 20,
	})
	require.NoError(t, err)

	require.Len(t, publisher.byType(shared.EventActivityLogged), 1)

	applied := publisher.byType(shared.EventPointsApplied)
	require.Len(t, applied, 1)

	event, ok := applied[0].(shared.PointsAppliedEvent)
	require.True(t, ok)
	assert.Equal(t, "team-1", event.TeamID)
	assert.Equal(t, 50, event.Points)
	assert.Equal(t, 50, event.NewProfileTotal)
	assert.Equal(t, 50, event.NewTeamTotal)
}
