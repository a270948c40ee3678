package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

func TestNewProfile(t *testing.T) {
	p, err := NewProfile(NewProfileParams{
		ID:   "prof-1",
		Name: "  Alice  ",
		Age:  21,
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", p.Name, "name is trimmed")
	assert.Equal(t, Points(0), p.TotalPoints)
	assert.False(t, p.HasTeam())
}

func TestNewProfile_Validation(t *testing.T) {
	_, err := NewProfile(NewProfileParams{ID: "p", Name: "   ", Age: 20})
	assert.ErrorIs(t, err, shared.ErrInvalidProfileName)

	_, err = NewProfile(NewProfileParams{ID: "p", Name: "Alice", Age: 0})
	assert.ErrorIs(t, err, shared.ErrInvalidProfileAge)

	_, err = NewProfile(NewProfileParams{ID: "", Name: "Alice", Age: 20})
	assert.Error(t, err)
}

func TestProfile_TeamMembership(t *testing.T) {
	p, err := NewProfile(NewProfileParams{ID: "prof-1", Name: "Alice", Age: 21})
	require.NoError(t, err)

	require.NoError(t, p.JoinTeam("team-1"))
	assert.True(t, p.HasTeam())
	assert.Equal(t, "team-1", *p.TeamID)

	p.LeaveTeam()
	assert.False(t, p.HasTeam())

	assert.Error(t, p.JoinTeam(""))
}

func TestProfile_ApplyPoints(t *testing.T) {
	p, err := NewProfile(NewProfileParams{ID: "prof-1", Name: "Alice", Age: 21})
	require.NoError(t, err)

	p.ApplyPoints(32)
	p.ApplyPoints(7)

	assert.Equal(t, Points(39), p.TotalPoints)
}

func TestProfile_Clone(t *testing.T) {
	p, err := NewProfile(NewProfileParams{ID: "prof-1", Name: "Alice", Age: 21})
	require.NoError(t, err)
	require.NoError(t, p.JoinTeam("team-1"))

	clone := p.Clone()
	*clone.TeamID = "team-2"

	assert.Equal(t, "team-1", *p.TeamID)
}
