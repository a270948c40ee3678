// Package profile contains the domain model for user profiles.
// A profile accumulates points from logged activities and may belong to a team.
package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Points represents accumulated activity points.
type Points int

// IsValid checks that Points is non-negative.
func (p Points) IsValid() bool {
	return p >= 0
}

// Add returns the sum of two point values.
func (p Points) Add(delta Points) Points {
	return p + delta
}

// Grade represents an optional fitness grade/level label (e.g. "A", "B+").
type Grade string

// IsValid checks the grade label length. An empty grade means "not set".
func (g Grade) IsValid() bool {
	return len(g) <= 10
}

// String returns the string representation of the grade.
func (g Grade) String() string {
	return string(g)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: PROFILE
// ══════════════════════════════════════════════════════════════════════════════

// Profile is the central identity of the tracker: the person who logs
// activities and earns points.
type Profile struct {
	// ID is the internal unique identifier (UUID in string form).
	ID string

	// Name is the display name.
	Name string

	// Age in years.
	Age int

	// Grade is an optional fitness grade; empty when not set.
	Grade Grade

	// TeamID references the team the profile belongs to; nil when teamless.
	// Membership is stored here - a team holds no back-reference collection.
	TeamID *string

	// TotalPoints is the running sum of points from all logged activities.
	// Mutated only through the points ledger, never assigned directly.
	TotalPoints Points

	// CreatedAt is when the profile was created.
	CreatedAt time.Time

	// UpdatedAt is when the profile was last updated.
	UpdatedAt time.Time
}

// NewProfileParams contains parameters for creating a new profile.
type NewProfileParams struct {
	ID    string
	Name  string
	Age   int
	Grade Grade
}

// NewProfile creates a new profile with validation. Total points start at zero.
func NewProfile(params NewProfileParams) (*Profile, error) {
	if params.ID == "" {
		return nil, shared.NewDomainError("profile", "Create", shared.ErrInvalidID, "profile id is required")
	}

	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 255 {
		return nil, shared.ErrInvalidProfileName
	}

	if params.Age <= 0 {
		return nil, shared.ErrInvalidProfileAge
	}

	if !params.Grade.IsValid() {
		return nil, shared.NewDomainError("profile", "Validate", shared.ErrValueOutOfRange, "grade must be at most 10 chars")
	}

	now := time.Now().UTC()

	return &Profile{
		ID:          params.ID,
		Name:        name,
		Age:         params.Age,
		Grade:       params.Grade,
		TeamID:      nil,
		TotalPoints: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// HasTeam returns true if the profile currently belongs to a team.
func (p *Profile) HasTeam() bool {
	return p.TeamID != nil && *p.TeamID != ""
}

// JoinTeam assigns the profile to a team. Previously earned points stay with
// the old team; team totals are never replayed on membership change.
func (p *Profile) JoinTeam(teamID string) error {
	if teamID == "" {
		return shared.NewDomainError("profile", "JoinTeam", shared.ErrInvalidID, "team id is required")
	}

	p.TeamID = &teamID
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// LeaveTeam removes the profile from its team.
func (p *Profile) LeaveTeam() {
	p.TeamID = nil
	p.UpdatedAt = time.Now().UTC()
}

// ApplyPoints adds a point delta to the running total. Called by the ledger
// only; the delta comes from an activity's computed points.
func (p *Profile) ApplyPoints(delta Points) {
	p.TotalPoints = p.TotalPoints.Add(delta)
	p.UpdatedAt = time.Now().UTC()
}

// SetGrade updates the optional fitness grade.
func (p *Profile) SetGrade(grade Grade) error {
	if !grade.IsValid() {
		return shared.NewDomainError("profile", "SetGrade", shared.ErrValueOutOfRange, "grade must be at most 10 chars")
	}
	p.Grade = grade
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// String returns a string representation of the profile for logging.
func (p *Profile) String() string {
	team := "-"
	if p.HasTeam() {
		team = *p.TeamID
	}
	return fmt.Sprintf("Profile{ID: %s, Name: %s, Points: %d, Team: %s}", p.ID, p.Name, p.TotalPoints, team)
}

// Clone creates a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}

	clone := *p
	if p.TeamID != nil {
		teamID := *p.TeamID
		clone.TeamID = &teamID
	}
	return &clone
}
