package profile

import (
	"context"
)

// Repository defines persistence operations for profiles.
type Repository interface {
	// Create persists a new profile.
	Create(ctx context.Context, p *Profile) error

	// GetByID returns a profile by its ID.
	// Returns shared.ErrProfileNotFound if no profile exists.
	GetByID(ctx context.Context, id string) (*Profile, error)

	// Update persists changes to an existing profile.
	Update(ctx context.Context, p *Profile) error

	// Delete removes a profile.
	Delete(ctx context.Context, id string) error

	// List returns all profiles.
	List(ctx context.Context) ([]*Profile, error)

	// FindByName returns profiles whose name contains the given substring,
	// case-insensitively.
	FindByName(ctx context.Context, name string) ([]*Profile, error)

	// ListByTeam returns the current members of a team.
	ListByTeam(ctx context.Context, teamID string) ([]*Profile, error)
}
