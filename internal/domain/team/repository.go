package team

import (
	"context"
)

// Repository defines persistence operations for teams.
type Repository interface {
	// Create persists a new team.
	// Returns shared.ErrTeamAlreadyExists when the name is taken.
	Create(ctx context.Context, t *Team) error

	// GetByID returns a team by its ID.
	// Returns shared.ErrTeamNotFound if no team exists.
	GetByID(ctx context.Context, id string) (*Team, error)

	// Update persists changes to an existing team.
	Update(ctx context.Context, t *Team) error

	// Delete removes a team.
	Delete(ctx context.Context, id string) error

	// List returns all teams ordered by total points descending.
	List(ctx context.Context) ([]*Team, error)

	// ListSummaries returns the summary view for every team, ordered by
	// total points descending, with membership statistics attached.
	ListSummaries(ctx context.Context) ([]Summary, error)
}
