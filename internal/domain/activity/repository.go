package activity

import (
	"context"
	"time"
)

// Repository defines persistence operations for activities.
type Repository interface {
	// GetByID returns an activity by its ID.
	// Returns shared.ErrActivityNotFound if no activity exists.
	GetByID(ctx context.Context, id string) (*Activity, error)

	// ListByProfile returns all activities for a profile, newest first.
	ListByProfile(ctx context.Context, profileID string) ([]*Activity, error)

	// ListByProfileSince returns a profile's activities dated at or after
	// the cutoff, newest first.
	ListByProfileSince(ctx context.Context, profileID string, cutoff time.Time) ([]*Activity, error)

	// List returns all activities, newest first.
	List(ctx context.Context) ([]*Activity, error)

	// Delete removes an activity. Totals already credited through the
	// ledger are not reversed.
	Delete(ctx context.Context, id string) error
}

// Ledger applies an activity's points to the running totals.
//
// Append persists the activity and increments the owning profile's total,
// and the owning team's total when the profile has one, in a single
// transaction. It returns the resulting profile and team totals (teamTotal
// is zero when the profile is teamless).
//
// The ledger is forward-only: edits and deletes do not feed back into
// totals, and there is no idempotency key, so Append must be called exactly
// once per activity.
type Ledger interface {
	Append(ctx context.Context, a *Activity) (profileTotal, teamTotal int, err error)
}
