package leaderboard

import "context"

// Repository reads ranked pages straight from the persistent store.
// The store applies the same ordering as Rank: total points descending,
// ID ascending on ties.
type Repository interface {
	// TopProfiles returns the top profiles page.
	TopProfiles(ctx context.Context, limit int) (Ranking, error)

	// TopTeams returns the top teams page.
	TopTeams(ctx context.Context, limit int) (Ranking, error)
}

// Cache holds precomputed leaderboard pages so hot reads skip the store.
// Implementations return a miss as (zero Ranking, false, nil).
type Cache interface {
	// GetPage returns a cached page for the kind and limit.
	GetPage(ctx context.Context, kind Kind, limit int) (Ranking, bool, error)

	// SetPage stores a page with the cache's TTL.
	SetPage(ctx context.Context, ranking Ranking, limit int) error

	// Invalidate drops all cached pages for the kind.
	Invalidate(ctx context.Context, kind Kind) error
}
