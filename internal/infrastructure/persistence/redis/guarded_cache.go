package redis

import (
	"context"
	"errors"

	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/pkg/circuitbreaker"
)

// ══════════════════════════════════════════════════════════════════════════════
// GUARDED LEADERBOARD CACHE
//
// Wraps a leaderboard.Cache with a circuit breaker. The cache is an
// optimization, never the source of truth, so when Redis misbehaves the
// breaker opens and reads report a plain miss instead of an error. Callers
// fall through to PostgreSQL without waiting on Redis timeouts.
// ══════════════════════════════════════════════════════════════════════════════

// GuardedLeaderboardCache implements leaderboard.Cache with a breaker in front.
type GuardedLeaderboardCache struct {
	inner   leaderboard.Cache
	breaker *circuitbreaker.CircuitBreaker
}

// NewGuardedLeaderboardCache wraps the inner cache with a cache-tuned breaker.
// onStateChange may be nil.
func NewGuardedLeaderboardCache(inner leaderboard.Cache, onStateChange func(name string, from, to circuitbreaker.State)) *GuardedLeaderboardCache {
	return &GuardedLeaderboardCache{
		inner:   inner,
		breaker: circuitbreaker.CacheBreaker(onStateChange),
	}
}

// GetPage returns a cached page. A rejected call reports a miss, not an error.
func (g *GuardedLeaderboardCache) GetPage(ctx context.Context, kind leaderboard.Kind, limit int) (leaderboard.Ranking, bool, error) {
	var (
		ranking leaderboard.Ranking
		ok      bool
	)

	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		var innerErr error
		ranking, ok, innerErr = g.inner.GetPage(ctx, kind, limit)
		return innerErr
	})
	if isRejection(err) {
		return leaderboard.Ranking{}, false, nil
	}
	return ranking, ok, err
}

// SetPage stores a page through the breaker.
func (g *GuardedLeaderboardCache) SetPage(ctx context.Context, ranking leaderboard.Ranking, limit int) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.inner.SetPage(ctx, ranking, limit)
	})
}

// Invalidate drops cached pages through the breaker.
func (g *GuardedLeaderboardCache) Invalidate(ctx context.Context, kind leaderboard.Kind) error {
	return g.breaker.Execute(ctx, func(ctx context.Context) error {
		return g.inner.Invalidate(ctx, kind)
	})
}

// BreakerState exposes the breaker state for health reporting.
func (g *GuardedLeaderboardCache) BreakerState() circuitbreaker.State {
	return g.breaker.State()
}

func isRejection(err error) bool {
	return errors.Is(err, circuitbreaker.ErrOpen) ||
		errors.Is(err, circuitbreaker.ErrTooManyRequests)
}
