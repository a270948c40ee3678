package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD CACHE
//
// Two structures per leaderboard kind:
//
//   leaderboard:page:<kind>:<limit>  - a fully ranked page, stored as JSON.
//     Pages are precomputed because the ranking tie-break (points desc,
//     id asc) cannot be reproduced from a sorted set: Redis orders equal
//     scores by member lexicographically DESCENDING on ZREVRANGE.
//
//   leaderboard:scores:<kind>        - sorted set of current totals, for
//     cheap single-entity score lookups.
// ══════════════════════════════════════════════════════════════════════════════

// cachedEntry is the JSON form of one ranked row.
type cachedEntry struct {
	Rank        int    `json:"rank"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"total_points"`
}

// LeaderboardCache implements leaderboard.Cache on Redis.
type LeaderboardCache struct {
	cache *Cache
}

// NewLeaderboardCache creates a new LeaderboardCache.
func NewLeaderboardCache(cache *Cache) *LeaderboardCache {
	return &LeaderboardCache{cache: cache}
}

func pageKey(kind leaderboard.Kind, limit int) string {
	return fmt.Sprintf("%spage:%s:%d", PrefixLeaderboard, kind, limit)
}

func scoresKey(kind leaderboard.Kind) string {
	return fmt.Sprintf("%sscores:%s", PrefixLeaderboard, kind)
}

// GetPage returns a cached leaderboard page.
// A miss is reported as ok=false with a nil error.
func (l *LeaderboardCache) GetPage(ctx context.Context, kind leaderboard.Kind, limit int) (leaderboard.Ranking, bool, error) {
	var cached []cachedEntry

	err := l.cache.Get(ctx, pageKey(kind, limit), &cached)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return leaderboard.Ranking{}, false, nil
		}
		return leaderboard.Ranking{}, false, err
	}

	ranking := leaderboard.Ranking{Kind: kind}
	for _, e := range cached {
		ranking.Entries = append(ranking.Entries, leaderboard.Entry{
			Rank:        leaderboard.Rank(e.Rank),
			ID:          e.ID,
			Name:        e.Name,
			TotalPoints: profile.Points(e.TotalPoints),
		})
	}

	return ranking, true, nil
}

// SetPage stores a ranked page and refreshes the score set from it.
func (l *LeaderboardCache) SetPage(ctx context.Context, ranking leaderboard.Ranking, limit int) error {
	cached := make([]cachedEntry, 0, len(ranking.Entries))
	for _, e := range ranking.Entries {
		cached = append(cached, cachedEntry{
			Rank:        int(e.Rank),
			ID:          e.ID,
			Name:        e.Name,
			TotalPoints: int(e.TotalPoints),
		})
	}

	if err := l.cache.Set(ctx, pageKey(ranking.Kind, limit), cached, TTLLeaderboardCache); err != nil {
		return fmt.Errorf("failed to cache leaderboard page: %w", err)
	}

	key := scoresKey(ranking.Kind)
	for _, e := range ranking.Entries {
		if err := l.cache.ZAdd(ctx, key, e.ID, float64(e.TotalPoints)); err != nil {
			return fmt.Errorf("failed to update score set: %w", err)
		}
	}

	return l.cache.Expire(ctx, key, TTLScoreSet)
}

// GetScore returns the cached total for one profile or team.
// Returns ErrCacheMiss when the entity is not in the score set.
func (l *LeaderboardCache) GetScore(ctx context.Context, kind leaderboard.Kind, id string) (int, error) {
	score, err := l.cache.ZScore(ctx, scoresKey(kind), id)
	if err != nil {
		return 0, err
	}
	return int(score), nil
}

// Invalidate drops all cached pages for the kind. The score set is left to
// expire on its own; it is advisory, not authoritative.
func (l *LeaderboardCache) Invalidate(ctx context.Context, kind leaderboard.Kind) error {
	pattern := fmt.Sprintf("%spage:%s:*", PrefixLeaderboard, kind)
	return l.cache.DeleteByPattern(ctx, pattern)
}
