// Package jobs contains implementations of scheduled jobs for OctoFit Tracker.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REBUILD LEADERBOARD JOB
// ══════════════════════════════════════════════════════════════════════════════

// RebuildLeaderboardJob reads the current standings from the store and warms
// the cached pages, so hot leaderboard reads never wait on Postgres. Cache
// invalidation after a points write leaves the next reader to repopulate;
// this job closes that gap on a fixed interval.
type RebuildLeaderboardJob struct {
	repo      leaderboard.Repository
	cache     leaderboard.Cache
	publisher shared.EventPublisher
	logger    *slog.Logger

	config RebuildLeaderboardConfig

	lastRebuildStats atomic.Value // *RebuildStats
}

// RebuildLeaderboardConfig contains configuration for the rebuild job.
type RebuildLeaderboardConfig struct {
	// PageLimits are the page sizes to precompute for each kind.
	PageLimits []int

	// Timeout is the maximum duration for one rebuild run.
	Timeout time.Duration

	// OnRebuilt is called once per run after all pages are warmed.
	OnRebuilt func(at time.Time)
}

// DefaultRebuildLeaderboardConfig returns sensible defaults.
// The default page size matches what the API serves when no limit is given.
func DefaultRebuildLeaderboardConfig() RebuildLeaderboardConfig {
	return RebuildLeaderboardConfig{
		PageLimits: []int{leaderboard.DefaultLimit},
		Timeout:    time.Minute,
	}
}

// RebuildStats contains statistics from a rebuild run.
type RebuildStats struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	PagesWarmed int
	Entries     int
	Errors      []error
}

// NewRebuildLeaderboardJob creates a new rebuild leaderboard job.
func NewRebuildLeaderboardJob(
	repo leaderboard.Repository,
	cache leaderboard.Cache,
	publisher shared.EventPublisher,
	logger *slog.Logger,
	config RebuildLeaderboardConfig,
) *RebuildLeaderboardJob {
	if logger == nil {
		logger = slog.Default()
	}
	if len(config.PageLimits) == 0 {
		config.PageLimits = []int{leaderboard.DefaultLimit}
	}

	return &RebuildLeaderboardJob{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		config:    config,
	}
}

// Name returns the job name.
func (j *RebuildLeaderboardJob) Name() string {
	return "rebuild_leaderboard"
}

// Description returns a human-readable description.
func (j *RebuildLeaderboardJob) Description() string {
	return "Warms cached leaderboard pages from the persistent store"
}

// Run executes the rebuild job.
func (j *RebuildLeaderboardJob) Run(ctx context.Context) error {
	startedAt := time.Now()
	stats := &RebuildStats{
		StartedAt: startedAt,
		Errors:    make([]error, 0),
	}

	if j.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.config.Timeout)
		defer cancel()
	}

	for _, kind := range []leaderboard.Kind{leaderboard.KindProfiles, leaderboard.KindTeams} {
		entries, err := j.rebuildKind(ctx, kind, stats)
		if err != nil {
			stats.Errors = append(stats.Errors, err)
			j.logger.Error("failed to rebuild leaderboard",
				"kind", string(kind),
				"error", err,
			)
			continue
		}

		if j.publisher != nil {
			_ = j.publisher.Publish(shared.NewLeaderboardRebuiltEvent(string(kind), entries))
		}
	}

	stats.CompletedAt = time.Now()
	stats.Duration = stats.CompletedAt.Sub(startedAt)
	j.lastRebuildStats.Store(stats)

	if len(stats.Errors) == 0 && j.config.OnRebuilt != nil {
		j.config.OnRebuilt(stats.CompletedAt)
	}

	j.logger.Info("rebuild_leaderboard job completed",
		"duration", stats.Duration.String(),
		"pages_warmed", stats.PagesWarmed,
		"entries", stats.Entries,
	)

	if len(stats.Errors) > 0 {
		return fmt.Errorf("rebuild completed with %d errors", len(stats.Errors))
	}

	return nil
}

// rebuildKind warms all configured page sizes for one leaderboard kind.
// Returns the entry count of the largest page.
func (j *RebuildLeaderboardJob) rebuildKind(ctx context.Context, kind leaderboard.Kind, stats *RebuildStats) (int, error) {
	maxEntries := 0

	for _, limit := range j.config.PageLimits {
		var (
			ranking leaderboard.Ranking
			err     error
		)
		switch kind {
		case leaderboard.KindTeams:
			ranking, err = j.repo.TopTeams(ctx, limit)
		default:
			ranking, err = j.repo.TopProfiles(ctx, limit)
		}
		if err != nil {
			return maxEntries, fmt.Errorf("failed to read %s page (limit %d): %w", kind, limit, err)
		}

		if err := j.cache.SetPage(ctx, ranking, limit); err != nil {
			return maxEntries, fmt.Errorf("failed to cache %s page (limit %d): %w", kind, limit, err)
		}

		stats.PagesWarmed++
		stats.Entries += ranking.Len()
		if ranking.Len() > maxEntries {
			maxEntries = ranking.Len()
		}
	}

	return maxEntries, nil
}

// LastRebuildStats returns statistics from the last rebuild.
func (j *RebuildLeaderboardJob) LastRebuildStats() *RebuildStats {
	stats := j.lastRebuildStats.Load()
	if stats == nil {
		return nil
	}
	return stats.(*RebuildStats)
}
