// Package eventhandler contains domain event handlers.
// Handlers are the reactive part of the system: they run side effects such
// as cache invalidation after a write has already committed.
package eventhandler

import (
	"context"
	"time"

	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
	"github.com/octofit-hub/octofit-tracker/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ON POINTS APPLIED HANDLER
// After the ledger credits totals, cached leaderboard pages are stale.
// Dropping them is enough - the next read repopulates the cache.
// ══════════════════════════════════════════════════════════════════════════════

// OnPointsAppliedHandler invalidates leaderboard caches when totals change.
type OnPointsAppliedHandler struct {
	cache   leaderboard.Cache
	log     *logger.Logger
	timeout time.Duration
}

// NewOnPointsAppliedHandler creates a new OnPointsAppliedHandler.
func NewOnPointsAppliedHandler(cache leaderboard.Cache, log *logger.Logger) *OnPointsAppliedHandler {
	return &OnPointsAppliedHandler{
		cache:   cache,
		log:     log.With(logger.Component("on_points_applied")),
		timeout: 5 * time.Second,
	}
}

// Handle processes a PointsAppliedEvent.
// Cache invalidation failures are logged and swallowed: the pages carry a
// TTL, so a missed invalidation only delays freshness.
func (h *OnPointsAppliedHandler) Handle(event shared.Event) error {
	applied, ok := event.(shared.PointsAppliedEvent)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.cache.Invalidate(ctx, leaderboard.KindProfiles); err != nil {
		h.log.Warn("failed to invalidate profiles leaderboard",
			logger.ProfileID(applied.ProfileID), logger.Err(err))
	}

	if applied.TeamID != "" {
		if err := h.cache.Invalidate(ctx, leaderboard.KindTeams); err != nil {
			h.log.Warn("failed to invalidate teams leaderboard",
				logger.TeamID(applied.TeamID), logger.Err(err))
		}
	}

	return nil
}
