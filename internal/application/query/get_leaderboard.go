// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"fmt"

	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// Returns the top-N profiles or teams by total points. Reads go through the
// cache when one is wired; misses fall back to the store and repopulate it.
// ══════════════════════════════════════════════════════════════════════════════

// GetLeaderboardQuery contains leaderboard request parameters.
type GetLeaderboardQuery struct {
	// Kind selects profiles or teams.
	Kind leaderboard.Kind

	// RawLimit is the unparsed limit parameter. Unparseable or non-positive
	// values fall back to the default of 10.
	RawLimit string
}

// Validate validates the query.
func (q GetLeaderboardQuery) Validate() error {
	if !q.Kind.IsValid() {
		return fmt.Errorf("get_leaderboard: unknown kind %q", q.Kind)
	}
	return nil
}

// LeaderboardEntryDTO is one ranked row of the response.
type LeaderboardEntryDTO struct {
	// Rank is the 1-based position.
	Rank int `json:"rank"`

	// ID is the profile or team ID.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// TotalPoints is the current total.
	TotalPoints int `json:"total_points"`
}

// LeaderboardDTO is the full response page.
type LeaderboardDTO struct {
	Kind    string                `json:"kind"`
	Limit   int                   `json:"limit"`
	Entries []LeaderboardEntryDTO `json:"entries"`
}

// GetLeaderboardHandler handles the GetLeaderboardQuery.
type GetLeaderboardHandler struct {
	repo  leaderboard.Repository
	cache leaderboard.Cache
	log   *logger.Logger

	// record observes each read and whether it was served from cache or store.
	record func(kind, source string)
}

// NewGetLeaderboardHandler creates a new GetLeaderboardHandler.
// cache may be nil; the handler then always reads the store.
func NewGetLeaderboardHandler(
	repo leaderboard.Repository,
	cache leaderboard.Cache,
	log *logger.Logger,
) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Handle executes the leaderboard query.
func (h *GetLeaderboardHandler) Handle(ctx context.Context, q GetLeaderboardQuery) (*LeaderboardDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	limit := leaderboard.ParseLimit(q.RawLimit)

	if h.cache != nil {
		ranking, ok, err := h.cache.GetPage(ctx, q.Kind, limit)
		if err != nil {
			h.log.Warn("leaderboard cache read failed", logger.Err(err))
		} else if ok {
			h.recordRead(q.Kind, "cache")
			return toLeaderboardDTO(ranking, limit), nil
		}
	}

	ranking, err := h.fetch(ctx, q.Kind, limit)
	if err != nil {
		return nil, fmt.Errorf("get_leaderboard: %w", err)
	}
	h.recordRead(q.Kind, "store")

	if h.cache != nil {
		if err := h.cache.SetPage(ctx, ranking, limit); err != nil {
			h.log.Warn("leaderboard cache write failed", logger.Err(err))
		}
	}

	return toLeaderboardDTO(ranking, limit), nil
}

// WithReadRecorder sets a callback invoked once per read with the serving
// source ("cache" or "store"). Returns the handler for chaining.
func (h *GetLeaderboardHandler) WithReadRecorder(record func(kind, source string)) *GetLeaderboardHandler {
	h.record = record
	return h
}

func (h *GetLeaderboardHandler) recordRead(kind leaderboard.Kind, source string) {
	if h.record != nil {
		h.record(string(kind), source)
	}
}

func (h *GetLeaderboardHandler) fetch(ctx context.Context, kind leaderboard.Kind, limit int) (leaderboard.Ranking, error) {
	if kind == leaderboard.KindTeams {
		return h.repo.TopTeams(ctx, limit)
	}
	return h.repo.TopProfiles(ctx, limit)
}

func toLeaderboardDTO(ranking leaderboard.Ranking, limit int) *LeaderboardDTO {
	entries := make([]LeaderboardEntryDTO, 0, len(ranking.Entries))
	for _, e := range ranking.Entries {
		entries = append(entries, LeaderboardEntryDTO{
			Rank:        int(e.Rank),
			ID:          e.ID,
			Name:        e.Name,
			TotalPoints: int(e.TotalPoints),
		})
	}

	return &LeaderboardDTO{
		Kind:    string(ranking.Kind),
		Limit:   limit,
		Entries: entries,
	}
}
