package postgres

import (
	"context"
	"fmt"

	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// LeaderboardRepository implements leaderboard.Repository for PostgreSQL.
// Ordering matches the domain ranking rules: total points descending, ID
// ascending on ties, backed by the (total_points DESC, id ASC) indexes.
type LeaderboardRepository struct {
	conn *Connection
}

// NewLeaderboardRepository creates a new LeaderboardRepository.
func NewLeaderboardRepository(conn *Connection) *LeaderboardRepository {
	return &LeaderboardRepository{conn: conn}
}

// TopProfiles returns the top profiles page.
func (r *LeaderboardRepository) TopProfiles(ctx context.Context, limit int) (leaderboard.Ranking, error) {
	query := `
		SELECT id, name, total_points
		FROM profiles
		ORDER BY total_points DESC, id ASC
		LIMIT $1
	`
	return r.rank(ctx, leaderboard.KindProfiles, query, limit)
}

// TopTeams returns the top teams page.
func (r *LeaderboardRepository) TopTeams(ctx context.Context, limit int) (leaderboard.Ranking, error) {
	query := `
		SELECT id, name, total_points
		FROM teams
		ORDER BY total_points DESC, id ASC
		LIMIT $1
	`
	return r.rank(ctx, leaderboard.KindTeams, query, limit)
}

func (r *LeaderboardRepository) rank(ctx context.Context, kind leaderboard.Kind, query string, limit int) (leaderboard.Ranking, error) {
	if limit <= 0 {
		limit = leaderboard.DefaultLimit
	}

	rows, err := r.conn.Query(ctx, query, limit)
	if err != nil {
		return leaderboard.Ranking{}, fmt.Errorf("failed to query %s leaderboard: %w", kind, err)
	}
	defer rows.Close()

	ranking := leaderboard.Ranking{Kind: kind}

	for rows.Next() {
		var (
			id, name string
			points   int
		)
		if err := rows.Scan(&id, &name, &points); err != nil {
			return leaderboard.Ranking{}, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}

		ranking.Entries = append(ranking.Entries, leaderboard.Entry{
			Rank:        leaderboard.Rank(len(ranking.Entries) + 1),
			ID:          id,
			Name:        name,
			TotalPoints: profile.Points(points),
		})
	}

	return ranking, rows.Err()
}
