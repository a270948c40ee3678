package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
	"github.com/octofit-hub/octofit-tracker/internal/domain/team"
)

// ══════════════════════════════════════════════════════════════════════════════
// TEAM REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// TeamRepository implements team.Repository for PostgreSQL.
type TeamRepository struct {
	conn *Connection
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(conn *Connection) *TeamRepository {
	return &TeamRepository{conn: conn}
}

const teamColumns = `id, name, description, total_points, created_at, updated_at`

// Create creates a new team.
func (r *TeamRepository) Create(ctx context.Context, t *team.Team) error {
	query := `
		INSERT INTO teams (id, name, description, total_points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.conn.Exec(ctx, query,
		t.ID,
		t.Name,
		t.Description,
		int(t.TotalPoints),
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrTeamAlreadyExists
		}
		return fmt.Errorf("failed to create team: %w", err)
	}

	return nil
}

// GetByID returns a team by ID.
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*team.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return scanTeam(row)
}

// Update updates a team's descriptive fields.
// total_points is deliberately not written here; only the ledger moves it.
func (r *TeamRepository) Update(ctx context.Context, t *team.Team) error {
	query := `
		UPDATE teams SET
			name = $1,
			description = $2,
			updated_at = $3
		WHERE id = $4
	`

	result, err := r.conn.Exec(ctx, query, t.Name, t.Description, t.UpdatedAt, t.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrTeamAlreadyExists
		}
		return fmt.Errorf("failed to update team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrTeamNotFound
	}

	return nil
}

// Delete removes a team. Members become teamless via ON DELETE SET NULL.
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrTeamNotFound
	}

	return nil
}

// List returns all teams ordered by total points descending.
func (r *TeamRepository) List(ctx context.Context) ([]*team.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY total_points DESC`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*team.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}

// ListSummaries returns every team with membership statistics, ordered by
// total points descending. Note: no secondary sort key here - ties land in
// whatever order the store yields, unlike the leaderboard queries.
func (r *TeamRepository) ListSummaries(ctx context.Context) ([]team.Summary, error) {
	query := `
		SELECT t.id, t.name, t.description, t.total_points, t.created_at, t.updated_at,
			   COUNT(p.id) AS member_count,
			   COALESCE(AVG(p.total_points), 0.0) AS avg_member_points
		FROM teams t
		LEFT JOIN profiles p ON p.team_id = t.id
		GROUP BY t.id
		ORDER BY t.total_points DESC
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list team summaries: %w", err)
	}
	defer rows.Close()

	var summaries []team.Summary
	rank := 0

	for rows.Next() {
		var (
			t           team.Team
			points      int
			memberCount int
			avgPoints   float64
		)

		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Description,
			&points,
			&t.CreatedAt,
			&t.UpdatedAt,
			&memberCount,
			&avgPoints,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team summary: %w", err)
		}

		t.TotalPoints = profile.Points(points)
		rank++

		summaries = append(summaries, team.Summary{
			Team:                &t,
			Rank:                rank,
			MemberCount:         memberCount,
			AverageMemberPoints: avgPoints,
		})
	}

	return summaries, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// Scanning
// ─────────────────────────────────────────────────────────────────────────────

func scanTeam(row pgx.Row) (*team.Team, error) {
	var (
		t      team.Team
		points int
	)

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&points,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}

	t.TotalPoints = profile.Points(points)
	return &t, nil
}
