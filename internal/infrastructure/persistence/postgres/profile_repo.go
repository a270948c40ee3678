package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ProfileRepository implements profile.Repository for PostgreSQL.
type ProfileRepository struct {
	conn *Connection
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(conn *Connection) *ProfileRepository {
	return &ProfileRepository{conn: conn}
}

const profileColumns = `id, name, age, grade, team_id, total_points, created_at, updated_at`

// Create creates a new profile.
func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (id, name, age, grade, team_id, total_points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.conn.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Age,
		string(p.Grade),
		p.TeamID,
		int(p.TotalPoints),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrProfileAlreadyExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// GetByID returns a profile by ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return scanProfile(row)
}

// Update updates a profile's descriptive fields and team reference.
// total_points is deliberately not written here; only the ledger moves it.
func (r *ProfileRepository) Update(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles SET
			name = $1,
			age = $2,
			grade = $3,
			team_id = $4,
			updated_at = $5
		WHERE id = $6
	`

	result, err := r.conn.Exec(ctx, query,
		p.Name,
		p.Age,
		string(p.Grade),
		p.TeamID,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrProfileNotFound
	}

	return nil
}

// Delete removes a profile. Its activities cascade.
func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrProfileNotFound
	}

	return nil
}

// List returns all profiles ordered by name.
func (r *ProfileRepository) List(ctx context.Context) ([]*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY name ASC, id ASC`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// FindByName returns profiles whose name contains the substring,
// case-insensitively.
func (r *ProfileRepository) FindByName(ctx context.Context, name string) ([]*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC, id ASC
	`

	rows, err := r.conn.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles by name: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// ListByTeam returns the current members of a team.
func (r *ProfileRepository) ListByTeam(ctx context.Context, teamID string) ([]*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE team_id = $1 ORDER BY name ASC, id ASC`

	rows, err := r.conn.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// ─────────────────────────────────────────────────────────────────────────────
// Scanning
// ─────────────────────────────────────────────────────────────────────────────

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var (
		p      profile.Profile
		grade  string
		points int
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&grade,
		&p.TeamID,
		&points,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	p.Grade = profile.Grade(grade)
	p.TotalPoints = profile.Points(points)
	return &p, nil
}

func scanProfiles(rows pgx.Rows) ([]*profile.Profile, error) {
	var profiles []*profile.Profile

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}
