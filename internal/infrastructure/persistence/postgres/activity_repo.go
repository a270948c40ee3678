package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/octofit-hub/octofit-tracker/internal/domain/activity"
	"github.com/octofit-hub/octofit-tracker/internal/domain/profile"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACTIVITY REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ActivityRepository implements activity.Repository for PostgreSQL.
type ActivityRepository struct {
	conn *Connection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(conn *Connection) *ActivityRepository {
	return &ActivityRepository{conn: conn}
}

const activityColumns = `id, profile_id, category, duration_minutes, distance_km, calories, date, points, created_at, updated_at`

// GetByID returns an activity by ID.
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id)
	return scanActivity(row)
}

// ListByProfile returns all activities for a profile, newest first.
func (r *ActivityRepository) ListByProfile(ctx context.Context, profileID string) ([]*activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE profile_id = $1 ORDER BY date DESC, id ASC`

	rows, err := r.conn.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListByProfileSince returns a profile's activities dated at or after the
// cutoff, newest first.
func (r *ActivityRepository) ListByProfileSince(ctx context.Context, profileID string, cutoff time.Time) ([]*activity.Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE profile_id = $1 AND date >= $2
		ORDER BY date DESC, id ASC
	`

	rows, err := r.conn.Query(ctx, query, profileID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// List returns all activities, newest first.
func (r *ActivityRepository) List(ctx context.Context) ([]*activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY date DESC, id ASC`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// Delete removes an activity. Credited totals are not reversed.
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrActivityNotFound
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scanning
// ─────────────────────────────────────────────────────────────────────────────

func scanActivity(row pgx.Row) (*activity.Activity, error) {
	var (
		a        activity.Activity
		category string
		points   int
	)

	err := row.Scan(
		&a.ID,
		&a.ProfileID,
		&category,
		&a.DurationMinutes,
		&a.DistanceKM,
		&a.Calories,
		&a.Date,
		&points,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to scan activity: %w", err)
	}

	a.Category = activity.Category(category)
	a.Points = profile.Points(points)
	return &a, nil
}

func scanActivities(rows pgx.Rows) ([]*activity.Activity, error) {
	var activities []*activity.Activity

	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// POINTS LEDGER IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// PointsLedger implements activity.Ledger for PostgreSQL.
//
// Append runs the activity insert and both total increments in one
// transaction using relative updates (total_points = total_points + delta),
// so concurrent appends for the same profile cannot lose an update and a
// crash cannot leave the profile credited but the team not.
type PointsLedger struct {
	conn *Connection
}

// NewPointsLedger creates a new PointsLedger.
func NewPointsLedger(conn *Connection) *PointsLedger {
	return &PointsLedger{conn: conn}
}

// Append persists the activity and credits the running totals.
// Returns the resulting profile total and team total (zero if teamless).
func (l *PointsLedger) Append(ctx context.Context, a *activity.Activity) (int, int, error) {
	var profileTotal, teamTotal int

	err := l.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		insertQuery := `
			INSERT INTO activities (id, profile_id, category, duration_minutes, distance_km,
				calories, date, points, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		_, err := tx.Exec(ctx, insertQuery,
			a.ID,
			a.ProfileID,
			string(a.Category),
			a.DurationMinutes,
			a.DistanceKM,
			a.Calories,
			a.Date,
			int(a.Points),
			a.CreatedAt,
			a.UpdatedAt,
		)
		if err != nil {
			if IsForeignKeyViolation(err) {
				return shared.ErrProfileNotFound
			}
			return fmt.Errorf("failed to insert activity: %w", err)
		}

		var teamID *string
		creditProfile := `
			UPDATE profiles
			SET total_points = total_points + $1, updated_at = NOW()
			WHERE id = $2
			RETURNING total_points, team_id
		`
		err = tx.QueryRow(ctx, creditProfile, int(a.Points), a.ProfileID).Scan(&profileTotal, &teamID)
		if err != nil {
			if IsNoRows(err) {
				return shared.ErrProfileNotFound
			}
			return fmt.Errorf("failed to credit profile total: %w", err)
		}

		if teamID != nil {
			creditTeam := `
				UPDATE teams
				SET total_points = total_points + $1, updated_at = NOW()
				WHERE id = $2
				RETURNING total_points
			`
			err = tx.QueryRow(ctx, creditTeam, int(a.Points), *teamID).Scan(&teamTotal)
			if err != nil {
				if IsNoRows(err) {
					return shared.ErrTeamNotFound
				}
				return fmt.Errorf("failed to credit team total: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return profileTotal, teamTotal, nil
}
