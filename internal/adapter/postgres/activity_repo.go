package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fitlog/internal/domain"
)

var _ domain.ActivityRepository = (*DB)(nil)

const activityColumns = "id, user_id, activity_type, duration, calories_burned, COALESCE(notes, ''), recorded_at"

func scanActivity(s scanner) (domain.FitnessActivity, error) {
	var a domain.FitnessActivity
	err := s.Scan(&a.ID, &a.UserID, &a.ActivityType, &a.Duration, &a.CaloriesBurned, &a.Notes, &a.RecordedAt)
	a.RecordedAt = a.RecordedAt.UTC()
	return a, err
}

// CreateActivity inserts a new activity and returns its ID.
func (d *DB) CreateActivity(ctx context.Context, a domain.FitnessActivity) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO fitness_activities(user_id, activity_type, duration, calories_burned, notes, recorded_at)
		 VALUES($1, $2, $3, $4, NULLIF($5, ''), $6) RETURNING id;`,
		a.UserID, a.ActivityType, a.Duration, a.CaloriesBurned, a.Notes, a.RecordedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, translateError(err, "activity", a.UserID)
	}
	return id, nil
}

// GetActivity returns the activity with the given ID, or nil if none exists.
func (d *DB) GetActivity(ctx context.Context, id int64) (*domain.FitnessActivity, error) {
	row := d.sql.QueryRowContext(ctx, "SELECT "+activityColumns+" FROM fitness_activities WHERE id=$1;", id)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ListActivities returns all activities, most recent first.
func (d *DB) ListActivities(ctx context.Context) ([]domain.FitnessActivity, error) {
	return d.queryActivities(ctx,
		"SELECT "+activityColumns+" FROM fitness_activities ORDER BY recorded_at DESC, id DESC;")
}

// ListActivitiesByUser returns a user's activities, most recent first.
func (d *DB) ListActivitiesByUser(ctx context.Context, userID int64) ([]domain.FitnessActivity, error) {
	return d.queryActivities(ctx,
		"SELECT "+activityColumns+" FROM fitness_activities WHERE user_id=$1 ORDER BY recorded_at DESC, id DESC;",
		userID)
}

// ListActivitiesInRange returns a user's activities recorded within r.
func (d *DB) ListActivitiesInRange(ctx context.Context, userID int64, r domain.TimeRange) ([]domain.FitnessActivity, error) {
	return d.queryActivities(ctx,
		"SELECT "+activityColumns+` FROM fitness_activities
		 WHERE user_id=$1 AND recorded_at BETWEEN $2 AND $3 ORDER BY recorded_at DESC, id DESC;`,
		userID, r.Stored().Start, r.Stored().End)
}

func (d *DB) queryActivities(ctx context.Context, query string, args ...any) ([]domain.FitnessActivity, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.FitnessActivity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateActivity replaces the stored activity.
func (d *DB) UpdateActivity(ctx context.Context, a domain.FitnessActivity) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		`UPDATE fitness_activities SET user_id=$2, activity_type=$3, duration=$4, calories_burned=$5,
		 notes=NULLIF($6, ''), recorded_at=$7 WHERE id=$1;`,
		a.ID, a.UserID, a.ActivityType, a.Duration, a.CaloriesBurned, a.Notes, a.RecordedAt.UTC(),
	)
	if err != nil {
		return false, translateError(err, "activity", a.UserID)
	}
	return affected(res)
}

// DeleteActivity removes an activity by ID.
func (d *DB) DeleteActivity(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM fitness_activities WHERE id=$1;", id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// TotalCaloriesBurned sums calories burned by the user within r.
func (d *DB) TotalCaloriesBurned(ctx context.Context, userID int64, r domain.TimeRange) (float64, error) {
	var total float64
	err := d.sql.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(calories_burned), 0) FROM fitness_activities
		 WHERE user_id=$1 AND recorded_at BETWEEN $2 AND $3;`,
		userID, r.Stored().Start, r.Stored().End,
	).Scan(&total)
	return total, err
}

// ActivityTypeCounts counts the user's activities per type over all time.
func (d *DB) ActivityTypeCounts(ctx context.Context, userID int64) (map[string]int64, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT activity_type, COUNT(*) FROM fitness_activities WHERE user_id=$1 GROUP BY activity_type;",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	counts := make(map[string]int64)
	for rows.Next() {
		var typ string
		var n int64
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		counts[typ] = n
	}
	return counts, rows.Err()
}
