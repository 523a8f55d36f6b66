package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fitlog/internal/domain"
)

var _ domain.NutritionRepository = (*DB)(nil)

const nutritionColumns = `id, user_id, food_name, meal_type, calories, protein, carbs, fat,
	serving_size, COALESCE(serving_unit, ''), recorded_at`

func scanNutrition(s scanner) (domain.NutritionEntry, error) {
	var e domain.NutritionEntry
	err := s.Scan(&e.ID, &e.UserID, &e.FoodName, &e.MealType, &e.Calories, &e.Protein, &e.Carbs, &e.Fat,
		&e.ServingSize, &e.ServingUnit, &e.RecordedAt)
	e.RecordedAt = e.RecordedAt.UTC()
	return e, err
}

// CreateNutritionEntry inserts a new entry and returns its ID.
func (d *DB) CreateNutritionEntry(ctx context.Context, e domain.NutritionEntry) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO nutrition_entries(user_id, food_name, meal_type, calories, protein, carbs, fat,
		 serving_size, serving_unit, recorded_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10) RETURNING id;`,
		e.UserID, e.FoodName, e.MealType, e.Calories, e.Protein, e.Carbs, e.Fat,
		e.ServingSize, e.ServingUnit, e.RecordedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, translateError(err, "nutrition entry", e.UserID)
	}
	return id, nil
}

// GetNutritionEntry returns the entry with the given ID, or nil if none exists.
func (d *DB) GetNutritionEntry(ctx context.Context, id int64) (*domain.NutritionEntry, error) {
	row := d.sql.QueryRowContext(ctx, "SELECT "+nutritionColumns+" FROM nutrition_entries WHERE id=$1;", id)
	e, err := scanNutrition(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListNutritionEntries returns all entries, most recent first.
func (d *DB) ListNutritionEntries(ctx context.Context) ([]domain.NutritionEntry, error) {
	return d.queryNutrition(ctx,
		"SELECT "+nutritionColumns+" FROM nutrition_entries ORDER BY recorded_at DESC, id DESC;")
}

// ListNutritionEntriesByUser returns a user's entries, most recent first.
func (d *DB) ListNutritionEntriesByUser(ctx context.Context, userID int64) ([]domain.NutritionEntry, error) {
	return d.queryNutrition(ctx,
		"SELECT "+nutritionColumns+" FROM nutrition_entries WHERE user_id=$1 ORDER BY recorded_at DESC, id DESC;",
		userID)
}

// ListNutritionEntriesInRange returns a user's entries recorded within r.
func (d *DB) ListNutritionEntriesInRange(ctx context.Context, userID int64, r domain.TimeRange) ([]domain.NutritionEntry, error) {
	return d.queryNutrition(ctx,
		"SELECT "+nutritionColumns+` FROM nutrition_entries
		 WHERE user_id=$1 AND recorded_at BETWEEN $2 AND $3 ORDER BY recorded_at DESC, id DESC;`,
		userID, r.Stored().Start, r.Stored().End)
}

func (d *DB) queryNutrition(ctx context.Context, query string, args ...any) ([]domain.NutritionEntry, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.NutritionEntry{}
	for rows.Next() {
		e, err := scanNutrition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateNutritionEntry replaces the stored entry.
func (d *DB) UpdateNutritionEntry(ctx context.Context, e domain.NutritionEntry) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		`UPDATE nutrition_entries SET user_id=$2, food_name=$3, meal_type=$4, calories=$5, protein=$6,
		 carbs=$7, fat=$8, serving_size=$9, serving_unit=NULLIF($10, ''), recorded_at=$11 WHERE id=$1;`,
		e.ID, e.UserID, e.FoodName, e.MealType, e.Calories, e.Protein, e.Carbs, e.Fat,
		e.ServingSize, e.ServingUnit, e.RecordedAt.UTC(),
	)
	if err != nil {
		return false, translateError(err, "nutrition entry", e.UserID)
	}
	return affected(res)
}

// DeleteNutritionEntry removes an entry by ID.
func (d *DB) DeleteNutritionEntry(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM nutrition_entries WHERE id=$1;", id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// TotalCaloriesConsumed sums calories eaten by the user within r.
func (d *DB) TotalCaloriesConsumed(ctx context.Context, userID int64, r domain.TimeRange) (float64, error) {
	var total float64
	err := d.sql.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(calories), 0) FROM nutrition_entries
		 WHERE user_id=$1 AND recorded_at BETWEEN $2 AND $3;`,
		userID, r.Stored().Start, r.Stored().End,
	).Scan(&total)
	return total, err
}

// CaloriesByMealType sums calories per meal type within r.
func (d *DB) CaloriesByMealType(ctx context.Context, userID int64, r domain.TimeRange) (map[string]float64, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT meal_type, COALESCE(SUM(calories), 0) FROM nutrition_entries
		 WHERE user_id=$1 AND recorded_at BETWEEN $2 AND $3 GROUP BY meal_type;`,
		userID, r.Stored().Start, r.Stored().End)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	totals := make(map[string]float64)
	for rows.Next() {
		var meal string
		var cal float64
		if err := rows.Scan(&meal, &cal); err != nil {
			return nil, err
		}
		totals[meal] = cal
	}
	return totals, rows.Err()
}

// MacronutrientTotals sums protein, carbs and fat within r.
func (d *DB) MacronutrientTotals(ctx context.Context, userID int64, r domain.TimeRange) (domain.Macronutrients, error) {
	var m domain.Macronutrients
	err := d.sql.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(protein), 0), COALESCE(SUM(carbs), 0), COALESCE(SUM(fat), 0)
		 FROM nutrition_entries WHERE user_id=$1 AND recorded_at BETWEEN $2 AND $3;`,
		userID, r.Stored().Start, r.Stored().End,
	).Scan(&m.Protein, &m.Carbs, &m.Fat)
	return m, err
}
