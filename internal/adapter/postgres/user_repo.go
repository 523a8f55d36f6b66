package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fitlog/internal/domain"
)

var _ domain.UserRepository = (*DB)(nil)

const userColumns = "id, name, email, age, gender, height, weight, activity_level, fitness_goal, created_date"

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.Gender, &u.Height, &u.Weight,
		&u.ActivityLevel, &u.FitnessGoal, &u.CreatedDate)
	u.CreatedDate = u.CreatedDate.UTC()
	return u, err
}

// CreateUser inserts a new user and returns its ID.
func (d *DB) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO users(name, email, age, gender, height, weight, activity_level, fitness_goal, created_date)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id;`,
		u.Name, u.Email, u.Age, u.Gender, u.Height, u.Weight, u.ActivityLevel, u.FitnessGoal, u.CreatedDate,
	).Scan(&id)
	if err != nil {
		return 0, userError(err, u.Email)
	}
	return id, nil
}

// GetUser returns the user with the given ID, or nil if none exists.
func (d *DB) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	row := d.sql.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id=$1;", id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// ListUsers returns every user ordered by ID.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateUser replaces every mutable column. created_date is left untouched.
func (d *DB) UpdateUser(ctx context.Context, u domain.User) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		`UPDATE users SET name=$2, email=$3, age=$4, gender=$5, height=$6, weight=$7,
		 activity_level=$8, fitness_goal=$9 WHERE id=$1;`,
		u.ID, u.Name, u.Email, u.Age, u.Gender, u.Height, u.Weight, u.ActivityLevel, u.FitnessGoal,
	)
	if err != nil {
		return false, userError(err, u.Email)
	}
	return affected(res)
}

// DeleteUser removes a user; their activities and entries go with them.
func (d *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM users WHERE id=$1;", id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func userError(err error, email string) error {
	err = translateError(err, "user", 0)
	var ce *domain.ConflictError
	if errors.As(err, &ce) && ce.Field == "email" {
		ce.Value = email
	}
	return err
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
