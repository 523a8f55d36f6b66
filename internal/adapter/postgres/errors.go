package postgres

import (
	"errors"
	"strings"

	"github.com/lib/pq"

	"fitlog/internal/domain"
)

// SQLSTATE codes mapped onto domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// translateError maps constraint violations onto domain errors. ownerID is
// the user a child row points at and is reported on foreign-key failures.
func translateError(err error, entity string, ownerID int64) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case codeUniqueViolation:
		return &domain.ConflictError{Entity: entity, Field: constraintColumn(pqErr.Constraint)}
	case codeForeignKeyViolation:
		return &domain.NotFoundError{Entity: "user", ID: ownerID}
	case codeCheckViolation:
		return domain.NewValidationError(constraintColumn(pqErr.Constraint), pqErr.Message)
	}
	return err
}

// constraintColumn extracts the column from Postgres' default constraint
// names, e.g. "users_email_key" or "users_age_check" yield "email" and "age".
func constraintColumn(constraint string) string {
	name := constraint
	for _, suffix := range []string{"_key", "_check", "_fkey"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			name = trimmed
			break
		}
	}
	for _, table := range []string{"users_", "fitness_activities_", "nutrition_entries_"} {
		if trimmed, ok := strings.CutPrefix(name, table); ok {
			return snakeToCamel(trimmed)
		}
	}
	return snakeToCamel(name)
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
