package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkwell/inkwell-server/internal/model"
)

const uniqueViolationCode = "23505"

// constraintFields maps unique-constraint names to the field a duplicate
// reports. The names must match the migrations.
var constraintFields = map[string]string{
	"users_username_key":     "username",
	"users_email_key":        "email",
	"posts_slug_key":         "slug",
	"refresh_tokens_jti_key": "jti",
}

// uniqueViolation recognizes a unique-violation driver error and reports the
// conflicting field as a model.DuplicateError.
func uniqueViolation(err error) (*model.DuplicateError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if field, ok := constraintFields[pgErr.ConstraintName]; ok {
			return &model.DuplicateError{Field: field}, true
		}
	}
	return nil, false
}
