package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/casting-agency/casting-agency/internal/shared"
)

// WriteError wraps a failed write in shared.ErrUnprocessable, keeping the
// Postgres SQLSTATE and constraint in the message for logs.
func WriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w: sqlstate %s constraint %q: %s",
			op, shared.ErrUnprocessable, pgErr.Code, pgErr.ConstraintName, pgErr.Message)
	}
	return fmt.Errorf("%s: %w: %v", op, shared.ErrUnprocessable, err)
}
