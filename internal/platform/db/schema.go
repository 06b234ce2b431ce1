package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer runs statements. Pools, connections and transactions satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Columns are nullable because PATCH overwrites omitted fields with NULL.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS actors (
		id     BIGSERIAL PRIMARY KEY,
		name   TEXT,
		gender TEXT,
		age    INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id    BIGSERIAL PRIMARY KEY,
		title TEXT,
		year  INTEGER
	)`,
}

// EnsureSchema creates the actors and movies tables when missing.
func EnsureSchema(ctx context.Context, db Execer) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("platform/db: ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema removes the actors and movies tables.
func DropSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, `DROP TABLE IF EXISTS actors, movies`); err != nil {
		return fmt.Errorf("platform/db: drop schema: %w", err)
	}
	return nil
}
