// Package seed rebuilds the database with the fixed demonstration roster.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/casting-agency/casting-agency/internal/platform/db"
	"github.com/casting-agency/casting-agency/internal/shared"
)

// Actor and Movie rows inserted by ResetAndSeed.
var (
	Actors = []struct {
		Name   string
		Gender string
		Age    int
	}{
		{Name: "Will Smith", Gender: "Male", Age: 51},
		{Name: "Margot Robbie", Gender: "Female", Age: 29},
	}
	Movies = []struct {
		Title string
		Year  int
	}{
		{Title: "The Pursuit of Happiness", Year: 2006},
		{Title: "Suicide Squad", Year: 2016},
	}
)

// ResetAndSeed drops both tables, recreates them and inserts the seed rows in
// one transaction. Existing data is lost.
func ResetAndSeed(ctx context.Context, pool db.Beginner) error {
	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, shared.SeedLockKey); err != nil {
			return fmt.Errorf("acquire seed lock: %w", err)
		}
		if err := db.DropSchema(ctx, tx); err != nil {
			return err
		}
		if err := db.EnsureSchema(ctx, tx); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, a := range Actors {
			batch.Queue(`INSERT INTO actors (name, gender, age) VALUES ($1, $2, $3)`, a.Name, a.Gender, a.Age)
		}
		for _, m := range Movies {
			batch.Queue(`INSERT INTO movies (title, year) VALUES ($1, $2)`, m.Title, m.Year)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("seed: reset and seed: %w", err)
	}
	return nil
}
