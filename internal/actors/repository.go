package actors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casting-agency/casting-agency/internal/platform/db"
	"github.com/casting-agency/casting-agency/internal/shared"
)

// Repository persists actors.
type Repository interface {
	List(ctx context.Context) ([]Actor, error)
	Create(ctx context.Context, actor Actor) (Actor, error)
	Update(ctx context.Context, id int64, actor Actor) (Actor, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Actor, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, gender, age FROM actors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	actors := []Actor{}
	for rows.Next() {
		var a Actor
		if err := rows.Scan(&a.ID, &a.Name, &a.Gender, &a.Age); err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		actors = append(actors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	return actors, nil
}

func (r *repository) Create(ctx context.Context, actor Actor) (Actor, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO actors (name, gender, age) VALUES ($1, $2, $3) RETURNING id`,
		actor.Name, actor.Gender, actor.Age,
	).Scan(&actor.ID)
	if err != nil {
		return Actor{}, db.WriteError("insert actor", err)
	}
	return actor, nil
}

func (r *repository) Update(ctx context.Context, id int64, actor Actor) (Actor, error) {
	var updated Actor
	err := r.db.QueryRow(ctx,
		`UPDATE actors SET name = $2, gender = $3, age = $4 WHERE id = $1
		 RETURNING id, name, gender, age`,
		id, actor.Name, actor.Gender, actor.Age,
	).Scan(&updated.ID, &updated.Name, &updated.Gender, &updated.Age)
	if errors.Is(err, pgx.ErrNoRows) {
		return Actor{}, shared.ErrNotFound
	}
	if err != nil {
		return Actor{}, db.WriteError("update actor", err)
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM actors WHERE id = $1`, id)
	if err != nil {
		return db.WriteError("delete actor", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
