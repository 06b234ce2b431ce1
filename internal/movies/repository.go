package movies

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casting-agency/casting-agency/internal/platform/db"
	"github.com/casting-agency/casting-agency/internal/shared"
)

// Repository persists movies.
type Repository interface {
	List(ctx context.Context) ([]Movie, error)
	Create(ctx context.Context, movie Movie) (Movie, error)
	Update(ctx context.Context, id int64, movie Movie) (Movie, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Movie, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, year FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := []Movie{}
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Year); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (r *repository) Create(ctx context.Context, movie Movie) (Movie, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO movies (title, year) VALUES ($1, $2) RETURNING id`,
		movie.Title, movie.Year,
	).Scan(&movie.ID)
	if err != nil {
		return Movie{}, db.WriteError("insert movie", err)
	}
	return movie, nil
}

func (r *repository) Update(ctx context.Context, id int64, movie Movie) (Movie, error) {
	var updated Movie
	err := r.db.QueryRow(ctx,
		`UPDATE movies SET title = $2, year = $3 WHERE id = $1 RETURNING id, title, year`,
		id, movie.Title, movie.Year,
	).Scan(&updated.ID, &updated.Title, &updated.Year)
	if errors.Is(err, pgx.ErrNoRows) {
		return Movie{}, shared.ErrNotFound
	}
	if err != nil {
		return Movie{}, db.WriteError("update movie", err)
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return db.WriteError("delete movie", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
