package movies

import (
	"context"
	"fmt"

	"github.com/casting-agency/casting-agency/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every movie in insertion order. An empty catalogue is ErrNotFound.
func (s *Service) List(ctx context.Context) ([]Movie, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("list movies: %w", shared.ErrNotFound)
	}
	return movies, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Movie, error) {
	if err := s.validate(req); err != nil {
		return Movie{}, err
	}
	return s.repo.Create(ctx, req.movie())
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (Movie, error) {
	if id <= 0 {
		return Movie{}, shared.ErrNotFound
	}
	if err := s.validate(req); err != nil {
		return Movie{}, err
	}
	return s.repo.Update(ctx, id, req.movie(id))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
