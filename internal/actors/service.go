package actors

import (
	"context"
	"fmt"

	"github.com/casting-agency/casting-agency/internal/shared"
)

// Service applies the actor rules on top of a Repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every actor in insertion order. An empty roster is ErrNotFound.
func (s *Service) List(ctx context.Context) ([]Actor, error) {
	actors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return nil, fmt.Errorf("list actors: %w", shared.ErrNotFound)
	}
	return actors, nil
}

// Create validates and stores a new actor.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Actor, error) {
	if err := s.validate(req); err != nil {
		return Actor{}, err
	}
	return s.repo.Create(ctx, req.actor())
}

// Update overwrites every attribute of actor id.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (Actor, error) {
	if id <= 0 {
		return Actor{}, shared.ErrNotFound
	}
	if err := s.validate(req); err != nil {
		return Actor{}, err
	}
	return s.repo.Update(ctx, id, req.actor(id))
}

// Delete removes actor id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
