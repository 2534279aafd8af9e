package users

import (
	"context"
	"errors"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	Get(ctx context.Context, id string) (*User, error)
	Upsert(ctx context.Context, input UpsertUserInput) (*User, error)
}

// Service handles user identity bookkeeping.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Get returns the user record for an id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, errors.New("user id required")
	}
	return s.repo.Get(ctx, id)
}

// Upsert creates or refreshes the user record for a verified identity.
func (s *Service) Upsert(ctx context.Context, input UpsertUserInput) (*User, error) {
	if input.ID == "" {
		return nil, errors.New("user id required")
	}
	return s.repo.Upsert(ctx, input)
}
