package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dafater-app/dafater/internal/platform/httpx"
)

// ErrInvalidCredentials is returned for any unusable login attempt. The
// same error covers unknown emails, wrong passwords and disabled accounts
// so responses do not reveal which one it was.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", httpx.ErrUnauthorized)

// RepositoryPort is the credential store the service depends on.
type RepositoryPort interface {
	FindByEmail(ctx context.Context, email string) (*Credentials, error)
}

// Service wraps authentication business rules.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a new Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Authenticate validates email/password credentials and returns the user
// id on success.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	creds, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !creds.IsActive {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return creds.UserID, nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
