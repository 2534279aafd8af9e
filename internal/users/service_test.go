package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dafater-app/dafater/internal/platform/httpx"
)

type memoryUserRepo struct {
	byID map[string]*User
}

func (r *memoryUserRepo) Get(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", httpx.ErrNotFound)
	}
	return u, nil
}

func (r *memoryUserRepo) Upsert(ctx context.Context, input UpsertUserInput) (*User, error) {
	u := &User{
		ID:              input.ID,
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		ProfileImageURL: input.ProfileImageURL,
	}
	r.byID[input.ID] = u
	return u, nil
}

func TestUpsertThenGet(t *testing.T) {
	svc := NewService(&memoryUserRepo{byID: make(map[string]*User)})

	email := "owner@example.com"
	created, err := svc.Upsert(context.Background(), UpsertUserInput{ID: "user-a", Email: &email})
	require.NoError(t, err)
	require.Equal(t, "user-a", created.ID)

	got, err := svc.Get(context.Background(), "user-a")
	require.NoError(t, err)
	require.Equal(t, &email, got.Email)
}

func TestGetRequiresID(t *testing.T) {
	svc := NewService(&memoryUserRepo{byID: make(map[string]*User)})

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)

	_, err = svc.Upsert(context.Background(), UpsertUserInput{})
	require.Error(t, err)
}
