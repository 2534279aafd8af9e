package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dafater-app/dafater/internal/platform/httpx"
)

type fakeAccessRepo struct {
	owners  map[int64]string
	members map[int64][]string
	err     error
}

func (f *fakeAccessRepo) CompanyOwner(ctx context.Context, companyID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	owner, ok := f.owners[companyID]
	if !ok {
		return "", ErrNotFound
	}
	return owner, nil
}

func (f *fakeAccessRepo) IsMember(ctx context.Context, companyID int64, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, m := range f.members[companyID] {
		if m == userID {
			return true, nil
		}
	}
	return false, nil
}

func TestHasAccess(t *testing.T) {
	repo := &fakeAccessRepo{
		owners:  map[int64]string{1: "owner-a"},
		members: map[int64][]string{1: {"member-b"}},
	}
	guard := NewGuard(repo)
	ctx := context.Background()

	cases := []struct {
		name      string
		companyID int64
		userID    string
		want      bool
	}{
		{"owner", 1, "owner-a", true},
		{"member", 1, "member-b", true},
		{"stranger", 1, "user-c", false},
		{"missing company", 42, "owner-a", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := guard.HasAccess(ctx, tc.companyID, tc.userID)
			require.NoError(t, err)
			require.Equal(t, tc.want, ok)
		})
	}
}

func TestRequire(t *testing.T) {
	repo := &fakeAccessRepo{owners: map[int64]string{1: "owner-a"}}
	guard := NewGuard(repo)
	ctx := context.Background()

	require.NoError(t, guard.Require(ctx, 1, "owner-a"))

	err := guard.Require(ctx, 1, "stranger")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)

	err = guard.Require(ctx, 42, "owner-a")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestRequirePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	guard := NewGuard(&fakeAccessRepo{err: storeErr})

	err := guard.Require(context.Background(), 1, "owner-a")
	require.ErrorIs(t, err, storeErr)
	require.NotErrorIs(t, err, httpx.ErrUnauthorized)
}
