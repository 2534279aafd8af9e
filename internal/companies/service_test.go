package companies

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dafater-app/dafater/internal/platform/httpx"
)

type seededCategory struct {
	companyID int64
	seed      CategorySeed
}

type memoryCompanyRepo struct {
	companies  map[int64]*Company
	members    map[int64][]string
	categories []seededCategory
	nextID     int64

	failCategoryInsert bool
	listRows           []Company
}

func newMemoryCompanyRepo() *memoryCompanyRepo {
	return &memoryCompanyRepo{
		companies: make(map[int64]*Company),
		members:   make(map[int64][]string),
	}
}

type memoryTx struct {
	repo       *memoryCompanyRepo
	companies  []Company
	categories []seededCategory
}

func (r *memoryCompanyRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx := &memoryTx{repo: r}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	// Commit: only now do the staged rows become visible.
	for _, c := range tx.companies {
		stored := c
		r.companies[c.ID] = &stored
	}
	r.categories = append(r.categories, tx.categories...)
	return nil
}

func (t *memoryTx) InsertCompany(ctx context.Context, company Company) (int64, error) {
	t.repo.nextID++
	company.ID = t.repo.nextID
	t.companies = append(t.companies, company)
	return company.ID, nil
}

func (t *memoryTx) InsertCategory(ctx context.Context, companyID int64, seed CategorySeed) error {
	if t.repo.failCategoryInsert {
		return errors.New("category insert failed")
	}
	t.categories = append(t.categories, seededCategory{companyID: companyID, seed: seed})
	return nil
}

func (r *memoryCompanyRepo) Get(ctx context.Context, id int64) (*Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *memoryCompanyRepo) ListForUser(ctx context.Context, userID string) ([]Company, error) {
	if r.listRows != nil {
		return r.listRows, nil
	}
	var out []Company
	for _, c := range r.companies {
		if c.OwnerID == userID {
			out = append(out, *c)
			continue
		}
		for _, m := range r.members[c.ID] {
			if m == userID {
				out = append(out, *c)
				break
			}
		}
	}
	return out, nil
}

func (r *memoryCompanyRepo) AddMember(ctx context.Context, companyID int64, userID string) error {
	r.members[companyID] = append(r.members[companyID], userID)
	return nil
}

type allowAllGuard struct{}

func (allowAllGuard) HasAccess(ctx context.Context, companyID int64, userID string) (bool, error) {
	return true, nil
}

type denyAllGuard struct{}

func (denyAllGuard) HasAccess(ctx context.Context, companyID int64, userID string) (bool, error) {
	return false, nil
}

func TestCreateSeedsDefaultCategories(t *testing.T) {
	repo := newMemoryCompanyRepo()
	svc := NewService(repo, allowAllGuard{})

	company, err := svc.Create(context.Background(), "user-a", CreateCompanyRequest{
		Name:     "Corner Bakery",
		Currency: "USD",
		TaxRate:  15,
	})
	require.NoError(t, err)
	require.Equal(t, "user-a", company.OwnerID)
	require.NotZero(t, company.ID)

	require.Len(t, repo.categories, 6)
	var income, expense int
	for _, c := range repo.categories {
		require.Equal(t, company.ID, c.companyID)
		switch c.seed.Kind {
		case "income":
			income++
		case "expense":
			expense++
		}
	}
	require.Equal(t, 2, income)
	require.Equal(t, 4, expense)
}

func TestCreateRollsBackWhenSeedingFails(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.failCategoryInsert = true
	svc := NewService(repo, allowAllGuard{})

	_, err := svc.Create(context.Background(), "user-a", CreateCompanyRequest{
		Name:     "Corner Bakery",
		Currency: "USD",
	})
	require.Error(t, err)

	companies, err := svc.ListForUser(context.Background(), "user-a")
	require.NoError(t, err)
	require.Empty(t, companies)
}

func TestCreateRejectsUnknownCurrency(t *testing.T) {
	svc := NewService(newMemoryCompanyRepo(), allowAllGuard{})

	_, err := svc.Create(context.Background(), "user-a", CreateCompanyRequest{
		Name:     "Corner Bakery",
		Currency: "XXX_NOT_A_CODE",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestListForUserDeduplicates(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.listRows = []Company{
		{ID: 1, Name: "Alpha", OwnerID: "user-a"},
		{ID: 1, Name: "Alpha", OwnerID: "user-a"},
		{ID: 2, Name: "Beta", OwnerID: "user-b"},
	}
	svc := NewService(repo, allowAllGuard{})

	companies, err := svc.ListForUser(context.Background(), "user-a")
	require.NoError(t, err)
	require.Len(t, companies, 2)
	require.Equal(t, int64(1), companies[0].ID)
	require.Equal(t, int64(2), companies[1].ID)
}

func TestGetHidesDeniedCompanies(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.companies[7] = &Company{ID: 7, Name: "Hidden", OwnerID: "user-a"}

	svc := NewService(repo, denyAllGuard{})
	_, err := svc.Get(context.Background(), 7, "user-b")
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestAddMemberRequiresOwner(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.companies[1] = &Company{ID: 1, Name: "Alpha", OwnerID: "user-a"}
	svc := NewService(repo, allowAllGuard{})

	err := svc.AddMember(context.Background(), 1, "user-b", "user-c")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)

	require.NoError(t, svc.AddMember(context.Background(), 1, "user-a", "user-c"))
	require.Equal(t, []string{"user-c"}, repo.members[1])
}
