package chi

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tradehub-ng/tradehub/internal/domain"
	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
	"github.com/tradehub-ng/tradehub/internal/domain/search/query"
	categoryuc "github.com/tradehub-ng/tradehub/internal/usecase/category"
	healthuc "github.com/tradehub-ng/tradehub/internal/usecase/health"
	listinguc "github.com/tradehub-ng/tradehub/internal/usecase/listing"
	searchuc "github.com/tradehub-ng/tradehub/internal/usecase/search"
)

type mockListingRepo struct {
	putFn    func(ctx context.Context, l domlst.Listing) (bool, error)
	getFn    func(ctx context.Context, id string) (domlst.Listing, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockListingRepo) Put(ctx context.Context, l domlst.Listing) (bool, error) {
	if m.putFn != nil {
		return m.putFn(ctx, l)
	}
	return true, nil
}

func (m *mockListingRepo) Get(ctx context.Context, id string) (domlst.Listing, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domlst.Listing{}, domain.ErrListingNotFound
}

func (m *mockListingRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockCategoryRepo struct {
	putFn    func(ctx context.Context, c domlst.Category) error
	getFn    func(ctx context.Context, id string) (domlst.Category, error)
	listFn   func(ctx context.Context) ([]domlst.Category, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockCategoryRepo) Put(ctx context.Context, c domlst.Category) error {
	if m.putFn != nil {
		return m.putFn(ctx, c)
	}
	return nil
}

func (m *mockCategoryRepo) Get(ctx context.Context, id string) (domlst.Category, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	c, _ := domlst.NewCategory(id, "", "Electronics")
	return c, nil
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domlst.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []domlst.Category{}, nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockSearchRepo struct {
	searchFn func(ctx context.Context, q query.Query) (query.Page, error)
}

func (m *mockSearchRepo) Search(ctx context.Context, q query.Query) (query.Page, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return query.NewPage(nil, 0), nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type testDeps struct {
	listings *mockListingRepo
	cats     *mockCategoryRepo
	search   *mockSearchRepo
	pinger   *mockPinger
}

// newTestRouter wires a full router over mock repositories. apiKeys empty
// means auth disabled.
func newTestRouter(t *testing.T, deps testDeps, apiKeys ...string) *chi.Mux {
	t.Helper()

	if deps.listings == nil {
		deps.listings = &mockListingRepo{}
	}
	if deps.cats == nil {
		deps.cats = &mockCategoryRepo{}
	}
	if deps.search == nil {
		deps.search = &mockSearchRepo{}
	}
	if deps.pinger == nil {
		deps.pinger = &mockPinger{}
	}

	logger := zap.NewNop()
	srv := NewServer(
		listinguc.New(deps.listings, deps.cats, logger),
		categoryuc.New(deps.cats, logger),
		searchuc.New(deps.search, searchuc.Pagination{}, logger),
		healthuc.New(deps.pinger),
		apiKeys,
		logger,
	)

	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func testStoredListing(id string) domlst.Listing {
	return domlst.Reconstruct(
		id, "iPhone 13 Pro", "Clean, barely used", 450000,
		"cat-electronics", domlst.ConditionLikeNew,
		"Ikeja", "Lagos", domlst.StatusActive,
		[]string{"https://img.example/1.jpg"}, "seller-1",
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	)
}
