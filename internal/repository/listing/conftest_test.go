package listing

import (
	"context"
	"testing"

	"github.com/tradehub-ng/tradehub/internal/db"
	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
	"github.com/tradehub-ng/tradehub/internal/domain/search/filters"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	delFn         func(ctx context.Context, key string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	incrFn        func(ctx context.Context, key string) (int64, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	searchRowsFn  func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index string, f filters.Filters) (int, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Incr(ctx context.Context, key string) (int64, error) {
	if m.incrFn != nil {
		return m.incrFn(ctx, key)
	}
	return 1, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) SearchRows(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchRowsFn != nil {
		return m.searchRowsFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index string, f filters.Filters) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, f)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms)
	return repo, ms
}

func testListing(t *testing.T, id string) domlst.Listing {
	t.Helper()
	l, err := domlst.New(
		id, "iPhone 13 Pro", "Barely used, unlocked", 450000,
		"cat-electronics", domlst.ConditionLikeNew,
		"Ikeja", "Lagos", []string{"https://img.example/1.jpg"}, "seller-1",
	)
	if err != nil {
		t.Fatalf("build listing: %v", err)
	}
	return l
}
