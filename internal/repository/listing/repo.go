package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/tradehub-ng/tradehub/internal/db"
	"github.com/tradehub-ng/tradehub/internal/domain"
	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
	"github.com/tradehub-ng/tradehub/internal/domain/search/filters"
	"github.com/tradehub-ng/tradehub/internal/domain/search/query"
)

// store is the consumer interface for listings (ISP).
//
//nolint:interfacebloat // listing repo needs hash + counter + index + search operations
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchRows(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, f filters.Filters) (int, error)
}

// Repo implements usecase/search.Repository and usecase/listing.Repository.
type Repo struct {
	store store
}

// New creates a listing repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the listing search index if it does not exist yet.
// Safe to call on every startup.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		return nil
	}

	if err := r.store.CreateIndex(ctx, buildIndex()); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", IndexName, err)
	}
	return nil
}

// Put creates or updates a listing. Returns true if created. An update keeps
// the stored seq and created_at so the listing does not jump in sort order.
func (r *Repo) Put(ctx context.Context, l domlst.Listing) (bool, error) {
	key := listingKey(l.ID())

	current, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return false, fmt.Errorf("hgetall listing %s: %w", key, err)
	}

	created := len(current) == 0

	var seq int64
	if created {
		seq, err = r.store.Incr(ctx, seqKey)
		if err != nil {
			return false, fmt.Errorf("incr seq: %w", err)
		}
	} else {
		seq = parseSeq(current)
		prev := parseHashFields(current)
		l = domlst.Reconstruct(
			l.ID(), l.Title(), l.Description(), l.Price(),
			l.CategoryID(), l.Condition(),
			l.Location(), l.State(), l.Status(),
			l.Images(), l.SellerID(), prev.CreatedAt(),
		)
	}

	if err := r.store.HSet(ctx, key, buildHashFields(l, seq)); err != nil {
		return false, fmt.Errorf("hset listing %s: %w", key, err)
	}
	return created, nil
}

// Get returns a listing by ID.
func (r *Repo) Get(ctx context.Context, id string) (domlst.Listing, error) {
	key := listingKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domlst.Listing{}, fmt.Errorf("hgetall listing %s: %w", key, err)
	}
	if len(m) == 0 {
		return domlst.Listing{}, domain.ErrListingNotFound
	}
	return parseHashFields(m), nil
}

// Delete removes a listing.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := listingKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrListingNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del listing %s: %w", key, err)
	}
	return nil
}

// Search runs a filtered, paginated query and returns one result page.
// The total is read first via a count query; the page rows follow. Writes
// landing between the two calls can skew the pair slightly, which browse
// semantics tolerate.
func (r *Repo) Search(ctx context.Context, q query.Query) (query.Page, error) {
	total, err := r.store.SearchCount(ctx, IndexName, q.Filters())
	if err != nil {
		return query.Page{}, fmt.Errorf("search count: %w", err)
	}
	if total == 0 || q.Offset() >= total {
		return query.NewPage(nil, total), nil
	}

	result, err := r.store.SearchRows(ctx, &db.ListQuery{
		IndexName: IndexName,
		Filters:   q.Filters(),
		Offset:    q.Offset(),
		Limit:     q.Limit(),
	})
	if err != nil {
		return query.Page{}, fmt.Errorf("search rows: %w", err)
	}

	items := make([]domlst.Listing, 0, len(result.Entries))
	for _, entry := range result.Entries {
		items = append(items, parseHashFields(entry.Fields))
	}
	return query.NewPage(items, total), nil
}
