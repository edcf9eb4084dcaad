// Package category stores the marketplace category directory: one hash per
// category plus a set of known ids for listing.
package category

import (
	"context"
	"fmt"
	"sort"

	"github.com/tradehub-ng/tradehub/internal/domain"
	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
)

// Key patterns: tradehub:category:{id}, tradehub:categories

const (
	catKeyPrefix = domain.KeyPrefix + "category:"
	catSetKey    = domain.KeyPrefix + "categories"
)

// store is the consumer interface for categories (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements usecase/category.Repository.
type Repo struct {
	store store
}

// New creates a category repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put stores a category and registers it in the id set.
func (r *Repo) Put(ctx context.Context, c domlst.Category) error {
	key := catKey(c.ID())

	fields := map[string]string{
		"id":   c.ID(),
		"slug": c.Slug(),
		"name": c.Name(),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset category %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, catSetKey, c.ID()); err != nil {
		return fmt.Errorf("sadd category %s: %w", c.ID(), err)
	}
	return nil
}

// Get returns a category by id.
func (r *Repo) Get(ctx context.Context, id string) (domlst.Category, error) {
	m, err := r.store.HGetAll(ctx, catKey(id))
	if err != nil {
		return domlst.Category{}, fmt.Errorf("hgetall category %s: %w", id, err)
	}
	if len(m) == 0 {
		return domlst.Category{}, domain.ErrCategoryNotFound
	}
	return categoryFromHash(m)
}

// List returns all categories sorted by display name.
func (r *Repo) List(ctx context.Context) ([]domlst.Category, error) {
	ids, err := r.store.SMembers(ctx, catSetKey)
	if err != nil {
		return nil, fmt.Errorf("smembers categories: %w", err)
	}
	if len(ids) == 0 {
		return []domlst.Category{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = catKey(id)
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi categories: %w", err)
	}

	categories := make([]domlst.Category, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			// Stale set member, skip.
			continue
		}
		c, err := categoryFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse category %s: %w", keys[i], err)
		}
		categories = append(categories, c)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name() < categories[j].Name()
	})

	return categories, nil
}

// Delete removes a category and its set membership.
func (r *Repo) Delete(ctx context.Context, id string) error {
	m, err := r.store.HGetAll(ctx, catKey(id))
	if err != nil {
		return fmt.Errorf("hgetall category %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.ErrCategoryNotFound
	}

	if err := r.store.Del(ctx, catKey(id)); err != nil {
		return fmt.Errorf("del category %s: %w", id, err)
	}
	if err := r.store.SRem(ctx, catSetKey, id); err != nil {
		return fmt.Errorf("srem category %s: %w", id, err)
	}
	return nil
}

func catKey(id string) string {
	return catKeyPrefix + id
}

func categoryFromHash(m map[string]string) (domlst.Category, error) {
	return domlst.NewCategory(m["id"], m["slug"], m["name"])
}
