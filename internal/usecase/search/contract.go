package search

import (
	"context"

	"github.com/tradehub-ng/tradehub/internal/domain/search/query"
)

// Repository defines the storage contract for listing search.
type Repository interface {
	Search(ctx context.Context, q query.Query) (query.Page, error)
}
