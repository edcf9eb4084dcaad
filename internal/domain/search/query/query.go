// Package query defines the paginated search request and its result page.
package query

import (
	"fmt"

	"github.com/tradehub-ng/tradehub/internal/domain/listing"
	"github.com/tradehub-ng/tradehub/internal/domain/search/filters"
)

// Query is a filtered, sorted, paginated listings request.
type Query struct {
	filters filters.Filters
	limit   int
	offset  int
}

// New validates and creates a Query.
func New(f filters.Filters, limit, offset int) (Query, error) {
	if limit <= 0 {
		return Query{}, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if offset < 0 {
		return Query{}, fmt.Errorf("offset must not be negative, got %d", offset)
	}
	return Query{filters: f, limit: limit, offset: offset}, nil
}

// Filters returns the active filter set.
func (q Query) Filters() filters.Filters { return q.filters }

// Limit returns the page size.
func (q Query) Limit() int { return q.limit }

// Offset returns the pagination offset.
func (q Query) Offset() int { return q.offset }

// Page is one page of search results plus the total match count before
// pagination.
type Page struct {
	items []listing.Listing
	total int
}

// NewPage creates a result page.
func NewPage(items []listing.Listing, total int) Page {
	return Page{items: items, total: total}
}

// Items returns the page items in server sort order.
func (p Page) Items() []listing.Listing { return p.items }

// Total returns the full match count independent of pagination.
func (p Page) Total() int { return p.total }
