package db

import "github.com/tradehub-ng/tradehub/internal/domain/search/filters"

// ListQuery is the input for a filtered, sorted, paginated listings search.
// The driver translates Filters into the backend query language; the sort
// order is taken from Filters and always extended with a deterministic
// tie-break so that offset pagination never duplicates or drops rows on
// equal sort values.
type ListQuery struct {
	IndexName string
	Filters   filters.Filters
	Offset    int
	Limit     int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Fields map[string]string
}
