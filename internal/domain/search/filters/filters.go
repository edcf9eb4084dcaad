// Package filters holds the value objects describing an active browse filter
// set: free-text search, category and condition selections, a location
// fragment, price bounds, and the sort order.
package filters

import (
	"strings"

	"github.com/tradehub-ng/tradehub/internal/domain/listing"
)

// Sort is the result ordering applied to a search.
type Sort string

// Supported sort orders.
const (
	SortNewest       Sort = "newest"
	SortOldest       Sort = "oldest"
	SortPriceLowHigh Sort = "price_low_high"
	SortPriceHighLow Sort = "price_high_low"
)

// ParseSort maps a sort string to a Sort, falling back to SortNewest for
// anything unrecognized. A filter bar must never fail on bad input.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortOldest:
		return SortOldest
	case SortPriceLowHigh:
		return SortPriceLowHigh
	case SortPriceHighLow:
		return SortPriceHighLow
	default:
		return SortNewest
	}
}

// Filters is the set of active browse constraints. The zero value means
// "active listings, no constraints, newest first".
type Filters struct {
	text        string
	categoryIDs []string
	conditions  []listing.Condition
	location    string
	minPrice    *float64
	maxPrice    *float64
	sort        Sort
}

// Params carries the raw constraint values for New.
type Params struct {
	Text        string
	CategoryIDs []string
	Conditions  []listing.Condition
	Location    string
	MinPrice    *float64
	MaxPrice    *float64
	Sort        Sort
}

// New normalizes and creates a Filters value. Empty and duplicate set members
// are dropped; text and location are trimmed; a zero sort becomes newest.
// Inverted price bounds are kept as-is: they compose into an empty result,
// which is valid.
func New(p Params) Filters {
	if p.Sort == "" {
		p.Sort = SortNewest
	}
	return Filters{
		text:        strings.TrimSpace(p.Text),
		categoryIDs: dedupeStrings(p.CategoryIDs),
		conditions:  dedupeConditions(p.Conditions),
		location:    strings.TrimSpace(p.Location),
		minPrice:    p.MinPrice,
		maxPrice:    p.MaxPrice,
		sort:        p.Sort,
	}
}

// Text returns the free-text search query ("" means no text filter).
func (f Filters) Text() string { return f.text }

// CategoryIDs returns the selected category ids (empty means all).
func (f Filters) CategoryIDs() []string { return f.categoryIDs }

// Conditions returns the selected conditions (empty means all).
func (f Filters) Conditions() []listing.Condition { return f.conditions }

// Location returns the free-text location fragment ("" means no constraint).
func (f Filters) Location() string { return f.location }

// MinPrice returns the inclusive lower price bound, nil when unbounded.
func (f Filters) MinPrice() *float64 { return f.minPrice }

// MaxPrice returns the inclusive upper price bound, nil when unbounded.
func (f Filters) MaxPrice() *float64 { return f.maxPrice }

// Sort returns the result ordering.
func (f Filters) Sort() Sort {
	if f.sort == "" {
		return SortNewest
	}
	return f.sort
}

// IsZero reports whether no constraint beyond the implicit active-status
// scope is set and the sort is the default.
func (f Filters) IsZero() bool {
	return f.text == "" &&
		len(f.categoryIDs) == 0 &&
		len(f.conditions) == 0 &&
		f.location == "" &&
		f.minPrice == nil &&
		f.maxPrice == nil &&
		f.Sort() == SortNewest
}

func dedupeStrings(in []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func dedupeConditions(in []listing.Condition) []listing.Condition {
	var out []listing.Condition
	seen := make(map[listing.Condition]struct{}, len(in))
	for _, c := range in {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
