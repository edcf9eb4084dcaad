package browse

import (
	"net/url"
	"strconv"
	"strings"
)

// Sort orders accepted by the search API.
const (
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortPriceLowHigh = "price_low_high"
	SortPriceHighLow = "price_high_low"
)

// Item conditions accepted by the search API.
var knownConditions = map[string]struct{}{
	"new": {}, "like_new": {}, "good": {}, "fair": {}, "poor": {},
}

// FilterState is the full set of browse constraints. The zero value means
// "no filters, newest first". An empty Sort is the newest default; it is
// kept empty rather than materialized so the all-defaults state encodes to
// an empty query string.
type FilterState struct {
	Query      string
	Categories []string
	Conditions []string
	Location   string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
}

// ParseQuery decodes a URL query into a FilterState. Decoding never fails:
// malformed prices are treated as absent, unknown conditions are dropped, an
// unknown sort falls back to the default, and unrecognized parameters are
// ignored. A stale or hand-edited URL always yields a usable state.
func ParseQuery(values url.Values) FilterState {
	f := FilterState{
		Query:      strings.TrimSpace(values.Get("q")),
		Categories: splitList(values["categories"]),
		Conditions: keepKnownConditions(splitList(values["conditions"])),
		Location:   strings.TrimSpace(values.Get("location")),
		MinPrice:   parsePrice(values.Get("price_min")),
		MaxPrice:   parsePrice(values.Get("price_max")),
	}
	switch s := values.Get("sort"); s {
	case SortOldest, SortPriceLowHigh, SortPriceHighLow:
		f.Sort = s
	}
	return f
}

// Values encodes the state as URL query parameters, omitting every field at
// its default. ParseQuery(f.Values()) is equivalent to f.
func (f FilterState) Values() url.Values {
	values := url.Values{}
	if f.Query != "" {
		values.Set("q", f.Query)
	}
	if len(f.Categories) > 0 {
		values.Set("categories", strings.Join(f.Categories, ","))
	}
	if len(f.Conditions) > 0 {
		values.Set("conditions", strings.Join(f.Conditions, ","))
	}
	if f.Location != "" {
		values.Set("location", f.Location)
	}
	if f.MinPrice != nil {
		values.Set("price_min", formatPrice(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		values.Set("price_max", formatPrice(*f.MaxPrice))
	}
	if f.Sort != "" && f.Sort != SortNewest {
		values.Set("sort", f.Sort)
	}
	return values
}

// Encode returns the canonical query string form. The all-defaults state
// encodes to "".
func (f FilterState) Encode() string {
	return f.Values().Encode()
}

// IsZero reports whether every field is at its default.
func (f FilterState) IsZero() bool {
	return f.Query == "" &&
		len(f.Categories) == 0 &&
		len(f.Conditions) == 0 &&
		f.Location == "" &&
		f.MinPrice == nil &&
		f.MaxPrice == nil &&
		(f.Sort == "" || f.Sort == SortNewest)
}

// Equal reports whether two states describe the same constraints. Category
// and condition sets are order-insensitive; an empty sort equals newest.
func (f FilterState) Equal(other FilterState) bool {
	return f.Query == other.Query &&
		sameSet(f.Categories, other.Categories) &&
		sameSet(f.Conditions, other.Conditions) &&
		f.Location == other.Location &&
		samePrice(f.MinPrice, other.MinPrice) &&
		samePrice(f.MaxPrice, other.MaxPrice) &&
		normalizeSort(f.Sort) == normalizeSort(other.Sort)
}

// clone returns a deep copy so callers can mutate slices freely.
func (f FilterState) clone() FilterState {
	c := f
	c.Categories = append([]string(nil), f.Categories...)
	c.Conditions = append([]string(nil), f.Conditions...)
	if f.MinPrice != nil {
		v := *f.MinPrice
		c.MinPrice = &v
	}
	if f.MaxPrice != nil {
		v := *f.MaxPrice
		c.MaxPrice = &v
	}
	return c
}

func normalizeSort(s string) string {
	if s == "" {
		return SortNewest
	}
	return s
}

func splitList(raw []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}

func keepKnownConditions(in []string) []string {
	var out []string
	for _, c := range in {
		if _, ok := knownConditions[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}

func samePrice(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
