package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/tradehub-ng/tradehub/internal/db"
	"github.com/tradehub-ng/tradehub/internal/domain/search/filters"
)

// SearchRows runs a filtered, sorted, paginated query via FT.AGGREGATE.
// FT.AGGREGATE is used instead of FT.SEARCH because its SORTBY accepts
// multiple properties, which lets every sort order carry the @seq tie-break
// needed for stable offset pagination.
func (s *Store) SearchRows(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}

	args := []string{q.IndexName, buildListingQuery(q.Filters), "LOAD", "*"}
	args = append(args, sortArgs(q.Filters.Sort())...)
	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	return parseAggregateResult(raw)
}

// SearchCount returns the exact match count via FT.SEARCH with LIMIT 0 0.
func (s *Store) SearchCount(ctx context.Context, index string, f filters.Filters) (int, error) {
	if index == "" {
		return 0, fmt.Errorf("index name is required")
	}

	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(index, buildListingQuery(f), "LIMIT", "0", "0", "DIALECT", "2").
		Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// --- Query building ---

// buildListingQuery translates an active filter set into an FT query string.
// All clauses are ANDed; within a clause, selected values are ORed. The
// active-status scope is always present so sold and deactivated listings
// never surface in browse results.
func buildListingQuery(f filters.Filters) string {
	parts := []string{"@status:{active}"}

	if t := f.Text(); t != "" {
		w := wildcardContains(t)
		parts = append(parts, fmt.Sprintf("(@title:{%s} | @description:{%s})", w, w))
	}

	if ids := f.CategoryIDs(); len(ids) > 0 {
		parts = append(parts, buildTagUnion("category_id", ids))
	}

	if conds := f.Conditions(); len(conds) > 0 {
		vals := make([]string, len(conds))
		for i, c := range conds {
			vals[i] = string(c)
		}
		parts = append(parts, buildTagUnion("condition", vals))
	}

	if f.MinPrice() != nil || f.MaxPrice() != nil {
		parts = append(parts, buildPriceRange(f.MinPrice(), f.MaxPrice()))
	}

	if loc := f.Location(); loc != "" {
		parts = append(parts, buildLocationClause(loc))
	}

	return strings.Join(parts, " ")
}

func buildTagUnion(key string, values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = tagEscaper.Replace(v)
	}
	return fmt.Sprintf("@%s:{%s}", key, strings.Join(escaped, " | "))
}

func buildPriceRange(minPrice, maxPrice *float64) string {
	minBound := "-inf"
	maxBound := "+inf"
	if minPrice != nil {
		minBound = strconv.FormatFloat(*minPrice, 'f', -1, 64)
	}
	if maxPrice != nil {
		maxBound = strconv.FormatFloat(*maxPrice, 'f', -1, 64)
	}
	// An inverted range composes normally and matches nothing.
	return fmt.Sprintf("@price:[%s %s]", minBound, maxBound)
}

// buildLocationClause implements the loose "City, State" heuristic: the value
// is split on the first comma; with two parts the city matches @location and
// the state matches @state, with one part the value matches either field.
// Substring semantics on both sides, deliberately permissive.
func buildLocationClause(loc string) string {
	city, state, found := strings.Cut(loc, ",")
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)

	if found && city != "" && state != "" {
		return fmt.Sprintf("(@location:{%s} | @state:{%s})",
			wildcardContains(city), wildcardContains(state))
	}

	single := city
	if single == "" {
		single = state
	}
	return fmt.Sprintf("(@location:{%s} | @state:{%s})",
		wildcardContains(single), wildcardContains(single))
}

// sortArgs maps a sort order onto FT.AGGREGATE SORTBY arguments. Every order
// ends with @seq ASC so rows with equal sort values keep a fixed relative
// order across pages.
func sortArgs(s filters.Sort) []string {
	switch s {
	case filters.SortOldest:
		return []string{"SORTBY", "4", "@created_at", "ASC", "@seq", "ASC"}
	case filters.SortPriceLowHigh:
		return []string{"SORTBY", "4", "@price", "ASC", "@seq", "ASC"}
	case filters.SortPriceHighLow:
		return []string{"SORTBY", "4", "@price", "DESC", "@seq", "ASC"}
	default:
		return []string{"SORTBY", "4", "@created_at", "DESC", "@seq", "ASC"}
	}
}

// wildcardContains wraps a value in the dialect-2 wildcard syntax for
// case-insensitive substring matching on TAG fields.
func wildcardContains(s string) string {
	return "w'*" + wildcardEscaper.Replace(s) + "*'"
}

// wildcardEscaper neutralizes characters with special meaning inside w'...'
// patterns so user input is matched literally.
var wildcardEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"'", "\\'",
	"*", "\\*",
	"?", "\\?",
)

// tagEscaper escapes TAG syntax characters in exact-match values.
var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	" ", "\\ ",
)

// --- Result parsing ---

// parseAggregateResult converts a RESP2 FT.AGGREGATE reply into entries.
// The leading integer of an aggregate reply is not a reliable total for
// ungrouped queries, so the total is left to SearchCount; only the rows
// (raw[1:], each a flat field-value array) are consumed here.
func parseAggregateResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) <= 1 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, len(raw)-1)
	for _, msg := range raw[1:] {
		row, err := msg.ToArray()
		if err != nil {
			continue
		}
		entries = append(entries, db.SearchEntry{Fields: parseFieldPairs(row)})
	}

	return &db.SearchResult{Entries: entries}, nil
}

func parseFieldPairs(pairs []rueidis.RedisMessage) map[string]string {
	fields := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		k, err := pairs[i].ToString()
		if err != nil {
			continue
		}
		v, err := pairs[i+1].ToString()
		if err != nil {
			continue
		}
		fields[k] = v
	}
	return fields
}
