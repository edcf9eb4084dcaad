package redis

import (
	"strings"
	"testing"

	"github.com/tradehub-ng/tradehub/internal/domain/listing"
	"github.com/tradehub-ng/tradehub/internal/domain/search/filters"
)

func f64(v float64) *float64 { return &v }

func TestBuildListingQueryEmptyFilters(t *testing.T) {
	got := buildListingQuery(filters.New(filters.Params{}))
	if got != "@status:{active}" {
		t.Errorf("expected bare active scope, got %q", got)
	}
}

func TestBuildListingQueryText(t *testing.T) {
	got := buildListingQuery(filters.New(filters.Params{Text: "iphone"}))
	want := "@status:{active} (@title:{w'*iphone*'} | @description:{w'*iphone*'})"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildListingQueryTextEscaping(t *testing.T) {
	got := buildListingQuery(filters.New(filters.Params{Text: `50% off*`}))
	if !strings.Contains(got, `w'*50% off\**'`) {
		t.Errorf("wildcard chars not escaped: %q", got)
	}
}

func TestBuildListingQueryCategories(t *testing.T) {
	got := buildListingQuery(filters.New(filters.Params{
		CategoryIDs: []string{"cat-1", "cat-2"},
	}))
	want := "@status:{active} @category_id:{cat\\-1 | cat\\-2}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildListingQueryConditions(t *testing.T) {
	got := buildListingQuery(filters.New(filters.Params{
		Conditions: []listing.Condition{listing.ConditionNew, listing.ConditionLikeNew},
	}))
	want := "@status:{active} @condition:{new | like_new}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildListingQueryPriceRange(t *testing.T) {
	tests := []struct {
		name     string
		minPrice *float64
		maxPrice *float64
		want     string
	}{
		{"both bounds", f64(100), f64(500), "@price:[100 500]"},
		{"min only", f64(250.5), nil, "@price:[250.5 +inf]"},
		{"max only", nil, f64(999), "@price:[-inf 999]"},
		{"inverted still composed", f64(500), f64(100), "@price:[500 100]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildListingQuery(filters.New(filters.Params{
				MinPrice: tt.minPrice,
				MaxPrice: tt.maxPrice,
			}))
			if !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want clause %q", got, tt.want)
			}
		})
	}
}

func TestBuildListingQueryNoPriceClauseWithoutBounds(t *testing.T) {
	got := buildListingQuery(filters.New(filters.Params{Text: "chair"}))
	if strings.Contains(got, "@price") {
		t.Errorf("unexpected price clause: %q", got)
	}
}

func TestBuildLocationClause(t *testing.T) {
	tests := []struct {
		name string
		loc  string
		want string
	}{
		{
			"city and state",
			"Ikeja, Lagos",
			"(@location:{w'*Ikeja*'} | @state:{w'*Lagos*'})",
		},
		{
			"single term matches either field",
			"Lagos",
			"(@location:{w'*Lagos*'} | @state:{w'*Lagos*'})",
		},
		{
			"trailing comma falls back to single term",
			"Ikeja,",
			"(@location:{w'*Ikeja*'} | @state:{w'*Ikeja*'})",
		},
		{
			"leading comma falls back to single term",
			", Lagos",
			"(@location:{w'*Lagos*'} | @state:{w'*Lagos*'})",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildLocationClause(tt.loc); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildListingQueryAllFilters(t *testing.T) {
	got := buildListingQuery(filters.New(filters.Params{
		Text:        "sofa",
		CategoryIDs: []string{"furniture"},
		Conditions:  []listing.Condition{listing.ConditionGood},
		Location:    "Yaba, Lagos",
		MinPrice:    f64(50),
		MaxPrice:    f64(300),
	}))

	for _, clause := range []string{
		"@status:{active}",
		"(@title:{w'*sofa*'} | @description:{w'*sofa*'})",
		"@category_id:{furniture}",
		"@condition:{good}",
		"@price:[50 300]",
		"(@location:{w'*Yaba*'} | @state:{w'*Lagos*'})",
	} {
		if !strings.Contains(got, clause) {
			t.Errorf("missing clause %q in %q", clause, got)
		}
	}
}

// Adding a filter must never relax the query: the narrowed query string keeps
// every clause of the broader one.
func TestBuildListingQueryClauseMonotonicity(t *testing.T) {
	broad := filters.New(filters.Params{Text: "bike"})
	narrow := filters.New(filters.Params{
		Text:        "bike",
		CategoryIDs: []string{"sports"},
		MinPrice:    f64(10),
	})

	broadQ := buildListingQuery(broad)
	narrowQ := buildListingQuery(narrow)

	for _, clause := range strings.Split(broadQ, " @") {
		clause = strings.TrimPrefix(clause, "@")
		if !strings.Contains(narrowQ, clause) {
			t.Errorf("narrowed query %q lost clause %q", narrowQ, clause)
		}
	}
}

func TestSortArgs(t *testing.T) {
	tests := []struct {
		sort    filters.Sort
		primary string
		dir     string
	}{
		{filters.SortNewest, "@created_at", "DESC"},
		{filters.SortOldest, "@created_at", "ASC"},
		{filters.SortPriceLowHigh, "@price", "ASC"},
		{filters.SortPriceHighLow, "@price", "DESC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			args := sortArgs(tt.sort)
			want := []string{"SORTBY", "4", tt.primary, tt.dir, "@seq", "ASC"}
			if len(args) != len(want) {
				t.Fatalf("got %v, want %v", args, want)
			}
			for i := range want {
				if args[i] != want[i] {
					t.Errorf("arg %d: got %q, want %q", i, args[i], want[i])
				}
			}
		})
	}
}

func TestWildcardContains(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"phone", "w'*phone*'"},
		{"it's", `w'*it\'s*'`},
		{"a*b?c", `w'*a\*b\?c*'`},
		{`back\slash`, `w'*back\\slash*'`},
	}

	for _, tt := range tests {
		if got := wildcardContains(tt.in); got != tt.want {
			t.Errorf("wildcardContains(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
