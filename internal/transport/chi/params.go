package chi

import (
	"net/url"
	"strconv"
	"strings"

	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
	"github.com/tradehub-ng/tradehub/internal/domain/search/filters"
)

// decodeSearchParams turns listing search query parameters into a filter set
// plus pagination. Decoding is permissive: malformed numerics are treated as
// absent, unknown conditions are dropped, an unknown sort falls back to
// newest, and bad limit/offset values fall back to the service defaults.
func decodeSearchParams(values url.Values) (filters.Filters, int, int) {
	f := filters.New(filters.Params{
		Text:        values.Get("q"),
		CategoryIDs: splitMulti(values["categories"]),
		Conditions:  parseConditions(splitMulti(values["conditions"])),
		Location:    values.Get("location"),
		MinPrice:    parsePrice(values.Get("price_min")),
		MaxPrice:    parsePrice(values.Get("price_max")),
		Sort:        filters.ParseSort(values.Get("sort")),
	})

	limit := parseIntOrZero(values.Get("limit"))
	offset := parseIntOrZero(values.Get("offset"))

	return f, limit, offset
}

// splitMulti flattens repeated parameters and comma-separated values into one
// list. "a,b&x=c" and "x=a&x=b&x=c" decode identically.
func splitMulti(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseConditions(raw []string) []domlst.Condition {
	var out []domlst.Condition
	for _, v := range raw {
		c, err := domlst.ParseCondition(v)
		if err != nil {
			continue
		}
		out = append(out, c)
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

func parseIntOrZero(raw string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
