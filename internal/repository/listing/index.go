package listing

import (
	"github.com/tradehub-ng/tradehub/internal/db"
	"github.com/tradehub-ng/tradehub/internal/domain"
)

// Key patterns: tradehub:listings:{id}, tradehub:listings-idx, tradehub:seq:listings

const (
	keyPrefix = domain.KeyPrefix + "listings:"
	// IndexName is the FT index over all listing hashes.
	IndexName = domain.KeyPrefix + "listings-idx"
	// seqKey sits outside keyPrefix so the counter never shadows a listing hash.
	seqKey = domain.KeyPrefix + "seq:listings"
)

// buildIndex defines the listing search index.
//
// Filterable strings are TAG fields with a "|" separator so whole values
// stay single tags and dialect-2 wildcard matching gives case-insensitive
// substring semantics. Sortable numerics carry SORTABLE; seq is the
// write-order tie-break for stable pagination.
func buildIndex() *db.IndexDefinition {
	return db.NewIndex(IndexName).
		Prefix(keyPrefix).
		TagWithOpts("title", "|", false).
		TagWithOpts("description", "|", false).
		Tag("category_id").
		Tag("condition").
		TagWithOpts("location", "|", false).
		TagWithOpts("state", "|", false).
		Tag("status").
		NumericSortable("price").
		NumericSortable("created_at").
		NumericSortable("seq").
		MustBuild()
}

func listingKey(id string) string {
	return keyPrefix + id
}
