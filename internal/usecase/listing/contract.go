package listing

import (
	"context"

	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
)

// Repository defines the storage contract for listing writes and reads.
type Repository interface {
	Put(ctx context.Context, l domlst.Listing) (bool, error)
	Get(ctx context.Context, id string) (domlst.Listing, error)
	Delete(ctx context.Context, id string) error
}

// CategoryReader checks category existence on writes.
type CategoryReader interface {
	Get(ctx context.Context, id string) (domlst.Category, error)
}
