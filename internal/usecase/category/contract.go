package category

import (
	"context"

	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
)

// Repository defines the storage contract for the category directory.
type Repository interface {
	Put(ctx context.Context, c domlst.Category) error
	Get(ctx context.Context, id string) (domlst.Category, error)
	List(ctx context.Context) ([]domlst.Category, error)
	Delete(ctx context.Context, id string) error
}
