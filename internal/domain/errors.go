package domain

import "errors"

var (
	// ErrListingNotFound signals a missing listing.
	ErrListingNotFound = errors.New("listing not found")
	// ErrCategoryNotFound signals a missing category.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidListing signals a listing that fails domain validation.
	ErrInvalidListing = errors.New("invalid listing")
	// ErrInvalidQuery signals a search query that fails validation.
	ErrInvalidQuery = errors.New("invalid query")
)
