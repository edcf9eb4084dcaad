package listing

import (
	"fmt"
	"strings"
)

// Category is an entry in the marketplace category directory.
type Category struct {
	id   string
	slug string
	name string
}

// NewCategory validates and creates a Category.
func NewCategory(id, slug, name string) (Category, error) {
	if strings.TrimSpace(id) == "" {
		return Category{}, fmt.Errorf("category id is required")
	}
	if strings.TrimSpace(name) == "" {
		return Category{}, fmt.Errorf("category name is required")
	}
	if slug == "" {
		slug = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	}
	return Category{id: id, slug: slug, name: strings.TrimSpace(name)}, nil
}

// ID returns the category identifier.
func (c Category) ID() string { return c.id }

// Slug returns the URL-safe category slug.
func (c Category) Slug() string { return c.slug }

// Name returns the display name.
func (c Category) Name() string { return c.name }
