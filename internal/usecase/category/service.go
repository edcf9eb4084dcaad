package category

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
)

// Service handles the category directory.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates a category service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Put validates and stores a category.
func (s *Service) Put(ctx context.Context, id, slug, name string) (domlst.Category, error) {
	c, err := domlst.NewCategory(id, slug, name)
	if err != nil {
		return domlst.Category{}, fmt.Errorf("validate category: %w", err)
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return domlst.Category{}, fmt.Errorf("put category %s: %w", id, err)
	}
	s.logger.Info("Category stored", zap.String("id", c.ID()), zap.String("slug", c.Slug()))
	return c, nil
}

// List returns all categories sorted by display name.
func (s *Service) List(ctx context.Context) ([]domlst.Category, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Delete removes a category from the directory.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	s.logger.Info("Category deleted", zap.String("id", id))
	return nil
}
