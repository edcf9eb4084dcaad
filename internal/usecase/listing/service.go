package listing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradehub-ng/tradehub/internal/domain"
	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
)

// UpsertParams carries the writable listing fields.
type UpsertParams struct {
	Title       string
	Description string
	Price       float64
	CategoryID  string
	Condition   domlst.Condition
	Location    string
	State       string
	Images      []string
	SellerID    string
	Status      domlst.Status // optional; empty keeps active (create) or current (update)
}

// Service handles listing writes and reads.
type Service struct {
	repo   Repository
	cats   CategoryReader
	logger *zap.Logger
}

// New creates a listing service.
func New(repo Repository, cats CategoryReader, logger *zap.Logger) *Service {
	return &Service{repo: repo, cats: cats, logger: logger}
}

// Upsert validates and stores a listing under the given id. An empty id gets
// a generated UUID. Returns the stored listing and whether it was created.
func (s *Service) Upsert(ctx context.Context, id string, p UpsertParams) (domlst.Listing, bool, error) {
	if id == "" {
		id = uuid.NewString()
	}

	if _, err := s.cats.Get(ctx, p.CategoryID); err != nil {
		return domlst.Listing{}, false, fmt.Errorf("check category %s: %w", p.CategoryID, err)
	}

	l, err := domlst.New(
		id, p.Title, p.Description, p.Price,
		p.CategoryID, p.Condition,
		p.Location, p.State, p.Images, p.SellerID,
	)
	if err != nil {
		return domlst.Listing{}, false, fmt.Errorf("%w: %w", domain.ErrInvalidListing, err)
	}

	if p.Status != "" {
		if _, err := domlst.ParseStatus(string(p.Status)); err != nil {
			return domlst.Listing{}, false, fmt.Errorf("%w: %w", domain.ErrInvalidListing, err)
		}
		l = l.WithStatus(p.Status)
	}

	created, err := s.repo.Put(ctx, l)
	if err != nil {
		return domlst.Listing{}, false, fmt.Errorf("put listing %s: %w", id, err)
	}

	s.logger.Info("Listing stored",
		zap.String("id", id),
		zap.Bool("created", created),
		zap.String("category_id", p.CategoryID),
	)

	// Re-read so the caller sees the stored created_at on updates.
	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return l, created, nil //nolint:nilerr // write succeeded, the fresh read is best effort
	}
	return stored, created, nil
}

// Get returns a listing by id.
func (s *Service) Get(ctx context.Context, id string) (domlst.Listing, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return domlst.Listing{}, fmt.Errorf("get listing %s: %w", id, err)
	}
	return l, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	s.logger.Info("Listing deleted", zap.String("id", id))
	return nil
}
