package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tradehub-ng/tradehub/internal/domain/search/filters"
	"github.com/tradehub-ng/tradehub/internal/domain/search/query"
	"github.com/tradehub-ng/tradehub/internal/metrics"
)

// Pagination bounds applied to every search.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

// ApplyDefaults fills zero values.
func (p *Pagination) ApplyDefaults() {
	if p.DefaultLimit <= 0 {
		p.DefaultLimit = 20
	}
	if p.MaxLimit <= 0 {
		p.MaxLimit = 100
	}
}

// Service handles filtered listing searches.
type Service struct {
	repo   Repository
	pages  Pagination
	logger *zap.Logger
}

// New creates a search service.
func New(repo Repository, pages Pagination, logger *zap.Logger) *Service {
	pages.ApplyDefaults()
	return &Service{repo: repo, pages: pages, logger: logger}
}

// Search clamps pagination, runs the query, and records metrics. A limit
// outside [1, max] falls back to the default or max rather than failing;
// a negative offset becomes 0.
func (s *Service) Search(
	ctx context.Context, f filters.Filters, limit, offset int,
) (query.Page, error) {
	if limit <= 0 {
		limit = s.pages.DefaultLimit
	}
	if limit > s.pages.MaxLimit {
		limit = s.pages.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	q, err := query.New(f, limit, offset)
	if err != nil {
		return query.Page{}, fmt.Errorf("build query: %w", err)
	}

	sort := string(f.Sort())
	start := time.Now()

	page, err := s.repo.Search(ctx, q)

	duration := time.Since(start)
	metrics.SearchDuration.WithLabelValues(sort).Observe(duration.Seconds())

	if err != nil {
		metrics.SearchesTotal.WithLabelValues(sort, "error").Inc()
		s.logger.Error("Listing search failed",
			zap.String("sort", sort),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return query.Page{}, fmt.Errorf("search listings: %w", err)
	}

	metrics.SearchesTotal.WithLabelValues(sort, "ok").Inc()
	metrics.SearchResultsReturned.WithLabelValues(sort).Observe(float64(len(page.Items())))

	s.logger.Debug("Listing search completed",
		zap.String("sort", sort),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
		zap.Int("returned", len(page.Items())),
		zap.Int("total", page.Total()),
		zap.Duration("duration", duration),
	)

	return page, nil
}

// Limits returns the effective pagination bounds.
func (s *Service) Limits() Pagination {
	return s.pages
}
