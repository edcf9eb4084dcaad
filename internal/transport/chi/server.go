// Package chi exposes the marketplace API over HTTP using the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tradehub-ng/tradehub/internal/domain"
	domlst "github.com/tradehub-ng/tradehub/internal/domain/listing"
	categoryuc "github.com/tradehub-ng/tradehub/internal/usecase/category"
	healthuc "github.com/tradehub-ng/tradehub/internal/usecase/health"
	listinguc "github.com/tradehub-ng/tradehub/internal/usecase/listing"
	searchuc "github.com/tradehub-ng/tradehub/internal/usecase/search"
)

// errorCode is a machine-readable error identifier in error responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeListingNotFound  errorCode = "listing_not_found"
	codeCategoryNotFound errorCode = "category_not_found"
	codeInternalError    errorCode = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the marketplace API.
type Server struct {
	listings      *listinguc.Service
	categories    *categoryuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	apiKeys       []string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. apiKeys guard the write routes; an
// empty list disables authentication.
func NewServer(
	listings *listinguc.Service,
	categories *categoryuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	apiKeys []string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		listings:   listings,
		categories: categories,
		search:     search,
		health:     health,
		apiKeys:    apiKeys,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrListingNotFound, http.StatusNotFound, codeListingNotFound),
		sentinelHandler(domain.ErrCategoryNotFound, http.StatusNotFound, codeCategoryNotFound),
		sentinelHandler(domain.ErrInvalidListing, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes registers all API routes on the given router. Write routes get the
// bearer auth middleware; everything else stays open.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listings", s.SearchListings)
		r.Get("/listings/{id}", s.GetListing)
		r.Get("/categories", s.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(s.apiKeys))
			r.Put("/listings/{id}", s.UpsertListing)
			r.Delete("/listings/{id}", s.DeleteListing)
			r.Put("/categories/{id}", s.UpsertCategory)
			r.Delete("/categories/{id}", s.DeleteCategory)
		})
	})
}

// listingResponse is the wire form of a listing.
type listingResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CategoryID  string    `json:"category_id"`
	Condition   string    `json:"condition"`
	Location    string    `json:"location,omitempty"`
	State       string    `json:"state,omitempty"`
	Status      string    `json:"status"`
	Images      []string  `json:"images,omitempty"`
	SellerID    string    `json:"seller_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type searchResponse struct {
	Listings []listingResponse `json:"listings"`
	Count    int               `json:"count"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type categoriesResponse struct {
	Categories []categoryResponse `json:"categories"`
}

type upsertListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	CategoryID  string   `json:"category_id"`
	Condition   string   `json:"condition"`
	Location    string   `json:"location"`
	State       string   `json:"state"`
	Images      []string `json:"images"`
	SellerID    string   `json:"seller_id"`
	Status      string   `json:"status"`
}

type upsertCategoryRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// SearchListings handles GET /api/v1/listings. All filter parameters are
// decoded permissively; a browse page must never 400 on a stale or
// hand-edited URL.
func (s *Server) SearchListings(w http.ResponseWriter, r *http.Request) {
	f, limit, offset := decodeSearchParams(r.URL.Query())

	page, err := s.search.Search(r.Context(), f, limit, offset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	// Echo the clamped values the service actually used.
	bounds := s.search.Limits()
	if limit <= 0 {
		limit = bounds.DefaultLimit
	}
	if limit > bounds.MaxLimit {
		limit = bounds.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	items := make([]listingResponse, len(page.Items()))
	for i, l := range page.Items() {
		items[i] = listingToResponse(l)
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Listings: items,
		Count:    page.Total(),
		Limit:    limit,
		Offset:   offset,
	})
}

// GetListing handles GET /api/v1/listings/{id}.
func (s *Server) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	l, err := s.listings.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listingToResponse(l))
}

// UpsertListing handles PUT /api/v1/listings/{id}.
func (s *Server) UpsertListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req upsertListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Listing title is required")
		return
	}

	l, created, err := s.listings.Upsert(r.Context(), id, listinguc.UpsertParams{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Condition:   domlst.Condition(req.Condition),
		Location:    req.Location,
		State:       req.State,
		Images:      req.Images,
		SellerID:    req.SellerID,
		Status:      domlst.Status(req.Status),
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", fmt.Sprintf("/api/v1/listings/%s", l.ID()))
	}

	writeJSON(w, status, listingToResponse(l))
}

// DeleteListing handles DELETE /api/v1/listings/{id}.
func (s *Server) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.listings.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /api/v1/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]categoryResponse, len(cats))
	for i, c := range cats {
		items[i] = categoryResponse{ID: c.ID(), Slug: c.Slug(), Name: c.Name()}
	}

	writeJSON(w, http.StatusOK, categoriesResponse{Categories: items})
}

// UpsertCategory handles PUT /api/v1/categories/{id}.
func (s *Server) UpsertCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req upsertCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, err := s.categories.Put(r.Context(), id, req.Slug, req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Invalid category: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{ID: c.ID(), Slug: c.Slug(), Name: c.Name()})
}

// DeleteCategory handles DELETE /api/v1/categories/{id}.
func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.categories.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func listingToResponse(l domlst.Listing) listingResponse {
	return listingResponse{
		ID:          l.ID(),
		Title:       l.Title(),
		Description: l.Description(),
		Price:       l.Price(),
		CategoryID:  l.CategoryID(),
		Condition:   string(l.Condition()),
		Location:    l.Location(),
		State:       l.State(),
		Status:      string(l.Status()),
		Images:      l.Images(),
		SellerID:    l.SellerID(),
		CreatedAt:   l.CreatedAt(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, map[string]any{
		"code":    code,
		"message": message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrListingNotFound,
		domain.ErrCategoryNotFound,
		domain.ErrInvalidListing,
		domain.ErrInvalidQuery,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
