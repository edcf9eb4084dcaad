package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Listing is the wire form of a search result item.
type Listing struct {
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

// Page is one page of search results plus the exact total match count.
type Page struct {
	Listings []Listing `json:"listings"`
	Count    int       `json:"count"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// Client fetches listing pages from the tradehub search API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a search API client for the given base URL
// (e.g. "https://api.tradehub.example").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search runs one filtered page query against GET /api/v1/listings.
func (c *Client) Search(ctx context.Context, f FilterState, limit, offset int) (Page, error) {
	values := f.Values()
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		values.Set("offset", strconv.Itoa(offset))
	}

	u := c.baseURL + "/api/v1/listings"
	if enc := values.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("search listings: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, fmt.Errorf("search listings: unexpected status %d", resp.StatusCode)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return Page{}, fmt.Errorf("decode response: %w", err)
	}
	return page, nil
}
