package browse

import "sync"

// History abstracts the host's URL bar. Replace rewrites the current entry
// in place; filter changes must never grow the back stack.
type History interface {
	// Current returns the query string of the current entry.
	Current() string
	// Replace rewrites the current entry's query string.
	Replace(query string)
}

// MemoryHistory is an in-process History for tests and non-browser hosts.
type MemoryHistory struct {
	mu    sync.Mutex
	query string
}

// NewMemoryHistory creates a MemoryHistory seeded with the given query string.
func NewMemoryHistory(query string) *MemoryHistory {
	return &MemoryHistory{query: query}
}

// Current returns the stored query string.
func (h *MemoryHistory) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.query
}

// Replace overwrites the stored query string.
func (h *MemoryHistory) Replace(query string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.query = query
}
