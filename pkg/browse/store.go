package browse

import (
	"net/url"
	"sync"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithOnChange registers a callback fired after every committed state change,
// including Init. The callback receives a copy and runs on the mutating
// goroutine without the store lock held.
func WithOnChange(fn func(FilterState)) StoreOption {
	return func(s *Store) { s.onChange = fn }
}

// Store is the single source of truth for the active filter state. Every
// change is written back to the host URL via History.Replace, so the address
// bar always reflects the current state and a shared link reproduces it.
type Store struct {
	mu       sync.Mutex
	state    FilterState
	history  History
	onChange func(FilterState)
}

// NewStore creates a Store over the given history.
func NewStore(history History, opts ...StoreOption) *Store {
	s := &Store{history: history}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init hydrates the state from the current URL and fires the change callback.
// Call it once after wiring; a malformed URL yields defaults, never an error.
func (s *Store) Init() {
	values, err := url.ParseQuery(s.history.Current())
	if err != nil {
		values = url.Values{}
	}
	s.mu.Lock()
	s.state = ParseQuery(values)
	s.mu.Unlock()
	s.commit()
}

// State returns a copy of the active filter state.
func (s *Store) State() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Apply mutates the state under the store lock and commits the result.
func (s *Store) Apply(mutate func(*FilterState)) {
	s.mu.Lock()
	next := s.state.clone()
	mutate(&next)
	s.state = next
	s.mu.Unlock()
	s.commit()
}

// ClearSearch drops the free-text query.
func (s *Store) ClearSearch() {
	s.Apply(func(f *FilterState) { f.Query = "" })
}

// ClearCategory removes one category from the selection.
func (s *Store) ClearCategory(id string) {
	s.Apply(func(f *FilterState) { f.Categories = remove(f.Categories, id) })
}

// ClearCondition removes one condition from the selection.
func (s *Store) ClearCondition(c string) {
	s.Apply(func(f *FilterState) { f.Conditions = remove(f.Conditions, c) })
}

// ClearLocation drops the location constraint.
func (s *Store) ClearLocation() {
	s.Apply(func(f *FilterState) { f.Location = "" })
}

// ClearPriceRange drops both price bounds.
func (s *Store) ClearPriceRange() {
	s.Apply(func(f *FilterState) {
		f.MinPrice = nil
		f.MaxPrice = nil
	})
}

// ClearAll resets every filter to its default, including the sort.
func (s *Store) ClearAll() {
	s.Apply(func(f *FilterState) { *f = FilterState{} })
}

// Reset is an alias for ClearAll.
func (s *Store) Reset() { s.ClearAll() }

// commit syncs the URL and notifies. The URL write is a replace, not a push:
// browsing back should leave the results page, not step through every
// keystroke.
func (s *Store) commit() {
	s.mu.Lock()
	state := s.state.clone()
	s.mu.Unlock()

	s.history.Replace(state.Encode())
	if s.onChange != nil {
		s.onChange(state)
	}
}

func remove(in []string, v string) []string {
	var out []string
	for _, s := range in {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
