package browse

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Phase is the dispatcher's position in its request lifecycle.
type Phase string

// Dispatcher phases.
const (
	PhaseIdle        Phase = "idle"
	PhaseLoading     Phase = "loading"
	PhaseLoadingMore Phase = "loading_more"
	PhaseError       Phase = "error"
)

// Snapshot is a point-in-time view of the dispatcher for rendering.
type Snapshot struct {
	Phase   Phase
	Items   []Listing
	Total   int
	Err     error
	Filters FilterState
}

// Fetcher runs one page query. *Client satisfies it.
type Fetcher interface {
	Search(ctx context.Context, f FilterState, limit, offset int) (Page, error)
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDebounce sets the delay applied to text-only filter changes.
// Zero disables debouncing. Default: 500ms.
func WithDebounce(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) { disp.debounce = d }
}

// WithPageSize sets the page size requested from the server. Default: 20.
func WithPageSize(n int) DispatcherOption {
	return func(disp *Dispatcher) { disp.pageSize = n }
}

// WithLogger enables structured logging of dispatch decisions.
func WithLogger(l *zap.Logger) DispatcherOption {
	return func(disp *Dispatcher) { disp.logger = l }
}

// WithOnUpdate registers a callback fired after every snapshot change. It
// runs without the dispatcher lock held.
func WithOnUpdate(fn func(Snapshot)) DispatcherOption {
	return func(disp *Dispatcher) { disp.onUpdate = fn }
}

// Dispatcher turns filter changes into search requests. Text edits are
// debounced; other changes fetch immediately. Each fetch carries a
// generation number, and a response whose generation is no longer current
// is discarded, so result order always matches intent order.
type Dispatcher struct {
	fetch    Fetcher
	debounce time.Duration
	pageSize int
	logger   *zap.Logger
	onUpdate func(Snapshot)

	mu         sync.Mutex
	state      FilterState
	phase      Phase
	items      []Listing
	total      int
	err        error
	lastOffset int

	gen    uint64
	cancel context.CancelFunc
	timer  *time.Timer
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher over the given fetcher.
func NewDispatcher(fetch Fetcher, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		fetch:    fetch,
		debounce: 500 * time.Millisecond,
		pageSize: 20,
		logger:   zap.NewNop(),
		phase:    PhaseIdle,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Apply replaces the active filter state and schedules a fetch from offset
// zero. The accumulated result list is cleared immediately: stale rows must
// not render under new filters. A change that only edits the text query is
// debounced; anything else dispatches at once.
func (d *Dispatcher) Apply(f FilterState) {
	d.mu.Lock()
	textOnly := textOnlyChange(d.state, f)
	d.state = f.clone()
	d.items = nil
	d.total = 0
	d.err = nil
	d.invalidateLocked()
	d.phase = PhaseLoading

	if textOnly && d.debounce > 0 {
		gen := d.gen
		d.timer = time.AfterFunc(d.debounce, func() { d.fire(gen) })
		d.logger.Debug("Text edit debounced", zap.String("q", f.Query))
		snap := d.snapshotLocked()
		d.mu.Unlock()
		d.emit(snap)
		return
	}

	d.startLocked(0)
	snap := d.snapshotLocked()
	d.mu.Unlock()
	d.emit(snap)
}

// Flush dispatches a pending debounced fetch immediately (e.g. on Enter).
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.timer = nil
	d.startLocked(0)
	d.mu.Unlock()
}

// LoadMore fetches the next page and appends it in server order. It is a
// no-op unless the dispatcher is idle with more rows available.
func (d *Dispatcher) LoadMore() {
	d.mu.Lock()
	if d.phase != PhaseIdle || len(d.items) >= d.total {
		d.mu.Unlock()
		return
	}
	d.invalidateLocked()
	d.phase = PhaseLoadingMore
	d.startLocked(len(d.items))
	snap := d.snapshotLocked()
	d.mu.Unlock()
	d.emit(snap)
}

// Retry re-runs the failed fetch. A failed initial load retries from offset
// zero; a failed load-more retries from the end of the accumulator.
func (d *Dispatcher) Retry() {
	d.mu.Lock()
	if d.phase != PhaseError {
		d.mu.Unlock()
		return
	}
	offset := d.lastOffset
	d.invalidateLocked()
	if offset > 0 {
		d.phase = PhaseLoadingMore
	} else {
		d.phase = PhaseLoading
	}
	d.startLocked(offset)
	snap := d.snapshotLocked()
	d.mu.Unlock()
	d.emit(snap)
}

// Snapshot returns the current view state.
func (d *Dispatcher) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Close cancels any in-flight fetch and pending debounce, then waits for
// worker goroutines to exit.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.invalidateLocked()
	d.mu.Unlock()
	d.wg.Wait()
}

// fire runs a debounced fetch if no newer change superseded it.
func (d *Dispatcher) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.startLocked(0)
	d.mu.Unlock()
}

// invalidateLocked supersedes all outstanding work: pending debounce timers
// and in-flight fetches will see a newer generation and drop out.
func (d *Dispatcher) invalidateLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Dispatcher) startLocked(offset int) {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.lastOffset = offset

	gen := d.gen
	state := d.state.clone()

	d.wg.Add(1)
	go d.run(ctx, cancel, gen, state, offset)
}

func (d *Dispatcher) run(ctx context.Context, cancel context.CancelFunc, gen uint64, f FilterState, offset int) {
	defer d.wg.Done()
	defer cancel()

	page, err := d.fetch.Search(ctx, f, d.pageSize, offset)

	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		d.logger.Debug("Stale response discarded", zap.Uint64("gen", gen))
		return
	}
	d.cancel = nil

	if err != nil {
		// A failed load-more keeps the rows already on screen.
		d.phase = PhaseError
		d.err = err
		snap := d.snapshotLocked()
		d.mu.Unlock()
		d.logger.Warn("Fetch failed", zap.Int("offset", offset), zap.Error(err))
		d.emit(snap)
		return
	}

	if offset == 0 {
		d.items = page.Listings
	} else {
		d.items = append(d.items, page.Listings...)
	}
	d.total = page.Count
	d.err = nil
	d.phase = PhaseIdle
	snap := d.snapshotLocked()
	d.mu.Unlock()
	d.emit(snap)
}

func (d *Dispatcher) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:   d.phase,
		Items:   append([]Listing(nil), d.items...),
		Total:   d.total,
		Err:     d.err,
		Filters: d.state.clone(),
	}
}

func (d *Dispatcher) emit(snap Snapshot) {
	if d.onUpdate != nil {
		d.onUpdate(snap)
	}
}

// textOnlyChange reports whether the two states differ in the text query and
// nothing else.
func textOnlyChange(old, next FilterState) bool {
	if old.Query == next.Query {
		return false
	}
	o, n := old, next
	o.Query, n.Query = "", ""
	return o.Equal(n)
}
