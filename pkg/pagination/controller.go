package pagination

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/observability"
	"github.com/matzehuels/photogrid/pkg/photo"
)

// DefaultPageSize is the number of photos requested per page.
const DefaultPageSize = 20

// Fetcher fetches one page of photos. page starts at 1. An empty result
// means there are no more pages.
type Fetcher interface {
	FetchPage(ctx context.Context, page, size int) ([]photo.Photo, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, page, size int) ([]photo.Photo, error)

// FetchPage calls f.
func (f FetcherFunc) FetchPage(ctx context.Context, page, size int) ([]photo.Photo, error) {
	return f(ctx, page, size)
}

// Status describes what a LoadMore call did.
type Status int

const (
	// Skipped means no fetch was issued: one was in flight, the latch was
	// closed, or the controller was closed.
	Skipped Status = iota
	// Loaded means a non-empty page was merged.
	Loaded
	// Exhausted means the fetch returned an empty page and the latch closed.
	Exhausted
	// Failed means the fetch failed; the cursor is unchanged.
	Failed
	// Discarded means the controller was closed while the fetch was in
	// flight and its result was dropped.
	Discarded
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Loaded:
		return "loaded"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	case Discarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Result reports the outcome of one LoadMore call.
type Result struct {
	Status     Status
	Page       int // Page that was requested (0 when Skipped)
	Added      int // New photos merged
	Duplicates int // Photos dropped because their ID was already present
}

// State is a snapshot of the controller.
type State struct {
	Photos  []photo.Photo // Accumulated photos, in arrival order
	Page    int           // Next page to request
	HasMore bool          // False once an empty page was seen
	Loading bool          // True while a fetch is in flight
	Version uint64        // Increases with every change; orders snapshots
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize sets the number of photos requested per page. Values below 1
// are ignored.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the logger fetch failures are reported to.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller is the pagination state machine. It is safe for concurrent use.
type Controller struct {
	fetcher  Fetcher
	pageSize int
	logger   *log.Logger

	mu      sync.Mutex
	photos  []photo.Photo
	seen    map[string]struct{}
	page    int
	hasMore bool
	loading bool
	closed  bool
	lastErr error
	version uint64

	subs   map[int]func(State)
	nextID int
}

// New creates a Controller that starts at page 1 with the latch open.
func New(f Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher:  f,
		pageSize: DefaultPageSize,
		logger:   log.New(io.Discard),
		seen:     make(map[string]struct{}),
		page:     1,
		hasMore:  true,
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadMore fetches the next page if no fetch is in flight and more pages
// remain. The returned error is non-nil only for a failed fetch and always
// carries [errors.ErrCodeFetch]; it has already been logged.
func (c *Controller) LoadMore(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.loading || !c.hasMore || c.closed {
		c.mu.Unlock()
		return Result{Status: Skipped}, nil
	}
	c.loading = true
	c.version++
	page := c.page
	c.mu.Unlock()
	c.notify()

	hooks := observability.Pagination()
	hooks.OnLoadStart(ctx, page)
	start := time.Now()

	photos, err := c.fetcher.FetchPage(ctx, page, c.pageSize)

	res, err := c.apply(page, photos, err)
	if res.Status != Discarded {
		hooks.OnLoadComplete(ctx, page, res.Added, time.Since(start), err)
		if res.Status == Exhausted {
			hooks.OnExhausted(ctx, page)
		}
		c.notify()
	}
	return res, err
}

// apply merges a settled fetch into the state and clears the loading flag.
func (c *Controller) apply(page int, photos []photo.Photo, fetchErr error) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	c.version++
	res := Result{Page: page}

	switch {
	case c.closed:
		res.Status = Discarded
		return res, nil

	case fetchErr != nil:
		err := errors.Wrap(errors.ErrCodeFetch, fetchErr, "fetch page %d", page)
		c.lastErr = err
		c.logger.Warn("failed to fetch photos", "page", page, "err", fetchErr)
		res.Status = Failed
		return res, err

	case len(photos) == 0:
		c.hasMore = false
		c.lastErr = nil
		c.logger.Debug("no more photos", "page", page)
		res.Status = Exhausted
		return res, nil
	}

	for _, p := range photos {
		if _, dup := c.seen[p.ID]; dup {
			res.Duplicates++
			continue
		}
		c.seen[p.ID] = struct{}{}
		c.photos = append(c.photos, p.WithoutDisplay())
		res.Added++
	}
	c.page++
	c.lastErr = nil
	c.logger.Debug("merged page", "page", page, "added", res.Added, "duplicates", res.Duplicates, "total", len(c.photos))
	res.Status = Loaded
	return res, nil
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that changed the state, outside the controller's
// lock. The returned function removes the subscription; it is idempotent.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return func() {}
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) notify() {
	c.mu.Lock()
	if c.closed || len(c.subs) == 0 {
		c.mu.Unlock()
		return
	}
	s := c.snapshot()
	fns := make([]func(State), 0, len(c.subs))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Close tears the controller down. A fetch in flight is allowed to finish but
// its result is discarded; later LoadMore calls are no-ops and subscribers
// are dropped. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	clear(c.subs)
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	photos := make([]photo.Photo, len(c.photos))
	copy(photos, c.photos)
	return State{
		Photos:  photos,
		Page:    c.page,
		HasMore: c.hasMore,
		Loading: c.loading,
		Version: c.version,
	}
}

// Photos returns a copy of the accumulated photos.
func (c *Controller) Photos() []photo.Photo { return c.State().Photos }

// Len returns the number of accumulated photos.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.photos)
}

// IsLoading reports whether a fetch is in flight.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// HasMore reports whether more pages may remain.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Page returns the next page that LoadMore will request.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// PageSize returns the number of photos requested per page.
func (c *Controller) PageSize() int { return c.pageSize }

// Err returns the error of the most recent fetch if it failed, else nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
