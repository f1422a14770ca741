package visibility

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Gate is consulted at the instant an entry arrives.
// *pagination.Controller satisfies it.
type Gate interface {
	IsLoading() bool
	HasMore() bool
}

// Option configures a Trigger.
type Option func(*Trigger)

// WithMargin sets the viewport margin. Negative values are treated as 0.
func WithMargin(px int) Option {
	return func(t *Trigger) {
		if px < 0 {
			px = 0
		}
		t.margin = px
	}
}

// WithLogger sets the logger suppressed and delivered triggers are
// reported to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(t *Trigger) {
		if l != nil {
			t.logger = l
		}
	}
}

// Trigger calls a load callback when its target becomes visible.
// It is safe for concurrent use.
type Trigger struct {
	src    Source
	margin int
	logger *log.Logger

	mu      sync.Mutex
	gen     uint64
	stop    func()
	stopped bool
}

// New returns an unarmed Trigger over src.
func New(src Source, opts ...Option) *Trigger {
	t := &Trigger{
		src:    src,
		margin: DefaultMargin,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Observe arms the trigger on target, replacing any previous observation.
// The new subscription is established first and the old one stopped after,
// and only the newest subscription delivers. Observe may be called from
// inside onLoadMore. It does nothing after Stop.
func (t *Trigger) Observe(target Target, onLoadMore func(), gate Gate) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.gen++
	gen := t.gen
	t.mu.Unlock()

	stop := t.src.Observe(target, t.margin, func(e Entry) {
		t.deliver(gen, e, onLoadMore, gate)
	})

	t.mu.Lock()
	if gen != t.gen {
		// Superseded while subscribing, by a nested Observe or by Stop.
		t.mu.Unlock()
		stop()
		return
	}
	old := t.stop
	t.stop = stop
	t.mu.Unlock()

	if old != nil {
		old()
	}
}

func (t *Trigger) deliver(gen uint64, e Entry, onLoadMore func(), gate Gate) {
	if !e.Intersecting {
		return
	}
	t.mu.Lock()
	current := gen == t.gen && !t.stopped
	t.mu.Unlock()
	if !current {
		return
	}
	if gate.IsLoading() || !gate.HasMore() {
		t.logger.Debug("sentinel visible, load suppressed", "loading", gate.IsLoading(), "has_more", gate.HasMore())
		return
	}
	t.logger.Debug("sentinel visible, loading more", "top", e.Bounds.Top)
	onLoadMore()
}

// Stop releases the subscription. Later Observe calls are no-ops.
// Stop is idempotent.
func (t *Trigger) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.gen++
	old := t.stop
	t.stop = nil
	t.mu.Unlock()

	if old != nil {
		old()
	}
}
