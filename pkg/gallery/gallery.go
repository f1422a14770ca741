package gallery

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/photogrid/pkg/layout"
	"github.com/matzehuels/photogrid/pkg/observability"
	"github.com/matzehuels/photogrid/pkg/pagination"
	"github.com/matzehuels/photogrid/pkg/photo"
	"github.com/matzehuels/photogrid/pkg/resize"
	"github.com/matzehuels/photogrid/pkg/visibility"
)

type config struct {
	layout   layout.Options
	pageSize int
	margin   int
	logger   *log.Logger
	render   func(Frame)
	spawn    func(func())
}

// Option configures a Gallery.
type Option func(*config)

// WithLayout sets the layout options. ContainerWidth is the initial width
// reported on Start.
func WithLayout(o layout.Options) Option {
	return func(c *config) { c.layout = o }
}

// WithPageSize sets the number of photos requested per page.
func WithPageSize(n int) Option {
	return func(c *config) { c.pageSize = n }
}

// WithMargin sets how far outside the viewport the sentinel counts as visible.
func WithMargin(px int) Option {
	return func(c *config) { c.margin = px }
}

// WithLogger sets the logger for the gallery and its components.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRender sets the callback that receives every published frame. It must
// not call Resize.
func WithRender(fn func(Frame)) Option {
	return func(c *config) {
		if fn != nil {
			c.render = fn
		}
	}
}

// WithSpawn sets how triggered loads are started. The default runs each one
// on a new goroutine.
func WithSpawn(spawn func(func())) Option {
	return func(c *config) {
		if spawn != nil {
			c.spawn = spawn
		}
	}
}

// Gallery is an infinitely scrolling, justified photo grid.
type Gallery struct {
	id       uuid.UUID
	ctrl     *pagination.Controller
	trigger  *visibility.Trigger
	width    *resize.Observer
	sentinel visibility.Target
	logger   *log.Logger
	render   func(Frame)
	spawn    func(func())

	renderMu sync.Mutex    // serialises publishing
	fired    atomic.Uint64 // loads requested by the trigger

	mu      sync.Mutex
	ctx     context.Context
	opts    layout.Options
	state   pagination.State
	seq     uint64
	frame   Frame
	started bool
	closed  bool
	unsub   func()
}

// New creates a gallery over fetcher. src reports the sentinel's visibility.
func New(fetcher pagination.Fetcher, src visibility.Source, sentinel visibility.Target, opts ...Option) *Gallery {
	cfg := config{
		layout:   layout.DefaultOptions(),
		pageSize: pagination.DefaultPageSize,
		margin:   visibility.DefaultMargin,
		logger:   log.New(io.Discard),
		render:   func(Frame) {},
		spawn:    func(fn func()) { go fn() },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.New()
	logger := cfg.logger.With("gallery", id.String()[:8])

	g := &Gallery{
		id:       id,
		sentinel: sentinel,
		logger:   logger,
		render:   cfg.render,
		spawn:    cfg.spawn,
		ctx:      context.Background(),
		opts:     cfg.layout,
	}
	g.ctrl = pagination.New(fetcher,
		pagination.WithPageSize(cfg.pageSize),
		pagination.WithLogger(logger),
	)
	g.trigger = visibility.New(src,
		visibility.WithMargin(cfg.margin),
		visibility.WithLogger(logger),
	)
	g.width = resize.New(g.onWidth, resize.WithReady(g.open))
	g.state = g.ctrl.State()
	return g
}

// ID returns the gallery's identifier.
func (g *Gallery) ID() uuid.UUID { return g.id }

// Controller returns the pagination controller behind the gallery.
func (g *Gallery) Controller() *pagination.Controller { return g.ctrl }

// Start attaches the width observer, arms the trigger and issues the
// initial load, either through the trigger when the sentinel is already in
// view or directly. ctx is passed to every triggered fetch. Start only has
// an effect once.
func (g *Gallery) Start(ctx context.Context) {
	g.mu.Lock()
	if g.started || g.closed {
		g.mu.Unlock()
		return
	}
	g.started = true
	g.ctx = ctx
	width := g.opts.ContainerWidth
	g.mu.Unlock()

	g.logger.Debug("starting gallery", "width", width, "page_size", g.ctrl.PageSize())

	unsub := g.ctrl.Subscribe(g.onState)
	g.mu.Lock()
	g.unsub = unsub
	g.mu.Unlock()

	g.width.Attach(width)
	fired := g.fired.Load()
	g.arm()
	if g.fired.Load() == fired {
		g.spawn(g.load)
	}
}

// Resize reports a new container size. Only width changes cause a relayout.
// Before Start the width is recorded and used for the first frame.
func (g *Gallery) Resize(width, height int) {
	g.width.Resize(width, height)
}

// LoadMore requests the next page directly, through the same single-flight
// guard as the visibility trigger.
func (g *Gallery) LoadMore(ctx context.Context) (pagination.Result, error) {
	return g.ctrl.LoadMore(ctx)
}

// Frame returns the most recently published frame.
func (g *Gallery) Frame() Frame {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frame
}

// Close stops the trigger, the width observer and the controller
// subscription. A fetch in flight is discarded. Close is idempotent.
func (g *Gallery) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	unsub := g.unsub
	g.mu.Unlock()

	g.trigger.Stop()
	g.width.Stop()
	if unsub != nil {
		unsub()
	}
	g.ctrl.Close()
	g.logger.Debug("gallery closed", "photos", g.ctrl.Len())
}

func (g *Gallery) open() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.closed
}

func (g *Gallery) arm() {
	g.trigger.Observe(g.sentinel, func() {
		g.fired.Add(1)
		g.spawn(g.load)
	}, g.ctrl)
}

func (g *Gallery) load() {
	g.mu.Lock()
	ctx := g.ctx
	g.mu.Unlock()

	res, err := g.ctrl.LoadMore(ctx)
	if err != nil {
		// Already logged by the controller; the next trigger retries.
		return
	}
	if res.Status != pagination.Skipped {
		g.logger.Debug("load settled", "page", res.Page, "status", res.Status, "added", res.Added)
	}
}

func (g *Gallery) onWidth(width int) {
	g.mu.Lock()
	g.opts.ContainerWidth = width
	g.seq++
	seq, started := g.seq, g.started
	g.mu.Unlock()

	g.logger.Debug("container width changed", "width", width)
	if started {
		g.relayout(seq)
	}
}

func (g *Gallery) onState(s pagination.State) {
	g.mu.Lock()
	if g.closed || s.Version <= g.state.Version {
		g.mu.Unlock()
		return
	}
	// Re-arm only when a settle moved the cursor or the latch. After a
	// failure the current subscription stays, so the retry waits for the
	// sentinel to leave the view and come back.
	progressed := g.state.Loading && !s.Loading &&
		(s.Page != g.state.Page || s.HasMore != g.state.HasMore)
	g.state = s
	g.seq++
	seq := g.seq
	g.mu.Unlock()

	g.relayout(seq)
	if progressed {
		g.arm()
	}
}

// relayout computes rows for the inputs current at seq and publishes them
// unless a newer change arrived meanwhile.
func (g *Gallery) relayout(seq uint64) {
	g.mu.Lock()
	ctx, opts, s := g.ctx, g.opts, g.state
	g.mu.Unlock()

	start := time.Now()
	rows := layout.ComputeRows(s.Photos, opts)
	observability.Layout().OnLayout(ctx, len(s.Photos), len(rows), opts.ContainerWidth, time.Since(start))

	f := Frame{
		Rows:    rows,
		Width:   opts.ContainerWidth,
		Height:  layout.Height(rows, opts.Gap),
		Photos:  len(s.Photos),
		Page:    s.Page,
		Loading: s.Loading,
		HasMore: s.HasMore,
	}

	g.renderMu.Lock()
	defer g.renderMu.Unlock()
	g.mu.Lock()
	if seq != g.seq || g.closed {
		g.mu.Unlock()
		return
	}
	g.frame = f
	g.mu.Unlock()
	g.render(f)
}

// Static lays out photos once, without pagination or visibility tracking.
func Static(photos []photo.Photo, opts layout.Options) Frame {
	rows := layout.ComputeRows(photos, opts)
	return Frame{
		Rows:   rows,
		Width:  opts.ContainerWidth,
		Height: layout.Height(rows, opts.Gap),
		Photos: len(photos),
	}
}
