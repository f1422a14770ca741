package visibility

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Scroller is a Source backed by viewport geometry. Hosts call SetViewport
// when the user scrolls or the window resizes, and Refresh after content
// above a target changed height.
//
// Entries are delivered on the goroutine that called Observe, SetViewport or
// Refresh, outside the scroller's lock.
type Scroller struct {
	mu      sync.Mutex
	vp      Viewport
	watches map[int]*watch
	nextID  int
}

type watch struct {
	id      int
	target  Target
	margin  int
	fn      func(Entry)
	last    bool
	stopped atomic.Bool
}

// NewScroller returns a Scroller showing vp.
func NewScroller(vp Viewport) *Scroller {
	return &Scroller{vp: vp, watches: make(map[int]*watch)}
}

// Observe implements Source.
func (s *Scroller) Observe(t Target, margin int, fn func(Entry)) (stop func()) {
	s.mu.Lock()
	w := &watch{id: s.nextID, target: t, margin: margin, fn: fn}
	s.nextID++
	b := t.Bounds()
	w.last = Intersects(b, s.vp, margin)
	s.watches[w.id] = w
	s.mu.Unlock()

	w.fn(Entry{Intersecting: w.last, Bounds: b})

	return func() {
		if w.stopped.Swap(true) {
			return
		}
		s.mu.Lock()
		delete(s.watches, w.id)
		s.mu.Unlock()
	}
}

// SetViewport moves the viewport and delivers any resulting transitions.
func (s *Scroller) SetViewport(vp Viewport) {
	s.mu.Lock()
	s.vp = vp
	s.mu.Unlock()
	s.Refresh()
}

// Refresh re-evaluates every watched target against the current viewport
// and delivers entries for the ones whose state changed.
func (s *Scroller) Refresh() {
	type delivery struct {
		w *watch
		e Entry
	}

	s.mu.Lock()
	var out []delivery
	for _, w := range s.watches {
		b := w.target.Bounds()
		in := Intersects(b, s.vp, w.margin)
		if in == w.last {
			continue
		}
		w.last = in
		out = append(out, delivery{w, Entry{Intersecting: in, Bounds: b}})
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].w.id < out[j].w.id })
	for _, d := range out {
		if d.w.stopped.Load() {
			continue
		}
		d.w.fn(d.e)
	}
}

// Len returns the number of active observations.
func (s *Scroller) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watches)
}
