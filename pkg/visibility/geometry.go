package visibility

import "sync"

// DefaultMargin grows the viewport on both ends so loading starts shortly
// before the sentinel is actually visible.
const DefaultMargin = 200

// Rect is a vertical extent in layout units.
type Rect struct {
	Top    int
	Height int
}

// Bottom returns the first unit below the rect.
func (r Rect) Bottom() int { return r.Top + r.Height }

// Viewport is the visible vertical window of a scrollable container.
type Viewport struct {
	Top    int
	Height int
}

// Bottom returns the first unit below the viewport.
func (v Viewport) Bottom() int { return v.Top + v.Height }

// Intersects reports whether r overlaps vp grown by margin on both ends.
// A zero-height rect sitting on an edge counts as intersecting.
func Intersects(r Rect, vp Viewport, margin int) bool {
	if margin < 0 {
		margin = 0
	}
	return r.Top <= vp.Bottom()+margin && r.Bottom() >= vp.Top-margin
}

// Target is a region whose visibility can be observed.
type Target interface {
	Bounds() Rect
}

// Marker is a Target whose bounds are set by the host as content moves.
// It is safe for concurrent use.
type Marker struct {
	mu sync.RWMutex
	r  Rect
}

// NewMarker returns a Marker at r.
func NewMarker(r Rect) *Marker {
	return &Marker{r: r}
}

// Set moves the marker.
func (m *Marker) Set(r Rect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.r = r
}

// Bounds implements Target.
func (m *Marker) Bounds() Rect {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.r
}

// Entry is one visibility observation.
type Entry struct {
	Intersecting bool
	Bounds       Rect
}

// Source delivers visibility entries for a target. Observe delivers the
// current state immediately and then every transition, until stop is
// called. stop is idempotent.
type Source interface {
	Observe(t Target, margin int, fn func(Entry)) (stop func())
}
