// Package resize reports container width changes.
//
// An [Observer] remembers the last width it saw and calls its callback only
// when the width actually changes. Height-only changes never fire.
package resize

import "sync"

// Option configures an Observer.
type Option func(*Observer)

// WithReady sets a predicate checked before every callback. While it
// returns false widths are recorded but not reported.
func WithReady(ready func() bool) Option {
	return func(o *Observer) {
		if ready != nil {
			o.ready = ready
		}
	}
}

// Observer tracks a container's width. It is safe for concurrent use;
// callbacks run on the calling goroutine outside the observer's lock.
type Observer struct {
	onWidth func(width int)
	ready   func() bool

	mu       sync.Mutex
	width    int
	attached bool
	stopped  bool
}

// New returns an Observer that calls onWidth with each new width.
func New(onWidth func(width int), opts ...Option) *Observer {
	o := &Observer{
		onWidth: onWidth,
		ready:   func() bool { return true },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Attach records the first measurement and reports it if positive.
// Attaching again behaves like Resize.
func (o *Observer) Attach(width int) {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	if o.attached {
		o.mu.Unlock()
		o.Resize(width, 0)
		return
	}
	o.attached = true
	o.width = width
	o.mu.Unlock()

	if width > 0 {
		o.fire(width)
	}
}

// Resize reports a new container size. Only width changes are reported.
// Before Attach it acts as Attach.
func (o *Observer) Resize(width, _ int) {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	if !o.attached {
		o.mu.Unlock()
		o.Attach(width)
		return
	}
	if width == o.width {
		o.mu.Unlock()
		return
	}
	o.width = width
	o.mu.Unlock()

	o.fire(width)
}

func (o *Observer) fire(width int) {
	if !o.ready() {
		return
	}
	o.mu.Lock()
	stopped := o.stopped
	o.mu.Unlock()
	if !stopped {
		o.onWidth(width)
	}
}

// Width returns the last seen width, 0 before Attach.
func (o *Observer) Width() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.width
}

// Stop detaches the observer. No callback starts after Stop returns.
// Stop is idempotent.
func (o *Observer) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped = true
}
