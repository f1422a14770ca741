// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about page loads, layout passes, and HTTP calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main (the CLI registers logging hooks under
// --verbose), never by libraries, which only emit events.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPaginationHooks(&myPaginationHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pagination().OnLoadStart(ctx, page)
//	// ... fetch ...
//	observability.Pagination().OnLoadComplete(ctx, page, added, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pagination Hooks
// =============================================================================

// PaginationHooks receives events from the pagination controller.
type PaginationHooks interface {
	// OnLoadStart records a page fetch being issued.
	OnLoadStart(ctx context.Context, page int)

	// OnLoadComplete records a settled page fetch. added is the number of
	// new photos merged; err is the fetch error, if any.
	OnLoadComplete(ctx context.Context, page, added int, duration time.Duration, err error)

	// OnExhausted records the end-of-data latch closing.
	OnExhausted(ctx context.Context, page int)
}

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout passes.
type LayoutHooks interface {
	// OnLayout records one layout pass over photos photos producing rows rows.
	OnLayout(ctx context.Context, photos, rows, width int, duration time.Duration)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPaginationHooks is a no-op implementation of PaginationHooks.
type NoopPaginationHooks struct{}

func (NoopPaginationHooks) OnLoadStart(context.Context, int)                              {}
func (NoopPaginationHooks) OnLoadComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPaginationHooks) OnExhausted(context.Context, int)                              {}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayout(context.Context, int, int, int, time.Duration) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	paginationHooks PaginationHooks = NoopPaginationHooks{}
	layoutHooks     LayoutHooks     = NoopLayoutHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetPaginationHooks registers custom pagination hooks.
// This should be called once at application startup before any page loads.
func SetPaginationHooks(h PaginationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		paginationHooks = h
	}
}

// SetLayoutHooks registers custom layout hooks.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pagination returns the registered pagination hooks.
func Pagination() PaginationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return paginationHooks
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	paginationHooks = NoopPaginationHooks{}
	layoutHooks = NoopLayoutHooks{}
	httpHooks = NoopHTTPHooks{}
}
