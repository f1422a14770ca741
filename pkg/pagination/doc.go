// Package pagination accumulates photos page by page from a [Fetcher].
//
// A [Controller] owns the accumulated photo set and the cursor: the next
// page number, the hasMore latch and the loading flag. [Controller.LoadMore]
// is the only way to advance it:
//
//   - While a fetch is in flight, after the latch closed, or after Close,
//     LoadMore is a no-op. The loading flag is the single-flight guard, so
//     at most one fetch is in flight and completions apply in issue order.
//   - An empty page closes the latch. Nothing reopens it.
//   - A non-empty page is merged append-only: photos whose ID is already
//     present are dropped, survivors keep their arrival order, and the page
//     number advances exactly once.
//   - A failed fetch changes nothing except clearing the loading flag, so the
//     next LoadMore re-requests the same page.
//
// Every failure to obtain a page is reported as one kind,
// [errors.ErrCodeFetch], whatever the transport said.
//
// Subscribers registered with [Controller.Subscribe] receive a fresh
// [State] snapshot after every change. Hosts funnel every trigger (scroll
// sentinel, key press, HTTP request) through one Controller.
//
// [errors.ErrCodeFetch]: github.com/matzehuels/photogrid/pkg/errors.ErrCodeFetch
package pagination
