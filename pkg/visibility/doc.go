// Package visibility turns "a region scrolled into view" into a load request.
//
// It models the browser's intersection observer with three small pieces:
//
//   - A [Target] reports its vertical extent as a [Rect]. [Marker] is a
//     settable Target used for the sentinel region after the last row.
//   - A [Source] watches targets and delivers an [Entry] immediately on
//     Observe and again whenever the target starts or stops intersecting the
//     viewport grown by a margin. [Scroller] is the geometry-backed Source a
//     host drives with [Scroller.SetViewport] and [Scroller.Refresh].
//   - A [Trigger] subscribes to one target at a time and calls onLoadMore for
//     an intersecting entry only while its [Gate] reports that no load is in
//     flight and more pages remain.
//
// Reconfiguring a Trigger with [Trigger.Observe] establishes the new
// subscription before the old one is stopped. Entries from a superseded
// subscription are dropped, so exactly one subscription can deliver at a
// time.
package visibility
