// Package gallery wires pagination, visibility, resize and layout into one
// infinitely scrolling photo grid.
//
// A [Gallery] owns a [pagination.Controller], a [visibility.Trigger] armed on
// the sentinel region after the last row, and a [resize.Observer] for the
// container width. Whenever the photo set or the width changes it recomputes
// the rows over the full snapshot with [layout.ComputeRows] and publishes a
// [Frame] to the render callback.
//
// When a load merges a page or hits the end the trigger is re-armed, so a
// sentinel that is still in view after the merge keeps loading until the
// viewport is filled or the source runs dry. The render callback runs before
// the re-arm, which lets the host move the sentinel to [Frame.Height] first.
// A failed load leaves the trigger as it was: the same page is retried once
// the sentinel leaves the view and enters it again.
//
// Start issues the initial load; Close tears everything down, and a fetch
// still in flight at that point is discarded.
package gallery
