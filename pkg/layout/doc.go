// Package layout computes justified photo rows.
//
// # Algorithm
//
// [ComputeRows] walks the photos once, left to right. Each photo is scaled to
// the target row height and added to a candidate row while the candidate's
// scaled widths plus gaps stay narrower than the container. The first photo
// that would overflow closes the candidate row, which is then justified:
//
//	ratio     = (containerWidth - gap*(n-1)) / sum(scaledWidth)
//	rowHeight = floor(targetRowHeight * ratio)
//	width_i   = floor(intrinsicWidth_i * rowHeight / intrinsicHeight_i)
//
// so every closed row fills the container up to per-photo floor rounding.
// The trailing candidate row never filled and is emitted at the target
// height, unscaled, so a short last row does not look stretched.
//
// A candidate row always accepts its first photo, so a photo wider than the
// container is placed alone instead of blocking the layout.
//
// # Purity
//
// The engine keeps no state, returns fresh rows on every call and never
// mutates the input slice: rows hold copies of the photos with display
// fields filled in. Recomputing on every width or photo-set change is cheap
// and idempotent.
package layout
