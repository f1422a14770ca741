package photo

import (
	"fmt"

	"github.com/matzehuels/photogrid/pkg/errors"
)

// placeholderFormat renders a red "Error" tile at a given size. Renderers use
// it in place of an image locator that failed to load.
const placeholderFormat = "https://placehold.co/%dx%d/ef4444/ffffff?text=Error"

// Photo is one photo with its intrinsic size and, once laid out, its display size.
type Photo struct {
	ID        string `json:"id"`                 // Stable identifier, unique within a gallery
	Author    string `json:"author"`             // Display name of the photographer
	Width     int    `json:"width"`              // Intrinsic width in pixels (> 0)
	Height    int    `json:"height"`             // Intrinsic height in pixels (> 0)
	SourceURL string `json:"source_url"`         // Image locator (never empty in valid photos)
	PageURL   string `json:"page_url,omitempty"` // Human-facing page for the photo (may be empty)

	// Derived by the layout engine for the row the photo currently belongs to.
	DisplayWidth  int `json:"display_width,omitempty"`
	DisplayHeight int `json:"display_height,omitempty"`
}

// Validate reports the first violated invariant of p, or nil.
// Display fields are not checked; they are derived.
func (p Photo) Validate() error {
	if err := errors.ValidateID(p.ID); err != nil {
		return err
	}
	if err := errors.ValidateDimension("width", p.Width); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPhoto, err, "photo %s", p.ID)
	}
	if err := errors.ValidateDimension("height", p.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPhoto, err, "photo %s", p.ID)
	}
	if err := errors.ValidateURL(p.SourceURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPhoto, err, "photo %s", p.ID)
	}
	return nil
}

// AspectRatio returns width divided by height, or 0 if height is not positive.
func (p Photo) AspectRatio() float64 {
	if p.Height <= 0 {
		return 0
	}
	return float64(p.Width) / float64(p.Height)
}

// ScaledWidth returns the width p would have when displayed at height h,
// without rounding.
func (p Photo) ScaledWidth(h float64) float64 {
	return float64(p.Width) * (h / float64(p.Height))
}

// PlaceholderURL returns the fallback image locator for p, sized to its
// display dimensions.
func (p Photo) PlaceholderURL() string {
	return fmt.Sprintf(placeholderFormat, p.DisplayWidth, p.DisplayHeight)
}

// WithoutDisplay returns a copy of p with the derived display fields cleared.
func (p Photo) WithoutDisplay() Photo {
	p.DisplayWidth, p.DisplayHeight = 0, 0
	return p
}

// Row is one laid-out row of the grid. Every photo in the row is displayed
// at Height.
type Row struct {
	Photos []Photo `json:"photos"`
	Height int     `json:"height"`
}

// Len returns the number of photos in the row.
func (r Row) Len() int { return len(r.Photos) }

// Width returns the row's rendered width: the sum of display widths plus one
// gap between each pair of neighbours.
func (r Row) Width(gap int) int {
	if len(r.Photos) == 0 {
		return 0
	}
	w := gap * (len(r.Photos) - 1)
	for _, p := range r.Photos {
		w += p.DisplayWidth
	}
	return w
}

// IDs returns the IDs of all photos in rows, in layout order.
func IDs(rows []Row) []string {
	var ids []string
	for _, r := range rows {
		for _, p := range r.Photos {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
