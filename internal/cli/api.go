package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
	"github.com/matzehuels/photogrid/pkg/layout"
	"github.com/matzehuels/photogrid/pkg/photo"
)

// =============================================================================
// Wire Types
// =============================================================================

// layoutRequest is the body of POST /api/layout. The layout command accepts
// the same document, or a bare photo array as written by fetch.
type layoutRequest struct {
	Photos          []photo.Photo `json:"photos"`
	ContainerWidth  int           `json:"container_width"`
	TargetRowHeight int           `json:"target_row_height,omitempty"`
	Gap             *int          `json:"gap,omitempty"`
}

// options returns the layout options of r, filling unset fields from def.
func (r layoutRequest) options(def layout.Options) layout.Options {
	o := def
	if r.ContainerWidth != 0 {
		o.ContainerWidth = r.ContainerWidth
	}
	if r.TargetRowHeight != 0 {
		o.TargetRowHeight = r.TargetRowHeight
	}
	if r.Gap != nil {
		o.Gap = *r.Gap
	}
	return o
}

type tileJSON struct {
	photo.Photo
	AspectRatio    float64 `json:"aspect_ratio"`
	PlaceholderURL string  `json:"placeholder_url"`
}

type rowJSON struct {
	Height int        `json:"height"`
	Width  int        `json:"width"`
	Photos []tileJSON `json:"photos"`
}

// layoutResponse is the body returned by the layout endpoints.
type layoutResponse struct {
	ContainerWidth int       `json:"container_width"`
	Height         int       `json:"height"`
	Rows           []rowJSON `json:"rows"`
	Photos         int       `json:"photos"`
	HasMore        *bool     `json:"has_more,omitempty"`
	NextPage       int       `json:"next_page,omitempty"`
}

func newLayoutResponse(f gallery.Frame, gap int) layoutResponse {
	resp := layoutResponse{
		ContainerWidth: f.Width,
		Height:         f.Height,
		Rows:           make([]rowJSON, len(f.Rows)),
	}
	for i, r := range f.Rows {
		tiles := make([]tileJSON, len(r.Photos))
		for j, p := range r.Photos {
			tiles[j] = tileJSON{Photo: p, AspectRatio: p.AspectRatio(), PlaceholderURL: p.PlaceholderURL()}
		}
		resp.Rows[i] = rowJSON{Height: r.Height, Width: r.Width(max(gap, 0)), Photos: tiles}
		resp.Photos += len(tiles)
	}
	return resp
}

type errorJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Decoding
// =============================================================================

// decodePhotos reads either a photo array or a layoutRequest document.
func decodePhotos(r io.Reader) (layoutRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return layoutRequest{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read photos")
	}
	data = bytes.TrimSpace(data)
	var req layoutRequest
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &req.Photos)
	} else {
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return layoutRequest{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode photos")
	}
	return req, nil
}

// validatePhotos checks every photo and rejects duplicate IDs.
func validatePhotos(photos []photo.Photo) error {
	seen := make(map[string]struct{}, len(photos))
	for i, p := range photos {
		if err := p.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPhoto, err, "photo %d", i)
		}
		if _, dup := seen[p.ID]; dup {
			return errors.New(errors.ErrCodeInvalidPhoto, "photo %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
