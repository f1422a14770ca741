package layout

import (
	"math"

	"github.com/matzehuels/photogrid/pkg/photo"
)

const (
	// DefaultTargetRowHeight is the row height photos are scaled to before
	// justification, in logical pixels.
	DefaultTargetRowHeight = 240

	// DefaultGap is the space between neighbouring photos in a row.
	DefaultGap = 8
)

// Options controls a layout pass. All values are logical pixels.
type Options struct {
	ContainerWidth  int // Width every closed row is justified to
	TargetRowHeight int // Height photos are scaled to before justification
	Gap             int // Horizontal space between photos; negative is treated as 0
}

// DefaultOptions returns options with the default target height and gap and
// no container width.
func DefaultOptions() Options {
	return Options{TargetRowHeight: DefaultTargetRowHeight, Gap: DefaultGap}
}

// WithWidth returns a copy of o for a container of the given width.
func (o Options) WithWidth(width int) Options {
	o.ContainerWidth = width
	return o
}

// ComputeRows packs photos into justified rows. It returns nil if there are
// no photos or the container width or target height is not positive.
// Photos without a positive intrinsic size cannot be scaled and are skipped.
func ComputeRows(photos []photo.Photo, opts Options) []photo.Row {
	if len(photos) == 0 || opts.ContainerWidth <= 0 || opts.TargetRowHeight <= 0 {
		return nil
	}

	gap := max(opts.Gap, 0)
	width := float64(opts.ContainerWidth)
	target := float64(opts.TargetRowHeight)

	var (
		rows    []photo.Row
		current []photo.Photo
		running float64
	)

	for _, p := range photos {
		if p.Width <= 0 || p.Height <= 0 {
			continue
		}
		scaled := p.ScaledWidth(target)

		if len(current) == 0 || running+scaled+float64(gap*len(current)) < width {
			current = append(current, p)
			running += scaled
			continue
		}

		rows = append(rows, justify(current, width, target, gap))
		current = []photo.Photo{p}
		running = scaled
	}

	if len(current) > 0 {
		rows = append(rows, tail(current, opts.TargetRowHeight))
	}
	return rows
}

// justify scales a full row so that its photos and gaps span width.
func justify(row []photo.Photo, width, target float64, gap int) photo.Row {
	totalGap := float64(gap * (len(row) - 1))

	var combined float64
	for _, p := range row {
		combined += p.ScaledWidth(target)
	}

	ratio := (width - totalGap) / combined
	height := max(int(math.Floor(target*ratio)), 1)

	return photo.Row{Photos: sized(row, height), Height: height}
}

// tail lays out the trailing partial row at the target height.
func tail(row []photo.Photo, target int) photo.Row {
	return photo.Row{Photos: sized(row, target), Height: target}
}

// sized copies row, setting every photo's display size for a row of height h.
func sized(row []photo.Photo, h int) []photo.Photo {
	out := make([]photo.Photo, len(row))
	for i, p := range row {
		p.DisplayHeight = h
		p.DisplayWidth = max(int(math.Floor(p.ScaledWidth(float64(h)))), 1)
		out[i] = p
	}
	return out
}
