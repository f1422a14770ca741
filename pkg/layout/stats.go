package layout

import "github.com/matzehuels/photogrid/pkg/photo"

// Summary describes a layout result for logs and CLI output.
type Summary struct {
	Rows         int // Number of rows
	Photos       int // Number of photos across all rows
	TailPhotos   int // Photos in the trailing, unjustified row
	MaxDeviation int // Largest |rowWidth - containerWidth| over justified rows
}

// Summarize computes a Summary of rows laid out with opts.
func Summarize(rows []photo.Row, opts Options) Summary {
	s := Summary{Rows: len(rows)}
	gap := max(opts.Gap, 0)
	for i, r := range rows {
		s.Photos += r.Len()
		if i == len(rows)-1 {
			s.TailPhotos = r.Len()
			continue
		}
		d := r.Width(gap) - opts.ContainerWidth
		if d < 0 {
			d = -d
		}
		s.MaxDeviation = max(s.MaxDeviation, d)
	}
	return s
}

// Height returns the total height of rows stacked with gap between them.
func Height(rows []photo.Row, gap int) int {
	if len(rows) == 0 {
		return 0
	}
	gap = max(gap, 0)
	h := gap * (len(rows) - 1)
	for _, r := range rows {
		h += r.Height
	}
	return h
}
