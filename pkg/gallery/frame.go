package gallery

import "github.com/matzehuels/photogrid/pkg/photo"

// Loader texts shown in the sentinel region.
const (
	LoadingText = "Loading more content..."
	EndText     = "You've reached the end! 👋"
)

// Frame is one published layout.
type Frame struct {
	Rows    []photo.Row
	Width   int  // Container width the rows were justified to
	Height  int  // Total content height, where the sentinel sits
	Photos  int  // Accumulated photos, including any not laid out
	Page    int  // Next page the controller will request
	Loading bool // A fetch is in flight
	HasMore bool // More pages may remain
}

// Status returns the loader text for the sentinel region: LoadingText while
// a fetch is in flight, EndText once the source ran dry, else "".
func (f Frame) Status() string {
	switch {
	case f.Loading:
		return LoadingText
	case !f.HasMore:
		return EndText
	default:
		return ""
	}
}
