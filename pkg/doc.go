// Package pkg holds the photogrid libraries.
//
// # Overview
//
// photogrid arranges photos of mixed aspect ratios into justified rows: every
// row fills the container width exactly and all photos in a row share one
// height. Photos arrive page by page from a listing service, and the grid
// grows as the viewer scrolls toward its end.
//
// # Architecture
//
// Data flows from the listing service to a laid-out frame:
//
//	listing service (picsum)
//	         ↓
//	    [pagination] single-flight page loads, dedup, cursor
//	         ↓
//	    [layout] greedy justified rows
//	         ↓
//	    [gallery] frames for a host (TUI, HTTP)
//	         ↑
//	    [visibility] sentinel trigger   [resize] width observer
//
// # Packages
//
//   - [photo]: the Photo and Row types with validation
//   - [layout]: the row builder and summary helpers
//   - [pagination]: the incremental page loader
//   - [visibility]: viewport geometry and the load-more trigger
//   - [resize]: container width change detection
//   - [gallery]: wires the above into one orchestrator
//   - [integrations]: shared HTTP client and the picsum listing client
//   - [httputil]: retry with backoff
//   - [observability]: process-wide event hooks
//   - [errors]: coded errors shared by the CLI and HTTP service
//   - [buildinfo]: version stamping
//
// # Quick Start
//
//	client := picsum.NewClient(picsum.Options{})
//	scroller := visibility.NewScroller(visibility.Viewport{Height: 800})
//	sentinel := visibility.NewMarker(visibility.Rect{})
//	g := gallery.New(client, scroller, sentinel,
//	    gallery.WithRender(func(f gallery.Frame) {
//	        sentinel.Set(visibility.Rect{Top: f.Height})
//	    }),
//	)
//	defer g.Close()
//	g.Resize(1200, 800)
//	g.Start(ctx)
//
// [photo]: github.com/matzehuels/photogrid/pkg/photo
// [layout]: github.com/matzehuels/photogrid/pkg/layout
// [pagination]: github.com/matzehuels/photogrid/pkg/pagination
// [visibility]: github.com/matzehuels/photogrid/pkg/visibility
// [resize]: github.com/matzehuels/photogrid/pkg/resize
// [gallery]: github.com/matzehuels/photogrid/pkg/gallery
// [integrations]: github.com/matzehuels/photogrid/pkg/integrations
// [httputil]: github.com/matzehuels/photogrid/pkg/httputil
// [observability]: github.com/matzehuels/photogrid/pkg/observability
// [errors]: github.com/matzehuels/photogrid/pkg/errors
// [buildinfo]: github.com/matzehuels/photogrid/pkg/buildinfo
package pkg
