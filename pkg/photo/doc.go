// Package photo defines the data model shared by the layout engine, the
// pagination controller and the renderers.
//
// A [Photo] is immutable once fetched except for its display fields, which
// only the layout engine assigns, and only on its own copies. A [Row] is a
// derived, ephemeral value: every layout pass builds fresh rows from the full
// photo sequence.
//
// # JSON
//
// Both types carry JSON tags so they can be written by the fetch and layout
// commands and served by the HTTP service:
//
//	{
//	  "id": "0",
//	  "author": "Alejandro Escamilla",
//	  "width": 5000,
//	  "height": 3333,
//	  "source_url": "https://picsum.photos/id/0/5000/3333"
//	}
package photo
