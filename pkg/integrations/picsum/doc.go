// Package picsum fetches pages of photo metadata from Lorem Picsum.
//
// The listing endpoint is GET /v2/list?page=N&limit=M, returning a JSON array
// of records:
//
//	[{"id":"0","author":"Alejandro Escamilla","width":5000,"height":3333,
//	  "url":"https://unsplash.com/...","download_url":"https://picsum.photos/id/0/5000/3333"}]
//
// An empty array marks the end of the list. Records are normalized to
// [photo.Photo]; download_url becomes the image locator.
//
// [photo.Photo]: github.com/matzehuels/photogrid/pkg/photo.Photo
package picsum
