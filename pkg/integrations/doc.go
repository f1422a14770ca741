// Package integrations provides HTTP clients for remote photo listing services.
//
// # Overview
//
// Each listing service has its own subpackage:
//
//   - [picsum]: Lorem Picsum (picsum.photos) paged photo list
//
// # Client Pattern
//
// Service clients follow a consistent pattern: they embed the shared
// [Client], keep an overridable base URL, and expose a FetchPage method that
// returns photos normalized to [photo.Photo]:
//
//	client := picsum.NewClient(picsum.Options{})
//	photos, err := client.FetchPage(ctx, 1, 20)
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all service
// clients: default headers, status classification into [ErrNotFound] and
// [ErrNetwork], JSON decoding with [ErrMalformed] for bad payloads,
// optional transport retries via [httputil.Retry], and [observability.HTTP]
// events. Responses are never cached; photo data lives only in memory.
//
// # Adding a New Service
//
//  1. Create a subpackage: pkg/integrations/<service>/
//  2. Define response structs matching the API schema
//  3. Implement a Client with a FetchPage(ctx, page, size) method
//  4. Use [NewClient] for HTTP
//  5. Register the service in the CLI source flag
//
// [picsum]: github.com/matzehuels/photogrid/pkg/integrations/picsum
// [photo.Photo]: github.com/matzehuels/photogrid/pkg/photo.Photo
// [httputil.Retry]: github.com/matzehuels/photogrid/pkg/httputil.Retry
// [observability.HTTP]: github.com/matzehuels/photogrid/pkg/observability.HTTP
package integrations
