// Package httputil provides HTTP utilities for the photo listing clients.
//
// # Retry
//
// [Retry] re-runs an operation for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// Only errors wrapped in [RetryableError] are retried; everything else is
// returned at once. The delay doubles after each failed attempt:
//
//	err := httputil.Retry(ctx, httputil.Policy{Attempts: 3, Delay: time.Second}, func() error {
//	    return client.Get(ctx, url, &v)
//	})
//
// # Default policy
//
// The gallery recovers from a failed page by re-requesting it on the next
// scroll trigger, so the default [Policy] makes a single attempt. A larger
// Attempts value adds transport-level retries underneath that behaviour.
package httputil
