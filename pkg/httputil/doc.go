// Package httputil provides HTTP utilities for the CyREST client.
//
// # Overview
//
// This package provides infrastructure shared by the request executor and
// the resource clients:
//
//   - [Cache]: File-based caching of stable read-only responses
//   - [Retry]: Bounded retry with exponential backoff
//
// # Caching
//
// [Cache] stores JSON-marshalable values in the filesystem
// (~/.cache/cygo/) with a configurable TTL. CyREST calls are stateful and
// are never cached wholesale; the cache is reserved for catalog responses
// that are stable for the lifetime of a Cytoscape session, such as the
// list of layout algorithm names or the visual property catalog.
//
// Usage:
//
//	cache, err := httputil.NewCache("", time.Hour)
//	ok, _ := cache.Get("layouts:names", &names)
//	if !ok {
//	    names = fetchFromAPI()
//	    cache.Set("layouts:names", names)
//	}
//
// # Retry
//
// [Retry] re-runs an operation for transient transport failures. Only
// errors wrapped in [RetryableError] trigger another attempt; HTTP 4xx and
// 5xx results are never wrapped by the executor and therefore never
// retried. Backoff doubles after each failed attempt.
//
//	err := httputil.Retry(ctx, attempts, time.Second, func() error {
//	    return doRequest()
//	})
package httputil
