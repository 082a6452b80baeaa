// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about bridge operations and the
// HTTP calls underneath them.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetOperationHooks(&myOperationHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Operation Hooks
// =============================================================================

// OperationHooks receives events from logical bridge operations, one
// pair per call regardless of how many HTTP requests it expands into.
type OperationHooks interface {
	// OnOperationStart records the start of a logical operation.
	OnOperationStart(ctx context.Context, op string)

	// OnOperationComplete records the outcome of a logical operation.
	OnOperationComplete(ctx context.Context, op string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, url string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, url string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, url string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopOperationHooks is a no-op implementation of OperationHooks.
type NoopOperationHooks struct{}

func (NoopOperationHooks) OnOperationStart(context.Context, string)                          {}
func (NoopOperationHooks) OnOperationComplete(context.Context, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	operationHooks OperationHooks = NoopOperationHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetOperationHooks registers custom operation hooks.
// This should be called once at application startup before any bridge calls.
func SetOperationHooks(h OperationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		operationHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Operation returns the registered operation hooks.
func Operation() OperationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return operationHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	operationHooks = NoopOperationHooks{}
	httpHooks = NoopHTTPHooks{}
}
