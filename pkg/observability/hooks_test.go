package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	o := NoopOperationHooks{}
	o.OnOperationStart(ctx, "networks.list")
	o.OnOperationComplete(ctx, "networks.list", time.Second, nil)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "http://localhost:1234/v1/networks")
	h.OnResponse(ctx, "GET", "http://localhost:1234/v1/networks", 200, time.Second)
	h.OnError(ctx, "GET", "http://localhost:1234/v1/networks", nil)
}

type recordingOperationHooks struct {
	mu        sync.Mutex
	started   []string
	completed []string
	errs      []error
}

func (r *recordingOperationHooks) OnOperationStart(_ context.Context, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, op)
}

func (r *recordingOperationHooks) OnOperationComplete(_ context.Context, op string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, op)
	r.errs = append(r.errs, err)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Operation().(NoopOperationHooks); !ok {
		t.Error("Operation() should return NoopOperationHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	rec := &recordingOperationHooks{}
	SetOperationHooks(rec)

	Operation().OnOperationStart(context.Background(), "networks.list")
	Operation().OnOperationComplete(context.Background(), "networks.list", time.Millisecond, errors.New("boom"))

	if len(rec.started) != 1 || rec.started[0] != "networks.list" {
		t.Errorf("started = %v", rec.started)
	}
	if len(rec.completed) != 1 || rec.errs[0] == nil {
		t.Errorf("completed = %v, errs = %v", rec.completed, rec.errs)
	}

	Reset()
	if _, ok := Operation().(NoopOperationHooks); !ok {
		t.Error("Reset should restore noop hooks")
	}
}

func TestSetNilHookIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	SetOperationHooks(nil)
	if _, ok := Operation().(NoopOperationHooks); !ok {
		t.Error("nil hooks must not replace the default")
	}
	SetHTTPHooks(nil)
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("nil hooks must not replace the default")
	}
}
