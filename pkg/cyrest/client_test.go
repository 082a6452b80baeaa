package cyrest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cygraph/cygo/pkg/config"
	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// newTestClient points a Client at a fake CyREST server.
func newTestClient(t *testing.T, serverURL string, opts ...Option) *Client {
	t.Helper()
	u, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("parse server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse server port: %v", err)
	}
	cfg := config.Default()
	cfg.BaseURL = u.Scheme + "://" + u.Hostname()
	cfg.Port = port
	return New(cfg, opts...)
}

// fakeCyREST is a minimal CyREST stand-in covering the operations the
// tests exercise.
func fakeCyREST(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	mux.HandleFunc("GET /v1/networks", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[52, 104]`)
	})
	mux.HandleFunc("POST /v1/networks", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"networkSUID": 52}`)
	})
	mux.HandleFunc("GET /v1/networks/{id}/tables/{table}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"rows":[{"SUID":1,"name":"node-%s"}]}`, r.PathValue("id"))
	})
	mux.HandleFunc("GET /v1/apply/styles/{style}/{network}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("style") == "no-such-style" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Visual Style does not exist: no-such-style"}`)
			return
		}
		fmt.Fprint(w, `{}`)
	})

	return httptest.NewServer(mux)
}

func TestServiceNotRunning(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	serverURL := ts.URL
	ts.Close() // nothing is listening any more

	c := newTestClient(t, serverURL)
	_, err := c.EnsureConnected(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !cyerr.Is(err, cyerr.ErrCodeConnection) {
		t.Errorf("code = %v, want CONNECTION_ERROR", cyerr.GetCode(err))
	}
	if !strings.Contains(err.Error(), serverURL) {
		t.Errorf("error should carry the attempted URL, got: %v", err)
	}

	// No subsequent call proceeds.
	if _, err := c.Do(context.Background(), "networks.list", nil); err == nil {
		t.Error("Do should fail while disconnected")
	}
}

func TestEnsureConnectedIdempotent(t *testing.T) {
	var probes atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	for range 3 {
		if _, err := c.EnsureConnected(context.Background()); err != nil {
			t.Fatalf("EnsureConnected: %v", err)
		}
	}
	if n := probes.Load(); n != 1 {
		t.Errorf("probes = %d, want 1", n)
	}

	c.Invalidate()
	if _, err := c.EnsureConnected(context.Background()); err != nil {
		t.Fatalf("EnsureConnected after Invalidate: %v", err)
	}
	if n := probes.Load(); n != 2 {
		t.Errorf("probes after invalidate = %d, want 2", n)
	}
}

func TestSessionDefaultPropagation(t *testing.T) {
	ts := fakeCyREST(t)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	ctx := context.Background()

	res, err := c.Do(ctx, "networks.create", Params{"network": map[string]any{"data": map[string]any{"name": "test"}}})
	if err != nil {
		t.Fatalf("networks.create: %v", err)
	}
	id, ok := res.ScalarID()
	if !ok || id != "52" {
		t.Fatalf("ScalarID = (%q, %v), want 52", id, ok)
	}

	if current, ok := c.State().Default(KindNetwork); !ok || current != "52" {
		t.Errorf("current network = (%q, %v), want 52", current, ok)
	}

	// A following call that omits its network parameter resolves to the
	// just-created identifier.
	tableRes, err := c.Do(ctx, "tables.get", Params{"table": TableNode})
	if err != nil {
		t.Fatalf("tables.get: %v", err)
	}
	name, _ := tableRes.Table.Value(0, "name")
	if name != "node-52" {
		t.Errorf("row name = %v, want node-52 (session default not applied)", name)
	}
}

func TestExplicitParameterOverridesSession(t *testing.T) {
	ts := fakeCyREST(t)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	ctx := context.Background()

	c.State().SetCurrent(KindNetwork, "52")

	res, err := c.Do(ctx, "tables.get", Params{"network": "104", "table": TableNode})
	if err != nil {
		t.Fatalf("tables.get: %v", err)
	}
	name, _ := res.Table.Value(0, "name")
	if name != "node-104" {
		t.Errorf("row name = %v, want node-104 (explicit parameter must win)", name)
	}
}

func TestMissingParameterFailsBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Do(context.Background(), "tables.get", Params{"table": TableNode})
	if !cyerr.Is(err, cyerr.ErrCodeMissingParameter) {
		t.Errorf("code = %v, want MISSING_PARAMETER", cyerr.GetCode(err))
	}
	if calls.Load() != 0 {
		t.Error("missing parameter must be detected before any network call")
	}
}

func TestInvalidRequestKeepsSessionState(t *testing.T) {
	ts := fakeCyREST(t)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	ctx := context.Background()
	c.State().SetCurrent(KindNetwork, "52")
	c.State().SetCurrent(KindStyle, "default")

	_, err := c.Do(ctx, "styles.apply", Params{"style": "no-such-style"})
	if !cyerr.Is(err, cyerr.ErrCodeInvalidRequest) {
		t.Fatalf("code = %v, want INVALID_REQUEST", cyerr.GetCode(err))
	}
	if !strings.Contains(err.Error(), "Visual Style does not exist") {
		t.Errorf("server message lost: %v", err)
	}

	if style, _ := c.State().Default(KindStyle); style != "default" {
		t.Errorf("current style = %q, want unchanged %q", style, "default")
	}
}

func TestStateSettingFromParameter(t *testing.T) {
	ts := fakeCyREST(t)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	c.State().SetCurrent(KindNetwork, "52")

	if _, err := c.Do(context.Background(), "styles.apply", Params{"style": "Minimal"}); err != nil {
		t.Fatalf("styles.apply: %v", err)
	}
	if style, ok := c.State().Default(KindStyle); !ok || style != "Minimal" {
		t.Errorf("current style = (%q, %v), want Minimal", style, ok)
	}
}

func TestReadOnlyIdempotence(t *testing.T) {
	ts := fakeCyREST(t)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	ctx := context.Background()

	first, err := c.Do(ctx, "networks.list", nil)
	if err != nil {
		t.Fatalf("networks.list: %v", err)
	}
	second, err := c.Do(ctx, "networks.list", nil)
	if err != nil {
		t.Fatalf("networks.list: %v", err)
	}
	if len(first.IDs) != len(second.IDs) {
		t.Fatalf("lengths differ: %d vs %d", len(first.IDs), len(second.IDs))
	}
	for i := range first.IDs {
		if first.IDs[i] != second.IDs[i] {
			t.Errorf("IDs[%d]: %q vs %q", i, first.IDs[i], second.IDs[i])
		}
	}
}

func TestTimeoutRetriesReadOnlyExactly(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	mux.HandleFunc("GET /v1/networks", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(500 * time.Millisecond)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	u, _ := url.Parse(ts.URL)
	port, _ := strconv.Atoi(u.Port())
	cfg := config.Default()
	cfg.BaseURL = u.Scheme + "://" + u.Hostname()
	cfg.Port = port
	cfg.TimeoutSeconds = 0 // falls back to default; override below
	cfg.RetryCount = 1

	c := New(cfg)
	c.timeout = 50 * time.Millisecond

	_, err := c.Do(context.Background(), "networks.list", nil)
	if !cyerr.Is(err, cyerr.ErrCodeServiceUnavailable) {
		t.Fatalf("code = %v, want SERVICE_UNAVAILABLE", cyerr.GetCode(err))
	}
	// One initial attempt plus exactly retry_count retries.
	if n := calls.Load(); n != 2 {
		t.Errorf("attempts = %d, want 2", n)
	}
}

func TestMutatingOperationNeverRetries(t *testing.T) {
	var creates atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	mux.HandleFunc("POST /v1/networks", func(w http.ResponseWriter, r *http.Request) {
		creates.Add(1)
		time.Sleep(500 * time.Millisecond)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	c.retryCount = 3
	c.timeout = 50 * time.Millisecond

	_, err := c.Do(context.Background(), "networks.create", Params{"network": map[string]any{}})
	if !cyerr.Is(err, cyerr.ErrCodeServiceUnavailable) {
		t.Fatalf("code = %v, want SERVICE_UNAVAILABLE", cyerr.GetCode(err))
	}
	if n := creates.Load(); n != 1 {
		t.Errorf("attempts = %d, want 1 (create is not read-only)", n)
	}

	// The failed operation must not touch session state.
	if _, ok := c.State().Default(KindNetwork); ok {
		t.Error("failed create must leave session state unmodified")
	}
}

func TestServerErrorMapsToServiceError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	mux.HandleFunc("GET /v1/networks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"table store corrupted"}`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Do(context.Background(), "networks.list", nil)
	if !cyerr.Is(err, cyerr.ErrCodeService) {
		t.Fatalf("code = %v, want SERVICE_ERROR", cyerr.GetCode(err))
	}
	if !strings.Contains(err.Error(), "table store corrupted") {
		t.Errorf("server message lost: %v", err)
	}
}

func TestUnknownOperation(t *testing.T) {
	ts := fakeCyREST(t)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Do(context.Background(), "networks.frobnicate", nil)
	if !cyerr.Is(err, cyerr.ErrCodeUnknownOperation) {
		t.Errorf("code = %v, want UNKNOWN_OPERATION", cyerr.GetCode(err))
	}
}

func TestVersionFallback(t *testing.T) {
	// Server negotiates v9; there is no v9 table, so the v1 descriptors
	// apply and requests go out under the negotiated /v9 root.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v9","cytoscapeVersion":"9.0.0"}`)
	})
	mux.HandleFunc("GET /v9/networks", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[1]`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	res, err := c.Do(context.Background(), "networks.list", nil)
	if err != nil {
		t.Fatalf("networks.list under fallback: %v", err)
	}
	if len(res.IDs) != 1 || res.IDs[0] != "1" {
		t.Errorf("IDs = %v, want [1]", res.IDs)
	}
}

func TestChunkedTableLoad(t *testing.T) {
	var bodies [][]byte
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	mux.HandleFunc("PUT /v1/networks/{id}/tables/{table}", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, data)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	rows := make([]any, 2500)
	for i := range rows {
		rows[i] = map[string]any{"SUID": i, "score": float64(i) / 10}
	}

	c := newTestClient(t, ts.URL)
	_, err := c.Do(context.Background(), "tables.load", Params{
		"network": "52",
		"table":   TableNode,
		"key":     "SUID",
		"data":    rows,
	})
	if err != nil {
		t.Fatalf("tables.load: %v", err)
	}

	if len(bodies) != 3 {
		t.Fatalf("requests = %d, want 3 chunks of <=1000 rows", len(bodies))
	}
	total := 0
	for _, body := range bodies {
		var payload struct {
			Key  string           `json:"key"`
			Data []map[string]any `json:"data"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("unmarshal chunk: %v", err)
		}
		if payload.Key != "SUID" {
			t.Errorf("chunk key = %q, want SUID", payload.Key)
		}
		if len(payload.Data) > 1000 {
			t.Errorf("chunk rows = %d, want <=1000", len(payload.Data))
		}
		total += len(payload.Data)
	}
	if total != 2500 {
		t.Errorf("total rows = %d, want 2500", total)
	}
}

func TestSessionNewClearsState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	mux.HandleFunc("DELETE /v1/session", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	c.State().SetCurrent(KindNetwork, "52")
	c.State().SetCurrent(KindStyle, "Minimal")

	if _, err := c.Do(context.Background(), "session.new", nil); err != nil {
		t.Fatalf("session.new: %v", err)
	}
	if _, ok := c.State().Default(KindNetwork); ok {
		t.Error("session.new must clear the current network")
	}
	if _, ok := c.State().Default(KindStyle); ok {
		t.Error("session.new must clear the current style")
	}
}
