package layouts

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cygraph/cygo/pkg/config"
	"github.com/cygraph/cygo/pkg/cyrest"
	cyerr "github.com/cygraph/cygo/pkg/errors"
	"github.com/cygraph/cygo/pkg/httputil"
)

func newTestClient(t *testing.T, serverURL string, opts ...cyrest.Option) *Client {
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
	return NewClient(cyrest.New(cfg, opts...))
}

type fake struct {
	lists atomic.Int64
}

func (f *fake) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	mux.HandleFunc("GET /v1/apply/layouts", func(w http.ResponseWriter, r *http.Request) {
		f.lists.Add(1)
		fmt.Fprint(w, `["force-directed","circular","grid"]`)
	})
	mux.HandleFunc("GET /v1/apply/layouts/{algo}/{network}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("algo") == "no-such-layout" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"No such layout algorithm: no-such-layout"}`)
			return
		}
		fmt.Fprint(w, `{}`)
	})
	mux.HandleFunc("GET /v1/apply/layouts/{algo}/parameters", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name":"defaultSpringLength","description":"Spring length","type":"double","value":50.0},
			{"name":"numIterations","description":"Iterations","type":"int","value":100}
		]`)
	})
	mux.HandleFunc("PUT /v1/apply/layouts/{algo}/parameters", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(mux)
}

func TestListUsesCache(t *testing.T) {
	f := &fake{}
	ts := f.server(t)
	defer ts.Close()

	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	c := newTestClient(t, ts.URL, cyrest.WithCache(cache))
	ctx := context.Background()

	names, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 3 {
		t.Errorf("names = %v", names)
	}

	// Second call is a cache hit, no extra server round trip.
	if _, err := c.List(ctx); err != nil {
		t.Fatalf("List (cached): %v", err)
	}
	if got := f.lists.Load(); got != 1 {
		t.Errorf("server list calls = %d, want 1", got)
	}
}

func TestListWithoutCache(t *testing.T) {
	f := &fake{}
	ts := f.server(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)
	ctx := context.Background()

	if _, err := c.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if _, err := c.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := f.lists.Load(); got != 2 {
		t.Errorf("server list calls = %d, want 2", got)
	}
}

func TestApply(t *testing.T) {
	f := &fake{}
	ts := f.server(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)

	if err := c.Apply(context.Background(), "force-directed", "52"); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	err := c.Apply(context.Background(), "no-such-layout", "52")
	if !cyerr.Is(err, cyerr.ErrCodeInvalidRequest) {
		t.Errorf("code = %v, want INVALID_REQUEST", cyerr.GetCode(err))
	}

	if err := c.Apply(context.Background(), "", "52"); !cyerr.Is(err, cyerr.ErrCodeMissingParameter) {
		t.Errorf("empty algorithm: code = %v, want MISSING_PARAMETER", cyerr.GetCode(err))
	}
}

func TestParamsRoundTrip(t *testing.T) {
	f := &fake{}
	ts := f.server(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)
	ctx := context.Background()

	params, err := c.Params(ctx, "force-directed")
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if len(params) != 2 || params[0].Name != "defaultSpringLength" {
		t.Errorf("params = %+v", params)
	}

	params[1].Value = 250
	if err := c.SetParams(ctx, "force-directed", params); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	if err := c.SetParams(ctx, "force-directed", nil); !cyerr.Is(err, cyerr.ErrCodeMissingParameter) {
		t.Errorf("empty params: code = %v, want MISSING_PARAMETER", cyerr.GetCode(err))
	}
}
