package networks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/cygraph/cygo/pkg/config"
	"github.com/cygraph/cygo/pkg/cyrest"
	cyerr "github.com/cygraph/cygo/pkg/errors"
)

func newTestClient(t *testing.T, serverURL string) *Client {
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
	return NewClient(cyrest.New(cfg))
}

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	mux.HandleFunc("GET /v1/networks", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[52, 104]`)
	})
	mux.HandleFunc("GET /v1/networks/count", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count": 2}`)
	})
	mux.HandleFunc("GET /v1/networks.names", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name":"galFiltered","SUID":52},{"name":"yeast","SUID":104}]`)
	})
	mux.HandleFunc("POST /v1/networks", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		elements, _ := payload["elements"].(map[string]any)
		nodes, _ := elements["nodes"].([]any)
		if len(nodes) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"message":"network has no nodes"}`)
			return
		}
		fmt.Fprint(w, `{"networkSUID": 208}`)
	})
	mux.HandleFunc("GET /v1/networks/{id}/nodes", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[1, 2, 3]`)
	})
	mux.HandleFunc("GET /v1/networks/{id}/edges", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[7, 8]`)
	})
	mux.HandleFunc("GET /v1/networks/{id}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"name":"galFiltered","SUID":52},"elements":{"nodes":[],"edges":[]}}`)
	})
	mux.HandleFunc("GET /v1/networks/{id}/nodes/count", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count": 3}`)
	})
	mux.HandleFunc("GET /v1/networks/{id}/edges/count", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count": 2}`)
	})
	mux.HandleFunc("DELETE /v1/networks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /v1/commands/network/rename", func(w http.ResponseWriter, r *http.Request) {
		var args map[string]any
		json.NewDecoder(r.Body).Decode(&args)
		if args["name"] == nil {
			fmt.Fprint(w, `{"data":{},"errors":["no name given"]}`)
			return
		}
		fmt.Fprint(w, `{"data":{},"errors":[]}`)
	})
	return httptest.NewServer(mux)
}

func TestListAndCount(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)
	ctx := context.Background()

	ids, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 2 || ids[0] != "52" {
		t.Errorf("List = %v", ids)
	}

	n, err := c.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestCreateSetsCurrentNetwork(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)

	id, err := c.Create(context.Background(), "demo",
		[]string{"a", "b"}, []Edge{{Source: "a", Target: "b"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "208" {
		t.Errorf("id = %q, want 208", id)
	}

	// The new network becomes the default target for subsequent calls.
	nodes, err := c.Nodes(context.Background(), "")
	if err != nil {
		t.Fatalf("Nodes with session default: %v", err)
	}
	if len(nodes) != 3 {
		t.Errorf("Nodes = %v", nodes)
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)

	_, err := c.Create(context.Background(), "", nil, nil)
	if !cyerr.Is(err, cyerr.ErrCodeInvalidInput) {
		t.Errorf("code = %v, want INVALID_INPUT", cyerr.GetCode(err))
	}
}

func TestGetByName(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)

	id, err := c.GetByName(context.Background(), "yeast")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if id != "104" {
		t.Errorf("id = %q, want 104", id)
	}

	_, err = c.GetByName(context.Background(), "absent")
	if !cyerr.Is(err, cyerr.ErrCodeNotFound) {
		t.Errorf("code = %v, want NOT_FOUND", cyerr.GetCode(err))
	}
}

func TestGet(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)

	net, err := c.Get(context.Background(), "52")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	data, ok := net["data"].(map[string]any)
	if !ok || data["name"] != "galFiltered" {
		t.Errorf("data = %v", net["data"])
	}
}

func TestNodeAndEdgeCounts(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)
	ctx := context.Background()

	nodes, err := c.NodeCount(ctx, "52")
	if err != nil {
		t.Fatalf("NodeCount: %v", err)
	}
	if nodes != 3 {
		t.Errorf("NodeCount = %d, want 3", nodes)
	}

	edges, err := c.EdgeCount(ctx, "52")
	if err != nil {
		t.Fatalf("EdgeCount: %v", err)
	}
	if edges != 2 {
		t.Errorf("EdgeCount = %d, want 2", edges)
	}
}

func TestRename(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)

	if err := c.Rename(context.Background(), "52", "renamed"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	err := c.Rename(context.Background(), "52", "")
	if !cyerr.Is(err, cyerr.ErrCodeInvalidInput) {
		t.Errorf("code = %v, want INVALID_INPUT", cyerr.GetCode(err))
	}
}

func TestEdgesExplicitTarget(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c := newTestClient(t, ts.URL)

	edges, err := c.Edges(context.Background(), "52")
	if err != nil {
		t.Fatalf("Edges: %v", err)
	}
	if len(edges) != 2 {
		t.Errorf("Edges = %v", edges)
	}
}
