package sessions

import (
	"context"
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

func newTestClient(t *testing.T, serverURL string) (*Client, *cyrest.Client) {
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
	core := cyrest.New(cfg)
	return NewClient(core), core
}

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"apiVersion":"v1","cytoscapeVersion":"3.10.1"}`)
	})
	mux.HandleFunc("GET /v1/session/name", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"galFiltered.cys"}`)
	})
	mux.HandleFunc("POST /v1/session", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("file") == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"message":"file is required"}`)
			return
		}
		fmt.Fprint(w, `{"file":"/tmp/out.cys"}`)
	})
	mux.HandleFunc("DELETE /v1/session", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"New session created."}`)
	})
	return httptest.NewServer(mux)
}

func TestName(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c, _ := newTestClient(t, ts.URL)

	name, err := c.Name(context.Background())
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if name != "galFiltered.cys" {
		t.Errorf("name = %q", name)
	}
}

func TestSave(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c, _ := newTestClient(t, ts.URL)

	if err := c.Save(context.Background(), "/tmp/out.cys"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := c.Save(context.Background(), ""); !cyerr.Is(err, cyerr.ErrCodeMissingParameter) {
		t.Errorf("empty file: code = %v, want MISSING_PARAMETER", cyerr.GetCode(err))
	}
}

func TestNewClearsSessionDefaults(t *testing.T) {
	ts := fakeServer(t)
	defer ts.Close()
	c, core := newTestClient(t, ts.URL)
	core.State().SetCurrent(cyrest.KindNetwork, "52")
	core.State().SetCurrent(cyrest.KindStyle, "Minimal")

	if err := c.New(context.Background()); err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := core.State().Default(cyrest.KindNetwork); ok {
		t.Error("current network should be cleared")
	}
	if _, ok := core.State().Default(cyrest.KindStyle); ok {
		t.Error("current style should be cleared")
	}
}
