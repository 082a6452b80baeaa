package cyrest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// ConnectionInfo is the negotiated connection context: where the CyREST
// server lives and which API version it speaks.
type ConnectionInfo struct {
	BaseURL          string `json:"baseUrl"`
	APIVersion       string `json:"apiVersion"`
	CytoscapeVersion string `json:"cytoscapeVersion"`
}

// versionResponse is the payload of GET /v1/version.
type versionResponse struct {
	APIVersion       string `json:"apiVersion"`
	CytoscapeVersion string `json:"cytoscapeVersion"`
}

// EnsureConnected probes the CyREST root and caches the negotiated
// connection context. It is idempotent: once the probe has succeeded,
// subsequent calls return the cached context without touching the network.
// Concurrent first calls collapse to a single probe; the guard mutex holds
// waiters until the in-flight probe settles.
//
// On failure the returned error carries the attempted URL and no further
// operation proceeds until a later call re-probes successfully.
func (c *Client) EnsureConnected(ctx context.Context) (*ConnectionInfo, error) {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn != nil {
		return c.conn, nil
	}

	probeURL := c.baseURL + "/v1/version"
	info, err := c.probe(ctx, probeURL)
	if err != nil {
		return nil, err
	}

	if c.apiPin != "" && info.APIVersion != c.apiPin {
		c.logger.Warn("pinned API version differs from server",
			"pinned", c.apiPin, "server", info.APIVersion)
		info.APIVersion = c.apiPin
	}

	c.conn = info
	c.logger.Debug("connected to CyREST",
		"url", c.baseURL, "api", info.APIVersion, "cytoscape", info.CytoscapeVersion)
	return info, nil
}

// Invalidate clears the cached connection context, forcing a re-probe on
// the next call. Called internally after transport-level failures.
func (c *Client) Invalidate() {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	c.conn = nil
}

// Connected reports whether a probe has succeeded since the last
// invalidation.
func (c *Client) Connected() bool {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.conn != nil
}

func (c *Client) probe(ctx context.Context, probeURL string) (*ConnectionInfo, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, probeURL, nil)
	if err != nil {
		return nil, cyerr.Wrap(cyerr.ErrCodeInternal, err, "build probe request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, cyerr.Wrap(cyerr.ErrCodeConnection, err,
			"cannot reach Cytoscape at %s (is Cytoscape running with CyREST enabled?)", probeURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, cyerr.New(cyerr.ErrCodeConnection,
			"probe of %s returned status %d", probeURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, cyerr.Wrap(cyerr.ErrCodeConnection, err, "read probe response from %s", probeURL)
	}

	var ver versionResponse
	if err := json.Unmarshal(body, &ver); err != nil {
		return nil, cyerr.Wrap(cyerr.ErrCodeProtocol, err, "malformed version response from %s", probeURL)
	}
	if ver.APIVersion == "" {
		return nil, cyerr.New(cyerr.ErrCodeProtocol, "version response from %s has no apiVersion", probeURL)
	}

	return &ConnectionInfo{
		BaseURL:          c.baseURL,
		APIVersion:       ver.APIVersion,
		CytoscapeVersion: ver.CytoscapeVersion,
	}, nil
}

// versionedRoot joins the base URL with the negotiated API version prefix,
// e.g. http://localhost:1234/v1.
func versionedRoot(baseURL, apiVersion string) string {
	return fmt.Sprintf("%s/%s", baseURL, apiVersion)
}
