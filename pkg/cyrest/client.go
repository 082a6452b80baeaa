package cyrest

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cygraph/cygo/pkg/config"
	cyerr "github.com/cygraph/cygo/pkg/errors"
	"github.com/cygraph/cygo/pkg/httputil"
	"github.com/cygraph/cygo/pkg/observability"
)

// Client is the command-dispatch bridge to one CyREST endpoint. It owns
// the connection context and the session-state cache; every operation,
// whether issued through [Client.Do] or a pkg/cyto wrapper, flows through
// it.
//
// All methods are safe for concurrent use, though the target is a single
// local Cytoscape process and calls execute sequentially from the caller's
// perspective.
type Client struct {
	baseURL    string // scheme://host:port, no trailing slash
	apiPin     string
	timeout    time.Duration
	retryCount int

	httpc  *http.Client
	logger *log.Logger
	state  *SessionState

	stateFile *StateFile      // optional persistence of session defaults
	cache     *httputil.Cache // optional catalog cache, may be nil

	connMu sync.Mutex
	conn   *ConnectionInfo
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a logger; debug level traces every request.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithSessionState injects an externally owned session-state cache so
// tests (or embedders running several pipelines) get isolated instances.
func WithSessionState(s *SessionState) Option {
	return func(c *Client) { c.state = s }
}

// WithStateFile persists session defaults to disk after every
// state-setting operation and loads them at construction.
func WithStateFile(f *StateFile) Option {
	return func(c *Client) { c.stateFile = f }
}

// WithCache attaches a response cache for stable read-only catalog calls.
// The resource clients decide per operation whether to consult it; the
// core never caches wholesale.
func WithCache(cache *httputil.Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// New creates a Client for the endpoint described by cfg. No connection is
// attempted until the first call; the service may be absent at startup and
// become available later.
func New(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		baseURL:    fmt.Sprintf("%s:%d", cfg.BaseURL, cfg.Port),
		apiPin:     cfg.APIVersion,
		timeout:    cfg.Timeout(),
		retryCount: cfg.RetryCount,
		logger:     log.Default(),
		state:      NewSessionState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		c.httpc = &http.Client{}
	}
	if c.stateFile != nil {
		if err := c.stateFile.Load(c.state); err != nil {
			c.logger.Warn("could not load persisted session state", "err", err)
		}
	}
	return c
}

// BaseURL returns the endpoint root, e.g. http://localhost:1234.
func (c *Client) BaseURL() string { return c.baseURL }

// State exposes the session-state cache.
func (c *Client) State() *SessionState { return c.state }

// Cache returns the attached catalog cache, or nil.
func (c *Client) Cache() *httputil.Cache { return c.cache }

// Do dispatches one logical operation: ensure connected, resolve the
// descriptor against the negotiated API version, merge session defaults,
// marshal, execute, normalize, and finally update session state for
// state-setting operations. Session state is left unmodified when the
// operation fails at any stage.
func (c *Client) Do(ctx context.Context, op string, params Params) (res *Result, err error) {
	if err := cyerr.ValidateOperationName(op); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Operation().OnOperationStart(ctx, op)
	defer func() {
		observability.Operation().OnOperationComplete(ctx, op, time.Since(start), err)
	}()

	info, err := c.EnsureConnected(ctx)
	if err != nil {
		return nil, err
	}

	desc, err := c.lookup(op, info.APIVersion)
	if err != nil {
		return nil, err
	}

	snapshot := c.state.Snapshot()
	resolved, err := resolveParams(desc, params, snapshot)
	if err != nil {
		return nil, err
	}

	path, err := buildPath(desc, resolved)
	if err != nil {
		return nil, err
	}
	query, err := buildQuery(desc, resolved)
	if err != nil {
		return nil, err
	}
	bodies, err := buildBodies(desc, resolved)
	if err != nil {
		return nil, err
	}

	urlStr := versionedRoot(c.baseURL, info.APIVersion) + path
	if encoded := query.Encode(); encoded != "" {
		urlStr += "?" + encoded
	}

	var raw []byte
	for _, body := range bodies {
		raw, err = c.execute(ctx, desc, urlStr, body)
		if err != nil {
			return nil, err
		}
	}

	res, err = normalize(raw, desc.Result)
	if err != nil {
		return nil, err
	}

	c.updateState(desc, resolved, res)
	return res, nil
}

// lookup finds the descriptor for op in the version-keyed tables, falling
// back to the nearest lower version with a warning when the negotiated
// version has no table of its own.
func (c *Client) lookup(op, version string) (*Descriptor, error) {
	table, matched, exact, ok := tableFor(version)
	if !ok {
		return nil, cyerr.New(cyerr.ErrCodeUnknownOperation,
			"no descriptor table for API version %q or below", version)
	}
	if !exact {
		c.logger.Warn("no exact descriptor table for API version, using nearest lower",
			"requested", version, "using", matched)
	}

	desc, found := table[op]
	if !found {
		return nil, cyerr.New(cyerr.ErrCodeUnknownOperation,
			"operation %q is not defined for API version %s", op, matched)
	}
	return desc, nil
}

// updateState applies the session-state effects of a successful operation.
func (c *Client) updateState(desc *Descriptor, resolved map[string]any, res *Result) {
	changed := false

	if desc.ClearsState {
		c.state.Reset()
		changed = true
	}

	if desc.Sets != "" {
		var id ID
		var ok bool
		if desc.SetsFrom == SetsFromResult {
			id, ok = res.ScalarID()
		} else if value, found := resolved[desc.SetsFrom]; found {
			id, ok = idFromAny(value)
		}
		if ok {
			prev, had := c.state.Default(desc.Sets)
			c.state.SetCurrent(desc.Sets, id)
			// A different current network makes the cached view stale.
			if desc.Sets == KindNetwork && (!had || prev != id) {
				c.state.Clear(KindView)
			}
			changed = true
		}
	}

	if changed && c.stateFile != nil {
		if err := c.stateFile.Save(c.state); err != nil {
			c.logger.Warn("could not persist session state", "err", err)
		}
	}
}
