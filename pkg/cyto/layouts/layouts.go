// Package layouts applies layout algorithms to networks and manages
// their tuning parameters.
package layouts

import (
	"context"

	"github.com/cygraph/cygo/pkg/cyrest"
	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// Client wraps the core bridge with layout-oriented calls.
type Client struct {
	core *cyrest.Client
}

// NewClient creates a layouts client on top of the core bridge.
func NewClient(core *cyrest.Client) *Client {
	return &Client{core: core}
}

// Parameter is one tunable setting of a layout algorithm.
type Parameter struct {
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	Type        string `json:"type" mapstructure:"type"`
	Value       any    `json:"value" mapstructure:"value"`
}

// List returns the names of the installed layout algorithms. The
// catalog only changes when apps are installed, so results are served
// from the client's cache when one is attached.
func (c *Client) List(ctx context.Context) ([]string, error) {
	cache := c.core.Cache()
	if cache != nil {
		scoped := cache.Namespace("layouts:")
		var cached []string
		if ok, err := scoped.Get("catalog", &cached); ok && err == nil {
			return cached, nil
		}
	}

	res, err := c.core.Do(ctx, "layouts.list", nil)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(res.IDs))
	for _, id := range res.IDs {
		names = append(names, string(id))
	}

	if cache != nil {
		// A failed write only costs the next call a round trip.
		_ = cache.Namespace("layouts:").Set("catalog", names)
	}
	return names, nil
}

// Apply runs a layout algorithm on a network. An empty network
// identifier targets the current network. Applying a layout moves node
// positions, so failures are never retried even though the wire call is
// a GET.
func (c *Client) Apply(ctx context.Context, algorithm string, network cyrest.ID) error {
	if algorithm == "" {
		return cyerr.New(cyerr.ErrCodeMissingParameter, "layout algorithm name is required")
	}
	params := cyrest.Params{"algorithm": algorithm}
	if network != "" {
		params["network"] = network
	}
	_, err := c.core.Do(ctx, "layouts.apply", params)
	return err
}

// Params returns the tunable parameters of a layout algorithm.
func (c *Client) Params(ctx context.Context, algorithm string) ([]Parameter, error) {
	res, err := c.core.Do(ctx, "layouts.params", cyrest.Params{"algorithm": algorithm})
	if err != nil {
		return nil, err
	}
	var params []Parameter
	if err := res.Table.Decode(&params); err != nil {
		return nil, err
	}
	return params, nil
}

// SetParams updates parameters on a layout algorithm. Only name and
// value are sent; the server rejects unknown names.
func (c *Client) SetParams(ctx context.Context, algorithm string, params []Parameter) error {
	if len(params) == 0 {
		return cyerr.New(cyerr.ErrCodeMissingParameter, "no parameters to set")
	}
	payload := make([]map[string]any, 0, len(params))
	for _, p := range params {
		payload = append(payload, map[string]any{"name": p.Name, "value": p.Value})
	}
	_, err := c.core.Do(ctx, "layouts.setparams", cyrest.Params{
		"algorithm":  algorithm,
		"parameters": payload,
	})
	return err
}
