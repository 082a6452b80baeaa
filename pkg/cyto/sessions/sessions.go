// Package sessions controls the Cytoscape session as a whole: the
// single workspace file holding every network, view, style and table.
package sessions

import (
	"context"
	"fmt"

	"github.com/cygraph/cygo/pkg/cyrest"
	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// Client wraps the core bridge with session-level calls.
type Client struct {
	core *cyrest.Client
}

// NewClient creates a sessions client on top of the core bridge.
func NewClient(core *cyrest.Client) *Client {
	return &Client{core: core}
}

// Name returns the file name of the current session, or the empty
// string for an unsaved session.
func (c *Client) Name(ctx context.Context) (string, error) {
	res, err := c.core.Do(ctx, "session.name", nil)
	if err != nil {
		return "", err
	}
	switch v := res.Scalar.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return fmt.Sprint(v), nil
	}
}

// Save writes the session to a .cys file on the machine running
// Cytoscape.
func (c *Client) Save(ctx context.Context, file string) error {
	if file == "" {
		return cyerr.New(cyerr.ErrCodeMissingParameter, "session file name is required")
	}
	_, err := c.core.Do(ctx, "session.save", cyrest.Params{"file": file})
	return err
}

// New discards the current session and starts an empty one. All cached
// session defaults (current network, view, style) are cleared with it.
func (c *Client) New(ctx context.Context) error {
	_, err := c.core.Do(ctx, "session.new", nil)
	return err
}
