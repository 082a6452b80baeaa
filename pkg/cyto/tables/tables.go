// Package tables reads and writes the attribute tables attached to
// networks: defaultnode, defaultedge, and defaultnetwork.
package tables

import (
	"context"

	"github.com/cygraph/cygo/pkg/cyrest"
	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// Client wraps the core bridge with table-oriented calls.
type Client struct {
	core *cyrest.Client
}

// NewClient creates a tables client on top of the core bridge.
func NewClient(core *cyrest.Client) *Client {
	return &Client{core: core}
}

// Column describes one table column.
type Column struct {
	Name      string `mapstructure:"name"`
	Type      string `mapstructure:"type"`
	Immutable bool   `mapstructure:"immutable"`
	Primary   bool   `mapstructure:"primaryKey"`
}

// Get fetches a whole table. An empty network identifier targets the
// current network; table is one of the default table names or a custom
// one.
func (c *Client) Get(ctx context.Context, network cyrest.ID, table string) (*cyrest.Table, error) {
	params := netParams(network)
	params["table"] = table
	res, err := c.core.Do(ctx, "tables.get", params)
	if err != nil {
		return nil, err
	}
	return res.Table, nil
}

// Columns lists the column definitions of a table.
func (c *Client) Columns(ctx context.Context, network cyrest.ID, table string) ([]Column, error) {
	params := netParams(network)
	params["table"] = table
	res, err := c.core.Do(ctx, "tables.columns", params)
	if err != nil {
		return nil, err
	}
	var cols []Column
	if err := res.Table.Decode(&cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// Values fetches one column of a table.
func (c *Client) Values(ctx context.Context, network cyrest.ID, table, column string) ([]any, error) {
	params := netParams(network)
	params["table"] = table
	params["column"] = column
	res, err := c.core.Do(ctx, "tables.values", params)
	if err != nil {
		return nil, err
	}
	if values, ok := res.Scalar.([]any); ok {
		return values, nil
	}
	if m, ok := res.Scalar.(map[string]any); ok {
		if values, ok := m["values"].([]any); ok {
			return values, nil
		}
	}
	return nil, cyerr.New(cyerr.ErrCodeProtocol, "column response is not a value list")
}

// Load writes rows into a table, keyed by key (defaulting to "name").
// Large row sets are split into multiple requests transparently; a
// failure partway leaves earlier chunks applied, matching the server's
// own per-request semantics.
func (c *Client) Load(ctx context.Context, network cyrest.ID, table, key string, rows []cyrest.Row) error {
	if len(rows) == 0 {
		return cyerr.New(cyerr.ErrCodeMissingParameter, "no rows to load")
	}
	if key == "" {
		key = "name"
	}

	// The generic slice lets the size-limited marshaling split it.
	data := make([]any, 0, len(rows))
	for _, row := range rows {
		data = append(data, map[string]any(row))
	}

	params := netParams(network)
	params["table"] = table
	params["key"] = key
	params["dataKey"] = key
	params["data"] = data
	_, err := c.core.Do(ctx, "tables.load", params)
	return err
}

// DeleteColumn removes a column from a table.
func (c *Client) DeleteColumn(ctx context.Context, network cyrest.ID, table, column string) error {
	params := netParams(network)
	params["table"] = table
	params["column"] = column
	_, err := c.core.Do(ctx, "tables.deletecolumn", params)
	return err
}

func netParams(network cyrest.ID) cyrest.Params {
	params := cyrest.Params{}
	if network != "" {
		params["network"] = network
	}
	return params
}
