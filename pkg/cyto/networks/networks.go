// Package networks provides typed operations on Cytoscape networks.
//
// A network is a graph object (nodes plus edges) managed by the running
// Cytoscape instance and referenced by an opaque identifier. Operations
// that omit the network identifier target the session's current network.
package networks

import (
	"context"
	"fmt"

	"github.com/cygraph/cygo/pkg/cyrest"
	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// Client wraps the core bridge with network-oriented calls.
// All methods are safe for concurrent use.
type Client struct {
	core *cyrest.Client
}

// NewClient creates a networks client on top of the core bridge.
func NewClient(core *cyrest.Client) *Client {
	return &Client{core: core}
}

// Edge describes one directed edge of a network to be created.
type Edge struct {
	Source      string
	Target      string
	Interaction string // empty defaults to "interacts with"
}

// List returns the identifiers of all networks in the session.
func (c *Client) List(ctx context.Context) ([]cyrest.ID, error) {
	res, err := c.core.Do(ctx, "networks.list", nil)
	if err != nil {
		return nil, err
	}
	return res.IDs, nil
}

// Count returns the number of networks in the session.
func (c *Client) Count(ctx context.Context) (int64, error) {
	return c.count(ctx, "networks.count", nil)
}

// NodeCount returns the number of nodes in a network.
func (c *Client) NodeCount(ctx context.Context, network cyrest.ID) (int64, error) {
	return c.count(ctx, "networks.nodecount", targetParams(network))
}

// EdgeCount returns the number of edges in a network.
func (c *Client) EdgeCount(ctx context.Context, network cyrest.ID) (int64, error) {
	return c.count(ctx, "networks.edgecount", targetParams(network))
}

func (c *Client) count(ctx context.Context, op string, params cyrest.Params) (int64, error) {
	res, err := c.core.Do(ctx, op, params)
	if err != nil {
		return 0, err
	}
	id, ok := res.ScalarID()
	if !ok {
		return 0, cyerr.New(cyerr.ErrCodeProtocol, "count response is not numeric")
	}
	var n int64
	if _, err := fmt.Sscan(string(id), &n); err != nil {
		return 0, cyerr.Wrap(cyerr.ErrCodeProtocol, err, "parse count %q", id)
	}
	return n, nil
}

// Create builds a network from node names and edges, makes it the current
// network, and returns its identifier. The payload uses the cyjs format
// CyREST expects; node identifiers double as display names.
func (c *Client) Create(ctx context.Context, title string, nodes []string, edges []Edge) (cyrest.ID, error) {
	if title == "" {
		return "", cyerr.New(cyerr.ErrCodeInvalidInput, "network title cannot be empty")
	}

	nodeList := make([]map[string]any, 0, len(nodes))
	for _, name := range nodes {
		nodeList = append(nodeList, map[string]any{
			"data": map[string]any{"id": name, "name": name},
		})
	}
	edgeList := make([]map[string]any, 0, len(edges))
	for i, e := range edges {
		interaction := e.Interaction
		if interaction == "" {
			interaction = "interacts with"
		}
		edgeList = append(edgeList, map[string]any{
			"data": map[string]any{
				"id":          fmt.Sprintf("e%d", i),
				"source":      e.Source,
				"target":      e.Target,
				"interaction": interaction,
			},
		})
	}

	payload := map[string]any{
		"data": map[string]any{"name": title},
		"elements": map[string]any{
			"nodes": nodeList,
			"edges": edgeList,
		},
	}

	res, err := c.core.Do(ctx, "networks.create", cyrest.Params{
		"title":   title,
		"network": payload,
	})
	if err != nil {
		return "", err
	}
	id, ok := res.ScalarID()
	if !ok {
		return "", cyerr.New(cyerr.ErrCodeProtocol, "create response carries no network identifier")
	}
	return id, nil
}

// Get returns the full cyjs representation of a network. An empty
// identifier targets the current network.
func (c *Client) Get(ctx context.Context, network cyrest.ID) (map[string]any, error) {
	res, err := c.core.Do(ctx, "networks.get", targetParams(network))
	if err != nil {
		return nil, err
	}
	m, ok := res.Scalar.(map[string]any)
	if !ok {
		return nil, cyerr.New(cyerr.ErrCodeProtocol, "network response is not an object")
	}
	return m, nil
}

// Delete removes a network. An empty identifier targets the current
// network.
func (c *Client) Delete(ctx context.Context, network cyrest.ID) error {
	_, err := c.core.Do(ctx, "networks.delete", targetParams(network))
	return err
}

// Nodes returns the node identifiers of a network.
func (c *Client) Nodes(ctx context.Context, network cyrest.ID) ([]cyrest.ID, error) {
	res, err := c.core.Do(ctx, "networks.nodes", targetParams(network))
	if err != nil {
		return nil, err
	}
	return res.IDs, nil
}

// SelectNodes returns the node identifiers matching query in column.
func (c *Client) SelectNodes(ctx context.Context, network cyrest.ID, column, query string) ([]cyrest.ID, error) {
	params := targetParams(network)
	params["column"] = column
	params["query"] = query
	res, err := c.core.Do(ctx, "networks.nodes", params)
	if err != nil {
		return nil, err
	}
	return res.IDs, nil
}

// Edges returns the edge identifiers of a network.
func (c *Client) Edges(ctx context.Context, network cyrest.ID) ([]cyrest.ID, error) {
	res, err := c.core.Do(ctx, "networks.edges", targetParams(network))
	if err != nil {
		return nil, err
	}
	return res.IDs, nil
}

// NameEntry pairs a network title with its identifier.
type NameEntry struct {
	Name string
	ID   cyrest.ID
}

// Names returns the title/identifier pairs of all networks, in server
// order.
func (c *Client) Names(ctx context.Context) ([]NameEntry, error) {
	res, err := c.core.Do(ctx, "networks.names", nil)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Name string `mapstructure:"name"`
		SUID int64  `mapstructure:"SUID"`
	}
	if err := res.Table.Decode(&rows); err != nil {
		return nil, err
	}
	entries := make([]NameEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, NameEntry{
			Name: row.Name,
			ID:   cyrest.ID(fmt.Sprintf("%d", row.SUID)),
		})
	}
	return entries, nil
}

// GetByName resolves a network title to its identifier.
func (c *Client) GetByName(ctx context.Context, title string) (cyrest.ID, error) {
	entries, err := c.Names(ctx)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.Name == title {
			return e.ID, nil
		}
	}
	return "", cyerr.New(cyerr.ErrCodeNotFound, "no network named %q", title)
}

// Rename changes a network's title through the automation command
// surface, which is the only rename endpoint CyREST exposes. An empty
// identifier targets the current network.
func (c *Client) Rename(ctx context.Context, network cyrest.ID, title string) error {
	if title == "" {
		return cyerr.New(cyerr.ErrCodeInvalidInput, "network title cannot be empty")
	}
	args := map[string]any{"name": title}
	if network != "" {
		args["network"] = "SUID:" + string(network)
	}
	_, err := c.core.Do(ctx, "commands.run", cyrest.Params{
		"namespace": "network",
		"command":   "rename",
		"args":      args,
	})
	return err
}

// SetCurrent makes network the session's current network without a server
// round trip beyond validation.
func (c *Client) SetCurrent(ctx context.Context, network cyrest.ID) error {
	if err := cyerr.ValidateIdentifier(string(network)); err != nil {
		return err
	}
	// Confirm the network exists before caching it as the default.
	if _, err := c.core.Do(ctx, "networks.get", cyrest.Params{"network": network}); err != nil {
		return err
	}
	c.core.State().SetCurrent(cyrest.KindNetwork, network)
	return nil
}

// targetParams builds the params map for operations whose only argument
// is the optional network target.
func targetParams(network cyrest.ID) cyrest.Params {
	params := cyrest.Params{}
	if network != "" {
		params["network"] = network
	}
	return params
}
