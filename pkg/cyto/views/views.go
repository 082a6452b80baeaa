// Package views manages network views: the renderable projections of a
// network. A network can carry several views, though Cytoscape almost
// always keeps exactly one.
package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cygraph/cygo/pkg/cyrest"
	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// Client wraps the core bridge with view-oriented calls.
type Client struct {
	core   *cyrest.Client
	logger *log.Logger
}

// NewClient creates a views client on top of the core bridge.
func NewClient(core *cyrest.Client) *Client {
	return &Client{core: core, logger: log.Default()}
}

// WithLogger replaces the client's logger.
func (c *Client) WithLogger(l *log.Logger) *Client {
	c.logger = l
	return c
}

// List returns the view identifiers of a network. An empty network
// identifier targets the current network.
func (c *Client) List(ctx context.Context, network cyrest.ID) ([]cyrest.ID, error) {
	res, err := c.core.Do(ctx, "views.list", netParams(network))
	if err != nil {
		return nil, err
	}
	return res.IDs, nil
}

// Get returns the single view of a network. When the network carries
// more than one view the last one is returned with a warning, matching
// how Cytoscape itself treats the "current" view of a multi-view
// network.
func (c *Client) Get(ctx context.Context, network cyrest.ID) (cyrest.ID, error) {
	ids, err := c.List(ctx, network)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", cyerr.New(cyerr.ErrCodeNotFound, "network has no view")
	}
	if len(ids) > 1 {
		c.logger.Warn("network has multiple views, using the last one",
			"views", len(ids))
	}
	return ids[len(ids)-1], nil
}

// Create adds a view to a network and makes it the current view.
func (c *Client) Create(ctx context.Context, network cyrest.ID) (cyrest.ID, error) {
	res, err := c.core.Do(ctx, "views.create", netParams(network))
	if err != nil {
		return "", err
	}
	id, ok := res.ScalarID()
	if !ok {
		return "", cyerr.New(cyerr.ErrCodeProtocol, "create response carries no view identifier")
	}
	return id, nil
}

// SetCurrent makes view the current view on the server and in the
// session.
func (c *Client) SetCurrent(ctx context.Context, view cyrest.ID) error {
	_, err := c.core.Do(ctx, "views.setcurrent", cyrest.Params{"networkViewSUID": view})
	return err
}

// FitContent zooms and pans the current view so the whole network, or
// just the selected part of it, is visible.
func (c *Client) FitContent(ctx context.Context, selectedOnly bool) error {
	command := "fit content"
	if selectedOnly {
		command = "fit selected"
	}
	_, err := c.core.Do(ctx, "commands.run", cyrest.Params{
		"namespace": "view",
		"command":   command,
	})
	return err
}

// ExportOptions tunes an image export. Zero values are omitted from the
// request so the server applies its own defaults.
type ExportOptions struct {
	Format     string  // PNG, PDF, SVG, JPEG, or PS
	Resolution int     // DPI, meaningful for bitmap formats
	Units      string  // units for Height and Width, e.g. pixels, inches
	Height     float64
	Width      float64
	Zoom       float64 // scale as a percentage of the on-screen view
}

// ExportImage writes the current view to an image file on the machine
// running Cytoscape.
func (c *Client) ExportImage(ctx context.Context, file string, opts ExportOptions) error {
	if file == "" {
		return cyerr.New(cyerr.ErrCodeMissingParameter, "export file name is required")
	}
	args := map[string]any{"OutputFile": file}
	if opts.Format != "" {
		args["options"] = opts.Format
	}
	if opts.Resolution > 0 {
		args["Resolution"] = opts.Resolution
	}
	if opts.Units != "" {
		args["Units"] = opts.Units
	}
	if opts.Height > 0 {
		args["Height"] = opts.Height
	}
	if opts.Width > 0 {
		args["Width"] = opts.Width
	}
	if opts.Zoom > 0 {
		args["Zoom"] = opts.Zoom
	}
	_, err := c.core.Do(ctx, "commands.run", cyrest.Params{
		"namespace": "view",
		"command":   "export",
		"args":      args,
	})
	return err
}

// ToggleGraphicsDetails flips the full-graphics-details rendering mode
// and reports the server's confirmation message.
func (c *Client) ToggleGraphicsDetails(ctx context.Context) (string, error) {
	res, err := c.core.Do(ctx, "ui.lod", nil)
	if err != nil {
		return "", err
	}
	if msg, ok := res.Scalar.(string); ok {
		return msg, nil
	}
	return fmt.Sprint(res.Scalar), nil
}

func netParams(network cyrest.ID) cyrest.Params {
	params := cyrest.Params{}
	if network != "" {
		params["network"] = network
	}
	return params
}
