// Package styles manages visual styles: named bundles of default
// properties and mappings that control how networks render.
package styles

import (
	"context"

	"github.com/cygraph/cygo/pkg/cyrest"
	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// Client wraps the core bridge with style-oriented calls.
type Client struct {
	core *cyrest.Client
}

// NewClient creates a styles client on top of the core bridge.
func NewClient(core *cyrest.Client) *Client {
	return &Client{core: core}
}

// Property is one default visual property, e.g.
// {"NODE_FILL_COLOR", "#FF0000"}.
type Property struct {
	Name  string `json:"visualProperty" mapstructure:"visualProperty"`
	Value any    `json:"value" mapstructure:"value"`
}

// List returns the names of all visual styles.
func (c *Client) List(ctx context.Context) ([]string, error) {
	res, err := c.core.Do(ctx, "styles.list", nil)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(res.IDs))
	for _, id := range res.IDs {
		names = append(names, string(id))
	}
	return names, nil
}

// Create registers a new visual style and records it as the session's
// current style. Defaults may be nil for a bare style.
func (c *Client) Create(ctx context.Context, name string, defaults []Property) (string, error) {
	if name == "" {
		return "", cyerr.New(cyerr.ErrCodeInvalidInput, "style name cannot be empty")
	}
	payload := map[string]any{
		"title":    name,
		"defaults": defaults,
		"mappings": []any{},
	}
	res, err := c.core.Do(ctx, "styles.create", cyrest.Params{"style": payload})
	if err != nil {
		return "", err
	}
	if id, ok := res.ScalarID(); ok {
		return string(id), nil
	}
	return name, nil
}

// Delete removes a visual style by name.
func (c *Client) Delete(ctx context.Context, name string) error {
	_, err := c.core.Do(ctx, "styles.delete", cyrest.Params{"style": name})
	return err
}

// Apply applies a style to a network. An empty network identifier
// targets the current network; the style becomes the session default.
func (c *Client) Apply(ctx context.Context, style string, network cyrest.ID) error {
	params := cyrest.Params{"style": style}
	if network != "" {
		params["network"] = network
	}
	_, err := c.core.Do(ctx, "styles.apply", params)
	return err
}

// Defaults returns the default visual properties of a style.
func (c *Client) Defaults(ctx context.Context, style string) ([]Property, error) {
	params := cyrest.Params{}
	if style != "" {
		params["style"] = style
	}
	res, err := c.core.Do(ctx, "styles.defaults", params)
	if err != nil {
		return nil, err
	}
	var props []Property
	if err := res.Table.Decode(&props); err != nil {
		return nil, err
	}
	return props, nil
}

// SetDefaults replaces default visual properties on a style.
func (c *Client) SetDefaults(ctx context.Context, style string, props []Property) error {
	if len(props) == 0 {
		return cyerr.New(cyerr.ErrCodeMissingParameter, "no properties to set")
	}
	params := cyrest.Params{"properties": props}
	if style != "" {
		params["style"] = style
	}
	_, err := c.core.Do(ctx, "styles.setdefaults", params)
	return err
}
