// Package commands exposes the automation command surface: the
// namespace/command pairs contributed by Cytoscape core and installed
// apps. It is the escape hatch for functionality without a dedicated
// endpoint.
package commands

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cygraph/cygo/pkg/cyrest"
	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// Client wraps the core bridge with command execution.
type Client struct {
	core *cyrest.Client
}

// NewClient creates a commands client on top of the core bridge.
func NewClient(core *cyrest.Client) *Client {
	return &Client{core: core}
}

// Result is the decoded envelope of one command execution.
type Result struct {
	Data   any      `json:"data"`
	Errors []string `json:"errors"`
}

// Namespaces lists the available command namespaces.
func (c *Client) Namespaces(ctx context.Context) ([]string, error) {
	res, err := c.core.Do(ctx, "commands.namespaces", nil)
	if err != nil {
		return nil, err
	}
	return listing(res), nil
}

// CommandsIn lists the commands of one namespace.
func (c *Client) CommandsIn(ctx context.Context, namespace string) ([]string, error) {
	if namespace == "" {
		return nil, cyerr.New(cyerr.ErrCodeMissingParameter, "command namespace is required")
	}
	res, err := c.core.Do(ctx, "commands.list", cyrest.Params{"namespace": namespace})
	if err != nil {
		return nil, err
	}
	return listing(res), nil
}

// listing parses the text/plain command catalogs: a header line
// ("Available namespaces:") followed by one indented entry per line.
func listing(res *cyrest.Result) []string {
	text, _ := res.Scalar.(string)
	var entries []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// Run executes a command with the given arguments. Commands are assumed
// to mutate server state, so transport failures are never retried.
func (c *Client) Run(ctx context.Context, namespace, command string, args map[string]any) (*Result, error) {
	if namespace == "" || command == "" {
		return nil, cyerr.New(cyerr.ErrCodeMissingParameter, "command namespace and name are required")
	}

	params := cyrest.Params{"namespace": namespace, "command": command}
	if len(args) > 0 {
		params["args"] = args
	}
	res, err := c.core.Do(ctx, "commands.run", params)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(res)
}

// Query runs a read-only command lookup, typically used to list the
// arguments a command accepts.
func (c *Client) Query(ctx context.Context, namespace, command string) (*Result, error) {
	if namespace == "" || command == "" {
		return nil, cyerr.New(cyerr.ErrCodeMissingParameter, "command namespace and name are required")
	}
	res, err := c.core.Do(ctx, "commands.query", cyrest.Params{
		"namespace": namespace,
		"command":   command,
	})
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(res)
}

// decodeEnvelope extracts the {data, errors} command envelope. Command
// responses that do not follow the envelope convention are passed
// through as Data verbatim.
func decodeEnvelope(res *cyrest.Result) (*Result, error) {
	var envelope Result
	if err := json.Unmarshal(res.Raw, &envelope); err != nil {
		return &Result{Data: res.Scalar}, nil
	}
	if len(envelope.Errors) > 0 {
		return nil, cyerr.New(cyerr.ErrCodeService, "command failed: %s", envelope.Errors[0])
	}
	return &envelope, nil
}
