package cyrest

import (
	"net/url"
	"strings"

	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// Params carries the named arguments of one logical operation call.
type Params map[string]any

// resolveParams merges explicit parameters with session-state defaults and
// validates the set against the descriptor. Explicit parameters always
// override session defaults. The returned map holds only declared
// parameters; anything undeclared fails fast before the network.
func resolveParams(d *Descriptor, params Params, snapshot map[StateKind]ID) (map[string]any, error) {
	resolved := make(map[string]any, len(params))

	for name, value := range params {
		if _, ok := d.param(name); !ok {
			return nil, cyerr.New(cyerr.ErrCodeInvalidInput,
				"operation %q has no parameter %q", d.Op, name)
		}
		if value == nil {
			continue
		}
		resolved[name] = value
	}

	for i := range d.Params {
		spec := &d.Params[i]
		if _, ok := resolved[spec.Name]; ok {
			continue
		}
		if spec.Session != "" {
			if id, ok := snapshot[spec.Session]; ok {
				resolved[spec.Name] = id
				continue
			}
		}
		if spec.Required {
			if spec.Session != "" {
				return nil, cyerr.New(cyerr.ErrCodeMissingParameter,
					"operation %q requires %q and no current %s is set", d.Op, spec.Name, spec.Session)
			}
			return nil, cyerr.New(cyerr.ErrCodeMissingParameter,
				"operation %q requires %q", d.Op, spec.Name)
		}
	}
	return resolved, nil
}

// buildPath substitutes {placeholder} segments of the descriptor's path
// template with resolved parameter values. Values are path-escaped; a
// placeholder with no corresponding resolved value is a missing-parameter
// failure (required placeholders are normally caught by resolveParams, so
// this guards against descriptor typos).
func buildPath(d *Descriptor, resolved map[string]any) (string, error) {
	path := d.Path
	for {
		start := strings.Index(path, "{")
		if start < 0 {
			return path, nil
		}
		end := strings.Index(path[start:], "}")
		if end < 0 {
			return "", cyerr.New(cyerr.ErrCodeInternal,
				"operation %q has malformed path template %q", d.Op, d.Path)
		}
		end += start

		name := path[start+1 : end]
		value, ok := resolved[name]
		if !ok {
			return "", cyerr.New(cyerr.ErrCodeMissingParameter,
				"operation %q path requires %q", d.Op, name)
		}

		spec, ok := d.param(name)
		if !ok {
			return "", cyerr.New(cyerr.ErrCodeInternal,
				"operation %q path placeholder %q is undeclared", d.Op, name)
		}
		coerced, err := coerce(spec, value)
		if err != nil {
			return "", err
		}
		segment := wireString(coerced)
		if err := cyerr.ValidateIdentifier(segment); err != nil {
			return "", err
		}

		path = path[:start] + url.PathEscape(segment) + path[end+1:]
	}
}
