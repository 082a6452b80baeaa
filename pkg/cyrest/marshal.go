package cyrest

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// buildQuery encodes the resolved query parameters. List values are
// comma-joined by default, or sent as repeated keys when the spec says so.
func buildQuery(d *Descriptor, resolved map[string]any) (url.Values, error) {
	query := url.Values{}
	for i := range d.Params {
		spec := &d.Params[i]
		if spec.In != InQuery {
			continue
		}
		value, ok := resolved[spec.Name]
		if !ok {
			continue
		}

		if spec.Type == TypeList {
			items, err := coerceList(spec, value)
			if err != nil {
				return nil, err
			}
			if spec.Repeat {
				for _, item := range items {
					query.Add(spec.Name, item)
				}
			} else {
				query.Set(spec.Name, strings.Join(items, ","))
			}
			continue
		}

		coerced, err := coerce(spec, value)
		if err != nil {
			return nil, err
		}
		query.Set(spec.Name, wireString(coerced))
	}
	return query, nil
}

// buildBodies assembles the JSON request body (or bodies, for chunked
// size-limited endpoints).
//
// A single body parameter of TypeJSON is sent as the payload itself; any
// other combination is sent as one JSON object keyed by parameter name.
func buildBodies(d *Descriptor, resolved map[string]any) ([][]byte, error) {
	var bodyParams []*ParamSpec
	for i := range d.Params {
		if d.Params[i].In == InBody {
			if _, ok := resolved[d.Params[i].Name]; ok {
				bodyParams = append(bodyParams, &d.Params[i])
			}
		}
	}
	if len(bodyParams) == 0 {
		return [][]byte{nil}, nil
	}

	assemble := func(values map[string]any) ([]byte, error) {
		var payload any
		if len(bodyParams) == 1 && bodyParams[0].Type == TypeJSON {
			payload = values[bodyParams[0].Name]
		} else {
			obj := make(map[string]any, len(values))
			for k, v := range values {
				obj[k] = v
			}
			payload = obj
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, cyerr.Wrap(cyerr.ErrCodeTypeMismatch, err, "encode request body for %s", d.Op)
		}
		return data, nil
	}

	values := make(map[string]any, len(bodyParams))
	for _, spec := range bodyParams {
		coerced, err := coerce(spec, resolved[spec.Name])
		if err != nil {
			return nil, err
		}
		values[spec.Name] = coerced
	}

	chunks := chunkValues(d, values)
	bodies := make([][]byte, 0, len(chunks))
	for _, chunk := range chunks {
		body, err := assemble(chunk)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
	}
	return bodies, nil
}

// chunkValues splits the ChunkParam slice of a size-limited endpoint into
// ChunkSize pieces, replicating the remaining body values per chunk. The
// default is a single request.
func chunkValues(d *Descriptor, values map[string]any) []map[string]any {
	if !d.SizeLimited || d.ChunkParam == "" {
		return []map[string]any{values}
	}
	items, ok := values[d.ChunkParam].([]any)
	size := d.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	if !ok || len(items) <= size {
		return []map[string]any{values}
	}

	var chunks []map[string]any
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunk := make(map[string]any, len(values))
		for k, v := range values {
			chunk[k] = v
		}
		chunk[d.ChunkParam] = items[start:end]
		chunks = append(chunks, chunk)
	}
	return chunks
}

// coerce converts value to the parameter's wire type. Mismatches are
// reported as TYPE_MISMATCH before any network call, never dropped.
func coerce(spec *ParamSpec, value any) (any, error) {
	switch spec.Type {
	case TypeString:
		switch v := value.(type) {
		case string:
			return v, nil
		case ID:
			return string(v), nil
		case fmt.Stringer:
			return v.String(), nil
		case int, int32, int64:
			return fmt.Sprintf("%d", v), nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case json.Number:
			return v.String(), nil
		}
	case TypeInt:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			if v == float64(int64(v)) {
				return int64(v), nil
			}
		case json.Number:
			if n, err := v.Int64(); err == nil {
				return n, nil
			}
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n, nil
			}
		case ID:
			if n, err := strconv.ParseInt(string(v), 10, 64); err == nil {
				return n, nil
			}
		}
	case TypeFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, nil
			}
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, nil
			}
		}
	case TypeBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b, nil
			}
		}
	case TypeList:
		items, err := coerceList(spec, value)
		if err != nil {
			return nil, err
		}
		return items, nil
	case TypeJSON:
		return value, nil
	}
	return nil, cyerr.New(cyerr.ErrCodeTypeMismatch,
		"parameter %q: cannot use %T as %s", spec.Name, value, typeName(spec.Type))
}

// coerceList flattens a list-valued parameter into strings.
func coerceList(spec *ParamSpec, value any) ([]string, error) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case []ID:
		for _, id := range v {
			items = append(items, id)
		}
	case []int:
		for _, n := range v {
			items = append(items, n)
		}
	case []int64:
		for _, n := range v {
			items = append(items, n)
		}
	default:
		return nil, cyerr.New(cyerr.ErrCodeTypeMismatch,
			"parameter %q: cannot use %T as list", spec.Name, value)
	}

	out := make([]string, 0, len(items))
	strSpec := &ParamSpec{Name: spec.Name, Type: TypeString}
	for _, item := range items {
		s, err := coerce(strSpec, item)
		if err != nil {
			return nil, cyerr.New(cyerr.ErrCodeTypeMismatch,
				"parameter %q: list element %T is not stringable", spec.Name, item)
		}
		out = append(out, s.(string))
	}
	return out, nil
}

func typeName(t ParamType) string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeList:
		return "list"
	case TypeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// wireString renders a coerced value for a URL component.
func wireString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
