package cyrest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// Result is the normalized outcome of one operation. Exactly one of
// Scalar, IDs, or Table is populated, matching the descriptor's declared
// shape; Raw always carries the untouched response body.
type Result struct {
	Shape  Shape
	Raw    json.RawMessage
	Scalar any
	IDs    []ID
	Table  *Table
}

// ScalarID interprets the scalar result as an identifier.
func (r *Result) ScalarID() (ID, bool) {
	return idFromAny(r.Scalar)
}

// normalize reshapes the raw server JSON into the declared result shape.
// It tolerates extra unexpected fields (passed through untouched) and
// missing optional fields (filled with the nil null marker); only JSON
// that cannot be reshaped at all is a protocol error.
func normalize(raw []byte, shape Shape) (*Result, error) {
	res := &Result{Shape: shape, Raw: append(json.RawMessage(nil), raw...)}

	if shape == ShapeNone {
		return res, nil
	}
	if shape == ShapeText {
		res.Scalar = strings.TrimSpace(string(raw))
		return res, nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if shape == ShapeScalar {
			return res, nil
		}
		return nil, cyerr.New(cyerr.ErrCodeProtocol, "empty response where %s expected", shapeName(shape))
	}

	value, err := decodeAny(raw)
	if err != nil {
		return nil, cyerr.Wrap(cyerr.ErrCodeProtocol, err, "malformed JSON response")
	}

	switch shape {
	case ShapeScalar:
		res.Scalar = unwrapScalar(value)
	case ShapeIDList:
		ids, ok := idsFromValue(value)
		if !ok {
			return nil, cyerr.New(cyerr.ErrCodeProtocol, "response does not contain an identifier list")
		}
		res.IDs = ids
	case ShapeTable:
		table, err := tableFromRaw(raw, value)
		if err != nil {
			return nil, err
		}
		res.Table = table
	}
	return res, nil
}

func shapeName(s Shape) string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeIDList:
		return "identifier list"
	case ShapeTable:
		return "table"
	case ShapeText:
		return "text"
	default:
		return "none"
	}
}

// decodeAny parses JSON preserving numeric fidelity: SUIDs are int64-range
// values that float64 decoding would corrupt.
func decodeAny(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// unwrapScalar lifts single-entry wrapper objects, the most common CyREST
// envelope ({"networkSUID": 52}, {"count": 3}, {"name": "session.cys"}).
// Multi-entry objects pass through untouched as maps.
func unwrapScalar(v any) any {
	if m, ok := v.(map[string]any); ok && len(m) == 1 {
		for _, inner := range m {
			switch inner.(type) {
			case string, json.Number, bool, nil:
				return inner
			}
		}
	}
	return v
}

// idsFromValue flattens any of CyREST's identifier nestings into a uniform
// sequence: a bare array of scalars, an array of objects keyed by SUID/id/
// name, or a wrapper object holding such an array.
func idsFromValue(v any) ([]ID, bool) {
	switch val := v.(type) {
	case []any:
		ids := make([]ID, 0, len(val))
		for _, item := range val {
			id, ok := idFromAny(item)
			if !ok {
				return nil, false
			}
			ids = append(ids, id)
		}
		return ids, true
	case map[string]any:
		for _, inner := range val {
			if arr, ok := inner.([]any); ok {
				return idsFromValue(arr)
			}
		}
	}
	return nil, false
}

// idKeys are the object fields tried, in order, when an identifier arrives
// wrapped in an object.
var idKeys = []string{"SUID", "suid", "id", "name", "title"}

func idFromAny(v any) (ID, bool) {
	switch val := v.(type) {
	case string:
		return ID(val), true
	case json.Number:
		return ID(val.String()), true
	case float64:
		return ID(strconv.FormatFloat(val, 'f', -1, 64)), true
	case int:
		return ID(strconv.Itoa(val)), true
	case int64:
		return ID(strconv.FormatInt(val, 10)), true
	case ID:
		return val, true
	case map[string]any:
		for _, key := range idKeys {
			if inner, ok := val[key]; ok {
				return idFromAny(inner)
			}
		}
	}
	return "", false
}

// tableFromRaw builds a Table, recovering the server's column order from
// the raw bytes (Go maps do not preserve JSON key order).
func tableFromRaw(raw []byte, value any) (*Table, error) {
	rowsRaw, ok := rawRows(raw)
	if !ok {
		// Fall back to the decoded value for wrapper layouts the raw
		// scan did not anticipate.
		rows, ok := rowsFromValue(value)
		if !ok {
			return nil, cyerr.New(cyerr.ErrCodeProtocol, "response does not contain table rows")
		}
		return NewTable(rows), nil
	}

	t := &Table{}
	for _, rowRaw := range rowsRaw {
		keys, values, err := orderedObject(rowRaw)
		if err != nil {
			return nil, cyerr.Wrap(cyerr.ErrCodeProtocol, err, "malformed table row")
		}
		t.appendOrdered(keys, values)
	}
	t.fill()
	return t, nil
}

// rawRows locates the row array in the raw response: either the top-level
// value itself, or the first array-valued field of a wrapper object
// (preferring the conventional "rows" key).
func rawRows(raw []byte) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false
	}

	if trimmed[0] == '[' {
		var rows []json.RawMessage
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, false
		}
		return rows, true
	}

	if trimmed[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, false
		}
		if rows, ok := arrayField(wrapper, "rows"); ok {
			return rows, true
		}
		for key := range wrapper {
			if rows, ok := arrayField(wrapper, key); ok {
				return rows, true
			}
		}
	}
	return nil, false
}

func arrayField(wrapper map[string]json.RawMessage, key string) ([]json.RawMessage, bool) {
	field, ok := wrapper[key]
	if !ok {
		return nil, false
	}
	trimmed := bytes.TrimSpace(field)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, false
	}
	for _, r := range rows {
		rt := bytes.TrimSpace(r)
		if len(rt) == 0 || rt[0] != '{' {
			return nil, false
		}
	}
	return rows, true
}

// rowsFromValue extracts rows from an already-decoded value.
func rowsFromValue(v any) ([]map[string]any, bool) {
	extract := func(arr []any) ([]map[string]any, bool) {
		rows := make([]map[string]any, 0, len(arr))
		for _, item := range arr {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			rows = append(rows, m)
		}
		return rows, true
	}

	switch val := v.(type) {
	case []any:
		return extract(val)
	case map[string]any:
		if inner, ok := val["rows"].([]any); ok {
			return extract(inner)
		}
		for _, inner := range val {
			if arr, ok := inner.([]any); ok {
				if rows, ok := extract(arr); ok {
					return rows, true
				}
			}
		}
	}
	return nil, false
}

// orderedObject parses one JSON object keeping its key order.
func orderedObject(raw json.RawMessage) (keys []string, values map[string]any, err error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil { // consume '{'
		return nil, nil, err
	}

	values = make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, cyerr.New(cyerr.ErrCodeProtocol, "non-string object key")
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values[key] = val
	}
	return keys, values, nil
}
