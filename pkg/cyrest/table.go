package cyrest

import (
	"sort"

	"github.com/mitchellh/mapstructure"

	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// Row is a single table row, mapping column name to value. Every column of
// the owning Table is present in every row; values the server omitted are
// filled with the nil null marker.
type Row map[string]any

// Table is the normalized tabular result shape. Rows keep the server's
// order; Columns keep the order columns were first seen in, de-duplicated.
// Fields the server sent that no descriptor predicted pass through under
// their original names.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a Table from raw row maps, establishing the stable
// column set and filling missing values with the null marker.
func NewTable(rows []map[string]any) *Table {
	t := &Table{}
	for _, r := range rows {
		t.append(r)
	}
	t.fill()
	return t
}

// append adds one row, extending the column set with any new names in the
// order the server presented them.
func (t *Table) append(raw map[string]any) {
	for _, c := range rowColumnOrder(raw) {
		if !t.hasColumn(c) {
			t.Columns = append(t.Columns, c)
		}
	}
	row := make(Row, len(raw))
	for k, v := range raw {
		row[k] = v
	}
	t.Rows = append(t.Rows, row)
}

// appendOrdered adds one row whose column order is known (recovered from
// the wire by the normalizer), extending the column set in that order.
func (t *Table) appendOrdered(keys []string, values map[string]any) {
	for _, c := range keys {
		if !t.hasColumn(c) {
			t.Columns = append(t.Columns, c)
		}
	}
	row := make(Row, len(values))
	for k, v := range values {
		row[k] = v
	}
	t.Rows = append(t.Rows, row)
}

// fill guarantees consistent column presence across rows.
func (t *Table) fill() {
	for _, row := range t.Rows {
		for _, c := range t.Columns {
			if _, ok := row[c]; !ok {
				row[c] = nil
			}
		}
	}
}

func (t *Table) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Value returns the cell at (row, col). ok is false when the row index is
// out of range or the column does not exist; a nil value with ok true is
// the null marker for a value the server omitted.
func (t *Table) Value(row int, col string) (any, bool) {
	if row < 0 || row >= len(t.Rows) || !t.hasColumn(col) {
		return nil, false
	}
	return t.Rows[row][col], true
}

// Column returns all values of one column in row order.
func (t *Table) Column(name string) ([]any, bool) {
	if !t.hasColumn(name) {
		return nil, false
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[name]
	}
	return out, true
}

// Decode unmarshals the rows into out, which must be a pointer to a slice
// of structs (or maps). Field matching is case-insensitive on the column
// name; use `mapstructure:"colname"` tags for explicit control. Columns
// without a matching field are ignored, so unexpected server fields never
// fail decoding.
func (t *Table) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return cyerr.Wrap(cyerr.ErrCodeInternal, err, "build table decoder")
	}
	if err := dec.Decode(t.Rows); err != nil {
		return cyerr.Wrap(cyerr.ErrCodeTypeMismatch, err, "decode table rows")
	}
	return nil
}

// RowMaps returns the rows as plain maps, suitable for re-marshaling as
// the data payload of a table-load operation. Row order and the column set
// are preserved.
func (t *Table) RowMaps() []map[string]any {
	out := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		m := make(map[string]any, len(row))
		for k, v := range row {
			m[k] = v
		}
		out[i] = m
	}
	return out
}

// rowColumnOrder returns the keys of one raw row in a deterministic order.
// JSON objects do not preserve key order through Go maps, so ordering falls
// back to sorted names within a single row; across rows, first-seen order
// still governs.
func rowColumnOrder(raw map[string]any) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
