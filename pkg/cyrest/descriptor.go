package cyrest

// Shape declares the expected result shape of an operation, driving the
// response normalizer. The server's actual JSON may nest the payload
// arbitrarily; the normalizer reshapes it into the declared form.
type Shape int

const (
	// ShapeNone discards the response body (delete-style operations).
	ShapeNone Shape = iota

	// ShapeScalar yields a single value (identifier, string, number, or
	// a raw object passed through untouched).
	ShapeScalar

	// ShapeIDList yields a flat, uniform sequence of identifiers
	// regardless of how the server nested them.
	ShapeIDList

	// ShapeTable yields a normalized Table with stable columns.
	ShapeTable

	// ShapeText passes the body through as trimmed plain text. The
	// command-listing endpoints answer text/plain, not JSON.
	ShapeText
)

// ParamIn says where a parameter travels in the HTTP request.
type ParamIn int

const (
	// InPath substitutes the value into a {placeholder} path segment.
	InPath ParamIn = iota

	// InQuery encodes the value into the query string.
	InQuery

	// InBody places the value in the JSON request body. A single body
	// parameter of TypeJSON is sent as the payload itself; any other
	// combination is sent as one JSON object keyed by parameter name.
	InBody
)

// ParamType is the wire type a parameter must coerce to. Coercion failures
// are reported before any network call, never silently dropped.
type ParamType int

const (
	TypeString ParamType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeList // list of identifiers or strings
	TypeJSON // arbitrary JSON-marshalable payload (style rules, rows)
)

// ParamSpec describes one named parameter of an operation.
type ParamSpec struct {
	Name     string
	In       ParamIn
	Type     ParamType
	Required bool

	// Session names the state slot consulted when the parameter is
	// omitted. Explicit values always override the session default.
	Session StateKind

	// Repeat encodes list values as repeated query keys instead of one
	// comma-joined value.
	Repeat bool
}

// SetsFromResult marks a state-setting descriptor whose new current
// identifier is the operation's scalar result rather than a parameter.
const SetsFromResult = "@result"

// Descriptor is the immutable contract for one logical operation: where it
// goes on the wire and how its inputs and outputs are shaped. Descriptors
// are created once in the version-keyed registry and never mutated; they
// are the layer that decouples call sites from CyREST's literal paths.
type Descriptor struct {
	// Op is the logical operation name, e.g. "networks.create".
	Op string

	// Method is the HTTP verb. Note that CyREST applies layouts and
	// styles via GET, so the verb alone says nothing about safety;
	// ReadOnly carries that bit explicitly.
	Method string

	// Path is the endpoint template relative to the versioned root,
	// e.g. "/networks/{network}/tables/{table}".
	Path string

	// Params describes every accepted parameter.
	Params []ParamSpec

	// Result is the declared response shape.
	Result Shape

	// ReadOnly marks operations with no server-side effect. Only these
	// may be retried after transport-level failures.
	ReadOnly bool

	// Sets names the session slot updated after the operation succeeds;
	// empty for operations that do not touch session state.
	Sets StateKind

	// SetsFrom is the parameter whose resolved value becomes the new
	// current identifier, or SetsFromResult to use the scalar result.
	SetsFrom string

	// ClearsState marks operations that invalidate every session
	// default when they succeed (opening or wiping a Cytoscape session).
	ClearsState bool

	// SizeLimited marks endpoints that reject large payloads; the body
	// parameter named by ChunkParam is split into requests of ChunkSize
	// rows.
	SizeLimited bool

	// ChunkParam is the list-valued body parameter that gets chunked.
	ChunkParam string

	// ChunkSize is the row count per request for size-limited endpoints.
	ChunkSize int
}

// param returns the spec for name, if declared.
func (d *Descriptor) param(name string) (*ParamSpec, bool) {
	for i := range d.Params {
		if d.Params[i].Name == name {
			return &d.Params[i], true
		}
	}
	return nil, false
}
