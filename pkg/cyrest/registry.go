package cyrest

import (
	"sort"
	"strconv"
	"strings"
)

// descriptorTables holds one descriptor set per CyREST API version. The
// resolver picks the table matching the negotiated version and falls back
// to the nearest lower version with a warning when no exact match exists.
var descriptorTables = map[string]map[string]*Descriptor{
	"v1": index(v1Descriptors),
}

func index(descs []Descriptor) map[string]*Descriptor {
	m := make(map[string]*Descriptor, len(descs))
	for i := range descs {
		m[descs[i].Op] = &descs[i]
	}
	return m
}

// tableFor returns the descriptor table for version, reporting whether the
// match was exact. When no exact table exists, the nearest lower version is
// chosen; ok is false only when no table at or below version exists at all.
func tableFor(version string) (table map[string]*Descriptor, matched string, exact, ok bool) {
	if t, found := descriptorTables[version]; found {
		return t, version, true, true
	}

	want := versionOrdinal(version)
	known := make([]string, 0, len(descriptorTables))
	for v := range descriptorTables {
		known = append(known, v)
	}
	sort.Slice(known, func(i, j int) bool {
		return versionOrdinal(known[i]) < versionOrdinal(known[j])
	})

	for i := len(known) - 1; i >= 0; i-- {
		if versionOrdinal(known[i]) <= want {
			return descriptorTables[known[i]], known[i], false, true
		}
	}
	return nil, "", false, false
}

// versionOrdinal parses "v1" / "v2" style version tags for comparison.
// Unparseable tags order first.
func versionOrdinal(v string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(v), "v"))
	if err != nil {
		return 0
	}
	return n
}

// defaultChunkSize is the row count per request for size-limited table
// loads. CyREST accepts larger bodies but degrades badly past a few
// thousand rows.
const defaultChunkSize = 1000

// Default table names exposed by every network.
const (
	TableNode    = "defaultnode"
	TableEdge    = "defaultedge"
	TableNetwork = "defaultnetwork"
)

// v1Descriptors is the CyREST v1 operation table. Paths are relative to
// the versioned root (http://host:port/v1).
var v1Descriptors = []Descriptor{
	// Networks
	{
		Op: "networks.list", Method: "GET", Path: "/networks",
		Result: ShapeIDList, ReadOnly: true,
	},
	{
		Op: "networks.count", Method: "GET", Path: "/networks/count",
		Result: ShapeScalar, ReadOnly: true,
	},
	{
		// Rows of {name, SUID}, used for title-to-identifier resolution.
		Op: "networks.names", Method: "GET", Path: "/networks.names",
		Result: ShapeTable, ReadOnly: true,
	},
	{
		Op: "networks.get", Method: "GET", Path: "/networks/{network}",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
		},
		Result: ShapeScalar, ReadOnly: true,
	},
	{
		Op: "networks.create", Method: "POST", Path: "/networks",
		Params: []ParamSpec{
			{Name: "title", In: InQuery, Type: TypeString},
			{Name: "collection", In: InQuery, Type: TypeString},
			{Name: "network", In: InBody, Type: TypeJSON, Required: true},
		},
		Result: ShapeScalar, Sets: KindNetwork, SetsFrom: SetsFromResult,
	},
	{
		Op: "networks.delete", Method: "DELETE", Path: "/networks/{network}",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
		},
		Result: ShapeNone,
	},
	{
		Op: "networks.nodes", Method: "GET", Path: "/networks/{network}/nodes",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
			{Name: "column", In: InQuery, Type: TypeString},
			{Name: "query", In: InQuery, Type: TypeString},
		},
		Result: ShapeIDList, ReadOnly: true,
	},
	{
		Op: "networks.nodecount", Method: "GET", Path: "/networks/{network}/nodes/count",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
		},
		Result: ShapeScalar, ReadOnly: true,
	},
	{
		Op: "networks.edgecount", Method: "GET", Path: "/networks/{network}/edges/count",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
		},
		Result: ShapeScalar, ReadOnly: true,
	},
	{
		Op: "networks.edges", Method: "GET", Path: "/networks/{network}/edges",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
			{Name: "column", In: InQuery, Type: TypeString},
			{Name: "query", In: InQuery, Type: TypeString},
		},
		Result: ShapeIDList, ReadOnly: true,
	},

	// Views
	{
		Op: "views.list", Method: "GET", Path: "/networks/{network}/views",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
		},
		Result: ShapeIDList, ReadOnly: true,
	},
	{
		Op: "views.create", Method: "POST", Path: "/networks/{network}/views",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
		},
		Result: ShapeScalar, Sets: KindView, SetsFrom: SetsFromResult,
	},
	{
		Op: "views.first", Method: "GET", Path: "/networks/{network}/views/first",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
		},
		Result: ShapeScalar, ReadOnly: true,
	},
	{
		Op: "views.setcurrent", Method: "PUT", Path: "/networks/views/currentNetworkView",
		Params: []ParamSpec{
			{Name: "networkViewSUID", In: InBody, Type: TypeInt, Required: true, Session: KindView},
		},
		Result: ShapeNone, Sets: KindView, SetsFrom: "networkViewSUID",
	},

	// Tables
	{
		Op: "tables.get", Method: "GET", Path: "/networks/{network}/tables/{table}",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
			{Name: "table", In: InPath, Type: TypeString, Required: true},
		},
		Result: ShapeTable, ReadOnly: true,
	},
	{
		Op: "tables.columns", Method: "GET", Path: "/networks/{network}/tables/{table}/columns",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
			{Name: "table", In: InPath, Type: TypeString, Required: true},
		},
		Result: ShapeTable, ReadOnly: true,
	},
	{
		Op: "tables.values", Method: "GET", Path: "/networks/{network}/tables/{table}/columns/{column}",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
			{Name: "table", In: InPath, Type: TypeString, Required: true},
			{Name: "column", In: InPath, Type: TypeString, Required: true},
		},
		Result: ShapeScalar, ReadOnly: true,
	},
	{
		Op: "tables.load", Method: "PUT", Path: "/networks/{network}/tables/{table}",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
			{Name: "table", In: InPath, Type: TypeString, Required: true},
			{Name: "key", In: InBody, Type: TypeString},
			{Name: "dataKey", In: InBody, Type: TypeString},
			{Name: "data", In: InBody, Type: TypeJSON, Required: true},
		},
		Result: ShapeNone, SizeLimited: true, ChunkParam: "data", ChunkSize: defaultChunkSize,
	},
	{
		Op: "tables.deletecolumn", Method: "DELETE", Path: "/networks/{network}/tables/{table}/columns/{column}",
		Params: []ParamSpec{
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
			{Name: "table", In: InPath, Type: TypeString, Required: true},
			{Name: "column", In: InPath, Type: TypeString, Required: true},
		},
		Result: ShapeNone,
	},

	// Styles
	{
		Op: "styles.list", Method: "GET", Path: "/styles",
		Result: ShapeIDList, ReadOnly: true,
	},
	{
		Op: "styles.create", Method: "POST", Path: "/styles",
		Params: []ParamSpec{
			{Name: "style", In: InBody, Type: TypeJSON, Required: true},
		},
		Result: ShapeScalar, Sets: KindStyle, SetsFrom: SetsFromResult,
	},
	{
		Op: "styles.delete", Method: "DELETE", Path: "/styles/{style}",
		Params: []ParamSpec{
			{Name: "style", In: InPath, Type: TypeString, Required: true, Session: KindStyle},
		},
		Result: ShapeNone,
	},
	{
		// CyREST applies styles via GET; the descriptor still marks the
		// operation as mutating so it is never retried.
		Op: "styles.apply", Method: "GET", Path: "/apply/styles/{style}/{network}",
		Params: []ParamSpec{
			{Name: "style", In: InPath, Type: TypeString, Required: true, Session: KindStyle},
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
		},
		Result: ShapeNone, Sets: KindStyle, SetsFrom: "style",
	},
	{
		Op: "styles.defaults", Method: "GET", Path: "/styles/{style}/defaults",
		Params: []ParamSpec{
			{Name: "style", In: InPath, Type: TypeString, Required: true, Session: KindStyle},
		},
		Result: ShapeTable, ReadOnly: true,
	},
	{
		Op: "styles.setdefaults", Method: "PUT", Path: "/styles/{style}/defaults",
		Params: []ParamSpec{
			{Name: "style", In: InPath, Type: TypeString, Required: true, Session: KindStyle},
			{Name: "properties", In: InBody, Type: TypeJSON, Required: true},
		},
		Result: ShapeNone,
	},

	// Layouts
	{
		Op: "layouts.list", Method: "GET", Path: "/apply/layouts",
		Result: ShapeIDList, ReadOnly: true,
	},
	{
		// Layout application is also a GET in CyREST; not read-only.
		Op: "layouts.apply", Method: "GET", Path: "/apply/layouts/{algorithm}/{network}",
		Params: []ParamSpec{
			{Name: "algorithm", In: InPath, Type: TypeString, Required: true},
			{Name: "network", In: InPath, Type: TypeString, Required: true, Session: KindNetwork},
		},
		Result: ShapeNone,
	},
	{
		Op: "layouts.params", Method: "GET", Path: "/apply/layouts/{algorithm}/parameters",
		Params: []ParamSpec{
			{Name: "algorithm", In: InPath, Type: TypeString, Required: true},
		},
		Result: ShapeTable, ReadOnly: true,
	},
	{
		Op: "layouts.setparams", Method: "PUT", Path: "/apply/layouts/{algorithm}/parameters",
		Params: []ParamSpec{
			{Name: "algorithm", In: InPath, Type: TypeString, Required: true},
			{Name: "parameters", In: InBody, Type: TypeJSON, Required: true},
		},
		Result: ShapeNone,
	},

	// Commands (the swagger-style automation surface)
	{
		// Answers text/plain, one namespace per line after a header.
		Op: "commands.namespaces", Method: "GET", Path: "/commands",
		Result: ShapeText, ReadOnly: true,
	},
	{
		Op: "commands.list", Method: "GET", Path: "/commands/{namespace}",
		Params: []ParamSpec{
			{Name: "namespace", In: InPath, Type: TypeString, Required: true},
		},
		Result: ShapeText, ReadOnly: true,
	},
	{
		Op: "commands.run", Method: "POST", Path: "/commands/{namespace}/{command}",
		Params: []ParamSpec{
			{Name: "namespace", In: InPath, Type: TypeString, Required: true},
			{Name: "command", In: InPath, Type: TypeString, Required: true},
			{Name: "args", In: InBody, Type: TypeJSON},
		},
		Result: ShapeScalar,
	},
	{
		Op: "commands.query", Method: "GET", Path: "/commands/{namespace}/{command}",
		Params: []ParamSpec{
			{Name: "namespace", In: InPath, Type: TypeString, Required: true},
			{Name: "command", In: InPath, Type: TypeString, Required: true},
		},
		Result: ShapeScalar, ReadOnly: true,
	},

	// Session and UI
	{
		Op: "session.name", Method: "GET", Path: "/session/name",
		Result: ShapeScalar, ReadOnly: true,
	},
	{
		Op: "session.save", Method: "POST", Path: "/session",
		Params: []ParamSpec{
			{Name: "file", In: InQuery, Type: TypeString, Required: true},
		},
		Result: ShapeScalar,
	},
	{
		Op: "session.new", Method: "DELETE", Path: "/session",
		Result: ShapeNone, ClearsState: true,
	},
	{
		Op: "ui.lod", Method: "PUT", Path: "/ui/lod",
		Result: ShapeScalar,
	},
}
