// Package cyrest implements the command-dispatch bridge to a running
// Cytoscape instance's REST control surface (CyREST).
//
// The bridge maps logical operation names to concrete CyREST endpoints
// through a declarative descriptor table, so call sites never touch literal
// paths. A call travels through four stages:
//
//	resolve (descriptor lookup, path substitution, session defaults)
//	  → marshal (typed params into JSON body / query string)
//	  → execute (HTTP with timeout and read-only retry policy)
//	  → normalize (server JSON into scalar, identifier list, or Table)
//
// The [Client] owns the connection context (base URL plus negotiated API
// version, probed lazily on first use) and the session-state cache that
// supplies "current network/view/style" defaults for calls that omit an
// explicit target.
//
// # Usage
//
//	client := cyrest.New(config.Default())
//	res, err := client.Do(ctx, "networks.list", nil)
//	if err != nil {
//	    return err
//	}
//	for _, id := range res.IDs {
//	    fmt.Println(id)
//	}
//
// Resource-oriented wrappers with typed signatures live in the pkg/cyto
// subpackages; this package is the single choke point they all go through.
package cyrest
