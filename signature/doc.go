// Package signature holds the static, load-once metadata of every declared
// operation: HTTP method, path template, argument bindings, produced and
// consumed media types, response parser variant and fallback policy.
//
// Signatures are declared in code with Declare, or loaded from YAML tables
// (LoadYAML) and OpenAPI 3 documents (FromOpenAPI). Every route ends in an
// immutable *Signature collected by a Registry, which is read-only after
// NewRegistry returns and safe for concurrent lookup.
//
//	sig := signature.Declare("getDatacenter", http.MethodGet, "/admin/datacenters/{datacenter}").
//		Params(signature.Int).
//		Path(0, "datacenter").
//		Consumes("application/vnd.abiquo.datacenter+xml").
//		Fallback(signature.NullOnNotFound).
//		MustBuild()
package signature
