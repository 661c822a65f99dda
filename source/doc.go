// Package source reads the parameter sources of an HTTP request and decides
// which of them take part in a merge.
//
// A request has three sources: route parameters, the query string and the
// body. Select returns the ones merged for a method. In permissive mode all
// three are merged as query, body, params. In strict mode the method
// decides:
//
//	GET     query, params
//	POST    body
//	PUT     params, body
//	PATCH   params, body
//	DELETE  params
//
// Route parameters come from the router through a ParamsFunc. Adapters are
// provided for gorilla/mux (GorillaVars), chi (ChiURLParams) and the
// net/http ServeMux (PathValues).
//
// Query values and URL-encoded form values with a single occurrence become
// string scalars; repeated keys become sequences. Bodies are decoded from
// JSON, YAML, URL-encoded or multipart forms according to Content-Type.
package source
