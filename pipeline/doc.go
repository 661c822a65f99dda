// Package pipeline turns the parameters of an HTTP request into one merged,
// validated map and hands it to the next handler.
//
// A Pipeline is configured once:
//
//	p, err := pipeline.New(pipeline.Config{
//	    Schema: schema.Descriptor{
//	        "userId":   "required,number",
//	        "clientId": "omitempty,sequence,max=4,dive,number",
//	    },
//	    Strict: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := mux.NewRouter()
//	r.Use(p.Middleware)
//
// For every request the pipeline selects the sources for the method (see
// package source), merges them (see package value) and, when the schema
// compiled, validates and sanitizes the result (see package schema). The
// final map is attached to the request context:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    params := pipeline.FromRequest(r)
//	    ...
//	}
//
// Bind decodes the attached map into a struct using `schema` tags:
//
//	var in struct {
//	    UserID   int   `schema:"userId"`
//	    ClientID []int `schema:"clientId"`
//	}
//	if err := pipeline.Bind(r, &in); err != nil {
//	    ...
//	}
//
// # Degraded mode
//
// A schema that does not compile is not fatal. New logs a warning and the
// pipeline only merges; Validates reports which mode was selected.
//
// # Errors
//
// When a body cannot be read, or validation or sanitization fails, the
// next handler is not called and nothing is attached. Config.OnError
// receives the error; the default handler writes an ErrorResponse as JSON
// with the status from StatusCode and logs it under the same error id.
package pipeline
