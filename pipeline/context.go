package pipeline

import (
	"context"
	"net/http"

	"github.com/vitalvas/reqschema/value"
)

// schemaContextKey is an unexported type for the context key.
type schemaContextKey struct{}

var ctxKey = schemaContextKey{}

// NewContext returns a copy of ctx carrying m.
func NewContext(ctx context.Context, m value.Map) context.Context {
	return context.WithValue(ctx, ctxKey, m)
}

// FromContext returns the parameters attached by Middleware.
func FromContext(ctx context.Context) (value.Map, bool) {
	m, ok := ctx.Value(ctxKey).(value.Map)
	return m, ok
}

// FromRequest returns the parameters attached to r by Middleware, or nil.
func FromRequest(r *http.Request) value.Map {
	m, _ := FromContext(r.Context())
	return m
}

// WithSchema returns a shallow copy of r carrying m. This is what
// Middleware passes downstream; it is also useful for testing handlers.
func WithSchema(r *http.Request, m value.Map) *http.Request {
	return r.WithContext(NewContext(r.Context(), m))
}
