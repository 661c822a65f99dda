package source

import (
	"net/http"

	"github.com/vitalvas/reqschema/value"
)

// Name identifies one of the request sources.
type Name string

const (
	Params Name = "params"
	Query  Name = "query"
	Body   Name = "body"
)

// Set holds the three sources of one request. The maps are read, never
// written, by the merge.
type Set struct {
	Params value.Map
	Query  value.Map
	Body   value.Map
}

// Get returns the source with the given name.
func (s Set) Get(name Name) value.Map {
	switch name {
	case Params:
		return s.Params
	case Query:
		return s.Query
	case Body:
		return s.Body
	default:
		return nil
	}
}

// Select returns the sources of s chosen by Select, in merge order.
func (s Set) Select(method string, strict bool) []value.Map {
	names := Select(method, strict)

	out := make([]value.Map, len(names))
	for i, name := range names {
		out[i] = s.Get(name)
	}

	return out
}

var (
	permissive = []Name{Query, Body, Params}

	strictByMethod = map[string][]Name{
		http.MethodGet:    {Query, Params},
		http.MethodPost:   {Body},
		http.MethodPut:    {Params, Body},
		http.MethodPatch:  {Params, Body},
		http.MethodDelete: {Params},
	}
)

// Select returns the sources merged for a request with the given method.
//
// When strict is false every source participates as query, body, params
// regardless of method. When strict is true the sources depend on the
// method, matched case-sensitively:
//
//	GET     query, params
//	POST    body
//	PUT     params, body
//	PATCH   params, body
//	DELETE  params
//
// Any other method selects nothing.
func Select(method string, strict bool) []Name {
	if !strict {
		return append([]Name(nil), permissive...)
	}

	return append([]Name(nil), strictByMethod[method]...)
}

// Selects reports whether name takes part in the merge for method.
func Selects(method string, strict bool, name Name) bool {
	for _, n := range Select(method, strict) {
		if n == name {
			return true
		}
	}

	return false
}
