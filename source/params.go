package source

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"

	"github.com/vitalvas/reqschema/value"
)

// ParamsFunc returns the route variables of a matched request. It returns
// nil when the request carries none.
type ParamsFunc func(r *http.Request) map[string]string

// GorillaVars reads route variables stored by a gorilla/mux router.
func GorillaVars(r *http.Request) map[string]string {
	return mux.Vars(r)
}

// ChiURLParams reads route parameters stored by a chi router. Wildcard
// parameters ("*") are skipped. When a key repeats, the last value wins,
// matching chi.URLParam.
func ChiURLParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}

	out := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		out[key] = rctx.URLParams.Values[i]
	}

	return out
}

// PathValues returns a ParamsFunc that reads the named wildcards matched by
// a net/http ServeMux pattern. Names with no value are omitted.
func PathValues(names ...string) ParamsFunc {
	names = append([]string(nil), names...)

	return func(r *http.Request) map[string]string {
		out := make(map[string]string, len(names))
		for _, name := range names {
			if v := r.PathValue(name); v != "" {
				out[name] = v
			}
		}

		return out
	}
}

// FromParams converts route variables into a Map of string scalars.
func FromParams(vars map[string]string) value.Map {
	out := make(value.Map, len(vars))
	for key, v := range vars {
		out[key] = value.Of(value.String(v))
	}

	return out
}
