package pipeline

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	gschema "github.com/gorilla/schema"

	"github.com/vitalvas/reqschema/value"
)

// ErrNoParameters is returned by Bind when Middleware did not run for the
// request.
var ErrNoParameters = errors.New("pipeline: no parameters attached to request")

var decoder = newDecoder()

func newDecoder() *gschema.Decoder {
	dec := gschema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return dec
}

// Bind decodes the parameters attached to r into the struct pointed to by
// dst. Fields are matched by their `schema` struct tag.
func Bind(r *http.Request, dst any) error {
	m, ok := FromContext(r.Context())
	if !ok {
		return ErrNoParameters
	}

	return Decode(m, dst)
}

// Decode decodes m into the struct pointed to by dst. Scalars are formatted
// as they would be in a query string; null scalars are skipped.
func Decode(m value.Map, dst any) error {
	if err := decoder.Decode(dst, Values(m)); err != nil {
		return fmt.Errorf("pipeline: bind: %w", err)
	}

	return nil
}

// Values flattens m into url.Values.
func Values(m value.Map) url.Values {
	vals := make(url.Values, len(m))

	for key, v := range m {
		if s, ok := v.Scalar(); ok {
			if !s.IsNull() {
				vals[key] = []string{s.String()}
			}
			continue
		}

		for _, s := range v.Items() {
			if !s.IsNull() {
				vals[key] = append(vals[key], s.String())
			}
		}
	}

	return vals
}
