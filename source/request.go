package source

import (
	"net/http"
)

// Extract reads the named sources of r into a Set. Sources that are not
// named stay nil, so the body is only consumed when Body is requested.
// A nil params func yields no route variables.
func Extract(r *http.Request, params ParamsFunc, names ...Name) (Set, error) {
	var set Set

	for _, name := range names {
		switch name {
		case Params:
			if set.Params != nil {
				continue
			}
			var vars map[string]string
			if params != nil {
				vars = params(r)
			}
			set.Params = FromParams(vars)

		case Query:
			if set.Query != nil {
				continue
			}
			set.Query = FromValues(r.URL.Query())

		case Body:
			if set.Body != nil {
				continue
			}
			body, err := ReadBody(r)
			if err != nil {
				return Set{}, err
			}
			set.Body = body
		}
	}

	return set, nil
}
