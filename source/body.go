package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/reqschema/value"
)

var (
	// ErrBody is returned when the request body cannot be read or decoded.
	ErrBody = errors.New("source: invalid request body")

	// ErrUnsupportedMediaType is returned when a non-empty body has a
	// Content-Type this package cannot decode.
	ErrUnsupportedMediaType = errors.New("source: unsupported body media type")
)

// multipartMaxMemory bounds the value parts kept in memory while reading a
// multipart form. File parts are discarded.
const multipartMaxMemory = 32 << 20

// FromValues converts query or form values into a Map. A key with a single
// value becomes a string scalar; a key with several values becomes a
// sequence of strings in the order they appeared.
func FromValues(vals url.Values) value.Map {
	out := make(value.Map, len(vals))
	for key, vs := range vals {
		switch len(vs) {
		case 0:
			continue
		case 1:
			out[key] = value.Of(value.String(vs[0]))
		default:
			out[key] = value.Strings(vs...)
		}
	}

	return out
}

// ReadBody reads and decodes the body of r according to its Content-Type.
// JSON, YAML, URL-encoded forms and the value parts of multipart forms are
// supported. An empty body decodes to an empty Map whatever its type.
//
// The body is consumed and replaced with an in-memory copy so that later
// handlers can read it again.
func ReadBody(r *http.Request) (value.Map, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return value.Map{}, nil
	}

	data, err := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(data))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBody, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return value.Map{}, nil
	}

	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return nil, fmt.Errorf("%w: missing content type", ErrUnsupportedMediaType)
	}

	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, err)
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return decodeJSON(data)
	case mediaType == "application/yaml" || mediaType == "application/x-yaml" || mediaType == "text/yaml":
		return decodeYAML(data)
	case mediaType == "application/x-www-form-urlencoded":
		vals, err := url.ParseQuery(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBody, err)
		}
		return FromValues(vals), nil
	case mediaType == "multipart/form-data":
		return decodeMultipart(data, params["boundary"])
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// decodeJSON decodes exactly one JSON object; trailing data is an error.
func decodeJSON(data []byte) (value.Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBody, err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected trailing data after JSON value", ErrBody)
	}

	m, ok := obj.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: JSON body must be an object", ErrBody)
	}

	return toMap(m)
}

func decodeYAML(data []byte) (value.Map, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBody, err)
	}

	return toMap(m)
}

func decodeMultipart(data []byte, boundary string) (value.Map, error) {
	if boundary == "" {
		return nil, fmt.Errorf("%w: multipart body without boundary", ErrBody)
	}

	form, err := multipart.NewReader(bytes.NewReader(data), boundary).ReadForm(multipartMaxMemory)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBody, err)
	}
	defer form.RemoveAll()

	return FromValues(form.Value), nil
}

func toMap(m map[string]any) (value.Map, error) {
	out, err := value.MapFromAny(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBody, err)
	}

	return out, nil
}
