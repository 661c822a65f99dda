package pipeline

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vitalvas/reqschema/rules"
	"github.com/vitalvas/reqschema/schema"
	"github.com/vitalvas/reqschema/source"
	"github.com/vitalvas/reqschema/value"
)

// ErrInvalidMaxBodyBytes is returned when Config.MaxBodyBytes is negative.
var ErrInvalidMaxBodyBytes = errors.New("pipeline: max body bytes must not be negative")

// Config configures a Pipeline. It is read once by New.
type Config struct {
	// Schema is the descriptor merged parameters are validated and
	// sanitized against. When nil, or when it does not compile, the
	// pipeline only merges.
	Schema schema.Descriptor

	// Engine builds the validator and sanitizer from Schema.
	// Defaults to rules.New().
	Engine schema.Engine

	// Strict restricts the merged sources by HTTP method. When false,
	// query, body and params are merged for every method.
	Strict bool

	// Params extracts route variables from a request.
	// Defaults to source.GorillaVars.
	Params source.ParamsFunc

	// MaxBodyBytes limits the request body when greater than zero.
	// Larger bodies are rejected with 413 Request Entity Too Large.
	MaxBodyBytes int64

	// OnError is called when a request's parameters cannot be read,
	// fail validation or fail sanitization. The next handler is not
	// called. When nil, a JSON error response is written.
	OnError func(w http.ResponseWriter, r *http.Request, err error)

	// Logger receives setup warnings and, with the default OnError,
	// request failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// Pipeline merges request parameters and runs the compiled schema on them.
// A Pipeline is immutable after New and safe for concurrent use.
type Pipeline struct {
	mode         schema.Mode
	strict       bool
	params       source.ParamsFunc
	maxBodyBytes int64
	onError      func(w http.ResponseWriter, r *http.Request, err error)
	logger       *slog.Logger
}

// New compiles cfg.Schema and returns a Pipeline. A schema that fails to
// compile is logged and disables validation for this Pipeline; it is not an
// error.
//
// It returns ErrInvalidMaxBodyBytes if MaxBodyBytes is negative.
func New(cfg Config) (*Pipeline, error) {
	if cfg.MaxBodyBytes < 0 {
		return nil, ErrInvalidMaxBodyBytes
	}

	engine := cfg.Engine
	if engine == nil {
		engine = rules.New()
	}

	params := cfg.Params
	if params == nil {
		params = source.GorillaVars
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mode, err := schema.Compile(cfg.Schema, engine)
	if err != nil {
		logger.Warn("schema did not compile, validation disabled", slog.Any("error", err))
	}

	p := &Pipeline{
		mode:         mode,
		strict:       cfg.Strict,
		params:       params,
		maxBodyBytes: cfg.MaxBodyBytes,
		onError:      cfg.OnError,
		logger:       logger,
	}

	if p.onError == nil {
		p.onError = p.respondError
	}

	return p, nil
}

// Mode returns the mode selected when the Pipeline was built.
func (p *Pipeline) Mode() schema.Mode {
	return p.mode
}

// Validates reports whether merged parameters are validated and sanitized.
func (p *Pipeline) Validates() bool {
	_, ok := p.mode.(schema.MergeValidateSanitize)
	return ok
}

// Strict reports whether sources are selected by method.
func (p *Pipeline) Strict() bool {
	return p.strict
}

// Process builds the parameter map for r: it reads the sources selected
// for r.Method, merges them and applies the compiled schema. The body is
// read only when it is selected.
func (p *Pipeline) Process(r *http.Request) (value.Map, error) {
	names := source.Select(r.Method, p.strict)

	set, err := source.Extract(r, p.params, names...)
	if err != nil {
		return nil, err
	}

	sources := make([]value.Map, len(names))
	for i, name := range names {
		sources[i] = set.Get(name)
	}

	return schema.Apply(p.mode, value.Merge(sources...))
}

// Middleware attaches the processed parameters of every request to its
// context before calling next. Handlers read them with FromRequest. When
// processing fails, OnError is called instead of next and nothing is
// attached.
//
// Middleware has the signature expected by gorilla/mux Router.Use and chi
// Router.Use. With chi, route parameters are only known after routing, so
// attach it with Router.With or inside a Route group.
func (p *Pipeline) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.maxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, p.maxBodyBytes)
		}

		m, err := p.Process(r)
		if err != nil {
			p.onError(w, r, err)
			return
		}

		next.ServeHTTP(w, WithSchema(r, m))
	})
}

// Handler wraps h with Middleware.
func (p *Pipeline) Handler(h http.Handler) http.Handler {
	return p.Middleware(h)
}

// HandlerFunc wraps fn with Middleware.
func (p *Pipeline) HandlerFunc(fn http.HandlerFunc) http.Handler {
	return p.Middleware(fn)
}
