package schema

import (
	"errors"
	"fmt"

	"github.com/vitalvas/reqschema/value"
)

// Setup errors. Compile returns them alongside MergeOnly; they never reach a
// request.
var (
	// ErrNoEngine is returned when a descriptor is given without an engine
	// to build it.
	ErrNoEngine = errors.New("schema: engine must not be nil")

	// ErrCompile is returned when the engine cannot build a validator or a
	// sanitizer from the descriptor.
	ErrCompile = errors.New("schema: descriptor does not compile")
)

// Request errors.
var (
	// ErrValidation wraps every error returned by a Validator.
	ErrValidation = errors.New("schema: validation failed")

	// ErrSanitization wraps every error returned by a Sanitizer.
	ErrSanitization = errors.New("schema: sanitization failed")

	// ErrPanic wraps a panic recovered from a Validator or Sanitizer.
	ErrPanic = errors.New("schema: validator panicked")
)

// Descriptor maps parameter names to rules. Its content is opaque here and
// interpreted entirely by an Engine.
type Descriptor map[string]any

// Validator checks a merged parameter map.
type Validator interface {
	Validate(m value.Map) error
}

// Sanitizer transforms a validated parameter map. Its result replaces the
// input in full.
type Sanitizer interface {
	Sanitize(m value.Map) (value.Map, error)
}

// Engine builds validators and sanitizers from descriptors.
type Engine interface {
	BuildValidator(d Descriptor) (Validator, error)
	BuildSanitizer(d Descriptor) (Sanitizer, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(m value.Map) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(m value.Map) error {
	return f(m)
}

// SanitizerFunc adapts a function to Sanitizer.
type SanitizerFunc func(m value.Map) (value.Map, error)

// Sanitize implements Sanitizer.
func (f SanitizerFunc) Sanitize(m value.Map) (value.Map, error) {
	return f(m)
}

// Mode is what a configured pipeline does after merging: either nothing
// (MergeOnly) or validate then sanitize (MergeValidateSanitize). It is
// chosen once by Compile.
type Mode interface {
	mode()
}

// MergeOnly passes merged maps through unchanged.
type MergeOnly struct{}

func (MergeOnly) mode() {}

// MergeValidateSanitize validates every merged map and replaces it with the
// sanitizer's result.
type MergeValidateSanitize struct {
	Validator Validator
	Sanitizer Sanitizer
}

func (MergeValidateSanitize) mode() {}

// Compile builds the mode for d. A nil descriptor yields MergeOnly with no
// error. If the engine is missing or fails to build either half, Compile
// returns MergeOnly together with the reason; callers are expected to carry
// on with the returned mode.
func Compile(d Descriptor, engine Engine) (Mode, error) {
	if d == nil {
		return MergeOnly{}, nil
	}

	if engine == nil {
		return MergeOnly{}, ErrNoEngine
	}

	validator, err := engine.BuildValidator(d)
	if err != nil {
		return MergeOnly{}, fmt.Errorf("%w: validator: %w", ErrCompile, err)
	}

	sanitizer, err := engine.BuildSanitizer(d)
	if err != nil {
		return MergeOnly{}, fmt.Errorf("%w: sanitizer: %w", ErrCompile, err)
	}

	if validator == nil || sanitizer == nil {
		return MergeOnly{}, fmt.Errorf("%w: engine returned a nil component", ErrCompile)
	}

	return MergeValidateSanitize{Validator: validator, Sanitizer: sanitizer}, nil
}

// Apply runs mode on a merged map. In MergeOnly mode m is returned as is.
// Otherwise m is validated and, if valid, replaced by the sanitizer's result.
// Errors are wrapped with ErrValidation or ErrSanitization; a panic in either
// component is recovered and wrapped with ErrPanic.
func Apply(mode Mode, m value.Map) (out value.Map, err error) {
	vs, ok := mode.(MergeValidateSanitize)
	if !ok {
		return m, nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()

	if err := vs.Validator.Validate(m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	sanitized, err := vs.Sanitizer.Sanitize(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSanitization, err)
	}

	if sanitized == nil {
		sanitized = value.Map{}
	}

	return sanitized, nil
}
