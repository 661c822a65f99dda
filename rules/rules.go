package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	v10 "github.com/go-playground/validator/v10"

	"github.com/vitalvas/reqschema/schema"
	"github.com/vitalvas/reqschema/value"
)

// Engine builds validators and sanitizers whose rules are
// go-playground/validator tags, one tag string per parameter:
//
//	schema.Descriptor{
//	    "userId":   "required,number",
//	    "clientId": "omitempty,sequence,min=1,max=4,dive,number",
//	    "username": "omitempty,string,min=3,max=255",
//	}
//
// Besides the validator's built-in tags the engine understands string,
// boolean, scalar and sequence, which check the shape of a merged value.
type Engine struct {
	valid *v10.Validate
}

var _ schema.Engine = (*Engine)(nil)

// New returns an Engine with the default tag set.
func New() *Engine {
	v := v10.New()
	v.RegisterValidation("string", kindIs(reflect.String))
	v.RegisterValidation("boolean", kindIs(reflect.Bool))
	v.RegisterValidation("sequence", kindIs(reflect.Slice))
	v.RegisterValidation("scalar", notKind(reflect.Slice))

	return &Engine{valid: v}
}

// RegisterValidation adds a custom tag. Tags must be registered before any
// descriptor using them is built.
func (e *Engine) RegisterValidation(tag string, fn v10.Func) error {
	return e.valid.RegisterValidation(tag, fn)
}

// BuildValidator implements schema.Engine. Every rule is parsed up front, so
// a descriptor with a non-string rule or an unknown tag fails here rather
// than on a request.
func (e *Engine) BuildValidator(d schema.Descriptor) (schema.Validator, error) {
	tags, err := e.compile(d)
	if err != nil {
		return nil, err
	}

	return &validator{valid: e.valid, tags: tags}, nil
}

// BuildSanitizer implements schema.Engine. The sanitizer keeps the declared
// parameters that are present and drops everything else.
func (e *Engine) BuildSanitizer(d schema.Descriptor) (schema.Sanitizer, error) {
	tags, err := e.compile(d)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}

	return projection(keys), nil
}

// compile checks every rule of d and returns the tags by parameter name.
func (e *Engine) compile(d schema.Descriptor) (map[string]string, error) {
	tags := make(map[string]string, len(d))

	for key, rule := range d {
		tag, ok := rule.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q is %T", ErrRuleType, key, rule)
		}

		if err := e.checkTag(tag); err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}

		tags[key] = tag
	}

	return tags, nil
}

// checkTag parses tag by running it against a nil value. The validator
// panics on tags it does not know.
func (e *Engine) checkTag(tag string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrUnknownTag, rec)
		}
	}()

	_ = e.valid.Var(nil, tag)

	return nil
}

type validator struct {
	valid *v10.Validate
	tags  map[string]string
}

// Validate checks every declared parameter of m. A declared parameter that
// is absent is checked as nil; rules of optional parameters start with
// omitempty.
func (v *validator) Validate(m value.Map) error {
	var out ValidationErrors

	for _, key := range sortedKeys(v.tags) {
		var field any
		if val, ok := m[key]; ok {
			field = fieldOf(val)
		}

		err := v.valid.Var(field, v.tags[key])
		if err == nil {
			continue
		}

		var errs v10.ValidationErrors
		if !errors.As(err, &errs) {
			return err
		}

		for _, fe := range errs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}

			out = append(out, ValidationError{
				Field: key + fe.Namespace(),
				Got:   fe.Value(),
				Rule:  rule,
			})
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// fieldOf returns the form of v the validator sees: a []any for a sequence,
// the decoded JSON for a raw scalar, and Scalar.Any for anything else. A
// nested body object therefore reaches the tags as a map, never a slice.
func fieldOf(v value.Value) any {
	if s, ok := v.Scalar(); ok {
		return scalarField(s)
	}

	items := v.Items()
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = scalarField(s)
	}

	return out
}

func scalarField(s value.Scalar) any {
	raw, ok := s.AsRaw()
	if !ok {
		return s.Any()
	}

	var x any
	if err := json.Unmarshal([]byte(raw), &x); err != nil {
		return raw
	}

	return x
}

type projection []string

func (p projection) Sanitize(m value.Map) (value.Map, error) {
	out := make(value.Map, len(p))
	for _, key := range p {
		if v, ok := m[key]; ok {
			out[key] = v
		}
	}

	return out, nil
}

func kindIs(kind reflect.Kind) v10.Func {
	return func(fl v10.FieldLevel) bool {
		return fl.Field().Kind() == kind
	}
}

func notKind(kind reflect.Kind) v10.Func {
	return func(fl v10.FieldLevel) bool {
		return fl.Field().Kind() != kind
	}
}

func sortedKeys(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
