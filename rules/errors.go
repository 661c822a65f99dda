package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vitalvas/reqschema/schema"
)

// ErrRuleType is returned when a descriptor entry is not a validator tag
// string.
var ErrRuleType = errors.New("rules: rule must be a string of validator tags")

// ErrUnknownTag is returned when a descriptor entry uses a tag the engine
// has no validation for.
var ErrUnknownTag = errors.New("rules: unknown validation tag")

// A ValidationError is one parameter value failing one rule.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

// ValidationErrors is every failure found in a merged map.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msg := fmt.Sprintf("field=%q rule=%q got=%q", err.Field, err.Rule, fmt.Sprint(err.Got))
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "\n")
}

func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	var errs struct {
		E []ValidationError `json:"validationErrors,omitempty"`
	}

	errs.E = append(errs.E, v...)

	return json.Marshal(errs)
}

func (ValidationErrors) Unwrap() error { return schema.ErrValidation }
