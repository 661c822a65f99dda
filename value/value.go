package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnsupportedType is returned by FromAny for Go values that have no
// request parameter representation.
var ErrUnsupportedType = errors.New("value: unsupported type")

// Value is either a single Scalar or an ordered sequence of scalars.
// The zero Value is the null scalar.
type Value struct {
	scalar Scalar
	items  []Scalar
	seq    bool
}

// Of returns a scalar Value.
func Of(s Scalar) Value {
	return Value{scalar: s}
}

// Seq returns a sequence Value holding a copy of items. Seq() is the empty
// sequence, which is distinct from the null scalar.
func Seq(items ...Scalar) Value {
	return Value{items: append(make([]Scalar, 0, len(items)), items...), seq: true}
}

// Strings returns a sequence of string scalars.
func Strings(items ...string) Value {
	out := make([]Scalar, len(items))
	for i, s := range items {
		out[i] = String(s)
	}

	return Value{items: out, seq: true}
}

// Ints returns a sequence of number scalars.
func Ints(items ...int) Value {
	out := make([]Scalar, len(items))
	for i, n := range items {
		out[i] = Int(n)
	}

	return Value{items: out, seq: true}
}

// IsSequence reports whether v is a sequence.
func (v Value) IsSequence() bool {
	return v.seq
}

// Scalar returns the scalar held by v. The boolean is false for sequences.
func (v Value) Scalar() (Scalar, bool) {
	return v.scalar, !v.seq
}

// Items returns a copy of the items of a sequence, or nil for a scalar.
func (v Value) Items() []Scalar {
	if !v.seq {
		return nil
	}

	return append(make([]Scalar, 0, len(v.items)), v.items...)
}

// Len returns the number of items of a sequence, or 1 for a scalar.
func (v Value) Len() int {
	if v.seq {
		return len(v.items)
	}

	return 1
}

// Equal reports whether v and o have the same shape and the same scalars in
// the same order.
func (v Value) Equal(o Value) bool {
	if v.seq != o.seq {
		return false
	}

	if !v.seq {
		return v.scalar.same(o.scalar)
	}

	if len(v.items) != len(o.items) {
		return false
	}

	for i := range v.items {
		if !v.items[i].same(o.items[i]) {
			return false
		}
	}

	return true
}

// Any returns the natural Go representation of v: the scalar's Any for a
// scalar, and []any for a sequence.
func (v Value) Any() any {
	if !v.seq {
		return v.scalar.Any()
	}

	out := make([]any, len(v.items))
	for i, s := range v.items {
		out[i] = s.Any()
	}

	return out
}

// String formats v for diagnostics.
func (v Value) String() string {
	if !v.seq {
		return v.scalar.String()
	}

	parts := make([]string, len(v.items))
	for i, s := range v.items {
		parts[i] = s.String()
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.seq {
		return v.scalar.MarshalJSON()
	}

	if v.items == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(v.items)
}

// FromAny converts decoded JSON or YAML data into a Value. Top-level slices
// become sequences; objects, and arrays nested inside a sequence, become raw
// scalars. Timestamps decoded from YAML become RFC 3339 strings.
func FromAny(x any) (Value, error) {
	if items, ok := x.([]any); ok {
		out := make([]Scalar, len(items))
		for i, item := range items {
			s, err := scalarFromAny(item)
			if err != nil {
				return Value{}, err
			}
			out[i] = s
		}

		return Value{items: out, seq: true}, nil
	}

	s, err := scalarFromAny(x)
	if err != nil {
		return Value{}, err
	}

	return Of(s), nil
}

func scalarFromAny(x any) (Scalar, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Int(t), nil
	case int64:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Scalar{}, fmt.Errorf("%w: number %q: %s", ErrUnsupportedType, t, err)
		}
		return Number(f), nil
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case []any, map[string]any, map[any]any:
		raw, err := json.Marshal(jsonable(t))
		if err != nil {
			return Scalar{}, fmt.Errorf("%w: %s", ErrUnsupportedType, err)
		}
		return Raw(string(raw)), nil
	default:
		return Scalar{}, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
	}
}

// jsonable rewrites YAML mappings with non-string keys into objects keyed
// by the formatted key, so that nested data always encodes as JSON.
func jsonable(x any) any {
	switch t := x.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for key, v := range t {
			out[fmt.Sprint(key)] = jsonable(v)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, v := range t {
			out[key] = jsonable(v)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = jsonable(v)
		}
		return out
	default:
		return x
	}
}
