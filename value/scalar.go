package value

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies the payload carried by a Scalar.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindRaw
)

var kindNames = [...]string{
	KindNull:   "null",
	KindString: "string",
	KindNumber: "number",
	KindBool:   "bool",
	KindRaw:    "raw",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Scalar is a single request parameter value. The zero Scalar is null.
type Scalar struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Null returns the null scalar.
func Null() Scalar {
	return Scalar{}
}

// String returns a string scalar.
func String(s string) Scalar {
	return Scalar{kind: KindString, str: s}
}

// Number returns a number scalar.
func Number(f float64) Scalar {
	return Scalar{kind: KindNumber, num: f}
}

// Int returns a number scalar holding i.
func Int(i int) Scalar {
	return Number(float64(i))
}

// Bool returns a boolean scalar.
func Bool(b bool) Scalar {
	return Scalar{kind: KindBool, b: b}
}

// Raw returns a scalar holding the JSON text of a nested body value.
// The text is stored as given; callers producing it with encoding/json get a
// canonical form (sorted object keys), which is what equality relies on.
func Raw(text string) Scalar {
	return Scalar{kind: KindRaw, str: text}
}

// Kind returns the kind of s.
func (s Scalar) Kind() Kind {
	return s.kind
}

// isNaN reports whether s is a NaN number.
func (s Scalar) isNaN() bool {
	return s.kind == KindNumber && math.IsNaN(s.num)
}

// same reports whether s and o are the same value. Unlike ==, NaN is the
// same as NaN; 0 and -0 are the same as well.
func (s Scalar) same(o Scalar) bool {
	if s.isNaN() && o.isNaN() {
		return true
	}

	return s == o
}

// IsNull reports whether s is the null scalar.
func (s Scalar) IsNull() bool {
	return s.kind == KindNull
}

// AsString returns the payload of a string scalar.
func (s Scalar) AsString() (string, bool) {
	return s.str, s.kind == KindString
}

// AsNumber returns the payload of a number scalar.
func (s Scalar) AsNumber() (float64, bool) {
	return s.num, s.kind == KindNumber
}

// AsBool returns the payload of a boolean scalar.
func (s Scalar) AsBool() (bool, bool) {
	return s.b, s.kind == KindBool
}

// AsRaw returns the JSON text of a raw scalar.
func (s Scalar) AsRaw() (string, bool) {
	return s.str, s.kind == KindRaw
}

// Any returns the natural Go representation of s: nil, string, float64,
// bool or json.RawMessage.
func (s Scalar) Any() any {
	switch s.kind {
	case KindString:
		return s.str
	case KindNumber:
		return s.num
	case KindBool:
		return s.b
	case KindRaw:
		return json.RawMessage(s.str)
	default:
		return nil
	}
}

// String formats s the way it would appear in a query string. Null formats
// as the empty string.
func (s Scalar) String() string {
	switch s.kind {
	case KindString, KindRaw:
		return s.str
	case KindNumber:
		return strconv.FormatFloat(s.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(s.b)
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case KindString:
		return json.Marshal(s.str)
	case KindNumber:
		return json.Marshal(s.num)
	case KindBool:
		return json.Marshal(s.b)
	case KindRaw:
		return []byte(s.str), nil
	default:
		return []byte("null"), nil
	}
}
