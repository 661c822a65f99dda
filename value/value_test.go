package value

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar(t *testing.T) {
	t.Run("zero value is null", func(t *testing.T) {
		var s Scalar
		assert.True(t, s.IsNull())
		assert.Equal(t, KindNull, s.Kind())
		assert.Nil(t, s.Any())
	})

	t.Run("equality compares kind and payload", func(t *testing.T) {
		assert.Equal(t, Int(1), Number(1))
		assert.NotEqual(t, Int(1), String("1"))
		assert.NotEqual(t, Bool(false), Null())
		assert.NotEqual(t, String(`{"a":1}`), Raw(`{"a":1}`))
	})

	t.Run("typed accessors", func(t *testing.T) {
		s, ok := String("john").AsString()
		assert.True(t, ok)
		assert.Equal(t, "john", s)

		_, ok = Int(3).AsString()
		assert.False(t, ok)

		n, ok := Int(3).AsNumber()
		assert.True(t, ok)
		assert.Equal(t, 3.0, n)

		b, ok := Bool(true).AsBool()
		assert.True(t, ok)
		assert.True(t, b)

		raw, ok := Raw(`[1,2]`).AsRaw()
		assert.True(t, ok)
		assert.Equal(t, `[1,2]`, raw)
	})

	t.Run("string form", func(t *testing.T) {
		assert.Equal(t, "", Null().String())
		assert.Equal(t, "abc", String("abc").String())
		assert.Equal(t, "42", Int(42).String())
		assert.Equal(t, "1.5", Number(1.5).String())
		assert.Equal(t, "false", Bool(false).String())
	})

	t.Run("kind names", func(t *testing.T) {
		assert.Equal(t, "number", KindNumber.String())
		assert.Equal(t, "kind(9)", Kind(9).String())
	})
}

func TestValueShape(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		v := Of(String("x"))
		assert.False(t, v.IsSequence())
		assert.Equal(t, 1, v.Len())
		assert.Nil(t, v.Items())

		s, ok := v.Scalar()
		assert.True(t, ok)
		assert.Equal(t, String("x"), s)
	})

	t.Run("sequence", func(t *testing.T) {
		v := Ints(1, 2)
		assert.True(t, v.IsSequence())
		assert.Equal(t, 2, v.Len())
		assert.Equal(t, []Scalar{Int(1), Int(2)}, v.Items())

		_, ok := v.Scalar()
		assert.False(t, ok)
	})

	t.Run("items returns a copy", func(t *testing.T) {
		v := Ints(1, 2)
		items := v.Items()
		items[0] = Int(9)
		assert.True(t, v.Equal(Ints(1, 2)))
	})

	t.Run("seq copies its arguments", func(t *testing.T) {
		items := []Scalar{Int(1)}
		v := Seq(items...)
		items[0] = Int(2)
		assert.True(t, v.Equal(Ints(1)))
	})

	t.Run("NaN equals NaN", func(t *testing.T) {
		assert.True(t, Of(Number(math.NaN())).Equal(Of(Number(math.NaN()))))
		assert.True(t, Seq(Number(math.NaN())).Equal(Seq(Number(math.NaN()))))
		assert.False(t, Of(Number(math.NaN())).Equal(Of(Int(0))))
	})

	t.Run("empty sequence differs from null", func(t *testing.T) {
		assert.False(t, Seq().Equal(Of(Null())))
		assert.False(t, Ints(1).Equal(Of(Int(1))))
	})
}

func TestValueMarshalJSON(t *testing.T) {
	m := Map{
		"id":     Of(Int(21)),
		"name":   Of(String("john")),
		"tags":   Strings("a", "b"),
		"none":   Of(Null()),
		"empty":  Seq(),
		"active": Of(Bool(true)),
		"meta":   Of(Raw(`{"k":"v"}`)),
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 21,
		"name": "john",
		"tags": ["a", "b"],
		"none": null,
		"empty": [],
		"active": true,
		"meta": {"k": "v"}
	}`, string(data))
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Value
	}{
		{name: "nil", input: nil, want: Of(Null())},
		{name: "string", input: "x", want: Of(String("x"))},
		{name: "float", input: 2.5, want: Of(Number(2.5))},
		{name: "int", input: 7, want: Of(Int(7))},
		{name: "bool", input: true, want: Of(Bool(true))},
		{name: "json number", input: json.Number("12"), want: Of(Int(12))},
		{name: "slice", input: []any{1.0, "a", nil}, want: Seq(Int(1), String("a"), Null())},
		{name: "object", input: map[string]any{"b": 1.0, "a": "x"}, want: Of(Raw(`{"a":"x","b":1}`))},
		{name: "nested slice", input: []any{[]any{1.0, 2.0}}, want: Seq(Raw(`[1,2]`))},
		{
			name:  "timestamp",
			input: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  Of(String("2020-01-01T00:00:00Z")),
		},
		{
			name:  "mapping with non-string keys",
			input: map[any]any{1: "x", "b": map[any]any{true: 2}},
			want:  Of(Raw(`{"1":"x","b":{"true":2}}`)),
		},
		{
			name:  "sequence of mappings with non-string keys",
			input: []any{map[any]any{1: "x"}},
			want:  Seq(Raw(`{"1":"x"}`)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.input)
			require.NoError(t, err)
			assert.Truef(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}

	t.Run("unsupported type", func(t *testing.T) {
		_, err := FromAny(struct{}{})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("bad json number", func(t *testing.T) {
		_, err := FromAny(json.Number("x"))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}

func TestMapFromAny(t *testing.T) {
	m, err := MapFromAny(map[string]any{"a": 1.0, "b": []any{"x"}})
	require.NoError(t, err)
	assertMapEqual(t, Map{"a": Of(Int(1)), "b": Strings("x")}, m)

	_, err = MapFromAny(map[string]any{"bad": make(chan int)})
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), `key "bad"`)
}

func TestMapHelpers(t *testing.T) {
	m := Map{"b": Of(Int(1)), "a": Strings("x")}

	assert.Equal(t, []string{"a", "b"}, m.Keys())

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.True(t, v.Equal(Strings("x")))

	_, ok = m.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, map[string]any{"a": []any{"x"}, "b": 1.0}, m.Any())

	var nilMap Map
	assert.Nil(t, nilMap.Clone())
}
