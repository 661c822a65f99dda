package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		sources []Map
		want    Map
	}{
		{
			name:    "no sources",
			sources: nil,
			want:    Map{},
		},
		{
			name:    "single source is copied",
			sources: []Map{{"a": Of(Int(1)), "b": Strings("x", "y")}},
			want:    Map{"a": Of(Int(1)), "b": Strings("x", "y")},
		},
		{
			name: "disjoint keys keep their values",
			sources: []Map{
				{"a": Of(Int(1))},
				{"b": Of(String("two"))},
				{"c": Ints(3, 4)},
			},
			want: Map{"a": Of(Int(1)), "b": Of(String("two")), "c": Ints(3, 4)},
		},
		{
			name:    "scalar and scalar",
			sources: []Map{{"k": Of(Int(1))}, {"k": Of(Int(2))}},
			want:    Map{"k": Ints(1, 2)},
		},
		{
			name:    "scalar and sequence",
			sources: []Map{{"k": Of(Int(1))}, {"k": Ints(2, 3)}},
			want:    Map{"k": Ints(1, 2, 3)},
		},
		{
			name:    "sequence and scalar",
			sources: []Map{{"k": Ints(1, 2)}, {"k": Of(Int(3))}},
			want:    Map{"k": Ints(1, 2, 3)},
		},
		{
			name:    "sequence and sequence deduplicated",
			sources: []Map{{"k": Ints(1, 2)}, {"k": Ints(2, 3)}},
			want:    Map{"k": Ints(1, 2, 3)},
		},
		{
			name:    "equal scalars collapse to a single item sequence",
			sources: []Map{{"k": Of(Int(7))}, {"k": Of(Int(7))}},
			want:    Map{"k": Ints(7)},
		},
		{
			name:    "string and number are distinct",
			sources: []Map{{"k": Of(String("1"))}, {"k": Of(Int(1))}},
			want:    Map{"k": Seq(String("1"), Int(1))},
		},
		{
			name:    "single source sequence with duplicates is deduplicated",
			sources: []Map{{"k": Ints(1, 1, 2, 1)}},
			want:    Map{"k": Ints(1, 2)},
		},
		{
			name: "internal duplicates across sources removed only once at the end",
			sources: []Map{
				{"k": Ints(3, 3)},
				{"k": Ints(1, 3, 1)},
				{"k": Of(Int(1))},
			},
			want: Map{"k": Ints(3, 1)},
		},
		{
			name: "null and false count as present values",
			sources: []Map{
				{"n": Of(Null()), "f": Of(Bool(false))},
				{"n": Of(String("x")), "f": Of(Bool(true))},
			},
			want: Map{"n": Seq(Null(), String("x")), "f": Seq(Bool(false), Bool(true))},
		},
		{
			name:    "empty sequence absorbs a scalar",
			sources: []Map{{"k": Seq()}, {"k": Of(Int(1))}},
			want:    Map{"k": Ints(1)},
		},
		{
			name: "three scalars keep source order",
			sources: []Map{
				{"userId": Of(Int(23))},
				{"userId": Of(Int(13))},
				{"userId": Of(Int(21))},
			},
			want: Map{"userId": Ints(23, 13, 21)},
		},
		{
			name: "NaN is deduplicated",
			sources: []Map{
				{"k": Of(Number(math.NaN()))},
				{"k": Seq(Int(1), Number(math.NaN()))},
			},
			want: Map{"k": Seq(Number(math.NaN()), Int(1))},
		},
		{
			name:    "zero and negative zero are one value",
			sources: []Map{{"k": Of(Number(0))}, {"k": Of(Number(math.Copysign(0, -1)))}},
			want:    Map{"k": Seq(Number(0))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.sources...)
			assertMapEqual(t, tt.want, got)
		})
	}
}

func TestMergeRequestScenario(t *testing.T) {
	params := Map{"userId": Of(Int(21))}
	query := Map{
		"userId":   Of(Int(23)),
		"clientId": Ints(1, 2, 3, 4),
		"saleId":   Of(Int(12)),
	}
	body := Map{
		"clientId": Ints(1, 2, 6),
		"userId":   Of(Int(13)),
		"username": Of(String("john")),
		"password": Of(String("asdf")),
		"saleId":   Ints(40, 41),
	}

	got := Merge(query, body, params)

	assertMapEqual(t, Map{
		"userId":   Ints(23, 13, 21),
		"clientId": Ints(1, 2, 3, 4, 6),
		"username": Of(String("john")),
		"password": Of(String("asdf")),
		"saleId":   Ints(12, 40, 41),
	}, got)
}

func TestMergeDoesNotMutateSources(t *testing.T) {
	first := Map{"a": Ints(1, 1, 2), "b": Of(Int(1))}
	second := Map{"a": Ints(3), "b": Ints(2, 2)}

	firstCopy := first.Clone()
	secondCopy := second.Clone()

	got := Merge(first, second)
	require.Len(t, got, 2)

	assertMapEqual(t, firstCopy, first)
	assertMapEqual(t, secondCopy, second)
}

func TestMergeIsDeterministic(t *testing.T) {
	sources := []Map{
		{"a": Of(Int(1)), "b": Strings("x", "y"), "c": Of(Bool(true))},
		{"a": Ints(2, 1), "b": Of(String("z")), "d": Of(Null())},
		{"a": Of(Int(3)), "c": Of(Bool(true))},
	}

	want := Merge(sources...)
	for i := 0; i < 20; i++ {
		assertMapEqual(t, want, Merge(sources...))
	}
}

func assertMapEqual(t *testing.T, want, got Map) {
	t.Helper()

	require.Equal(t, want.Keys(), got.Keys())
	for _, key := range want.Keys() {
		assert.Truef(t, want[key].Equal(got[key]), "key %q: want %s, got %s", key, want[key], got[key])
	}
}
