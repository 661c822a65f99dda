package value

import (
	"fmt"
	"sort"
)

// Map is a set of named request parameters.
type Map map[string]Value

// MapFromAny converts a decoded JSON or YAML object into a Map.
func MapFromAny(obj map[string]any) (Map, error) {
	out := make(Map, len(obj))
	for key, x := range obj {
		v, err := FromAny(x)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out[key] = v
	}

	return out, nil
}

// Get returns the value stored under key.
func (m Map) Get(key string) (Value, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the keys of m in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// Clone returns a copy of m that shares no sequence storage with it.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}

	out := make(Map, len(m))
	for key, v := range m {
		if v.seq {
			v = Value{items: v.Items(), seq: true}
		}
		out[key] = v
	}

	return out
}

// Any returns m as a map of natural Go values, suitable for encoding or for
// validators that work on untyped data.
func (m Map) Any() map[string]any {
	out := make(map[string]any, len(m))
	for key, v := range m {
		out[key] = v.Any()
	}

	return out
}
