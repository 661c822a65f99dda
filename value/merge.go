package value

// Merge folds sources into a single Map. The first source seeds the result
// and the rest are combined into it in order; see the package documentation
// for the combination rules. Every sequence in the result is deduplicated
// keeping first occurrences. Merge of no sources is an empty Map.
func Merge(sources ...Map) Map {
	if len(sources) == 0 {
		return Map{}
	}

	out := make(Map, len(sources[0]))
	for key, v := range sources[0] {
		out[key] = v
	}

	for _, src := range sources[1:] {
		for key, incoming := range src {
			existing, ok := out[key]
			if !ok {
				out[key] = incoming
				continue
			}

			out[key] = combine(existing, incoming)
		}
	}

	for key, v := range out {
		if v.seq {
			out[key] = Value{items: dedupe(v.items), seq: true}
		}
	}

	return out
}

// combine returns a new sequence holding existing followed by incoming.
// Neither argument's storage is reused, so sources stay untouched.
func combine(existing, incoming Value) Value {
	var items []Scalar

	switch {
	case existing.seq && incoming.seq:
		items = concat(existing.items, incoming.items...)
	case existing.seq:
		items = concat(existing.items, incoming.scalar)
	case incoming.seq:
		items = concat([]Scalar{existing.scalar}, incoming.items...)
	default:
		items = []Scalar{existing.scalar, incoming.scalar}
	}

	return Value{items: items, seq: true}
}

func concat(head []Scalar, tail ...Scalar) []Scalar {
	out := make([]Scalar, 0, len(head)+len(tail))
	out = append(out, head...)

	return append(out, tail...)
}

// dedupe returns items without repeats, in first-occurrence order. All NaN
// numbers count as one value.
func dedupe(items []Scalar) []Scalar {
	seen := make(map[Scalar]struct{}, len(items))
	out := make([]Scalar, 0, len(items))
	seenNaN := false

	for _, s := range items {
		if s.isNaN() {
			if seenNaN {
				continue
			}
			seenNaN = true
			out = append(out, s)
			continue
		}

		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
