// Package value models request parameter values and merges them.
//
// A request parameter is either a single scalar or an ordered sequence of
// scalars. Value is a tagged union over those two shapes so that the merge
// rules can be expressed as explicit cases rather than runtime type checks.
//
// # Scalars
//
// A Scalar is one of null, string, number, boolean or raw. Raw carries the
// canonical JSON text of a nested object or array found in a request body,
// which keeps such values comparable without interpreting them.
//
// Scalars are comparable with ==. Two scalars are equal when they have the
// same kind and the same payload, so the string "1" and the number 1 are
// distinct. Merge and Value.Equal also treat every NaN as the same number.
//
// # Merging
//
// Merge folds an ordered list of maps into one:
//
//	merged := value.Merge(query, body, params)
//
// The first map seeds the result. For every later map, a key that is
// already present is combined with the incoming value:
//
//	existing   incoming   result
//	sequence   sequence   existing items followed by incoming items
//	sequence   scalar     existing items followed by the scalar
//	scalar     sequence   the existing scalar followed by incoming items
//	scalar     scalar     a two element sequence
//
// Once every map has been folded in, each sequence is deduplicated keeping
// the first occurrence of every scalar. Merge never modifies its inputs.
package value
