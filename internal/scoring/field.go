package scoring

import "math"

// has reports whether an optional metric carries a value. A nil pointer is
// the flattened form of a null or absent API field.
func has(v *float64) bool {
	return v != nil
}

// orDefault resolves an optional metric against its declared default. This is
// distinct from the weighted sums, where an absent metric drops its whole
// term instead of being substituted.
func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
