package utils

import (
	"math"
	"strconv"
)

// SanitizeFloat normalizes a float into an optional value: NaN and ±Inf come
// back as nil so "not a number" never crosses the store boundary.
func SanitizeFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// NumberFromAny coerces the loosely-typed numerics that come out of the store
// (float64, int, int32, int64, numeric strings) into an optional float.
// Anything unparseable, NaN or infinite yields nil.
func NumberFromAny(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return SanitizeFloat(n)
	case float32:
		return SanitizeFloat(float64(n))
	case int:
		return SanitizeFloat(float64(n))
	case int32:
		return SanitizeFloat(float64(n))
	case int64:
		return SanitizeFloat(float64(n))
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil
		}
		return SanitizeFloat(f)
	default:
		return nil
	}
}
