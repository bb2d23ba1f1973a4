package services

import (
	"strconv"
	"strings"
)

// ToFloat coerces a value read from a data boundary (JSON field, form input,
// spreadsheet cell) into a float64. Anything that is not numeric, including
// malformed numeric strings, degrades to 0 rather than producing an error so
// a partially filled form never breaks a live calculation.
func ToFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
