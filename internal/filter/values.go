package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseNumber accepts finite floats only.
func parseNumber(value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %s", value)
	}
	return f, nil
}

// splitList splits an IN list on commas, trimming and lower-casing every item.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.ToLower(strings.TrimSpace(p)))
	}
	return out
}

func normalizeValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// compareOrdered compares a and b numerically, falling back to timestamps.
// ok is false when neither interpretation applies to both sides.
func compareOrdered(a, b string) (cmp int, ok bool) {
	af, aerr := parseNumber(a)
	bf, berr := parseNumber(b)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}

	at, aerr := ParseDateTime(strings.TrimSpace(a))
	bt, berr := ParseDateTime(strings.TrimSpace(b))
	if aerr == nil && berr == nil {
		return at.Compare(bt), true
	}
	return 0, false
}
