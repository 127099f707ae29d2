package util

import (
	"fmt"
	"math"
	"strings"
)

// FormatValueFactor prints a value with an SI prefix, e.g. 0.0001 -> "100.000 u".
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1e3 && absValue < 1e6:
		return strings.TrimSpace(fmt.Sprintf("%.3f k%s", value/1e3, unit))
	case absValue >= 1 || absValue == 0:
		return strings.TrimSpace(fmt.Sprintf("%.3f %s", value, unit))
	case absValue >= 1e-3:
		return strings.TrimSpace(fmt.Sprintf("%.3f m%s", value*1e3, unit))
	case absValue >= 1e-6:
		return strings.TrimSpace(fmt.Sprintf("%.3f u%s", value*1e6, unit))
	case absValue >= 1e-9:
		return strings.TrimSpace(fmt.Sprintf("%.3f n%s", value*1e9, unit))
	case absValue >= 1e-12:
		return strings.TrimSpace(fmt.Sprintf("%.3f p%s", value*1e12, unit))
	default:
		return strings.TrimSpace(fmt.Sprintf("%.3e %s", value, unit))
	}
}

// FormatFixed prints value with the given number of decimals. Negative zero
// prints as zero.
func FormatFixed(value float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, value)
	if strings.Trim(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}

func FormatVector(values []float64, decimals int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatFixed(v, decimals)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func FormatMagnitude(value float64) string {
	absValue := math.Abs(value)
	if absValue >= 1000 || (absValue < 0.001 && value != 0) {
		return fmt.Sprintf("%8.2e", value) // "1.00e+03" or "5.43e-05"
	}
	return fmt.Sprintf("%8.3g", value) // "  732.5 "
}
