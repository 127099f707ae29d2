package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var unitMap = map[string]float64{
	"T":   1e12,  // tera
	"G":   1e9,   // giga
	"meg": 1e6,   // mega
	"K":   1e3,   // kilo
	"k":   1e3,   // kilo
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

var valuePattern = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGKkmunpf])?$`)

// ParseValue reads a number with an optional SI suffix: "100u", "2.5k", "1e-4".
func ParseValue(val string) (float64, error) {
	matches := valuePattern.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	// factor
	if matches[2] != "" {
		num *= unitMap[matches[2]]
	}
	return num, nil
}

// ParseCount reads an integer. SI suffixes are not allowed.
func ParseCount(val string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %s", val)
	}
	return n, nil
}
