package rootfind

import (
	"math"

	"github.com/edp1096/toy-numeric/internal/consts"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// DecimalsMatch reports whether prev and curr agree once both are rounded
// half away from zero to places fractional digits.
func DecimalsMatch(prev, curr float64, places int) bool {
	factor := math.Pow(10, float64(places))
	return math.Round(prev*factor)/factor == math.Round(curr*factor)/factor
}

// ValidateDecimals rejects a decimal-place tolerance outside [1, 10].
func ValidateDecimals(places int) error {
	if places < consts.MinDecimals || places > consts.MaxDecimals {
		return numerr.New(numerr.ConfigurationError, "decimals",
			"decimal places must be between %d and %d, got %d", consts.MinDecimals, consts.MaxDecimals, places)
	}
	return nil
}
