package rootfind

import (
	"math"

	"github.com/edp1096/toy-numeric/pkg/numerr"
)

type secant struct{ slide }

func (secant) Next(older, newer Point) (Step, error) {
	num := older.X*newer.FX - newer.X*older.FX
	den := newer.FX - older.FX
	return quotientStep(MethodSecant, num, den, func() float64 {
		return num / den
	})
}

// Secant iterates from two caller-chosen seeds. No bracket is required.
func Secant(f Function, x0, x1 float64, decimals int) (*SolveResult, error) {
	if err := ValidateDecimals(decimals); err != nil {
		return nil, err
	}
	if !finite(x0) || !finite(x1) {
		return nil, numerr.New(numerr.ConfigurationError, string(MethodSecant), "seeds must be finite numbers")
	}
	if x0 == x1 {
		return nil, numerr.New(numerr.ConfigurationError, string(MethodSecant), "x0 and x1 must be different, both are %g", x0)
	}

	fx0, err := evalAt(f, x0)
	if err != nil {
		return nil, err
	}
	fx1, err := evalAt(f, x1)
	if err != nil {
		return nil, err
	}

	res := &SolveResult{
		Method:       MethodSecant,
		FunctionExpr: functionLabel(f),
		X0:           x0,
		X1:           x1,
		FX0:          fx0,
		FX1:          fx1,
		Decimals:     decimals,
	}
	records, root, err := iterate(MethodSecant, f, secant{}, Point{X: x0, FX: fx0}, Point{X: x1, FX: fx1}, decimals)
	return finish(res, records, root, err)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
