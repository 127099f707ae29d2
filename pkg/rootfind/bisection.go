package rootfind

type bisection struct{}

func (bisection) Next(older, newer Point) (Step, error) {
	return Step{X: (older.X + newer.X) / 2}, nil
}

// Advance keeps the half whose end values still differ in sign. A zero
// product falls to the right half.
func (bisection) Advance(older, newer, mid Point) (Point, Point, Decision) {
	if older.FX*mid.FX < 0 {
		return older, mid, DecisionOpposite
	}
	return mid, newer, DecisionSame
}

// Bisection halves the first bracket found scanning from x = 1 until two
// successive midpoints agree to decimals places.
func Bisection(f Function, decimals int) (*SolveResult, error) {
	if err := ValidateDecimals(decimals); err != nil {
		return nil, err
	}
	iv, err := FindBracket(f, BisectionStart)
	if err != nil {
		return nil, err
	}
	return bracketed(MethodBisection, f, bisection{}, iv, decimals)
}

func bracketed(method Method, f Function, s Stepper, iv Interval, decimals int) (*SolveResult, error) {
	res := &SolveResult{
		Method:       method,
		FunctionExpr: functionLabel(f),
		Interval:     &iv,
		X0:           iv.A,
		X1:           iv.B,
		FX0:          iv.FA,
		FX1:          iv.FB,
		Decimals:     decimals,
	}

	records, root, err := iterate(method, f, s, Point{X: iv.A, FX: iv.FA}, Point{X: iv.B, FX: iv.FB}, decimals)
	return finish(res, records, root, err)
}

func finish(res *SolveResult, records []IterationRecord, root float64, err error) (*SolveResult, error) {
	if records == nil {
		return nil, err
	}
	res.Iterations = records
	res.Root = root
	res.Converged = err == nil
	return res, err
}
