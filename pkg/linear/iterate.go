package linear

import (
	"math"

	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// sweep computes one pass from x. With inPlace the updated components are
// visible to the rows after them (Gauss-Seidel). Otherwise every row reads
// the previous pass (Jacobi). x is never modified.
func sweep(s *System, x []float64, inPlace bool) ([]float64, []VariableCalc) {
	next := make([]float64, s.n)
	copy(next, x)
	read := x
	if inPlace {
		read = next
	}

	calcs := make([]VariableCalc, 0, s.n)
	for i, row := range s.a {
		calc := VariableCalc{
			Variable: VariableName(i),
			Constant: s.b[i],
			Divisor:  row[i],
			Terms:    make([]Term, 0, s.n-1),
		}
		v := s.b[i]
		for j, coeff := range row {
			if j == i {
				continue
			}
			current := inPlace && j < i
			calc.Terms = append(calc.Terms, Term{
				Col:      j + 1,
				Variable: VariableName(j),
				Coeff:    coeff,
				Value:    read[j],
				Current:  current,
			})
			if current {
				calc.UsesCurrentPass = true
			}
			v -= coeff * read[j]
		}
		next[i] = v / row[i]
		calc.Value = next[i]
		calcs = append(calcs, calc)
	}
	return next, calcs
}

func maxChange(prev, curr []float64) float64 {
	d := 0.0
	for i := range curr {
		d = math.Max(d, math.Abs(curr[i]-prev[i]))
	}
	return d
}

func allFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validateParams(tol float64, maxIter int) error {
	if !(tol > 0) || math.IsInf(tol, 0) {
		return numerr.New(numerr.ConfigurationError, "linear", "tolerance must be positive, got %g", tol)
	}
	if maxIter <= 0 {
		return numerr.New(numerr.ConfigurationError, "linear", "max iterations must be positive, got %d", maxIter)
	}
	return nil
}

// passHint bounds the preallocated trace; maxIter comes from the caller.
const passHint = 64

// run iterates from the zero vector. firstCheck is the 1-based pass at
// which the tolerance test starts.
func run(method Method, s *System, tol float64, maxIter int, inPlace bool, firstCheck int) (*Result, error) {
	if s == nil {
		return nil, numerr.New(numerr.ConfigurationError, string(method), "system is nil")
	}
	if err := validateParams(tol, maxIter); err != nil {
		return nil, err
	}

	res := &Result{
		Method:     method,
		Iterations: make([]Pass, 0, min(maxIter, passHint)),
		Tolerance:  tol,
		MaxIter:    maxIter,
	}
	x := make([]float64, s.n)
	for k := 1; k <= maxIter; k++ {
		next, calcs := sweep(s, x, inPlace)
		if !allFinite(next) {
			res.Final = x
			return res, numerr.New(numerr.DidNotConverge, string(method),
				"diverged to a non-finite value on pass %d", k).AtIteration(k)
		}

		change := maxChange(x, next)
		res.Iterations = append(res.Iterations, Pass{Index: k, Values: next, Calcs: calcs, Change: change})
		x = next
		if k >= firstCheck && change < tol {
			res.Converged = true
			res.Final = append([]float64(nil), x...)
			return res, nil
		}
	}

	res.Final = append([]float64(nil), x...)
	return res, numerr.New(numerr.DidNotConverge, string(method),
		"no convergence within %d passes (tolerance %g)", maxIter, tol).AtIteration(maxIter)
}

// Jacobi computes every component of a pass from the previous completed
// pass. The tolerance test applies from the first pass on.
func Jacobi(s *System, tol float64, maxIter int) (*Result, error) {
	return run(MethodJacobi, s, tol, maxIter, false, 1)
}

// GaussSeidel reads components already updated in the current pass. The
// tolerance test is skipped on the first pass.
func GaussSeidel(s *System, tol float64, maxIter int) (*Result, error) {
	return run(MethodGaussSeidel, s, tol, maxIter, true, 2)
}

// Solve dispatches to Jacobi or GaussSeidel.
func Solve(method Method, s *System, tol float64, maxIter int) (*Result, error) {
	switch method {
	case MethodJacobi:
		return Jacobi(s, tol, maxIter)
	case MethodGaussSeidel:
		return GaussSeidel(s, tol, maxIter)
	}
	return nil, numerr.New(numerr.ConfigurationError, "linear", "unknown method %q", method)
}
