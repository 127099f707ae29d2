// Package linear solves small square systems A·x = b with the Jacobi and
// Gauss-Seidel iterations, and reports the per-variable arithmetic of
// every pass.
package linear

import (
	"math"

	"github.com/edp1096/toy-numeric/internal/consts"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// System is a validated n×n coefficient matrix with its right-hand side.
// A System is never modified after construction.
type System struct {
	n int
	a [][]float64
	b []float64
}

func NewSystem(a [][]float64, b []float64) (*System, error) {
	n := len(a)
	if n < consts.MinSystemSize || n > consts.MaxSystemSize {
		return nil, numerr.New(numerr.ConfigurationError, "linear",
			"system size must be between %d and %d, got %d", consts.MinSystemSize, consts.MaxSystemSize, n)
	}
	if len(b) != n {
		return nil, numerr.New(numerr.ConfigurationError, "linear",
			"right-hand side has %d entries, want %d", len(b), n)
	}

	sys := &System{n: n, a: make([][]float64, n), b: make([]float64, n)}
	for i, row := range a {
		if len(row) != n {
			return nil, numerr.New(numerr.ConfigurationError, "linear",
				"row %d has %d coefficients, want %d", i+1, len(row), n)
		}
		sys.a[i] = make([]float64, n)
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, numerr.New(numerr.ConfigurationError, "linear",
					"coefficient a[%d][%d] is not finite", i+1, j+1)
			}
			sys.a[i][j] = v
		}
		if row[i] == 0 {
			return nil, numerr.New(numerr.ConfigurationError, "linear",
				"diagonal entry a[%d][%d] is zero", i+1, i+1)
		}
		if math.IsNaN(b[i]) || math.IsInf(b[i], 0) {
			return nil, numerr.New(numerr.ConfigurationError, "linear",
				"right-hand side b[%d] is not finite", i+1)
		}
		sys.b[i] = b[i]
	}
	return sys, nil
}

// FromAugmented builds a System from the rows of [A|b].
func FromAugmented(rows [][]float64) (*System, error) {
	n := len(rows)
	a := make([][]float64, n)
	b := make([]float64, n)
	for i, row := range rows {
		if len(row) != n+1 {
			return nil, numerr.New(numerr.ConfigurationError, "linear",
				"augmented row %d has %d entries, want %d", i+1, len(row), n+1)
		}
		a[i] = row[:n]
		b[i] = row[n]
	}
	return NewSystem(a, b)
}

func (s *System) Size() int {
	return s.n
}

// A returns a copy of the coefficient matrix.
func (s *System) A() [][]float64 {
	out := make([][]float64, s.n)
	for i, row := range s.a {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// B returns a copy of the right-hand side.
func (s *System) B() []float64 {
	return append([]float64(nil), s.b...)
}

func (s *System) Augmented() [][]float64 {
	out := make([][]float64, s.n)
	for i, row := range s.a {
		out[i] = append(append(make([]float64, 0, s.n+1), row...), s.b[i])
	}
	return out
}

// Residual returns max_i |(A·x)_i - b_i|.
func (s *System) Residual(x []float64) float64 {
	worst := 0.0
	for i, row := range s.a {
		sum := -s.b[i]
		for j, v := range row {
			if j < len(x) {
				sum += v * x[j]
			}
		}
		worst = math.Max(worst, math.Abs(sum))
	}
	return worst
}
