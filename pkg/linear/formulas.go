package linear

import (
	"fmt"
	"math"
	"strings"

	"github.com/edp1096/toy-numeric/pkg/matrix"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// Formulas returns the update rule of each row in symbolic form, e.g.
// "x₁ = (6 + 1y₂ - 2z₃) / 10". Zero coefficients are omitted.
func Formulas(s *System) []string {
	out := make([]string, 0, s.n)
	for i, row := range s.a {
		var sb strings.Builder
		sb.WriteString(formatNumber(s.b[i]))
		for j, v := range row {
			if j == i || v == 0 {
				continue
			}
			sign := " - "
			if v < 0 {
				sign = " + "
			}
			fmt.Fprintf(&sb, "%s%s%s", sign, formatNumber(math.Abs(v)), VariableName(j))
		}
		out = append(out, fmt.Sprintf("%s = (%s) / %s", VariableName(i), sb.String(), formatNumber(row[i])))
	}
	return out
}

// Direct solves the system by sparse LU factorization. It is the reference
// the iterative results are compared against.
func Direct(s *System) ([]float64, error) {
	m, err := matrix.FromDense(s.a, s.b)
	if err != nil {
		return nil, numerr.Wrap(numerr.ConfigurationError, "direct", err, "loading system")
	}
	defer m.Destroy()

	if err := m.Solve(); err != nil {
		return nil, numerr.Wrap(numerr.EvaluationError, "direct", err, "system is singular")
	}

	sol := m.Solution()
	x := make([]float64, s.n)
	copy(x, sol[1:])
	if !allFinite(x) {
		return nil, numerr.New(numerr.EvaluationError, "direct", "solution is not finite")
	}
	return x, nil
}
