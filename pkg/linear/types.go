package linear

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edp1096/toy-numeric/pkg/numerr"
)

type Method string

const (
	MethodJacobi      Method = "jacobi"
	MethodGaussSeidel Method = "gauss-seidel"
)

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jacobi":
		return MethodJacobi, nil
	case "gauss-seidel", "gaussseidel", "seidel", "gs":
		return MethodGaussSeidel, nil
	}
	return "", numerr.New(numerr.ConfigurationError, "linear", "unknown method %q", s)
}

// Term is one off-diagonal product a[i][j]·x_j as it entered a sweep.
// Current is set when x_j was already updated in the same pass.
type Term struct {
	Col      int     `json:"col"`
	Variable string  `json:"variable"`
	Coeff    float64 `json:"coeff"`
	Value    float64 `json:"value"`
	Current  bool    `json:"current"`
}

// VariableCalc records how one component was computed in a pass:
// Value = (Constant - Σ Coeff·Value) / Divisor.
type VariableCalc struct {
	Variable        string  `json:"variable"`
	Constant        float64 `json:"constant"`
	Terms           []Term  `json:"terms"`
	Divisor         float64 `json:"divisor"`
	Value           float64 `json:"value"`
	UsesCurrentPass bool    `json:"uses_current_pass"`
}

// Expression renders the substituted arithmetic, for example
// "(6 - -1(0.0000) - 2(0.0000)) / 10".
func (c VariableCalc) Expression() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(formatNumber(c.Constant))
	for _, t := range c.Terms {
		fmt.Fprintf(&sb, " - %s(%.4f)", formatNumber(t.Coeff), t.Value)
	}
	fmt.Fprintf(&sb, ") / %s", formatNumber(c.Divisor))
	return sb.String()
}

// Pass is one completed sweep. Index is 1-based.
type Pass struct {
	Index  int            `json:"index"`
	Values []float64      `json:"values"`
	Calcs  []VariableCalc `json:"calcs"`
	Change float64        `json:"change"`
}

type Result struct {
	Method     Method    `json:"method"`
	Iterations []Pass    `json:"iterations"`
	Converged  bool      `json:"converged"`
	Final      []float64 `json:"final"`
	Tolerance  float64   `json:"tolerance"`
	MaxIter    int       `json:"max_iter"`
}

var (
	variableLetters = []string{"x", "y", "z", "w", "v"}
	subscripts      = []string{"₁", "₂", "₃", "₄", "₅"}
)

// VariableName returns the display name of component i (0-based): x₁, y₂, z₃, w₄, v₅.
func VariableName(i int) string {
	if i < 0 || i >= len(variableLetters) {
		return fmt.Sprintf("x%d", i+1)
	}
	return variableLetters[i] + subscripts[i]
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
