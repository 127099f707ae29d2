// Package rootfind locates a root of a real function of one variable with
// bisection, regula falsi or the secant method, recording every iteration.
package rootfind

import (
	"fmt"
	"math"
	"strings"

	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// Function is a real function of one variable. *expr.Expr satisfies it.
type Function interface {
	Eval(x float64) (float64, error)
	String() string
}

type funcOf struct {
	name string
	fn   func(float64) (float64, error)
}

func (f funcOf) Eval(x float64) (float64, error) { return f.fn(x) }
func (f funcOf) String() string                  { return f.name }

// FuncOf adapts a plain Go function.
func FuncOf(name string, fn func(float64) (float64, error)) Function {
	return funcOf{name: name, fn: fn}
}

// Method names a root-finding strategy.
type Method string

const (
	MethodBisection   Method = "bisection"
	MethodRegulaFalsi Method = "regula-falsi"
	MethodSecant      Method = "secant"
)

// Decision is the bracket branch taken by a bisection step.
type Decision string

const (
	// DecisionOpposite: f(x0) and f(xm) differ in sign, the root lies in [x0, xm].
	DecisionOpposite Decision = "opposite"
	// DecisionSame: otherwise, continue with [xm, x1].
	DecisionSame Decision = "same"
)

// Point is an abscissa with its function value.
type Point struct {
	X  float64 `json:"x"`
	FX float64 `json:"fx"`
}

// IterationRecord is one pass of the iteration loop.
type IterationRecord struct {
	Index       int      `json:"index"`
	Older       float64  `json:"older"`
	Newer       float64  `json:"newer"`
	FOlder      float64  `json:"f_older"`
	FNewer      float64  `json:"f_newer"`
	Next        float64  `json:"next"`
	FNext       float64  `json:"f_next"`
	Numerator   float64  `json:"numerator"`
	Denominator float64  `json:"denominator"`
	Decision    Decision `json:"decision,omitempty"`
	NextOlder   float64  `json:"next_older"`
	NextNewer   float64  `json:"next_newer"`
}

// SolveResult is the full trace of one root-finding run.
type SolveResult struct {
	Method       Method            `json:"method"`
	FunctionExpr string            `json:"function"`
	Interval     *Interval         `json:"interval,omitempty"`
	X0           float64           `json:"x0"`
	X1           float64           `json:"x1"`
	FX0          float64           `json:"fx0"`
	FX1          float64           `json:"fx1"`
	Iterations   []IterationRecord `json:"iterations"`
	Root         float64           `json:"root"`
	Converged    bool              `json:"converged"`
	Decimals     int               `json:"decimals"`
}

// FirstIndex is the label of a method's first produced point.
func (m Method) FirstIndex() int {
	if m == MethodSecant {
		return 1
	}
	return 2
}

// ParseMethod resolves a method name, accepting the common aliases.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bisection", "bisect":
		return MethodBisection, nil
	case "regula-falsi", "regula", "regulafalsi", "false-position":
		return MethodRegulaFalsi, nil
	case "secant":
		return MethodSecant, nil
	}
	return "", numerr.New(numerr.ConfigurationError, "method", "unknown root-finding method %q", name)
}

func evalAt(f Function, x float64) (float64, error) {
	v, err := f.Eval(x)
	if err != nil {
		if numerr.KindOf(err) != "" {
			return 0, err
		}
		return 0, numerr.Wrap(numerr.EvaluationError, "eval", err, "f(%g)", x)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, numerr.New(numerr.EvaluationError, "eval", "f(%g) = %g is not finite", x, v)
	}
	return v, nil
}

func functionLabel(f Function) string {
	return fmt.Sprintf("f(x) = %s", f.String())
}
