// Package expr compiles restricted algebraic formulas in one variable x.
//
// The grammar only admits decimal literals, x, parentheses and the
// operators + - * / ^. Nothing in a formula can reach a general interpreter.
package expr

import (
	"strings"

	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// Expr is a compiled formula. It is immutable and safe for concurrent use.
type Expr struct {
	src  string
	root node
}

// Compile parses expression into an evaluable form.
func Compile(expression string) (*Expr, error) {
	tokens, err := lex(expression)
	if err != nil {
		return nil, err
	}
	root, err := parse(tokens)
	if err != nil {
		return nil, err
	}
	return &Expr{src: strings.TrimSpace(expression), root: root}, nil
}

// MustCompile is like Compile but panics on error. Intended for constants and tests.
func MustCompile(expression string) *Expr {
	e, err := Compile(expression)
	if err != nil {
		panic(err)
	}
	return e
}

// Eval returns f(x).
func (e *Expr) Eval(x float64) (float64, error) {
	return e.root.eval(x)
}

// String returns the formula as written by the caller.
func (e *Expr) String() string { return e.src }

// Normalized returns the formula with implicit multiplication made explicit
// and canonical spacing, e.g. "2x^3-x" -> "2 * x^3 - x".
func (e *Expr) Normalized() string {
	var sb strings.Builder
	e.root.write(&sb)
	return sb.String()
}

// Evaluate compiles expression and evaluates it at x.
func Evaluate(expression string, x float64) (float64, error) {
	e, err := Compile(expression)
	if err != nil {
		return 0, err
	}
	return e.Eval(x)
}

// IsInvalid reports whether err is a formula syntax failure.
func IsInvalid(err error) bool { return numerr.Is(err, numerr.InvalidExpression) }
