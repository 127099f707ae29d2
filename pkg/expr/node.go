package expr

import (
	"math"
	"strconv"
	"strings"

	"github.com/edp1096/toy-numeric/pkg/numerr"
)

type precedence int

const (
	addPrecedence precedence = iota
	mulPrecedence
	negPrecedence
	powPrecedence
	atomPrecedence
)

type node interface {
	eval(x float64) (float64, error)
	precedence() precedence
	write(sb *strings.Builder)
}

type numberNode struct{ v float64 }

func (n numberNode) eval(float64) (float64, error) { return n.v, nil }
func (n numberNode) precedence() precedence        { return atomPrecedence }
func (n numberNode) write(sb *strings.Builder) {
	sb.WriteString(strconv.FormatFloat(n.v, 'g', -1, 64))
}

// varNode stands for x. Its value enters the tree as one atom, which is what
// the textual "(value)" substitution achieves.
type varNode struct{}

func (varNode) eval(x float64) (float64, error) { return x, nil }
func (varNode) precedence() precedence          { return atomPrecedence }
func (varNode) write(sb *strings.Builder)       { sb.WriteString("x") }

type negNode struct {
	sign  byte // '+' or '-'
	inner node
}

func (n negNode) eval(x float64) (float64, error) {
	v, err := n.inner.eval(x)
	if err != nil {
		return 0, err
	}
	if n.sign == '-' {
		return -v, nil
	}
	return v, nil
}

func (n negNode) precedence() precedence { return negPrecedence }

func (n negNode) write(sb *strings.Builder) {
	sb.WriteByte(n.sign)
	writeChild(sb, n.inner, negPrecedence, false)
}

type binaryNode struct {
	op          byte
	left, right node
}

func (n binaryNode) eval(x float64) (float64, error) {
	l, err := n.left.eval(x)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(x)
	if err != nil {
		return 0, err
	}

	var v float64
	switch n.op {
	case '+':
		v = l + r
	case '-':
		v = l - r
	case '*':
		v = l * r
	case '/':
		if r == 0 {
			return 0, numerr.New(numerr.EvaluationError, "expr", "division by zero")
		}
		v = l / r
	case '^':
		v = math.Pow(l, r)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, numerr.New(numerr.EvaluationError, "expr", "%g %c %g is not a finite number", l, n.op, r)
	}
	return v, nil
}

func (n binaryNode) precedence() precedence {
	switch n.op {
	case '+', '-':
		return addPrecedence
	case '*', '/':
		return mulPrecedence
	}
	return powPrecedence
}

func (n binaryNode) write(sb *strings.Builder) {
	p := n.precedence()
	rightAssoc := n.op == '^'
	writeChild(sb, n.left, p, rightAssoc)
	if n.op == '^' {
		sb.WriteByte('^')
	} else {
		sb.WriteByte(' ')
		sb.WriteByte(n.op)
		sb.WriteByte(' ')
	}
	writeChild(sb, n.right, p, !rightAssoc)
}

// writeChild parenthesizes c when it binds looser than its parent, or equally
// loose on the side where associativity would regroup it.
func writeChild(sb *strings.Builder, c node, parent precedence, strict bool) {
	cp := c.precedence()
	if cp < parent || (strict && cp == parent) {
		sb.WriteByte('(')
		c.write(sb)
		sb.WriteByte(')')
		return
	}
	c.write(sb)
}
