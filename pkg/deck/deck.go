// Package deck reads problem decks: small text or YAML files describing
// one root-finding or linear-system problem.
//
// A text deck looks like a netlist. The first line is the title, lines
// starting with '*' are comments, ';' starts an inline comment and a
// line starting with '+' continues the previous one:
//
//	Cubic root
//	.method secant
//	.equation x^3 - x - 1
//	.seeds 1 2
//	.decimals 3
//
// Linear problems list the augmented rows instead:
//
//	Three unknowns
//	.method linear
//	.row 10 -1 2 6
//	.row -1 11 -1 25
//	.row 2 -1 10 -11
//	.tol 100u
//	.maxiter 25
package deck

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/edp1096/toy-numeric/internal/consts"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

type Kind int

const (
	KindRoot Kind = iota
	KindLinear
)

func (k Kind) String() string {
	if k == KindLinear {
		return "linear"
	}
	return "root"
}

// Problem is a parsed deck. A nil Decimals, Tolerance or MaxIter means the
// caller's default applies; a set value is used as given and validated.
type Problem struct {
	Title     string      `json:"title,omitempty"`
	Method    string      `json:"method"`
	Equation  string      `json:"equation,omitempty"`
	Decimals  *int        `json:"decimals,omitempty"`
	Seeds     []float64   `json:"seeds,omitempty"`
	Tolerance *float64    `json:"tolerance,omitempty"`
	MaxIter   *int        `json:"max_iter,omitempty"`
	Rows      [][]float64 `json:"rows,omitempty"`
}

var linearMethods = map[string]bool{
	"linear":       true,
	"jacobi":       true,
	"gauss-seidel": true,
	"gaussseidel":  true,
	"gs":           true,
}

func (p *Problem) Kind() Kind {
	if linearMethods[strings.ToLower(p.Method)] {
		return KindLinear
	}
	return KindRoot
}

// normalize fills the method when the deck leaves it out and checks that
// the deck carries what its kind needs.
func (p *Problem) normalize() error {
	if p.Method == "" {
		p.Method = "bisection"
		if len(p.Rows) > 0 {
			p.Method = "linear"
		}
	}
	p.Method = strings.ToLower(p.Method)

	switch p.Kind() {
	case KindLinear:
		if len(p.Rows) == 0 {
			return numerr.New(numerr.ConfigurationError, "deck", "linear problem has no .row lines")
		}
		if p.Equation != "" {
			return numerr.New(numerr.ConfigurationError, "deck", "linear problem must not set an equation")
		}
	default:
		if strings.TrimSpace(p.Equation) == "" {
			return numerr.New(numerr.ConfigurationError, "deck", "missing .equation")
		}
		if len(p.Rows) > 0 {
			return numerr.New(numerr.ConfigurationError, "deck", "%s problem must not list rows", p.Method)
		}
		if len(p.Seeds) != 0 && len(p.Seeds) != 2 {
			return numerr.New(numerr.ConfigurationError, "deck", "seeds need exactly two values, got %d", len(p.Seeds))
		}
	}
	return p.ValidateSettings()
}

// ValidateSettings checks the numeric settings that are present. Absent
// ones are left to the caller's defaults.
func (p *Problem) ValidateSettings() error {
	if p.Decimals != nil && (*p.Decimals < consts.MinDecimals || *p.Decimals > consts.MaxDecimals) {
		return numerr.New(numerr.ConfigurationError, "deck", "decimals must be between %d and %d, got %d",
			consts.MinDecimals, consts.MaxDecimals, *p.Decimals)
	}
	if p.Tolerance != nil && !(*p.Tolerance > 0) {
		return numerr.New(numerr.ConfigurationError, "deck", "tolerance must be positive, got %g", *p.Tolerance)
	}
	if p.MaxIter != nil && *p.MaxIter <= 0 {
		return numerr.New(numerr.ConfigurationError, "deck", "max iterations must be positive, got %d", *p.MaxIter)
	}
	return nil
}

// Load reads a deck from disk. Files ending in .yaml or .yml are parsed as
// YAML, anything else as a text deck.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, numerr.Wrap(numerr.ConfigurationError, "deck", err, "reading %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(string(data))
	}
}
