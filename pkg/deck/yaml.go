package deck

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// Value is a YAML scalar read through ParseValue, so "100u" works as well
// as 0.0001.
type Value float64

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	f, err := ParseValue(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %v", node.Line, err)
	}
	*v = Value(f)
	return nil
}

type yamlProblem struct {
	Title     string    `yaml:"title"`
	Method    string    `yaml:"method"`
	Equation  string    `yaml:"equation"`
	Decimals  *int      `yaml:"decimals"`
	Seeds     []Value   `yaml:"seeds"`
	Tolerance *Value    `yaml:"tolerance"`
	MaxIter   *int      `yaml:"max_iter"`
	Rows      [][]Value `yaml:"rows"`
}

// ParseYAML reads a YAML deck:
//
//	title: Three unknowns
//	method: linear
//	tolerance: 100u
//	rows:
//	  - [10, -1, 2, 6]
//	  - [-1, 11, -1, 25]
//	  - [2, -1, 10, -11]
func ParseYAML(data []byte) (*Problem, error) {
	var raw yamlProblem
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, numerr.Wrap(numerr.ConfigurationError, "deck", err, "invalid YAML deck")
	}

	problem := &Problem{
		Title:     raw.Title,
		Method:    raw.Method,
		Equation:  raw.Equation,
		Decimals:  raw.Decimals,
		MaxIter:   raw.MaxIter,
	}
	if raw.Tolerance != nil {
		tol := float64(*raw.Tolerance)
		problem.Tolerance = &tol
	}
	for _, s := range raw.Seeds {
		problem.Seeds = append(problem.Seeds, float64(s))
	}
	for _, r := range raw.Rows {
		row := make([]float64, len(r))
		for i, v := range r {
			row[i] = float64(v)
		}
		problem.Rows = append(problem.Rows, row)
	}

	if err := problem.normalize(); err != nil {
		return nil, err
	}
	return problem, nil
}
