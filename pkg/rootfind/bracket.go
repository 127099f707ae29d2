package rootfind

import (
	"github.com/edp1096/toy-numeric/internal/consts"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// StartPolicy is the first abscissa of the forward bracket scan.
type StartPolicy int

const (
	BisectionStart   StartPolicy = 1
	RegulaFalsiStart StartPolicy = 0
)

// Interval is a bracket [A, B] with FA*FB < 0.
type Interval struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	FA float64 `json:"fa"`
	FB float64 `json:"fb"`
}

// FindBracket scans unit steps [x, x+1] forward from start up to start+100,
// then backward from 0 down to -100, and returns the first step whose end
// values have strictly opposite signs.
func FindBracket(f Function, start StartPolicy) (Interval, error) {
	from := int(start)
	for x := from; x <= from+consts.BracketSpan; x++ {
		iv, ok, err := probe(f, float64(x))
		if err != nil || ok {
			return iv, err
		}
	}

	for x := 0; x >= -consts.BracketSpan; x-- {
		iv, ok, err := probe(f, float64(x))
		if err != nil || ok {
			return iv, err
		}
	}

	return Interval{}, numerr.New(numerr.BracketNotFound, "bracket",
		"no interval with f(a)·f(b) < 0 in [%d, %d] or [%d, 1]", from, from+consts.BracketSpan+1, -consts.BracketSpan)
}

func probe(f Function, a float64) (Interval, bool, error) {
	fa, err := evalAt(f, a)
	if err != nil {
		return Interval{}, false, err
	}
	fb, err := evalAt(f, a+1)
	if err != nil {
		return Interval{}, false, err
	}
	if fa*fb < 0 {
		return Interval{A: a, B: a + 1, FA: fa, FB: fb}, true, nil
	}
	return Interval{}, false, nil
}
