package rootfind

import (
	"errors"
	"math"

	"github.com/edp1096/toy-numeric/internal/consts"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// Step is a newly computed abscissa plus the quotient it came from.
type Step struct {
	X           float64
	Numerator   float64
	Denominator float64
}

// Stepper is the strategy part of the iteration: how to compute the next
// point from the two references, and which pair to keep afterwards.
type Stepper interface {
	Next(older, newer Point) (Step, error)
	Advance(older, newer, next Point) (nextOlder, nextNewer Point, d Decision)
}

// slide keeps the two most recent points, used by secant and regula falsi.
type slide struct{}

func (slide) Advance(_, newer, next Point) (Point, Point, Decision) {
	return newer, next, ""
}

// iterate runs the shared loop. It stops when two successive new points agree
// to decimals places, or after the first iteration plus MaxExtraIterations.
// On the cap it returns the trace together with a DidNotConverge error.
func iterate(method Method, f Function, s Stepper, older, newer Point, decimals int) ([]IterationRecord, float64, error) {
	records := make([]IterationRecord, 0, 16)
	first := method.FirstIndex()

	var prev float64
	for i := 0; ; i++ {
		index := first + i

		step, err := s.Next(older, newer)
		if err != nil {
			return nil, 0, labelled(err, index)
		}
		if math.IsNaN(step.X) || math.IsInf(step.X, 0) {
			return nil, 0, numerr.New(numerr.EvaluationError, string(method),
				"computed point is not finite").AtIteration(index)
		}

		fx, err := evalAt(f, step.X)
		if err != nil {
			return nil, 0, labelled(err, index)
		}
		next := Point{X: step.X, FX: fx}
		nextOlder, nextNewer, decision := s.Advance(older, newer, next)

		records = append(records, IterationRecord{
			Index:       index,
			Older:       older.X,
			Newer:       newer.X,
			FOlder:      older.FX,
			FNewer:      newer.FX,
			Next:        next.X,
			FNext:       next.FX,
			Numerator:   step.Numerator,
			Denominator: step.Denominator,
			Decision:    decision,
			NextOlder:   nextOlder.X,
			NextNewer:   nextNewer.X,
		})

		if i > 0 && DecimalsMatch(prev, next.X, decimals) {
			return records, next.X, nil
		}
		if i >= consts.MaxExtraIterations {
			return records, next.X, numerr.New(numerr.DidNotConverge, string(method),
				"did not converge after %d iterations", consts.MaxExtraIterations).AtIteration(index)
		}

		prev = next.X
		older, newer = nextOlder, nextNewer
	}
}

func labelled(err error, index int) error {
	var ne *numerr.Error
	if errors.As(err, &ne) && ne.Iteration == 0 {
		return ne.AtIteration(index)
	}
	return err
}

// quotientStep guards the shared denominator of secant and regula falsi.
func quotientStep(method Method, numerator, denominator float64, x func() float64) (Step, error) {
	if math.Abs(denominator) < consts.DegenerateEpsilon {
		return Step{}, numerr.New(numerr.DegenerateStep, string(method),
			"f(xn) - f(xn-1) = %g is too close to zero", denominator)
	}
	return Step{X: x(), Numerator: numerator, Denominator: denominator}, nil
}
