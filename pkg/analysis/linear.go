package analysis

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edp1096/toy-numeric/pkg/deck"
	"github.com/edp1096/toy-numeric/pkg/linear"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// MethodOutcome is the result of one iterative method with its residual
// ‖A·x - b‖∞ at the final vector.
type MethodOutcome struct {
	Result   *linear.Result `json:"result,omitempty"`
	Residual float64        `json:"residual"`
	Error    *ErrorInfo     `json:"error,omitempty"`

	Err error `json:"-"`
}

type LinearReport struct {
	Size        int              `json:"size"`
	Augmented   [][]float64      `json:"augmented"`
	Tolerance   float64          `json:"tolerance"`
	MaxIter     int              `json:"max_iter"`
	Dominance   linear.Dominance `json:"dominance"`
	Formulas    []string         `json:"formulas"`
	Jacobi      *MethodOutcome   `json:"jacobi,omitempty"`
	GaussSeidel *MethodOutcome   `json:"gauss_seidel,omitempty"`
	Direct      []float64        `json:"direct,omitempty"`
	DirectError *ErrorInfo       `json:"direct_error,omitempty"`
}

// LinearAnalysis runs Jacobi, Gauss-Seidel, or both on the deck's system.
type LinearAnalysis struct {
	BaseAnalysis
	system  *linear.System
	methods []linear.Method
}

func NewLinear(opts ...Option) *LinearAnalysis {
	return &LinearAnalysis{BaseAnalysis: *NewBaseAnalysis(opts...)}
}

func (la *LinearAnalysis) Setup(p *deck.Problem) error {
	if err := la.setup(p, deck.KindLinear); err != nil {
		return err
	}

	sys, err := linear.FromAugmented(p.Rows)
	if err != nil {
		return err
	}
	if !(la.tolerance() > 0) || la.maxIter() <= 0 {
		return numerr.New(numerr.ConfigurationError, "analysis", "tolerance and max iterations must be positive")
	}

	la.system = sys
	switch p.Method {
	case "linear", "":
		la.methods = []linear.Method{linear.MethodJacobi, linear.MethodGaussSeidel}
		la.report.Method = "linear"
	default:
		m, err := linear.ParseMethod(p.Method)
		if err != nil {
			return err
		}
		la.methods = []linear.Method{m}
		la.report.Method = string(m)
	}
	return nil
}

// Execute runs the selected methods concurrently. Each works on its own
// copy of the system, and one method failing does not stop the other.
func (la *LinearAnalysis) Execute(ctx context.Context) error {
	start, err := la.begin(ctx)
	if err != nil {
		return err
	}

	tol, maxIter := la.tolerance(), la.maxIter()
	rep := &LinearReport{
		Size:      la.system.Size(),
		Augmented: la.system.Augmented(),
		Tolerance: tol,
		MaxIter:   maxIter,
		Dominance: linear.CheckDominance(la.system),
		Formulas:  linear.Formulas(la.system),
	}
	la.report.Linear = rep
	if !rep.Dominance.OK {
		la.logger.WarnContext(ctx, "system is not diagonally dominant, convergence is not guaranteed",
			slog.String("run_id", la.report.RunID))
	}

	outcomes := make([]*MethodOutcome, len(la.methods))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range la.methods {
		sys, err := linear.FromAugmented(la.system.Augmented())
		if err != nil {
			return la.finish(ctx, start, err)
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := linear.Solve(m, sys, tol, maxIter)
			out := &MethodOutcome{Result: res, Err: err, Error: errorInfo(err)}
			if res != nil && res.Final != nil {
				out.Residual = sys.Residual(res.Final)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return la.finish(ctx, start, err)
	}

	var errs []error
	attrs := []any{slog.Bool("dominant", rep.Dominance.OK)}
	for i, m := range la.methods {
		out := outcomes[i]
		switch m {
		case linear.MethodJacobi:
			rep.Jacobi = out
		case linear.MethodGaussSeidel:
			rep.GaussSeidel = out
		}
		if out.Err != nil {
			errs = append(errs, out.Err)
		}
		if out.Result != nil {
			attrs = append(attrs, slog.Group(string(m),
				slog.Int("iterations", len(out.Result.Iterations)),
				slog.Bool("converged", out.Result.Converged),
			))
		}
	}

	direct, err := linear.Direct(la.system)
	if err != nil {
		rep.DirectError = errorInfo(err)
	} else {
		rep.Direct = direct
	}

	return la.finish(ctx, start, errors.Join(errs...), attrs...)
}
