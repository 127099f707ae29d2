package analysis

import (
	"context"
	"log/slog"

	"github.com/edp1096/toy-numeric/pkg/deck"
	"github.com/edp1096/toy-numeric/pkg/expr"
	"github.com/edp1096/toy-numeric/pkg/numerr"
	"github.com/edp1096/toy-numeric/pkg/rootfind"
)

// RootAnalysis solves f(x) = 0 with one of the root-finding methods.
type RootAnalysis struct {
	BaseAnalysis
	method rootfind.Method
	fn     *expr.Expr
	params rootfind.Params
}

func NewRoot(opts ...Option) *RootAnalysis {
	return &RootAnalysis{BaseAnalysis: *NewBaseAnalysis(opts...)}
}

func (ra *RootAnalysis) Setup(p *deck.Problem) error {
	if err := ra.setup(p, deck.KindRoot); err != nil {
		return err
	}

	method, err := rootfind.ParseMethod(p.Method)
	if err != nil {
		return err
	}
	fn, err := expr.Compile(p.Equation)
	if err != nil {
		return err
	}
	if err := rootfind.ValidateDecimals(ra.decimals()); err != nil {
		return err
	}

	ra.method = method
	ra.fn = fn
	ra.params = rootfind.Params{Decimals: ra.decimals()}
	if method == rootfind.MethodSecant {
		if len(p.Seeds) != 2 {
			return numerr.New(numerr.ConfigurationError, "analysis", "secant needs two seeds")
		}
		ra.params.X0, ra.params.X1 = p.Seeds[0], p.Seeds[1]
	}
	ra.report.Method = string(method)
	return nil
}

func (ra *RootAnalysis) Execute(ctx context.Context) error {
	start, err := ra.begin(ctx)
	if err != nil {
		return err
	}

	res, err := rootfind.Solve(ra.method, ra.fn, ra.params)
	ra.report.Root = res

	var attrs []any
	if res != nil {
		attrs = append(attrs,
			slog.Int("iterations", len(res.Iterations)),
			slog.Bool("converged", res.Converged),
			slog.Float64("root", res.Root),
		)
	}
	return ra.finish(ctx, start, err, attrs...)
}
