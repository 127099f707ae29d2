// Package render prints analysis reports as tables, markdown or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/edp1096/toy-numeric/pkg/analysis"
	"github.com/edp1096/toy-numeric/pkg/linear"
	"github.com/edp1096/toy-numeric/pkg/rootfind"
	"github.com/edp1096/toy-numeric/pkg/util"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Display precision for points and function values.
const (
	pointPlaces = 6
	valuePlaces = 4
)

type Renderer struct {
	w      io.Writer
	format Format

	// Detail adds the substituted arithmetic of every pass to linear output.
	Detail bool
}

func New(w io.Writer, format string) *Renderer {
	f := Format(strings.ToLower(format))
	switch f {
	case FormatMarkdown, FormatJSON:
	case "md":
		f = FormatMarkdown
	default:
		f = FormatTable
	}
	return &Renderer{w: w, format: f}
}

func (r *Renderer) Format() Format {
	return r.format
}

// Report writes rep in the renderer's format.
func (r *Renderer) Report(rep *analysis.Report) error {
	if rep == nil {
		return nil
	}
	if r.format == FormatJSON {
		return r.JSON(rep)
	}

	r.heading(1, titleOf(rep))
	_, _ = fmt.Fprintf(r.w, "run %s, method %s\n", rep.RunID, rep.Method)

	switch {
	case rep.Root != nil:
		r.root(rep.Root)
	case rep.Linear != nil:
		r.linear(rep.Linear)
	}

	if rep.Error != nil {
		_, _ = fmt.Fprintf(r.w, "\nerror [%s]: %s\n", rep.Error.Kind, rep.Error.Message)
	}
	return nil
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func titleOf(rep *analysis.Report) string {
	if rep.Title != "" {
		return rep.Title
	}
	if rep.Method == "" {
		return "Report"
	}
	return strings.ToUpper(rep.Method[:1]) + rep.Method[1:]
}

func (r *Renderer) heading(level int, text string) {
	if r.format == FormatMarkdown {
		_, _ = fmt.Fprintf(r.w, "\n%s %s\n\n", strings.Repeat("#", level+1), text)
		return
	}
	_, _ = fmt.Fprintf(r.w, "\n%s\n%s\n", text, strings.Repeat("=", len([]rune(text))))
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	return t
}

func (r *Renderer) flush(t table.Writer) {
	if r.format == FormatMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (r *Renderer) root(res *rootfind.SolveResult) {
	_, _ = fmt.Fprintf(r.w, "%s, %d decimals\n", res.FunctionExpr, res.Decimals)
	if res.Interval != nil {
		iv := res.Interval
		_, _ = fmt.Fprintf(r.w, "bracket [%g, %g]: f(a) = %s, f(b) = %s\n",
			iv.A, iv.B, util.FormatFixed(iv.FA, valuePlaces), util.FormatFixed(iv.FB, valuePlaces))
	} else {
		_, _ = fmt.Fprintf(r.w, "seeds x0 = %g, x1 = %g: f(x0) = %s, f(x1) = %s\n",
			res.X0, res.X1, util.FormatFixed(res.FX0, valuePlaces), util.FormatFixed(res.FX1, valuePlaces))
	}

	r.heading(2, "Iterations")
	t := r.newTable()
	bisection := res.Method == rootfind.MethodBisection
	header := table.Row{"n", "x(n-2)", "x(n-1)", "f(x(n-2))", "f(x(n-1))", "x(n)", "f(x(n))"}
	if bisection {
		header = append(header, "sign", "next bracket")
	} else {
		header = append(header, "numerator", "denominator")
	}
	t.AppendHeader(header)

	for _, rec := range res.Iterations {
		row := table.Row{
			rec.Index,
			util.FormatFixed(rec.Older, pointPlaces),
			util.FormatFixed(rec.Newer, pointPlaces),
			util.FormatFixed(rec.FOlder, valuePlaces),
			util.FormatFixed(rec.FNewer, valuePlaces),
			util.FormatFixed(rec.Next, pointPlaces),
			util.FormatFixed(rec.FNext, valuePlaces),
		}
		if bisection {
			row = append(row, string(rec.Decision), fmt.Sprintf("[%s, %s]",
				util.FormatFixed(rec.NextOlder, pointPlaces), util.FormatFixed(rec.NextNewer, pointPlaces)))
		} else {
			row = append(row, util.FormatFixed(rec.Numerator, valuePlaces), util.FormatFixed(rec.Denominator, valuePlaces))
		}
		t.AppendRow(row)
	}
	r.flush(t)

	_, _ = fmt.Fprintf(r.w, "\nroot: %s (converged: %s, %d iterations)\n",
		util.FormatFixed(res.Root, res.Decimals), yesNo(res.Converged), len(res.Iterations))
}

func (r *Renderer) linear(rep *analysis.LinearReport) {
	r.heading(2, "Diagonal dominance")
	t := r.newTable()
	t.AppendHeader(table.Row{"row", "|a(i,i)|", "sum |a(i,j)|", "dominant"})
	for _, row := range rep.Dominance.Rows {
		t.AppendRow(table.Row{row.Row, row.Diag, row.Sum, yesNo(row.OK)})
	}
	r.flush(t)
	if !rep.Dominance.OK {
		_, _ = fmt.Fprintln(r.w, "warning: the system is not diagonally dominant, the iterations may diverge")
	}

	r.heading(2, "Update formulas")
	for _, f := range rep.Formulas {
		_, _ = fmt.Fprintf(r.w, "  %s\n", f)
	}

	if rep.Jacobi != nil {
		r.outcome("Jacobi", rep.Size, rep.Jacobi)
	}
	if rep.GaussSeidel != nil {
		r.outcome("Gauss-Seidel", rep.Size, rep.GaussSeidel)
	}

	if rep.Direct != nil {
		_, _ = fmt.Fprintf(r.w, "\ndirect LU solution: %s\n", util.FormatVector(rep.Direct, pointPlaces))
	} else if rep.DirectError != nil {
		_, _ = fmt.Fprintf(r.w, "\ndirect LU solution unavailable: %s\n", rep.DirectError.Message)
	}
}

func (r *Renderer) outcome(name string, n int, out *analysis.MethodOutcome) {
	r.heading(2, name)
	res := out.Result
	if res == nil {
		if out.Error != nil {
			_, _ = fmt.Fprintf(r.w, "error [%s]: %s\n", out.Error.Kind, out.Error.Message)
		}
		return
	}

	t := r.newTable()
	header := table.Row{"k"}
	for i := 0; i < n; i++ {
		header = append(header, linear.VariableName(i))
	}
	header = append(header, "max change")
	t.AppendHeader(header)
	for _, p := range res.Iterations {
		row := table.Row{p.Index}
		for _, v := range p.Values {
			row = append(row, util.FormatFixed(v, pointPlaces))
		}
		row = append(row, util.FormatMagnitude(p.Change))
		t.AppendRow(row)
	}
	r.flush(t)

	if r.Detail {
		for _, p := range res.Iterations {
			_, _ = fmt.Fprintf(r.w, "pass %d:\n", p.Index)
			for _, c := range p.Calcs {
				_, _ = fmt.Fprintf(r.w, "  %s = %s = %s\n", c.Variable, c.Expression(), util.FormatFixed(c.Value, pointPlaces))
			}
		}
	}

	_, _ = fmt.Fprintf(r.w, "\nconverged: %s after %d passes (tolerance %s)\n",
		yesNo(res.Converged), len(res.Iterations), util.FormatValueFactor(res.Tolerance, ""))
	_, _ = fmt.Fprintf(r.w, "final: %s, residual %s\n",
		util.FormatVector(res.Final, pointPlaces), strings.TrimSpace(util.FormatMagnitude(out.Residual)))
	if out.Error != nil {
		_, _ = fmt.Fprintf(r.w, "error [%s]: %s\n", out.Error.Kind, out.Error.Message)
	}
}
