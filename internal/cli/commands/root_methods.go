package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-numeric/pkg/deck"
	"github.com/edp1096/toy-numeric/pkg/rootfind"
)

func newRootCommand(method rootfind.Method, short, long string) *cobra.Command {
	var x0, x1 float64
	cmd := &cobra.Command{
		Use:   string(method) + " <equation>",
		Short: short,
		Long:  long,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &deck.Problem{
				Method:   string(method),
				Equation: strings.Join(args, " "),
			}
			if method == rootfind.MethodSecant {
				p.Seeds = []float64{x0, x1}
			}
			return solve(cmd, p, false)
		},
	}
	if method == rootfind.MethodSecant {
		cmd.Flags().Float64Var(&x0, "x0", 1, "first seed")
		cmd.Flags().Float64Var(&x1, "x1", 2, "second seed")
	}
	return cmd
}

// NewBisectionCommand creates the bisection command.
func NewBisectionCommand() *cobra.Command {
	return newRootCommand(rootfind.MethodBisection,
		"Find a root by interval halving",
		`Scan for a sign change starting at x = 1, then halve the bracket until
two successive midpoints agree to the requested number of decimals.`)
}

// NewRegulaFalsiCommand creates the regula-falsi command.
func NewRegulaFalsiCommand() *cobra.Command {
	return newRootCommand(rootfind.MethodRegulaFalsi,
		"Find a root by false position",
		`Scan for a sign change starting at x = 0, then step with the false
position formula, sliding to the two most recent points.`)
}

// NewSecantCommand creates the secant command.
func NewSecantCommand() *cobra.Command {
	return newRootCommand(rootfind.MethodSecant,
		"Find a root with the secant method",
		`Iterate the secant formula from the seeds --x0 and --x1.`)
}
