package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-numeric/pkg/deck"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// NewLinearCommand creates the linear command.
func NewLinearCommand() *cobra.Command {
	var (
		rows   []string
		method string
		detail bool
	)

	cmd := &cobra.Command{
		Use:   "linear",
		Short: "Solve a linear system with Jacobi and Gauss-Seidel",
		Long: `Solve A·x = b iteratively. Each --row holds one row of the augmented
matrix [A|b]; values accept SI suffixes such as 100u or 2k.

The dominance check and a direct LU solution are printed for reference.`,
		Example: `  toynum linear --row "10 -1 2 6" --row "-1 11 -1 25" --row "2 -1 10 -11"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := &deck.Problem{Method: method}
			for i, r := range rows {
				fields := strings.Fields(strings.ReplaceAll(r, ",", " "))
				row := make([]float64, len(fields))
				for j, f := range fields {
					v, err := deck.ParseValue(f)
					if err != nil {
						return numerr.Wrap(numerr.ConfigurationError, "linear", err, "row %d", i+1)
					}
					row[j] = v
				}
				p.Rows = append(p.Rows, row)
			}
			return solve(cmd, p, detail)
		},
	}

	cmd.Flags().StringArrayVar(&rows, "row", nil, "augmented matrix row, e.g. \"10 -1 2 6\" (repeatable)")
	cmd.Flags().StringVarP(&method, "method", "m", "linear", "linear, jacobi or gauss-seidel")
	cmd.Flags().BoolVar(&detail, "detail", false, "print the arithmetic of every pass")
	_ = cmd.MarkFlagRequired("row")

	_ = cmd.RegisterFlagCompletionFunc("method", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"linear", "jacobi", "gauss-seidel"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
