package commands

import (
	"github.com/spf13/cobra"

	"github.com/edp1096/toy-numeric/pkg/deck"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var detail bool

	cmd := &cobra.Command{
		Use:   "run <deck>",
		Short: "Solve the problem described by a deck file",
		Long: `Read a problem deck and solve it. Files ending in .yaml or .yml are read
as YAML, anything else as a text deck of dot commands:

  Cubic root
  .method secant
  .equation x^3 - x - 1
  .seeds 1 2
  .decimals 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := deck.Load(args[0])
			if err != nil {
				return err
			}
			return solve(cmd, p, detail)
		},
	}

	cmd.Flags().BoolVar(&detail, "detail", false, "print the arithmetic of every linear pass")
	return cmd
}
