// Package cli provides the command-line interface for toynum.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-numeric/internal/cli/commands"
	"github.com/edp1096/toy-numeric/internal/config"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// Exit codes by error kind.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitBadInput       = 2
	ExitNoSolution     = 3
	ExitDidNotConverge = 4
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "toynum",
		Short: "toynum - iterative root finding and linear solvers",
		Long: `toynum finds roots of f(x) with bisection, regula falsi and the secant
method, and solves small linear systems with Jacobi and Gauss-Seidel,
printing every iteration.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := cfg.NewLogger(cmd.ErrOrStderr())
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./toynum.yaml)")
	rootCmd.PersistentFlags().IntP("decimals", "d", 0, "decimal places for root convergence (1-10, default 3)")
	rootCmd.PersistentFlags().Int("max-iter", 0, "maximum passes for the linear solvers (default 25)")
	rootCmd.PersistentFlags().Float64("tol", 0, "tolerance for the linear solvers (default 0.0001)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (table|markdown|json)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewBisectionCommand())
	rootCmd.AddCommand(commands.NewRegulaFalsiCommand())
	rootCmd.AddCommand(commands.NewSecantCommand())
	rootCmd.AddCommand(commands.NewLinearCommand())
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewServeCommand())

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch numerr.KindOf(err) {
	case numerr.InvalidExpression, numerr.ConfigurationError:
		return ExitBadInput
	case numerr.BracketNotFound, numerr.DegenerateStep, numerr.EvaluationError:
		return ExitNoSolution
	case numerr.DidNotConverge:
		return ExitDidNotConverge
	}
	return ExitFailure
}
