// Package commands implements the toynum subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/edp1096/toy-numeric/internal/config"
	"github.com/edp1096/toy-numeric/internal/render"
	"github.com/edp1096/toy-numeric/pkg/analysis"
	"github.com/edp1096/toy-numeric/pkg/deck"
)

// solve runs p with the settings and logger carried by the command
// context and renders the report. A report is rendered even when the
// solve fails after setup, so the trace of a non-converging run is shown.
func solve(cmd *cobra.Command, p *deck.Problem, detail bool) error {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)

	rep, err := analysis.Run(ctx, p,
		analysis.WithLogger(config.GetLogger(ctx)),
		analysis.WithSettings(cfg.Settings()),
	)
	if rep != nil {
		r := render.New(cmd.OutOrStdout(), cfg.Output)
		r.Detail = detail
		if rerr := r.Report(rep); rerr != nil {
			return rerr
		}
	}
	return err
}
