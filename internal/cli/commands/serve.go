package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/edp1096/toy-numeric/internal/config"
	"github.com/edp1096/toy-numeric/internal/server"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solvers over HTTP",
		Long: `Start a JSON API:

  POST /v1/roots/{bisection|regula-falsi|secant}
  POST /v1/linear
  GET  /healthz
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			cfg := config.GetConfig(ctx)
			logger := config.GetLogger(ctx)
			return serve(ctx, server.New(logger, cfg.Settings()).HTTPServer(cfg.Server.Addr), logger)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	return cmd
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
