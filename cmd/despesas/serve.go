package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apphttp "despesas/internal/http"
	"despesas/internal/log"
)

const shutdownTimeout = 30 * time.Second

func serveCmd(opts *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = opts.cfg.Port
			}
			return runServe(cmd.Context(), opts, ":"+port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 8081)")
	return cmd
}

// runServe runs the server until ctx is cancelled, then drains connections.
func runServe(ctx context.Context, opts *rootOptions, addr string) error {
	app, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer opts.closeApp(ctx, app)

	srv := apphttp.NewServer(addr, app.Ledger, opts.base, opts.cfg.WriteRateLimit)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts.logger.InfoContext(gctx, "Starting despesas server",
			"addr", addr, log.FieldBackend, opts.cfg.DataBackend, log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		opts.logger.InfoContext(context.WithoutCancel(gctx), "Shutting down server", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			opts.logger.ErrorContext(shutdownCtx, "Server shutdown error", log.FieldError, err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	opts.logger.InfoContext(context.WithoutCancel(ctx), "Server stopped gracefully")
	return nil
}
