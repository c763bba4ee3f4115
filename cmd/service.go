package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vigilix/trailpipe/internal/config"
	"github.com/vigilix/trailpipe/internal/metrics"
	"github.com/vigilix/trailpipe/internal/pipeline"
	"github.com/vigilix/trailpipe/internal/runtime"
)

func cmdService() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"s", "serve", "standalone", "server"},
		PreRunE: func(_ *cobra.Command, _ []string) error {
			logger = logger.With("mode", "service")
			logger.Info("Spawning...")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.Debug("creating sink...")
			snk, err := buildSink(cmd.Context())
			if err != nil {
				return err
			}

			logger.Debug("creating runtime...")
			rt := runtime.NewRuntime(
				pipeline.New(snk, pipeline.WithLogger(logger.With("component", "pipeline"))),
				runtime.WithLogger(logger.With("component", "runtime")))

			logger.Debug("creating HTTP server...")
			h := http.NewServeMux()
			h.Handle(config.Service.Path, rt)
			h.HandleFunc("/healthz", rt.HandleHealth)
			h.Handle("/metrics", metrics.Handler())

			s := &http.Server{
				Handler:      h,
				Addr:         net.JoinHostPort(config.Service.Addr, config.Service.Port),
				WriteTimeout: config.Service.Timeout,
				ReadTimeout:  config.Service.Timeout,
				IdleTimeout:  config.Service.Timeout,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Serving...", "address", s.Addr, "path", config.Service.Path, "timeout", config.Service.Timeout.String())
				if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return s.Shutdown(shutdownCtx)
		},
	}

	bindEnvMap(cmd, svcEnvMapString)
	bindEnvMap(cmd, svcEnvMapDuration)

	return cmd
}
