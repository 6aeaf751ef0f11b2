package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ojo-network/ohm-analyzer/analysis"
	"github.com/ojo-network/ohm-analyzer/config"
	v1 "github.com/ojo-network/ohm-analyzer/router/v1"
	"github.com/ojo-network/ohm-analyzer/telemetry"
)

const (
	shutdownGracePeriod = 15 * time.Second
	readHeaderTimeout   = 5 * time.Second
)

func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve [config-file]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Analyzes the reference dataset and serves the report over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := getLogger(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// listen for and trap any OS signal to gracefully shutdown and exit
			trapSignal(cancel, logger)

			return startAnalyzer(ctx, logger, cfg)
		},
	}

	return serveCmd
}

func startAnalyzer(ctx context.Context, logger zerolog.Logger, cfg config.Config) error {
	metrics, err := telemetry.New(cfg.Telemetry)
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(logger, cfg)
	if err != nil {
		return err
	}

	if _, err := analyzer.Run(ctx, analysis.ReferenceSamples()); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// a nil *telemetry.Metrics must reach the router as a nil interface
		if metrics == nil {
			return startServer(ctx, logger, cfg, analyzer, nil)
		}
		return startServer(ctx, logger, cfg, analyzer, metrics)
	})

	// Block main process until all spawned goroutines have gracefully exited
	// and signal has been captured in the main process or if an error occurs.
	return g.Wait()
}

func startServer(
	ctx context.Context,
	logger zerolog.Logger,
	cfg config.Config,
	analyzer v1.Analyzer,
	metrics v1.Metrics,
) error {
	rtr := mux.NewRouter()
	v1Router := v1.New(logger, cfg, analyzer, metrics)
	v1Router.RegisterRoutes(rtr, v1.APIPathPrefix)

	srvErrCh := make(chan error, 1)
	srv := &http.Server{
		Handler:           rtr,
		Addr:              cfg.Server.ListenAddr,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info().Str("listen_addr", cfg.Server.ListenAddr).Msg("starting ohm-analyzer server...")
		srvErrCh <- srv.ListenAndServe()
	}()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
			defer cancel()

			logger.Info().Str("listen_addr", cfg.Server.ListenAddr).Msg("shutting down ohm-analyzer server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("failed to gracefully shutdown ohm-analyzer server")
				return err
			}

			return nil

		case err := <-srvErrCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			logger.Error().Err(err).Msg("failed to start ohm-analyzer server")
			return err
		}
	}
}
