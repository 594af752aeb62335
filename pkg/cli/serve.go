package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskquant/pkg/controller/http"
	"github.com/secmon-lab/riskquant/pkg/service/metrics"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var maxBodyBytes int
	var simCfg config.Simulation

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RISKQUANT_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "max-body-bytes",
			Usage:       "Maximum size of a submitted scenario",
			Value:       httpctrl.DefaultMaxBodyBytes,
			Sources:     cli.EnvVars("RISKQUANT_MAX_BODY_BYTES"),
			Destination: &maxBodyBytes,
		},
	}

	// Add shared config flags
	flags = append(flags, simCfg.Flags()...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			engineOpts, err := simCfg.EngineOptions()
			if err != nil {
				return err
			}

			recorder := metrics.New()
			uc := usecase.New(
				usecase.WithRecorder(recorder),
				usecase.WithEngineOptions(engineOpts...),
			)

			handler := httpctrl.New(uc.Simulation,
				httpctrl.WithMetrics(recorder.Handler()),
				httpctrl.WithMaxBodyBytes(int64(maxBodyBytes)),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				attrs := []any{"addr", addr}
				for _, attr := range simCfg.LogAttrs() {
					attrs = append(attrs, attr)
				}
				logging.Default().Info("Starting HTTP server", attrs...)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logging.Default().Info("Context cancelled, shutting down")
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			}

			// Create shutdown context with timeout
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			// Attempt graceful shutdown
			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
