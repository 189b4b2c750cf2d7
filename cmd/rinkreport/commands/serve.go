package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/coldrink/rinkreport/internal/generator"
	"github.com/coldrink/rinkreport/internal/server"
	"github.com/coldrink/rinkreport/internal/server/handlers"
	"github.com/coldrink/rinkreport/pkg/config"
	"github.com/coldrink/rinkreport/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the report HTTP server",
	Long: `Starts the HTTP server that generates reports on demand.

Endpoints:
  GET /healthz                   - Health check
  GET /metrics                   - Prometheus metrics
  GET /v1/teams                  - Teams reports can be generated for
  GET /v1/reports/{team}.pdf     - Generate and serve a PDF report
  GET /v1/reports/{team}.png     - Generate and serve a PNG report

Example:
  go run ./cmd/rinkreport serve
  go run ./cmd/rinkreport serve --addr :9090`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}

	log := logger.New(cfg)

	gen, err := generator.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize generator: %w", err)
	}
	defer gen.Close()

	registry := prometheus.NewRegistry()
	metrics := server.NewMetrics(registry)
	reportHandler := handlers.NewReportHandler(gen, metrics, log)
	router := server.NewRouter(reportHandler, registry, log)
	srv := server.New(cfg, log, router)

	// Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
