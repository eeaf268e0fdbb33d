package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nishad/drugrake/internal/api"
	"github.com/nishad/drugrake/internal/service"
	"github.com/nishad/drugrake/internal/ui"
	"github.com/nishad/drugrake/internal/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve pathway counts over HTTP",
	Long: `Load the source document once, compute the number of distinct pathways
per drug and answer lookups over HTTP until interrupted.

Endpoints:
  POST /pathways                     {"drugbank_id": "DB00001"} -> "1" or "Drug not found"
  GET  /api/v1/drugs/{id}/pathways   JSON lookup result
  GET  /api/v1/stats                 snapshot and table summary
  GET  /api/v1/health                readiness
  GET  /metrics                      Prometheus metrics

With --watch the snapshot is rebuilt whenever the source file changes;
a failed rebuild keeps the previous snapshot.`,
	Example: `  drugrake serve
  drugrake serve --port 3000 --watch
  drugrake serve --source drugbank_partial.xml --enable-cors`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveHost       string
	servePort       int
	serveEnableCORS bool
	serveWatch      bool
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: config server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default: config server.port)")
	serveCmd.Flags().BoolVar(&serveEnableCORS, "enable-cors", false, "Enable CORS for web access")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Rebuild the snapshot when the source changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("enable-cors") {
		cfg.Server.EnableCORS = serveEnableCORS
	}
	if cmd.Flags().Changed("watch") {
		cfg.Server.Watch = serveWatch
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var snap *service.Snapshot
	err := ui.Run(os.Stderr, "Loading "+cfg.Source, func() error {
		var err error
		snap, err = service.BuildSnapshot(cfg.Source, logger)
		return err
	})
	if err != nil {
		return err
	}
	pathways := service.NewPathwayService(snap, logger)
	printSuccess("Snapshot ready: %d drugs with pathways", snap.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Watch {
		w, err := watcher.New(cfg.Source, cfg.Server.Debounce, logger)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.Source, err)
		}
		defer w.Stop()
		w.Start(ctx, func(path string) {
			if err := pathways.Reload(path); err != nil {
				printWarning("Reload failed, still serving previous snapshot: %v", err)
				return
			}
			printInfo("Reloaded %s: %d drugs with pathways", path, pathways.Snapshot().Len())
		})
		printInfo("Watching %s for changes", w.Path())
	}

	server := api.NewServer(&api.Config{
		Host:       cfg.Server.Host,
		Port:       cfg.Server.Port,
		EnableCORS: cfg.Server.EnableCORS,
	}, pathways, logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	printSuccess("Server ready at http://%s", server.Addr())

	select {
	case <-ctx.Done():
		printInfo("\nShutting down server...")
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	printSuccess("Server stopped gracefully")
	return nil
}
