package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nishad/drugrake/internal/api"
	"github.com/nishad/drugrake/internal/config"
	"github.com/nishad/drugrake/internal/errors"
	"github.com/nishad/drugrake/internal/logging"
	"github.com/nishad/drugrake/internal/service"
	"github.com/nishad/drugrake/internal/watcher"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		port        = flag.Int("port", 0, "Server port (default: config server.port)")
		host        = flag.String("host", "", "Server host (default: config server.host)")
		source      = flag.String("source", "", "DrugBank XML document (default: config source)")
		configPath  = flag.String("config", "", "Configuration file path")
		watch       = flag.Bool("watch", false, "Rebuild the snapshot when the source changes")
		cors        = flag.Bool("cors", false, "Enable CORS")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("drugrake server %s (commit: %s, built: %s)\n", Version, Commit, BuildDate)
		os.Exit(0)
	}

	if *configPath == "" {
		*configPath = config.GetConfigPath()
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *source != "" {
		cfg.Source = *source
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *watch {
		cfg.Server.Watch = true
	}
	if *cors {
		cfg.Server.EnableCORS = true
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	snap, err := service.BuildSnapshot(cfg.Source, logger)
	if err != nil {
		logger.Fatal("failed to build snapshot", zap.String("source", cfg.Source), zap.Error(err))
	}
	pathways := service.NewPathwayService(snap, logger)
	logger.Info("snapshot ready", zap.String("source", cfg.Source), zap.Int("drugs", snap.Len()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Watch {
		w, err := watcher.New(cfg.Source, cfg.Server.Debounce, logger)
		if err != nil {
			logger.Fatal("failed to watch source", zap.Error(err))
		}
		defer w.Stop()
		w.Start(ctx, func(path string) {
			errors.IgnoreError(logger, pathways.Reload(path), "reload failed; previous snapshot still served")
		})
	}

	server := api.NewServer(&api.Config{
		Host:       cfg.Server.Host,
		Port:       cfg.Server.Port,
		EnableCORS: cfg.Server.EnableCORS,
	}, pathways, logger)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
