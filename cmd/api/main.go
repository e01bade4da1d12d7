package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pledgekit/reconciler/internal/api"
	"github.com/pledgekit/reconciler/internal/infrastructure/config"
	"github.com/pledgekit/reconciler/internal/infrastructure/logging"
	"github.com/pledgekit/reconciler/internal/infrastructure/storage"
)

func main() {
	var (
		configFile = flag.String("config", "config.yaml", "Configuration file path")
		addr       = flag.String("addr", "", "Listen address (overrides config)")
	)
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configFile)
	if *addr != "" {
		cfg.API.Addr = *addr
	}

	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "api")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	serverCfg := api.DefaultConfig()
	serverCfg.Addr = cfg.API.Addr
	if len(cfg.API.AllowedOrigins) > 0 {
		serverCfg.AllowedOrigins = cfg.API.AllowedOrigins
	}

	server := api.NewServer(serverCfg, store, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
