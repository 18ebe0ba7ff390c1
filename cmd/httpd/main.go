// Command httpd runs the riskcore HTTP service: sentiment analysis,
// structured risk assessment, the support chat and the alert feed, with
// the roster sweep running alongside the server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/edupulse/riskcore/internal/bootstrap"
	infralogger "github.com/edupulse/riskcore/internal/infra/logger"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	comps, err := bootstrap.NewHTTPComponents(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize service", infralogger.Error(err))
	}
	defer func() {
		_ = comps.DB.Close()
		if comps.Audit != nil {
			_ = comps.Audit.Close()
		}
		if comps.Mirror != nil {
			_ = comps.Mirror.Close(context.Background())
		}
	}()

	logger.Info("Starting riskcore HTTP server",
		infralogger.Int("port", cfg.Service.Port),
		infralogger.Bool("debug", cfg.Service.Debug),
	)

	if err := comps.Poller.Start(ctx); err != nil {
		logger.Fatal("Failed to start roster poller", infralogger.Error(err))
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- comps.Server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("Server error", infralogger.Error(err))
		os.Exit(1)
	case sig := <-shutdown:
		logger.Info("Shutdown signal received", infralogger.String("signal", sig.String()))

		comps.Poller.Stop()
		cancel()

		if err := comps.Server.Shutdown(context.Background()); err != nil {
			logger.Error("Graceful shutdown failed", infralogger.Error(err))
			os.Exit(1)
		}

		logger.Info("Server stopped gracefully")
	}
}
