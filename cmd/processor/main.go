// Command processor runs the roster sweep worker on its own, for
// deployments that separate the assessment batch load from the HTTP
// service.
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

	comps, err := bootstrap.NewProcessorComponents(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize processor", infralogger.Error(err))
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

	logger.Info("Starting roster sweep processor",
		infralogger.Int("batch_size", cfg.Service.BatchSize),
		infralogger.Int("concurrency", cfg.Service.Concurrency),
	)

	if err := comps.Poller.Start(ctx); err != nil {
		logger.Fatal("Failed to start roster poller", infralogger.Error(err))
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown

	logger.Info("Shutdown signal received", infralogger.String("signal", sig.String()))
	comps.Poller.Stop()
	cancel()
	logger.Info("Processor stopped gracefully")
}
