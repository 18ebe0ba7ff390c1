package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/telemetry"
)

const (
	// Default sweep interval
	defaultSweepIntervalSeconds = 300
	// Default roster page size
	defaultBatchSize = 100
)

// RosterClient defines the roster read operations the poller needs.
type RosterClient interface {
	List(ctx context.Context, limit, offset int) ([]domain.StudentMetrics, error)
	Count(ctx context.Context) (int, error)
}

// Poller periodically sweeps the student roster and runs the assessment
// pipeline over every student, page by page.
type Poller struct {
	roster         RosterClient
	batchProcessor *BatchProcessor
	telemetry      *telemetry.Provider
	logger         Logger

	batchSize     int
	sweepInterval time.Duration
	running       bool
	stopChan      chan struct{}
}

// PollerConfig holds poller configuration
type PollerConfig struct {
	BatchSize     int
	SweepInterval time.Duration
}

// NewPoller creates a new poller
func NewPoller(
	roster RosterClient,
	batchProcessor *BatchProcessor,
	logger Logger,
	tp *telemetry.Provider,
	config PollerConfig,
) *Poller {
	if config.BatchSize <= 0 {
		config.BatchSize = defaultBatchSize
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = defaultSweepIntervalSeconds * time.Second
	}

	return &Poller{
		roster:         roster,
		batchProcessor: batchProcessor,
		telemetry:      tp,
		logger:         logger,
		batchSize:      config.BatchSize,
		sweepInterval:  config.SweepInterval,
		stopChan:       make(chan struct{}),
	}
}

// Start starts the poller
func (p *Poller) Start(ctx context.Context) error {
	if p.running {
		return errors.New("poller is already running")
	}

	p.running = true
	p.logger.Info("Roster poller starting",
		"batch_size", p.batchSize,
		"sweep_interval", p.sweepInterval,
	)

	go p.run(ctx)

	return nil
}

// Stop stops the poller
func (p *Poller) Stop() {
	if !p.running {
		return
	}

	p.logger.Info("Roster poller stopping")
	close(p.stopChan)
	p.running = false
}

// run is the main sweep loop
func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.sweepInterval)
	defer ticker.Stop()

	// Sweep immediately on start
	if err := p.Sweep(ctx); err != nil {
		p.logger.Error("Failed to sweep roster on startup", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Roster poller stopped due to context cancellation")
			return
		case <-p.stopChan:
			p.logger.Info("Roster poller stopped")
			return
		case <-ticker.C:
			if err := p.Sweep(ctx); err != nil {
				p.logger.Error("Failed to sweep roster", "error", err)
			}
		}
	}
}

// Sweep assesses the whole roster once, one page at a time.
func (p *Poller) Sweep(ctx context.Context) error {
	start := time.Now()

	total, err := p.roster.Count(ctx)
	if err != nil {
		return fmt.Errorf("count roster: %w", err)
	}
	if total == 0 {
		p.logger.Debug("Roster is empty, nothing to assess")
		return nil
	}

	p.logger.Info("Roster sweep starting", "students", total)

	for offset := 0; offset < total; offset += p.batchSize {
		students, listErr := p.roster.List(ctx, p.batchSize, offset)
		if listErr != nil {
			return fmt.Errorf("list roster page at offset %d: %w", offset, listErr)
		}
		if len(students) == 0 {
			break
		}
		p.batchProcessor.Process(ctx, students)
	}

	if p.telemetry != nil {
		p.telemetry.Metrics.PollerLag.Observe(time.Since(start).Seconds())
	}
	p.logger.Info("Roster sweep complete",
		"students", total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
