package processor

import (
	"context"
	"sync"
	"time"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/telemetry"
)

// defaultConcurrency is used when the configured worker count is invalid.
const defaultConcurrency = 10

// ProcessResult holds the result of assessing a single student
type ProcessResult struct {
	Metrics    *domain.StudentMetrics
	Assessment *domain.RiskAssessment
	Error      error
}

// BatchProcessor assesses multiple students in parallel using a worker pool
type BatchProcessor struct {
	pipeline    *Pipeline
	concurrency int
	telemetry   *telemetry.Provider
	logger      Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(pipeline *Pipeline, concurrency int, logger Logger, tp *telemetry.Provider) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &BatchProcessor{
		pipeline:    pipeline,
		concurrency: concurrency,
		telemetry:   tp,
		logger:      logger,
	}
}

// Process assesses a batch of students using the worker pool.
func (b *BatchProcessor) Process(ctx context.Context, students []domain.StudentMetrics) []*ProcessResult {
	if len(students) == 0 {
		return []*ProcessResult{}
	}

	b.logger.Info("Starting batch assessment",
		"batch_size", len(students),
		"concurrency", b.concurrency,
	)
	startTime := time.Now()

	if b.telemetry != nil {
		b.telemetry.Metrics.BatchSize.Observe(float64(len(students)))
	}

	jobs := make(chan *domain.StudentMetrics, len(students))
	results := make(chan *ProcessResult, len(students))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, jobs, results, &wg)
	}

	for i := range students {
		jobs <- &students[i]
	}
	close(jobs)

	wg.Wait()
	close(results)

	processResults := make([]*ProcessResult, 0, len(students))
	successCount := 0
	errorCount := 0
	for result := range results {
		processResults = append(processResults, result)
		if result.Error == nil {
			successCount++
		} else {
			errorCount++
		}
	}

	if b.telemetry != nil {
		b.telemetry.Metrics.StudentsProcessed.Add(float64(successCount))
		b.telemetry.Metrics.StudentsFailed.Add(float64(errorCount))
	}

	duration := time.Since(startTime)
	b.logger.Info("Batch assessment complete",
		"total", len(students),
		"success", successCount,
		"errors", errorCount,
		"duration_ms", duration.Milliseconds(),
	)

	return processResults
}

func (b *BatchProcessor) worker(
	ctx context.Context,
	jobs <-chan *domain.StudentMetrics,
	results chan<- *ProcessResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	if b.telemetry != nil {
		b.telemetry.Metrics.ActiveWorkers.Inc()
		defer b.telemetry.Metrics.ActiveWorkers.Dec()
	}

	for metrics := range jobs {
		select {
		case <-ctx.Done():
			results <- &ProcessResult{Metrics: metrics, Error: ctx.Err()}
			continue
		default:
		}

		assessment, err := b.pipeline.Assess(ctx, metrics)
		if err != nil {
			b.logger.Error("Student assessment failed",
				"student_id", metrics.StudentID,
				"error", err,
			)
		}
		results <- &ProcessResult{Metrics: metrics, Assessment: assessment, Error: err}
	}
}
