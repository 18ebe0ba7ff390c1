//nolint:testpackage // Testing internal processor requires same package access
package processor

import (
	"context"
	"sync"
	"testing"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/scoring"
	"github.com/edupulse/riskcore/internal/testhelpers"
)

type countingStore struct {
	mu       sync.Mutex
	inserted int
}

func (s *countingStore) Insert(ctx context.Context, a *domain.RiskAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted++
	return nil
}

func newTestBatchProcessor(store AssessmentStore, concurrency int) *BatchProcessor {
	pipeline := NewPipeline(scoring.NewPolicyEngine(nil), store, nil, nil, nil, testhelpers.NopLogger{}, nil)
	return NewBatchProcessor(pipeline, concurrency, testhelpers.NopLogger{}, nil)
}

func TestBatchProcessor_Process(t *testing.T) {
	t.Helper()

	store := &countingStore{}
	batch := newTestBatchProcessor(store, 4)

	students := []domain.StudentMetrics{
		*safeStudent("STU-001"),
		*atRiskStudent("STU-002"),
		{StudentID: "STU-003", Attendance: 200, TotalAssignments: 1}, // invalid
		*safeStudent("STU-004"),
	}

	results := batch.Process(context.Background(), students)

	if len(results) != len(students) {
		t.Fatalf("results: got %d, want %d", len(results), len(students))
	}

	success := 0
	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			if r.Metrics.StudentID != "STU-003" {
				t.Errorf("unexpected failure for %s: %v", r.Metrics.StudentID, r.Error)
			}
			continue
		}
		success++
		if r.Assessment == nil {
			t.Errorf("successful result for %s missing assessment", r.Metrics.StudentID)
		}
	}

	if success != 3 || failed != 1 {
		t.Errorf("success/failed: got %d/%d, want 3/1", success, failed)
	}
	if store.inserted != 3 {
		t.Errorf("persisted assessments: got %d, want 3", store.inserted)
	}
}

func TestBatchProcessor_Process_EmptyBatch(t *testing.T) {
	t.Helper()

	batch := newTestBatchProcessor(&countingStore{}, 2)

	results := batch.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("empty batch should produce no results, got %d", len(results))
	}
}

func TestBatchProcessor_Process_CancelledContext(t *testing.T) {
	t.Helper()

	batch := newTestBatchProcessor(&countingStore{}, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	students := []domain.StudentMetrics{*safeStudent("STU-001"), *safeStudent("STU-002")}
	results := batch.Process(ctx, students)

	if len(results) != len(students) {
		t.Fatalf("results: got %d, want %d", len(results), len(students))
	}
	for _, r := range results {
		if r.Error == nil {
			t.Errorf("expected context error for %s", r.Metrics.StudentID)
		}
	}
}
