//nolint:testpackage // Testing internal processor requires same package access
package processor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/testhelpers"
)

type fakeRoster struct {
	mu       sync.Mutex
	students []domain.StudentMetrics
	countErr error
	pages    [][2]int // recorded (limit, offset) pairs
}

func (r *fakeRoster) List(ctx context.Context, limit, offset int) ([]domain.StudentMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, [2]int{limit, offset})
	if offset >= len(r.students) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.students) {
		end = len(r.students)
	}
	return r.students[offset:end], nil
}

func (r *fakeRoster) Count(ctx context.Context) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.students), nil
}

func TestPoller_Sweep_PagesThroughRoster(t *testing.T) {
	t.Helper()

	roster := &fakeRoster{}
	for i := 0; i < 5; i++ {
		roster.students = append(roster.students, *safeStudent("STU-00" + string(rune('1'+i))))
	}

	store := &countingStore{}
	poller := NewPoller(roster, newTestBatchProcessor(store, 2), testhelpers.NopLogger{}, nil, PollerConfig{BatchSize: 2})

	if err := poller.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}

	if store.inserted != 5 {
		t.Errorf("assessed students: got %d, want 5", store.inserted)
	}
	if len(roster.pages) != 3 {
		t.Errorf("roster pages fetched: got %d, want 3", len(roster.pages))
	}
	for i, page := range roster.pages {
		if page[0] != 2 || page[1] != i*2 {
			t.Errorf("page %d: got limit=%d offset=%d", i, page[0], page[1])
		}
	}
}

func TestPoller_Sweep_EmptyRoster(t *testing.T) {
	t.Helper()

	roster := &fakeRoster{}
	poller := NewPoller(roster, newTestBatchProcessor(&countingStore{}, 2), testhelpers.NopLogger{}, nil, PollerConfig{})

	if err := poller.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if len(roster.pages) != 0 {
		t.Errorf("empty roster should not fetch pages, got %d", len(roster.pages))
	}
}

func TestPoller_Sweep_CountFailure(t *testing.T) {
	t.Helper()

	roster := &fakeRoster{countErr: errors.New("db down")}
	poller := NewPoller(roster, newTestBatchProcessor(&countingStore{}, 2), testhelpers.NopLogger{}, nil, PollerConfig{})

	if err := poller.Sweep(context.Background()); err == nil {
		t.Fatal("expected error when roster count fails")
	}
}

func TestPoller_StartAndStop(t *testing.T) {
	t.Helper()

	roster := &fakeRoster{students: []domain.StudentMetrics{*safeStudent("STU-001")}}
	store := &countingStore{}
	poller := NewPoller(roster, newTestBatchProcessor(store, 1), testhelpers.NopLogger{}, nil, PollerConfig{SweepInterval: time.Hour})

	if err := poller.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := poller.Start(context.Background()); err == nil {
		t.Error("second Start should fail while running")
	}

	// The startup sweep runs asynchronously; give it a moment.
	deadline := time.After(2 * time.Second)
	for {
		store.mu.Lock()
		done := store.inserted >= 1
		store.mu.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("startup sweep never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}

	poller.Stop()
	poller.Stop() // idempotent
}
