//nolint:testpackage // Testing internal processor requires same package access
package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/scoring"
	"github.com/edupulse/riskcore/internal/testhelpers"
)

type memAssessmentStore struct {
	err      error
	inserted []*domain.RiskAssessment
}

func (s *memAssessmentStore) Insert(ctx context.Context, a *domain.RiskAssessment) error {
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, a)
	return nil
}

type memMirror struct {
	err   error
	saved []*domain.RiskAssessment
}

func (m *memMirror) SaveAssessment(ctx context.Context, a *domain.RiskAssessment) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, a)
	return nil
}

type stubAlerter struct {
	alert *domain.Alert
	err   error
	calls int
}

func (a *stubAlerter) AcademicRisk(ctx context.Context, m *domain.StudentMetrics, assessment *domain.RiskAssessment) (*domain.Alert, error) {
	a.calls++
	return a.alert, a.err
}

type memAlertStore struct {
	inserted []*domain.Alert
}

func (s *memAlertStore) Insert(ctx context.Context, alert *domain.Alert) error {
	s.inserted = append(s.inserted, alert)
	return nil
}

func atRiskStudent(id string) *domain.StudentMetrics {
	return &domain.StudentMetrics{
		StudentID:            id,
		Name:                 "Test Student",
		Attendance:           55,
		AverageScore:         48,
		AssignmentsSubmitted: 3,
		TotalAssignments:     10,
		EngagementScore:      30,
	}
}

func safeStudent(id string) *domain.StudentMetrics {
	return &domain.StudentMetrics{
		StudentID:            id,
		Name:                 "Test Student",
		Attendance:           95,
		AverageScore:         90,
		AssignmentsSubmitted: 10,
		TotalAssignments:     10,
		EngagementScore:      85,
	}
}

func TestPipeline_Assess_PersistsAndAlerts(t *testing.T) {
	t.Helper()

	store := &memAssessmentStore{}
	mirror := &memMirror{}
	alerter := &stubAlerter{alert: &domain.Alert{StudentID: "STU-001", AlertType: domain.AlertTypeAcademicRisk}}
	alerts := &memAlertStore{}

	pipeline := NewPipeline(
		scoring.NewPolicyEngine(nil),
		store, mirror, alerter, alerts,
		testhelpers.NopLogger{}, nil,
	)

	assessment, err := pipeline.Assess(context.Background(), atRiskStudent("STU-001"))
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	if assessment.Tier != domain.TierCriticalRisk {
		t.Errorf("tier: got %s, want %s", assessment.Tier, domain.TierCriticalRisk)
	}
	if len(store.inserted) != 1 {
		t.Errorf("assessments persisted: got %d, want 1", len(store.inserted))
	}
	if len(mirror.saved) != 1 {
		t.Errorf("assessments mirrored: got %d, want 1", len(mirror.saved))
	}
	if alerter.calls != 1 {
		t.Errorf("alerter calls: got %d, want 1", alerter.calls)
	}
	if len(alerts.inserted) != 1 {
		t.Errorf("alerts persisted: got %d, want 1", len(alerts.inserted))
	}
}

func TestPipeline_Assess_NoAlertRowWhenNoAlert(t *testing.T) {
	t.Helper()

	alerter := &stubAlerter{} // returns (nil, nil): tier below High
	alerts := &memAlertStore{}

	pipeline := NewPipeline(
		scoring.NewPolicyEngine(nil),
		&memAssessmentStore{}, nil, alerter, alerts,
		testhelpers.NopLogger{}, nil,
	)

	if _, err := pipeline.Assess(context.Background(), safeStudent("STU-002")); err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}
	if len(alerts.inserted) != 0 {
		t.Errorf("no alert row expected, got %d", len(alerts.inserted))
	}
}

func TestPipeline_Assess_StoreFailureIsFatal(t *testing.T) {
	t.Helper()

	store := &memAssessmentStore{err: errors.New("db down")}
	pipeline := NewPipeline(
		scoring.NewPolicyEngine(nil),
		store, nil, nil, nil,
		testhelpers.NopLogger{}, nil,
	)

	if _, err := pipeline.Assess(context.Background(), atRiskStudent("STU-003")); err == nil {
		t.Fatal("expected error when the assessment store fails")
	}
}

func TestPipeline_Assess_MirrorFailureIsBestEffort(t *testing.T) {
	t.Helper()

	logger := &testhelpers.CaptureLogger{}
	pipeline := NewPipeline(
		scoring.NewPolicyEngine(nil),
		&memAssessmentStore{}, &memMirror{err: errors.New("mongo down")}, nil, nil,
		logger, nil,
	)

	if _, err := pipeline.Assess(context.Background(), atRiskStudent("STU-004")); err != nil {
		t.Fatalf("mirror failure must not fail the pipeline: %v", err)
	}
	if msgs := logger.Messages("warn"); len(msgs) != 1 {
		t.Errorf("expected one mirror warning, got %v", msgs)
	}
}

func TestPipeline_Assess_InvalidMetrics(t *testing.T) {
	t.Helper()

	pipeline := NewPipeline(
		scoring.NewPolicyEngine(nil),
		&memAssessmentStore{}, nil, nil, nil,
		testhelpers.NopLogger{}, nil,
	)

	_, err := pipeline.Assess(context.Background(), &domain.StudentMetrics{StudentID: "STU-005", Attendance: 300, TotalAssignments: 1})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
