//nolint:testpackage // Testing internal domain requires same package access
package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewStudentMetrics_Validation(t *testing.T) {
	t.Helper()

	tests := []struct {
		name       string
		studentID  string
		attendance float64
		score      float64
		submitted  int
		total      int
		engagement float64
		wantField  string
	}{
		{"valid", "STU-001", 80, 75, 8, 10, 60, ""},
		{"empty student id", "", 80, 75, 8, 10, 60, "student_id"},
		{"attendance above range", "STU-001", 101, 75, 8, 10, 60, "attendance"},
		{"attendance below range", "STU-001", -1, 75, 8, 10, 60, "attendance"},
		{"score above range", "STU-001", 80, 120, 8, 10, 60, "average_score"},
		{"engagement above range", "STU-001", 80, 75, 8, 10, 101, "engagement_score"},
		{"negative submissions", "STU-001", 80, 75, -1, 10, 60, "assignments_submitted"},
		{"zero total assignments", "STU-001", 80, 75, 0, 0, 60, "total_assignments"},
		{"submissions exceed total", "STU-001", 80, 75, 11, 10, 60, "assignments_submitted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewStudentMetrics(tt.studentID, "Test Student", tt.attendance, tt.score, tt.submitted, tt.total, tt.engagement)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid metrics, got %v", err)
				}
				if m == nil {
					t.Fatal("expected metrics, got nil")
				}
				return
			}

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error should wrap ErrInvalidInput, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field: got %s, want %s", verr.Field, tt.wantField)
			}
		})
	}
}

func TestStudentMetrics_CompletionRate(t *testing.T) {
	t.Helper()

	m := &StudentMetrics{AssignmentsSubmitted: 3, TotalAssignments: 4}
	if got := m.CompletionRate(); got != 75 {
		t.Errorf("completion rate: got %v, want 75", got)
	}
}

func TestRiskTier_JSONRoundTrip(t *testing.T) {
	t.Helper()

	for _, tier := range []RiskTier{TierSafe, TierMediumRisk, TierHighRisk, TierCriticalRisk} {
		data, err := json.Marshal(tier)
		if err != nil {
			t.Fatalf("marshal %s: %v", tier, err)
		}

		var back RiskTier
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != tier {
			t.Errorf("round trip: got %s, want %s", back, tier)
		}
	}

	var tier RiskTier
	if err := json.Unmarshal([]byte(`"Made Up"`), &tier); err == nil {
		t.Error("unknown tier label should fail to unmarshal")
	}
}

func TestParseTextRiskLevel(t *testing.T) {
	t.Helper()

	for _, level := range []TextRiskLevel{TextRiskLow, TextRiskMedium, TextRiskHigh} {
		parsed, err := ParseTextRiskLevel(level.String())
		if err != nil {
			t.Fatalf("parse %s: %v", level, err)
		}
		if parsed != level {
			t.Errorf("parse %s: got %s", level, parsed)
		}
	}

	if _, err := ParseTextRiskLevel("severe"); !errors.Is(err, ErrMalformedResult) {
		t.Errorf("unknown label should wrap ErrMalformedResult, got %v", err)
	}
}
