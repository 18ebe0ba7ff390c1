// Package domain holds the core types shared across the riskcore service.
package domain

import (
	"encoding/json"
	"time"
)

// Metric bounds used by NewStudentMetrics validation.
const (
	metricMin        = 0.0
	percentMetricMax = 100.0
)

// StudentMetrics is one immutable snapshot of a student's structured
// academic signals. Construct via NewStudentMetrics so invalid input is
// rejected at the boundary instead of producing NaN completion rates
// downstream.
type StudentMetrics struct {
	StudentID            string  `db:"student_id"            json:"student_id"`
	Name                 string  `db:"name"                  json:"name"`
	Attendance           float64 `db:"attendance"            json:"attendance"`
	AverageScore         float64 `db:"average_score"         json:"average_score"`
	AssignmentsSubmitted int     `db:"assignments_submitted" json:"assignments_submitted"`
	TotalAssignments     int     `db:"total_assignments"     json:"total_assignments"`
	EngagementScore      float64 `db:"engagement_score"      json:"engagement_score"`
}

// NewStudentMetrics validates and builds a StudentMetrics snapshot.
func NewStudentMetrics(studentID, name string, attendance, averageScore float64, submitted, total int, engagement float64) (*StudentMetrics, error) {
	m := &StudentMetrics{
		StudentID:            studentID,
		Name:                 name,
		Attendance:           attendance,
		AverageScore:         averageScore,
		AssignmentsSubmitted: submitted,
		TotalAssignments:     total,
		EngagementScore:      engagement,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks every metric against its contract range.
func (m *StudentMetrics) Validate() error {
	if m.StudentID == "" {
		return NewValidationError("student_id", "must not be empty")
	}
	if m.Attendance < metricMin || m.Attendance > percentMetricMax {
		return NewValidationError("attendance", "must be in [0,100]")
	}
	if m.AverageScore < metricMin || m.AverageScore > percentMetricMax {
		return NewValidationError("average_score", "must be in [0,100]")
	}
	if m.EngagementScore < metricMin || m.EngagementScore > percentMetricMax {
		return NewValidationError("engagement_score", "must be in [0,100]")
	}
	if m.AssignmentsSubmitted < 0 {
		return NewValidationError("assignments_submitted", "must be >= 0")
	}
	if m.TotalAssignments <= 0 {
		return NewValidationError("total_assignments", "must be >= 1")
	}
	if m.AssignmentsSubmitted > m.TotalAssignments {
		return NewValidationError("assignments_submitted", "must not exceed total_assignments")
	}
	return nil
}

// CompletionRate returns the assignment completion percentage.
// Validate guarantees TotalAssignments >= 1, so this never divides by zero.
func (m *StudentMetrics) CompletionRate() float64 {
	return float64(m.AssignmentsSubmitted) / float64(m.TotalAssignments) * percentMetricMax
}

// RiskTier is the ordered severity classification for the structured
// (metrics) path. The zero value is TierSafe; larger values are more severe.
type RiskTier int

// Structured risk tiers, least to most severe.
const (
	TierSafe RiskTier = iota
	TierMediumRisk
	TierHighRisk
	TierCriticalRisk
)

// String returns the display label used across the API and persistence.
func (t RiskTier) String() string {
	switch t {
	case TierSafe:
		return "Safe"
	case TierMediumRisk:
		return "Medium Risk"
	case TierHighRisk:
		return "High Risk"
	case TierCriticalRisk:
		return "Critical Risk"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the tier as its display label.
func (t RiskTier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a display label back into a tier.
func (t *RiskTier) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	tier, err := ParseRiskTier(label)
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// AtLeast reports whether t is at least as severe as other.
func (t RiskTier) AtLeast(other RiskTier) bool {
	return t >= other
}

// ParseRiskTier maps a stored label back to its tier.
func ParseRiskTier(label string) (RiskTier, error) {
	switch label {
	case "Safe":
		return TierSafe, nil
	case "Medium Risk":
		return TierMediumRisk, nil
	case "High Risk":
		return TierHighRisk, nil
	case "Critical Risk":
		return TierCriticalRisk, nil
	default:
		return TierSafe, NewValidationError("risk_tier", "unknown label: "+label)
	}
}

// AlertAction is the downstream alerting decision shared by both risk scales.
type AlertAction string

// Alerting decisions in increasing urgency.
const (
	ActionNone     AlertAction = "none"
	ActionFlag     AlertAction = "flag_for_review"
	ActionEscalate AlertAction = "escalate"
)

// AlertAction maps a structured tier onto the shared alerting contract.
func (t RiskTier) AlertAction() AlertAction {
	switch {
	case t >= TierHighRisk:
		return ActionEscalate
	case t == TierMediumRisk:
		return ActionFlag
	default:
		return ActionNone
	}
}

// RiskAssessment is the full structured-path evaluation for one student.
type RiskAssessment struct {
	StudentID     string         `json:"student_id"`
	Tier          RiskTier       `json:"risk_tier"`
	Assessment    string         `json:"assessment"`
	Interventions []Intervention `json:"interventions"`
	Action        AlertAction    `json:"alert_action"`
	AssessedAt    time.Time      `json:"assessed_at"`
}
