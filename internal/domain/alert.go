package domain

import "time"

// Alert types describe what triggered an escalation.
const (
	AlertTypeAcademicRisk = "academic_risk"
	AlertTypeCrisis       = "crisis"
)

// Recommended contact windows attached to alerts, by urgency.
const (
	ContactWindowImmediate = "immediately"
	ContactWindow24h       = "within 24 hours"
	ContactWindow3d        = "within 3 days"
)

// Alert is an escalation decision. Delivery (email/SMS/log) is entirely
// owned by the AlertSink collaborator; the core only decides and records.
type Alert struct {
	ID            int64     `db:"id"             json:"id"`
	StudentID     string    `db:"student_id"     json:"student_id"`
	StudentName   string    `db:"student_name"   json:"student_name"`
	RiskLevel     string    `db:"risk_level"     json:"risk_level"`
	AlertType     string    `db:"alert_type"     json:"alert_type"`
	Message       string    `db:"message"        json:"message"`
	ContactWindow string    `db:"contact_window" json:"recommended_contact_window"`
	SessionID     string    `db:"session_id"     json:"session_id,omitempty"`
	Delivered     bool      `db:"delivered"      json:"delivered"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
}
