// Package notify turns risk decisions into guardian and counselor
// alerts: it renders the outbound message, hands it to a delivery sink,
// and records an audit row for every attempt.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/telemetry"
)

// Logger is the structured logging surface the notify package needs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Sink delivers a rendered alert. Implementations may send email or SMS;
// LogSink is the always-available degraded mode.
type Sink interface {
	Deliver(ctx context.Context, alert *domain.Alert, body string) error
}

// AuditLog records every alert attempt, delivered or not.
type AuditLog interface {
	Record(ctx context.Context, alert *domain.Alert) error
}

// Service decides when an assessment or chat message warrants an alert
// and drives rendering, delivery and auditing.
type Service struct {
	sink      Sink
	audit     AuditLog
	telemetry *telemetry.Provider
	logger    Logger
}

// NewService creates the alert service. audit may be nil.
func NewService(sink Sink, audit AuditLog, logger Logger, tp *telemetry.Provider) *Service {
	return &Service{
		sink:      sink,
		audit:     audit,
		telemetry: tp,
		logger:    logger,
	}
}

// AcademicRisk raises a guardian alert for a High or Critical
// assessment. Safe and Medium tiers produce no alert and a nil return.
func (s *Service) AcademicRisk(ctx context.Context, metrics *domain.StudentMetrics, assessment *domain.RiskAssessment) (*domain.Alert, error) {
	if !assessment.Tier.AtLeast(domain.TierHighRisk) {
		return nil, nil
	}

	alert := &domain.Alert{
		StudentID:     metrics.StudentID,
		StudentName:   metrics.Name,
		RiskLevel:     assessment.Tier.String(),
		AlertType:     domain.AlertTypeAcademicRisk,
		Message:       renderGuardianSMS(metrics),
		ContactWindow: contactWindowForTier(assessment.Tier),
		CreatedAt:     time.Now(),
	}

	s.dispatch(ctx, alert, renderGuardianEmail(metrics, time.Now()))
	return alert, nil
}

// ChatCrisis raises a counselor alert for a high-risk chat message. It
// satisfies the chat package's Alerter interface and fires once per
// high-risk message, not once per session.
func (s *Service) ChatCrisis(ctx context.Context, state domain.ConversationState, result *domain.SentimentResult) error {
	alert := &domain.Alert{
		StudentID:     state.StudentID,
		RiskLevel:     result.RiskLevel.String(),
		AlertType:     domain.AlertTypeCrisis,
		Message:       renderCrisisNotice(state, result),
		ContactWindow: domain.ContactWindowImmediate,
		SessionID:     state.SessionID,
		CreatedAt:     time.Now(),
	}

	s.dispatch(ctx, alert, alert.Message)
	return nil
}

// dispatch delivers and audits one alert. Delivery failure downgrades to
// an undelivered audit row rather than an error: losing the audit trail
// would be worse than losing one send.
func (s *Service) dispatch(ctx context.Context, alert *domain.Alert, body string) {
	if err := s.sink.Deliver(ctx, alert, body); err != nil {
		s.logger.Error("alert delivery failed",
			"student_id", alert.StudentID,
			"alert_type", alert.AlertType,
			"error", err,
		)
	} else {
		alert.Delivered = true
	}

	if s.telemetry != nil {
		s.telemetry.RecordAlert(alert.AlertType, alert.Delivered)
	}

	if s.audit != nil {
		if err := s.audit.Record(ctx, alert); err != nil {
			s.logger.Error("alert audit write failed",
				"student_id", alert.StudentID,
				"error", err,
			)
		}
	}

	s.logger.Info("alert raised",
		"student_id", alert.StudentID,
		"alert_type", alert.AlertType,
		"risk_level", alert.RiskLevel,
		"contact_window", alert.ContactWindow,
		"delivered", alert.Delivered,
	)
}

func contactWindowForTier(tier domain.RiskTier) string {
	if tier == domain.TierCriticalRisk {
		return domain.ContactWindowImmediate
	}
	return domain.ContactWindow3d
}

// renderGuardianEmail produces the plain-text guardian notice for an
// academic-risk alert.
func renderGuardianEmail(m *domain.StudentMetrics, now time.Time) string {
	return fmt.Sprintf(`URGENT ACADEMIC ALERT

Dear Parent/Guardian,

This is an automated alert regarding %s (ID: %s).

*** HIGH RISK STATUS DETECTED ***

Our system has identified that your child is currently at HIGH RISK of academic failure.

Current Performance:
- Attendance: %.0f%%
- Average Score: %.0f%%
- Engagement: %.0f%%
- Assignments: %d/%d

IMMEDIATE ACTIONS REQUIRED:
1. Schedule meeting with academic advisor (within 3 days)
2. Review attendance barriers
3. Discuss academic support options
4. Create improvement plan

Please contact the school administration immediately.

Generated: %s`,
		m.Name, m.StudentID,
		m.Attendance, m.AverageScore, m.EngagementScore,
		m.AssignmentsSubmitted, m.TotalAssignments,
		now.Format("January 2, 2006 at 3:04 PM"),
	)
}

// renderGuardianSMS produces the short-form guardian notice.
func renderGuardianSMS(m *domain.StudentMetrics) string {
	return fmt.Sprintf(
		"URGENT ALERT: %s is at HIGH RISK academically. Attendance: %.0f%%, Score: %.0f%%. Please contact school immediately.",
		m.Name, m.Attendance, m.AverageScore,
	)
}

// renderCrisisNotice produces the counselor-facing notice for a
// high-risk chat message.
func renderCrisisNotice(state domain.ConversationState, result *domain.SentimentResult) string {
	return fmt.Sprintf(
		"CRISIS ALERT: student %s sent a high-risk message in session %s (message %d, compound %.3f). Immediate counselor contact recommended.",
		state.StudentID, state.SessionID, state.MessageCount, result.Scores.VaderCompound,
	)
}
