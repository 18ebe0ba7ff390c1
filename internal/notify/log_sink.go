package notify

import (
	"context"

	"github.com/edupulse/riskcore/internal/domain"
)

// LogSink writes alerts to the structured log instead of sending them.
// It is the default when no mail or SMS gateway is configured, so the
// decision pipeline behaves identically in demos and production.
type LogSink struct {
	logger Logger
}

// NewLogSink creates a log-only delivery sink.
func NewLogSink(logger Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Deliver logs the rendered alert body.
func (s *LogSink) Deliver(_ context.Context, alert *domain.Alert, body string) error {
	s.logger.Warn("alert delivery (log sink)",
		"student_id", alert.StudentID,
		"alert_type", alert.AlertType,
		"risk_level", alert.RiskLevel,
		"body", body,
	)
	return nil
}
