// Package processor runs the structured-risk pipeline: it sweeps the
// student roster, assesses each student in parallel and fans results out
// to storage and alerting.
package processor

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/scoring"
	"github.com/edupulse/riskcore/internal/telemetry"
)

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// AssessmentStore persists structured assessments.
type AssessmentStore interface {
	Insert(ctx context.Context, a *domain.RiskAssessment) error
}

// DocumentMirror mirrors assessment documents for dashboard reads.
// A nil mirror is valid; mirroring is best effort either way.
type DocumentMirror interface {
	SaveAssessment(ctx context.Context, a *domain.RiskAssessment) error
}

// Alerter raises guardian alerts for High and Critical assessments.
type Alerter interface {
	AcademicRisk(ctx context.Context, m *domain.StudentMetrics, a *domain.RiskAssessment) (*domain.Alert, error)
}

// AlertStore persists raised alerts.
type AlertStore interface {
	Insert(ctx context.Context, alert *domain.Alert) error
}

// Pipeline assesses one student end to end.
type Pipeline struct {
	policy      *scoring.PolicyEngine
	assessments AssessmentStore
	mirror      DocumentMirror
	alerter     Alerter
	alerts      AlertStore
	telemetry   *telemetry.Provider
	logger      Logger
}

// NewPipeline wires the per-student pipeline. mirror, alerter and alerts
// may be nil.
func NewPipeline(
	policy *scoring.PolicyEngine,
	assessments AssessmentStore,
	mirror DocumentMirror,
	alerter Alerter,
	alerts AlertStore,
	logger Logger,
	tp *telemetry.Provider,
) *Pipeline {
	return &Pipeline{
		policy:      policy,
		assessments: assessments,
		mirror:      mirror,
		alerter:     alerter,
		alerts:      alerts,
		telemetry:   tp,
		logger:      logger,
	}
}

// Assess runs the full pipeline for one student: classify, persist,
// mirror, and alert when the tier demands it.
func (p *Pipeline) Assess(ctx context.Context, metrics *domain.StudentMetrics) (*domain.RiskAssessment, error) {
	if p.telemetry != nil {
		var span trace.Span
		ctx, span = p.telemetry.Tracer.Start(ctx, "pipeline.assess_student")
		defer span.End()
	}

	// 1. Classify and build the intervention plan.
	assessment, err := p.policy.Assess(metrics)
	if err != nil {
		return nil, fmt.Errorf("assess student %s: %w", metrics.StudentID, err)
	}
	if p.telemetry != nil {
		p.telemetry.RecordAssessment(assessment.Tier.String(), len(assessment.Interventions))
	}

	// 2. Persist the assessment.
	if p.assessments != nil {
		if err := p.assessments.Insert(ctx, assessment); err != nil {
			return nil, err
		}
	}

	// 3. Mirror the document, best effort.
	if p.mirror != nil {
		if err := p.mirror.SaveAssessment(ctx, assessment); err != nil {
			p.logger.Warn("assessment mirror write failed",
				"student_id", metrics.StudentID,
				"error", err,
			)
		}
	}

	// 4. Raise a guardian alert for High and Critical tiers.
	if p.alerter != nil {
		alert, alertErr := p.alerter.AcademicRisk(ctx, metrics, assessment)
		if alertErr != nil {
			p.logger.Error("guardian alert failed",
				"student_id", metrics.StudentID,
				"error", alertErr,
			)
		} else if alert != nil && p.alerts != nil {
			if err := p.alerts.Insert(ctx, alert); err != nil {
				p.logger.Error("alert persist failed",
					"student_id", metrics.StudentID,
					"error", err,
				)
			}
		}
	}

	return assessment, nil
}
