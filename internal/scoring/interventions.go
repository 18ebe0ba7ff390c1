package scoring

import (
	"fmt"
	"time"

	"github.com/edupulse/riskcore/internal/domain"
)

// Intervention rule thresholds. Each rule group is additive: groups are
// evaluated in a fixed order and each appends zero or more items, never
// replacing what an earlier group emitted.
const (
	attendanceCriticalCutoff = 60.0
	attendanceWarningCutoff  = 75.0
	scoreCriticalCutoff      = 50.0
	scoreWarningCutoff       = 70.0
	engagementCriticalCutoff = 40.0
	engagementWarningCutoff  = 60.0
	completionCriticalCutoff = 50.0
	completionWarningCutoff  = 70.0
)

// PolicyEngine turns a classified student into an assessment narrative
// and a prioritized intervention plan. Stateless and safe for concurrent use.
type PolicyEngine struct {
	logger Logger
}

// NewPolicyEngine builds the intervention policy engine.
func NewPolicyEngine(logger Logger) *PolicyEngine {
	return &PolicyEngine{logger: logger}
}

// Assess classifies the student and produces the full assessment:
// tier, narrative, interventions and the downstream alerting decision.
func (p *PolicyEngine) Assess(m *domain.StudentMetrics) (*domain.RiskAssessment, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	tier := ClassifyAttendance(m.Attendance)
	plan := p.BuildPlan(m, tier)

	if p.logger != nil {
		p.logger.Info("student assessed",
			"student_id", m.StudentID,
			"risk_tier", tier.String(),
			"interventions", len(plan),
		)
	}

	return &domain.RiskAssessment{
		StudentID:     m.StudentID,
		Tier:          tier,
		Assessment:    assessmentNarrative(m, tier),
		Interventions: plan,
		Action:        tier.AlertAction(),
		AssessedAt:    time.Now(),
	}, nil
}

// BuildPlan runs the additive rule groups in their fixed order:
// attendance, score, engagement, completion, then tier-level support.
func (p *PolicyEngine) BuildPlan(m *domain.StudentMetrics, tier domain.RiskTier) []domain.Intervention {
	plan := make([]domain.Intervention, 0, 8)
	plan = appendAttendanceItems(plan, m.Attendance)
	plan = appendScoreItems(plan, m.AverageScore)
	plan = appendEngagementItems(plan, m.EngagementScore)
	plan = appendCompletionItems(plan, m.CompletionRate())
	plan = appendTierItems(plan, tier)
	return plan
}

func appendAttendanceItems(plan []domain.Intervention, attendance float64) []domain.Intervention {
	switch {
	case attendance < attendanceCriticalCutoff:
		plan = append(plan,
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryAttendance,
				Action:   "Schedule immediate meeting with student to discuss attendance barriers",
				Timeline: "Within 1 week",
			},
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryAttendance,
				Action:   "Contact parents/guardians about attendance concerns",
				Timeline: "Within 3 days",
			})
	case attendance < attendanceWarningCutoff:
		plan = append(plan, domain.Intervention{
			Priority: domain.PriorityMedium,
			Category: domain.CategoryAttendance,
			Action:   "Send attendance reminder and offer flexible scheduling options",
			Timeline: "Within 2 weeks",
		})
	}
	return plan
}

func appendScoreItems(plan []domain.Intervention, averageScore float64) []domain.Intervention {
	switch {
	case averageScore < scoreCriticalCutoff:
		plan = append(plan,
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryPerformance,
				Action:   "Enroll in intensive tutoring program (3x per week)",
				Timeline: "Start immediately",
			},
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryPerformance,
				Action:   "Provide personalized study plan with weekly check-ins",
				Timeline: "Ongoing for 6 weeks",
			})
	case averageScore < scoreWarningCutoff:
		plan = append(plan,
			domain.Intervention{
				Priority: domain.PriorityMedium,
				Category: domain.CategoryPerformance,
				Action:   "Assign peer tutor or study buddy",
				Timeline: "Within 1 week",
			},
			domain.Intervention{
				Priority: domain.PriorityMedium,
				Category: domain.CategoryPerformance,
				Action:   "Offer supplementary learning materials and practice tests",
				Timeline: "Ongoing",
			})
	}
	return plan
}

func appendEngagementItems(plan []domain.Intervention, engagement float64) []domain.Intervention {
	switch {
	case engagement < engagementCriticalCutoff:
		plan = append(plan,
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryEngagement,
				Action:   "One-on-one counseling to identify motivation barriers",
				Timeline: "Within 1 week",
			},
			domain.Intervention{
				Priority: domain.PriorityMedium,
				Category: domain.CategoryEngagement,
				Action:   "Introduce gamified learning activities to boost interest",
				Timeline: "Within 2 weeks",
			})
	case engagement < engagementWarningCutoff:
		plan = append(plan, domain.Intervention{
			Priority: domain.PriorityMedium,
			Category: domain.CategoryEngagement,
			Action:   "Invite to join study groups or academic clubs",
			Timeline: "Within 2 weeks",
		})
	}
	return plan
}

func appendCompletionItems(plan []domain.Intervention, completionRate float64) []domain.Intervention {
	switch {
	case completionRate < completionCriticalCutoff:
		plan = append(plan,
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryCompletion,
				Action:   "Create assignment tracking system with deadline reminders",
				Timeline: "Start immediately",
			},
			domain.Intervention{
				Priority: domain.PriorityMedium,
				Category: domain.CategoryCompletion,
				Action:   "Break down large assignments into smaller, manageable tasks",
				Timeline: "Ongoing",
			})
	case completionRate < completionWarningCutoff:
		plan = append(plan, domain.Intervention{
			Priority: domain.PriorityMedium,
			Category: domain.CategoryCompletion,
			Action:   "Send weekly assignment reminders and progress updates",
			Timeline: "Ongoing",
		})
	}
	return plan
}

func appendTierItems(plan []domain.Intervention, tier domain.RiskTier) []domain.Intervention {
	switch tier {
	case domain.TierCriticalRisk:
		plan = append(plan,
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryGeneralSupport,
				Action:   "EMERGENCY: Immediate intervention required - contact student and parents today",
				Timeline: "Within 24 hours",
			},
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryGeneralSupport,
				Action:   "Schedule emergency meeting with academic dean and counselor",
				Timeline: "Within 2 days",
			},
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryGeneralSupport,
				Action:   "Consider immediate academic probation or withdrawal prevention plan",
				Timeline: "Within 1 week",
			})
	case domain.TierHighRisk:
		plan = append(plan,
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryGeneralSupport,
				Action:   "Assign dedicated academic advisor for weekly monitoring",
				Timeline: "Immediate and ongoing",
			},
			domain.Intervention{
				Priority: domain.PriorityHigh,
				Category: domain.CategoryGeneralSupport,
				Action:   "Consider academic probation with structured improvement plan",
				Timeline: "Within 1 week",
			})
	case domain.TierSafe, domain.TierMediumRisk:
		// No tier-level items below High Risk.
	}
	return plan
}

// assessmentNarrative renders the tier-keyed situation summary shown to
// educators alongside the plan.
func assessmentNarrative(m *domain.StudentMetrics, tier domain.RiskTier) string {
	switch tier {
	case domain.TierCriticalRisk:
		return fmt.Sprintf(
			"CRITICAL ALERT: This student is in IMMEDIATE DANGER of academic failure. "+
				"With only %.0f%% attendance, this represents a severe crisis requiring "+
				"emergency intervention within 24-48 hours. Without immediate action, this "+
				"student is likely to fail or drop out. Contact parents and schedule "+
				"emergency meetings NOW.",
			m.Attendance)
	case domain.TierHighRisk:
		return fmt.Sprintf(
			"This student is at HIGH RISK of academic failure. With %.0f%% attendance, "+
				"%.0f%% average score, and %.0f%% engagement, immediate intervention is "+
				"critical. Multiple support systems should be activated urgently.",
			m.Attendance, m.AverageScore, m.EngagementScore)
	case domain.TierMediumRisk:
		return fmt.Sprintf(
			"This student shows WARNING SIGNS that require attention. Current metrics "+
				"(%.0f%% attendance, %.0f%% score) indicate potential for improvement with "+
				"targeted support. Early intervention can prevent further decline.",
			m.Attendance, m.AverageScore)
	default:
		return fmt.Sprintf(
			"This student is performing adequately with %.0f%% attendance and %.0f%% "+
				"average score. Continue monitoring and provide encouragement to maintain "+
				"current trajectory.",
			m.Attendance, m.AverageScore)
	}
}
