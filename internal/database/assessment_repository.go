package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edupulse/riskcore/internal/domain"
)

// AssessmentRepository persists risk assessments with their
// intervention plans. Interventions are stored as a JSONB column: the
// plan is read back whole or not at all, never queried item by item.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a new repository
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

type assessmentRow struct {
	StudentID     string    `db:"student_id"`
	RiskTier      string    `db:"risk_tier"`
	Assessment    string    `db:"assessment"`
	Interventions []byte    `db:"interventions"`
	AlertAction   string    `db:"alert_action"`
	AssessedAt    time.Time `db:"assessed_at"`
}

// Insert writes one assessment.
func (r *AssessmentRepository) Insert(ctx context.Context, a *domain.RiskAssessment) error {
	plan, err := json.Marshal(a.Interventions)
	if err != nil {
		return fmt.Errorf("encode interventions for %s: %w", a.StudentID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO risk_assessments
			(student_id, risk_tier, assessment, interventions, alert_action, assessed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.StudentID, a.Tier.String(), a.Assessment, plan, string(a.Action), a.AssessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assessment for %s: %w", a.StudentID, err)
	}
	return nil
}

// Latest returns the most recent assessment for a student, or nil when
// none exists.
func (r *AssessmentRepository) Latest(ctx context.Context, studentID string) (*domain.RiskAssessment, error) {
	var rows []assessmentRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT student_id, risk_tier, assessment, interventions, alert_action, assessed_at
		FROM risk_assessments
		WHERE student_id = $1
		ORDER BY assessed_at DESC
		LIMIT 1`, studentID)
	if err != nil {
		return nil, fmt.Errorf("latest assessment for %s: %w", studentID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain()
}

// HistoryForStudent returns assessments newest first.
func (r *AssessmentRepository) HistoryForStudent(ctx context.Context, studentID string, limit int) ([]domain.RiskAssessment, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []assessmentRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT student_id, risk_tier, assessment, interventions, alert_action, assessed_at
		FROM risk_assessments
		WHERE student_id = $1
		ORDER BY assessed_at DESC
		LIMIT $2`, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("assessment history for %s: %w", studentID, err)
	}

	out := make([]domain.RiskAssessment, 0, len(rows))
	for _, row := range rows {
		a, convErr := row.toDomain()
		if convErr != nil {
			return nil, convErr
		}
		out = append(out, *a)
	}
	return out, nil
}

func (row assessmentRow) toDomain() (*domain.RiskAssessment, error) {
	tier, err := domain.ParseRiskTier(row.RiskTier)
	if err != nil {
		return nil, fmt.Errorf("assessment row for %s: %w", row.StudentID, err)
	}

	var interventions []domain.Intervention
	if len(row.Interventions) > 0 {
		if err := json.Unmarshal(row.Interventions, &interventions); err != nil {
			return nil, fmt.Errorf("decode interventions for %s: %w", row.StudentID, err)
		}
	}

	return &domain.RiskAssessment{
		StudentID:     row.StudentID,
		Tier:          tier,
		Assessment:    row.Assessment,
		Interventions: interventions,
		Action:        domain.AlertAction(row.AlertAction),
		AssessedAt:    row.AssessedAt,
	}, nil
}
