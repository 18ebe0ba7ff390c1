package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edupulse/riskcore/internal/domain"
)

// AlertRepository persists raised alerts for the counselor dashboard.
type AlertRepository struct {
	db *sqlx.DB
}

// NewAlertRepository creates a new repository
func NewAlertRepository(db *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Insert writes one alert and backfills its ID.
func (r *AlertRepository) Insert(ctx context.Context, alert *domain.Alert) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO alerts
			(student_id, student_name, risk_level, alert_type, message, contact_window, session_id, delivered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		alert.StudentID, alert.StudentName, alert.RiskLevel, alert.AlertType,
		alert.Message, alert.ContactWindow, alert.SessionID, alert.Delivered, alert.CreatedAt,
	).Scan(&alert.ID)
	if err != nil {
		return fmt.Errorf("insert alert for %s: %w", alert.StudentID, err)
	}
	return nil
}

// Recent returns alerts newest first, optionally filtered by type and
// student. Empty filter values match everything.
func (r *AlertRepository) Recent(ctx context.Context, alertType, studentID string, limit int) ([]domain.Alert, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, student_id, student_name, risk_level, alert_type, message,
		       contact_window, session_id, delivered, created_at
		FROM alerts
		WHERE ($1 = '' OR alert_type = $1)
		  AND ($2 = '' OR student_id = $2)
		ORDER BY created_at DESC
		LIMIT $3`

	var alerts []domain.Alert
	if err := r.db.SelectContext(ctx, &alerts, query, alertType, studentID, limit); err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}
