package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edupulse/riskcore/internal/domain"
)

// StudentRepository reads the student roster and metrics snapshots.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new repository
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Get returns one student's current metrics.
func (r *StudentRepository) Get(ctx context.Context, studentID string) (*domain.StudentMetrics, error) {
	var m domain.StudentMetrics
	err := r.db.GetContext(ctx, &m, `
		SELECT student_id, name, attendance, average_score,
		       assignments_submitted, total_assignments, engagement_score
		FROM students
		WHERE student_id = $1`, studentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("student %s: %w", studentID, domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("get student %s: %w", studentID, err)
	}
	return &m, nil
}

// List returns a page of the roster ordered by student ID.
func (r *StudentRepository) List(ctx context.Context, limit, offset int) ([]domain.StudentMetrics, error) {
	var students []domain.StudentMetrics
	err := r.db.SelectContext(ctx, &students, `
		SELECT student_id, name, attendance, average_score,
		       assignments_submitted, total_assignments, engagement_score
		FROM students
		ORDER BY student_id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Upsert inserts or refreshes one student's metrics snapshot.
func (r *StudentRepository) Upsert(ctx context.Context, m *domain.StudentMetrics) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO students
			(student_id, name, attendance, average_score, assignments_submitted, total_assignments, engagement_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (student_id) DO UPDATE SET
			name = EXCLUDED.name,
			attendance = EXCLUDED.attendance,
			average_score = EXCLUDED.average_score,
			assignments_submitted = EXCLUDED.assignments_submitted,
			total_assignments = EXCLUDED.total_assignments,
			engagement_score = EXCLUDED.engagement_score,
			updated_at = NOW()`,
		m.StudentID, m.Name, m.Attendance, m.AverageScore,
		m.AssignmentsSubmitted, m.TotalAssignments, m.EngagementScore,
	)
	if err != nil {
		return fmt.Errorf("upsert student %s: %w", m.StudentID, err)
	}
	return nil
}

// Count returns the roster size.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}
