package notify

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/edupulse/riskcore/internal/domain"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS notification_log (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id     TEXT NOT NULL,
	student_name   TEXT NOT NULL DEFAULT '',
	risk_level     TEXT NOT NULL,
	alert_type     TEXT NOT NULL,
	message        TEXT NOT NULL,
	contact_window TEXT NOT NULL,
	session_id     TEXT NOT NULL DEFAULT '',
	delivered      BOOLEAN NOT NULL,
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notification_log_student ON notification_log(student_id);
`

// SQLiteAuditLog keeps a local, queryable record of every alert attempt.
// It lives in its own embedded database so the audit trail survives even
// when the primary database is the thing that is down.
type SQLiteAuditLog struct {
	db *sqlx.DB
}

// NewSQLiteAuditLog opens (and migrates) the audit database at path.
// Use ":memory:" for tests.
func NewSQLiteAuditLog(path string) (*SQLiteAuditLog, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	if _, err := db.Exec(auditSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate audit database: %w", err)
	}
	return &SQLiteAuditLog{db: db}, nil
}

// Record inserts one audit row and backfills the alert ID.
func (l *SQLiteAuditLog) Record(ctx context.Context, alert *domain.Alert) error {
	res, err := l.db.ExecContext(ctx, `
		INSERT INTO notification_log
			(student_id, student_name, risk_level, alert_type, message, contact_window, session_id, delivered, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		alert.StudentID, alert.StudentName, alert.RiskLevel, alert.AlertType,
		alert.Message, alert.ContactWindow, alert.SessionID, alert.Delivered, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record alert for student %s: %w", alert.StudentID, err)
	}
	if id, err := res.LastInsertId(); err == nil {
		alert.ID = id
	}
	return nil
}

// History returns audit rows, newest first, optionally filtered by
// student.
func (l *SQLiteAuditLog) History(ctx context.Context, studentID string, limit int) ([]domain.Alert, error) {
	if limit <= 0 {
		limit = 100
	}

	var (
		alerts []domain.Alert
		err    error
	)
	if studentID != "" {
		err = l.db.SelectContext(ctx, &alerts, `
			SELECT * FROM notification_log WHERE student_id = ? ORDER BY created_at DESC LIMIT ?`,
			studentID, limit)
	} else {
		err = l.db.SelectContext(ctx, &alerts, `
			SELECT * FROM notification_log ORDER BY created_at DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("load alert history: %w", err)
	}
	return alerts, nil
}

// Close releases the underlying database handle.
func (l *SQLiteAuditLog) Close() error {
	return l.db.Close()
}
