package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edupulse/riskcore/internal/domain"
)

// ChatRepository persists chat exchanges for counselor review. The full
// analysis payload is stored as JSONB alongside the flat columns used
// for filtering.
type ChatRepository struct {
	db *sqlx.DB
}

// NewChatRepository creates a new repository
func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

type chatRow struct {
	SessionID string    `db:"session_id"`
	StudentID string    `db:"student_id"`
	Message   string    `db:"message"`
	Reply     string    `db:"reply"`
	Category  string    `db:"category"`
	RiskLevel string    `db:"risk_level"`
	Sentiment []byte    `db:"sentiment"`
	CreatedAt time.Time `db:"created_at"`
}

// Insert writes one exchange.
func (r *ChatRepository) Insert(ctx context.Context, sessionID string, ex *domain.ChatExchange) error {
	sentiment, err := json.Marshal(ex.Sentiment)
	if err != nil {
		return fmt.Errorf("encode sentiment for session %s: %w", sessionID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO chat_messages
			(session_id, student_id, message, reply, category, risk_level, sentiment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sessionID, ex.StudentID, ex.Message, ex.Reply, string(ex.Category),
		ex.Sentiment.RiskLevel.String(), sentiment, ex.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert chat message for session %s: %w", sessionID, err)
	}
	return nil
}

// SessionHistory returns a session's exchanges oldest first.
func (r *ChatRepository) SessionHistory(ctx context.Context, sessionID string) ([]domain.ChatExchange, error) {
	var rows []chatRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT session_id, student_id, message, reply, category, risk_level, sentiment, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("chat history for session %s: %w", sessionID, err)
	}

	exchanges := make([]domain.ChatExchange, 0, len(rows))
	for _, row := range rows {
		ex := domain.ChatExchange{
			StudentID: row.StudentID,
			Message:   row.Message,
			Reply:     row.Reply,
			Category:  domain.ResponseCategory(row.Category),
			Timestamp: row.CreatedAt,
		}
		if len(row.Sentiment) > 0 {
			var sentiment domain.SentimentResult
			if err := json.Unmarshal(row.Sentiment, &sentiment); err != nil {
				return nil, fmt.Errorf("decode sentiment for session %s: %w", sessionID, err)
			}
			// Stored analyses re-enter the core here; a structurally
			// inconsistent row is rejected, not patched.
			if err := sentiment.Validate(); err != nil {
				return nil, fmt.Errorf("stored sentiment for session %s: %w", sessionID, err)
			}
			ex.Sentiment = &sentiment
		}
		exchanges = append(exchanges, ex)
	}
	return exchanges, nil
}
