//nolint:testpackage // Testing internal database requires same package access
package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // in-memory test database

	"github.com/edupulse/riskcore/internal/domain"
)

const chatMessagesSchema = `
	CREATE TABLE chat_messages (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		student_id TEXT NOT NULL,
		message    TEXT NOT NULL,
		reply      TEXT NOT NULL,
		category   TEXT NOT NULL,
		risk_level TEXT NOT NULL,
		sentiment  BLOB,
		created_at TIMESTAMP NOT NULL
	)`

func newTestChatRepository(t *testing.T) (*ChatRepository, *sqlx.DB) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(chatMessagesSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewChatRepository(db), db
}

func validSentiment() *domain.SentimentResult {
	return &domain.SentimentResult{
		Text:              "i feel hopeless",
		OverallSentiment:  domain.SentimentVeryNegative,
		Scores:            domain.SentimentScores{VaderCompound: -0.82},
		RiskLevel:         domain.TextRiskHigh,
		NeedsAttention:    true,
		CounselorReferral: true,
		Confidence:        0.8,
	}
}

func TestChatRepository_InsertAndSessionHistory(t *testing.T) {
	t.Helper()

	repo, _ := newTestChatRepository(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	exchanges := []domain.ChatExchange{
		{StudentID: "STU-001", Message: "first", Reply: "r1", Category: domain.ResponseHighRisk, Sentiment: validSentiment(), Timestamp: base},
		{StudentID: "STU-001", Message: "second", Reply: "r2", Category: domain.ResponseGeneralSupport, Sentiment: validSentiment(), Timestamp: base.Add(time.Second)},
	}
	for i := range exchanges {
		if err := repo.Insert(ctx, "sess-1", &exchanges[i]); err != nil {
			t.Fatalf("insert exchange: %v", err)
		}
	}
	other := domain.ChatExchange{StudentID: "STU-002", Message: "elsewhere", Reply: "r", Category: domain.ResponseGeneralSupport, Sentiment: validSentiment(), Timestamp: base}
	if err := repo.Insert(ctx, "sess-2", &other); err != nil {
		t.Fatalf("insert exchange: %v", err)
	}

	history, err := repo.SessionHistory(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history rows: got %d, want 2", len(history))
	}
	if history[0].Message != "first" || history[1].Message != "second" {
		t.Errorf("history should be oldest first, got %q then %q", history[0].Message, history[1].Message)
	}
	if history[0].Sentiment == nil {
		t.Fatal("stored sentiment should round-trip")
	}
	if history[0].Sentiment.RiskLevel != domain.TextRiskHigh {
		t.Errorf("sentiment risk level: got %s, want high", history[0].Sentiment.RiskLevel)
	}
}

// A stored analysis whose flags disagree with its risk level must be
// rejected when it is read back, not handed to the caller as-is.
func TestChatRepository_SessionHistory_MalformedSentiment(t *testing.T) {
	t.Helper()

	repo, db := newTestChatRepository(t)
	ctx := context.Background()

	malformed := `{"overall_sentiment":"negative","risk_level":"low","needs_attention":false,"counselor_referral":true,"confidence_score":0.5}`
	_, err := db.Exec(`
		INSERT INTO chat_messages
			(session_id, student_id, message, reply, category, risk_level, sentiment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		"sess-bad", "STU-001", "hi", "hello", "general_support", "low", []byte(malformed), time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed malformed row: %v", err)
	}

	if _, err := repo.SessionHistory(ctx, "sess-bad"); !errors.Is(err, domain.ErrMalformedResult) {
		t.Errorf("expected ErrMalformedResult, got %v", err)
	}
}
