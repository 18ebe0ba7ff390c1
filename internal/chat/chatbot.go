package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/llmclient"
	"github.com/edupulse/riskcore/internal/scoring"
	"github.com/edupulse/riskcore/internal/telemetry"
)

// Reply source labels on ChatResponse.
const (
	ReplySourceBackend  = "backend"
	ReplySourceFallback = "fallback"
)

// Backend fallback reasons, recorded in metrics.
const (
	fallbackReasonDisabled = "disabled"
	fallbackReasonError    = "backend_error"
)

// TextGenerator produces a free-form counselor reply. The production
// implementation is llmclient.Client.
type TextGenerator interface {
	Enabled() bool
	Generate(ctx context.Context, req *llmclient.GenerateRequest) (string, error)
}

// Alerter receives counselor escalations raised by high-risk messages.
type Alerter interface {
	ChatCrisis(ctx context.Context, state domain.ConversationState, result *domain.SentimentResult) error
}

// Chatbot orchestrates one student message end to end: analyze, fold into
// the session, pick a reply strategy, generate or fall back, escalate.
type Chatbot struct {
	analyzer  *scoring.Analyzer
	sessions  *Manager
	backend   TextGenerator
	alerter   Alerter
	telemetry *telemetry.Provider
	logger    Logger
}

// NewChatbot creates the chat orchestrator. backend and alerter may be
// nil; a nil backend means every reply uses the deterministic fallback.
func NewChatbot(analyzer *scoring.Analyzer, sessions *Manager, backend TextGenerator, alerter Alerter, logger Logger, tp *telemetry.Provider) *Chatbot {
	return &Chatbot{
		analyzer:  analyzer,
		sessions:  sessions,
		backend:   backend,
		alerter:   alerter,
		telemetry: tp,
		logger:    logger,
	}
}

// Message processes one student chat message and returns the full
// response payload. An empty message produces the greeting without
// touching session risk state.
func (c *Chatbot) Message(ctx context.Context, studentID, sessionID, message string) (*domain.ChatResponse, error) {
	session, sessionID := c.sessions.GetOrCreate(sessionID, studentID)

	if strings.TrimSpace(message) == "" {
		return &domain.ChatResponse{
			SessionID:   sessionID,
			StudentID:   studentID,
			Timestamp:   time.Now(),
			Reply:       defaultGreeting,
			Category:    domain.ResponseGeneralSupport,
			ReplySource: ReplySourceFallback,
		}, nil
	}

	// 1. Analyze the message.
	result := c.analyzer.Analyze(message)

	// 2. Fold it into the session and take a snapshot.
	state := session.Apply(result)

	// 3. Pick the reply strategy.
	category := responseCategory(result)
	if c.telemetry != nil {
		c.telemetry.RecordChatMessage(string(category))
	}

	// 4. Generate the reply, falling back to the canned templates when
	// the backend is unavailable or fails.
	reply, source := c.generateReply(ctx, session, category, message, result)

	// 5. Escalate to a counselor on every high-risk message.
	if state.CounselorAlerted {
		c.escalate(ctx, state, result)
	}

	exchange := domain.ChatExchange{
		StudentID: studentID,
		Message:   message,
		Reply:     reply,
		Category:  category,
		Sentiment: result,
		Timestamp: result.Timestamp,
	}
	session.Record(exchange)
	c.sessions.Persist(ctx, session.Snapshot())

	return &domain.ChatResponse{
		SessionID:        sessionID,
		StudentID:        studentID,
		Timestamp:        result.Timestamp,
		Message:          message,
		Reply:            reply,
		Category:         category,
		Sentiment:        result,
		Resources:        relevantResources(result, category),
		ReplySource:      source,
		NeedsHumanReview: state.NeedsHumanReview,
		CounselorAlert:   state.CounselorAlerted,
	}, nil
}

// Summary returns the counselor-facing rollup for a session.
func (c *Chatbot) Summary(sessionID string) (*domain.ConversationSummary, error) {
	session, ok := c.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %q: %w", sessionID, domain.ErrInvalidInput)
	}
	summary := Summarize(session.Snapshot(), session.History())
	return &summary, nil
}

func (c *Chatbot) generateReply(ctx context.Context, session *Session, category domain.ResponseCategory, message string, result *domain.SentimentResult) (string, string) {
	if c.backend == nil || !c.backend.Enabled() {
		if c.telemetry != nil {
			c.telemetry.RecordBackendFallback(fallbackReasonDisabled)
		}
		return fallbackReply(message, result), ReplySourceFallback
	}

	req := &llmclient.GenerateRequest{
		Category:  string(category),
		StudentID: session.Snapshot().StudentID,
		Message:   message,
		Sentiment: formatSentimentContext(result),
		History:   historyEntries(session.RecentContext()),
	}

	reply, err := c.backend.Generate(ctx, req)
	if err != nil {
		var backendErr *domain.BackendError
		if !errors.As(err, &backendErr) {
			c.logger.Error("unexpected backend failure", "error", err)
		} else {
			c.logger.Warn("backend unavailable, using fallback reply",
				"category", category,
				"error", err,
			)
		}
		if c.telemetry != nil {
			c.telemetry.RecordBackendFallback(fallbackReasonError)
		}
		return fallbackReply(message, result), ReplySourceFallback
	}
	return reply, ReplySourceBackend
}

func (c *Chatbot) escalate(ctx context.Context, state domain.ConversationState, result *domain.SentimentResult) {
	if c.telemetry != nil {
		c.telemetry.RecordCounselorAlert()
	}
	c.logger.Warn("counselor alert raised",
		"session_id", state.SessionID,
		"student_id", state.StudentID,
		"high_risk_messages", state.HighRiskCount,
	)
	if c.alerter == nil {
		return
	}
	if err := c.alerter.ChatCrisis(ctx, state, result); err != nil {
		c.logger.Error("counselor alert delivery failed",
			"session_id", state.SessionID,
			"error", err,
		)
	}
}

// formatSentimentContext renders the analysis block handed to the
// generative backend.
func formatSentimentContext(result *domain.SentimentResult) string {
	keywords := make([]string, 0, len(result.Emotion.DetectedKeywords))
	for _, kw := range result.Emotion.DetectedKeywords {
		keywords = append(keywords, kw.Term)
	}
	return fmt.Sprintf(
		"Risk Level: %s\nOverall Sentiment: %s\nEmotional Keywords: %s\nAcademic Stress: %t\nNeeds Attention: %t",
		result.RiskLevel,
		result.OverallSentiment,
		strings.Join(keywords, ", "),
		result.AcademicStress.HasAcademicStress,
		result.NeedsAttention,
	)
}

func historyEntries(exchanges []domain.ChatExchange) []llmclient.HistoryEntry {
	entries := make([]llmclient.HistoryEntry, 0, len(exchanges))
	for _, ex := range exchanges {
		entries = append(entries, llmclient.HistoryEntry{
			Student:   ex.Message,
			Counselor: ex.Reply,
		})
	}
	return entries
}
