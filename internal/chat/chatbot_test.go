//nolint:testpackage // Testing internal chat requires same package access
package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/llmclient"
	"github.com/edupulse/riskcore/internal/scoring"
	"github.com/edupulse/riskcore/internal/testhelpers"
)

type stubBackend struct {
	enabled bool
	reply   string
	err     error
	lastReq *llmclient.GenerateRequest
}

func (b *stubBackend) Enabled() bool { return b.enabled }

func (b *stubBackend) Generate(ctx context.Context, req *llmclient.GenerateRequest) (string, error) {
	b.lastReq = req
	if b.err != nil {
		return "", b.err
	}
	return b.reply, nil
}

type recordingAlerter struct {
	calls  int
	states []domain.ConversationState
}

func (a *recordingAlerter) ChatCrisis(ctx context.Context, state domain.ConversationState, result *domain.SentimentResult) error {
	a.calls++
	a.states = append(a.states, state)
	return nil
}

func newTestChatbot(backend TextGenerator, alerter Alerter) *Chatbot {
	analyzer := scoring.NewAnalyzer(nil, nil)
	sessions := NewManager(nil, testhelpers.NopLogger{}, nil)
	return NewChatbot(analyzer, sessions, backend, alerter, testhelpers.NopLogger{}, nil)
}

func TestChatbot_Message_EmptyMessageGreets(t *testing.T) {
	t.Helper()

	bot := newTestChatbot(nil, nil)

	resp, err := bot.Message(context.Background(), "STU-001", "", "   ")
	if err != nil {
		t.Fatalf("Message returned error: %v", err)
	}

	if resp.Reply != defaultGreeting {
		t.Errorf("reply: got %q, want greeting", resp.Reply)
	}
	if resp.Category != domain.ResponseGeneralSupport {
		t.Errorf("category: got %s, want general_support", resp.Category)
	}
	if resp.Sentiment != nil {
		t.Error("greeting must carry no sentiment analysis")
	}

	// The greeting must not count as a message or touch risk state.
	summary, err := bot.Summary(resp.SessionID)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.ConversationLength != 0 {
		t.Errorf("conversation length after greeting: got %d, want 0", summary.ConversationLength)
	}
}

func TestChatbot_Message_HighRiskEscalates(t *testing.T) {
	t.Helper()

	alerter := &recordingAlerter{}
	bot := newTestChatbot(nil, alerter)

	resp, err := bot.Message(context.Background(), "STU-001", "", "I want to end it all")
	if err != nil {
		t.Fatalf("Message returned error: %v", err)
	}

	if resp.Category != domain.ResponseHighRisk {
		t.Errorf("category: got %s, want high_risk", resp.Category)
	}
	if resp.Reply != crisisFallback {
		t.Errorf("high-risk fallback reply: got %q", resp.Reply)
	}
	if resp.ReplySource != ReplySourceFallback {
		t.Errorf("reply source: got %s, want fallback", resp.ReplySource)
	}
	if !resp.CounselorAlert || !resp.NeedsHumanReview {
		t.Error("high-risk message must alert a counselor and flag human review")
	}
	if len(resp.Resources) == 0 || resp.Resources[0].Type != "crisis" {
		t.Errorf("expected crisis resources, got %v", resp.Resources)
	}
	if alerter.calls != 1 {
		t.Errorf("alerter calls: got %d, want 1", alerter.calls)
	}

	// A calm follow-up in the same session keeps review sticky but does
	// not alert again.
	resp2, err := bot.Message(context.Background(), "STU-001", resp.SessionID, "thanks, I feel better now")
	if err != nil {
		t.Fatalf("Message returned error: %v", err)
	}
	if resp2.CounselorAlert {
		t.Error("calm follow-up must not alert a counselor")
	}
	if !resp2.NeedsHumanReview {
		t.Error("human review must stay set for the session lifetime")
	}
	if alerter.calls != 1 {
		t.Errorf("alerter calls after calm follow-up: got %d, want 1", alerter.calls)
	}
}

func TestChatbot_Message_BackendReply(t *testing.T) {
	t.Helper()

	backend := &stubBackend{enabled: true, reply: "That sounds really tough. Tell me more?"}
	bot := newTestChatbot(backend, nil)

	resp, err := bot.Message(context.Background(), "STU-001", "", "I am stressed about my exam deadline")
	if err != nil {
		t.Fatalf("Message returned error: %v", err)
	}

	if resp.ReplySource != ReplySourceBackend {
		t.Errorf("reply source: got %s, want backend", resp.ReplySource)
	}
	if resp.Reply != backend.reply {
		t.Errorf("reply: got %q", resp.Reply)
	}
	if resp.Category != domain.ResponseAcademicStress {
		t.Errorf("category: got %s, want academic_stress", resp.Category)
	}

	if backend.lastReq == nil {
		t.Fatal("backend never received a request")
	}
	if backend.lastReq.Category != string(domain.ResponseAcademicStress) {
		t.Errorf("request category: got %s", backend.lastReq.Category)
	}
	if backend.lastReq.Sentiment == "" {
		t.Error("request should carry the sentiment context block")
	}
}

func TestChatbot_Message_BackendFailureFallsBack(t *testing.T) {
	t.Helper()

	tests := []struct {
		name    string
		backend *stubBackend
	}{
		{"backend error", &stubBackend{enabled: true, err: domain.NewBackendError("generate", errors.New("timeout"))}},
		{"unexpected error", &stubBackend{enabled: true, err: errors.New("boom")}},
		{"backend disabled", &stubBackend{enabled: false, reply: "never used"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := newTestChatbot(tt.backend, nil)

			resp, err := bot.Message(context.Background(), "STU-001", "", "I feel lonely")
			if err != nil {
				t.Fatalf("Message returned error: %v", err)
			}
			if resp.ReplySource != ReplySourceFallback {
				t.Errorf("reply source: got %s, want fallback", resp.ReplySource)
			}
			if resp.Reply != emotionalFallback {
				t.Errorf("fallback reply: got %q", resp.Reply)
			}
		})
	}
}

func TestChatbot_Message_PassesRecentHistory(t *testing.T) {
	t.Helper()

	backend := &stubBackend{enabled: true, reply: "ok"}
	bot := newTestChatbot(backend, nil)

	sessionID := ""
	for _, msg := range []string{"first message", "second message", "third message"} {
		resp, err := bot.Message(context.Background(), "STU-001", sessionID, msg)
		if err != nil {
			t.Fatalf("Message returned error: %v", err)
		}
		sessionID = resp.SessionID
	}

	if len(backend.lastReq.History) != 2 {
		t.Fatalf("history length on third message: got %d, want 2", len(backend.lastReq.History))
	}
	if backend.lastReq.History[0].Student != "first message" {
		t.Errorf("history order: got %q first", backend.lastReq.History[0].Student)
	}
}

func TestChatbot_Summary_UnknownSession(t *testing.T) {
	t.Helper()

	bot := newTestChatbot(nil, nil)

	_, err := bot.Summary("nope")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
