// Package chat implements the conversational session policy: per-session
// risk state, response category selection, trend tracking, counselor
// escalation and deterministic fallback replies.
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/telemetry"
)

// historyContextWindow is how many prior exchanges are passed to the
// generative backend as conversation context.
const historyContextWindow = 5

// SessionStore mirrors session snapshots to external storage. The core
// never reads its own history back through the store; it exists so a
// counselor dashboard can observe live sessions.
type SessionStore interface {
	Save(ctx context.Context, state *domain.ConversationState) error
}

// Session is the mutable state of one chat conversation. All mutation
// happens under the session's own lock, so concurrent messages within a
// session cannot interleave their append-and-recompute steps.
type Session struct {
	mu        sync.Mutex
	state     domain.ConversationState
	exchanges []domain.ChatExchange
}

// Apply folds one analyzed message into the session state and returns a
// snapshot of the updated state. needsHumanReview is sticky; the
// counselor alert decision is per-message and is read from the snapshot's
// CounselorAlerted field.
func (s *Session) Apply(result *domain.SentimentResult) domain.ConversationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.MessageCount++
	s.state.CompoundHistory = append(s.state.CompoundHistory, result.Scores.VaderCompound)
	s.state.AverageSentiment = mean(s.state.CompoundHistory)
	s.state.CurrentRisk = result.RiskLevel
	if result.RiskLevel > s.state.HighestRisk {
		s.state.HighestRisk = result.RiskLevel
	}

	switch result.RiskLevel {
	case domain.TextRiskHigh:
		s.state.HighRiskCount++
		s.state.NeedsHumanReview = true // sticky for the session lifetime
	case domain.TextRiskMedium:
		s.state.MediumRiskCount++
	case domain.TextRiskLow:
	}

	// Re-fires on every high-risk message, not just the first.
	s.state.CounselorAlerted = result.RiskLevel == domain.TextRiskHigh

	s.state.LastMessageAt = result.Timestamp
	return s.snapshotLocked()
}

// Record appends the completed exchange to the session transcript.
func (s *Session) Record(exchange domain.ChatExchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = append(s.exchanges, exchange)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() domain.ConversationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// History returns a copy of the session transcript.
func (s *Session) History() []domain.ChatExchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatExchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}

// RecentContext returns up to historyContextWindow trailing exchanges.
func (s *Session) RecentContext() []domain.ChatExchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := len(s.exchanges) - historyContextWindow
	if start < 0 {
		start = 0
	}
	out := make([]domain.ChatExchange, len(s.exchanges)-start)
	copy(out, s.exchanges[start:])
	return out
}

// snapshotLocked copies the state. MUST be called with s.mu held.
func (s *Session) snapshotLocked() domain.ConversationState {
	snap := s.state
	snap.CompoundHistory = make([]float64, len(s.state.CompoundHistory))
	copy(snap.CompoundHistory, s.state.CompoundHistory)
	return snap
}

// Manager owns the session registry. Sessions are created on the first
// message of a conversation and never deleted by the core; retention is
// owned by the persistence collaborator.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	store     SessionStore
	telemetry *telemetry.Provider
	logger    Logger
}

// NewManager creates a session manager. store may be nil (no mirroring).
func NewManager(store SessionStore, logger Logger, tp *telemetry.Provider) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		store:     store,
		telemetry: tp,
		logger:    logger,
	}
}

// GetOrCreate returns the session for sessionID, creating it when
// sessionID is empty or unknown. The returned ID identifies the session
// for subsequent messages.
func (m *Manager) GetOrCreate(sessionID, studentID string) (*Session, string) {
	if sessionID != "" {
		m.mu.RLock()
		existing, ok := m.sessions[sessionID]
		m.mu.RUnlock()
		if ok {
			return existing, sessionID
		}
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session := &Session{
		state: domain.ConversationState{
			SessionID: sessionID,
			StudentID: studentID,
			StartedAt: time.Now(),
		},
	}

	m.mu.Lock()
	if existing, ok := m.sessions[sessionID]; ok {
		// Lost a creation race; use the winner.
		m.mu.Unlock()
		return existing, sessionID
	}
	m.sessions[sessionID] = session
	count := len(m.sessions)
	m.mu.Unlock()

	if m.telemetry != nil {
		m.telemetry.Metrics.SessionsActive.Set(float64(count))
	}
	return session, sessionID
}

// Get returns the session for sessionID, if it exists.
func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	return s, ok
}

// Persist mirrors a state snapshot through the store, best effort.
func (m *Manager) Persist(ctx context.Context, state domain.ConversationState) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, &state); err != nil && m.logger != nil {
		m.logger.Warn("session snapshot save failed",
			"session_id", state.SessionID,
			"error", err,
		)
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
