package domain

import "time"

// ResponseCategory selects the behavioral guidelines for a chat reply.
type ResponseCategory string

// Chat response categories.
const (
	ResponseGeneralSupport ResponseCategory = "general_support"
	ResponseHighRisk       ResponseCategory = "high_risk"
	ResponseAcademicStress ResponseCategory = "academic_stress"
)

// Trend labels the direction of a session's sentiment.
type Trend string

// Sentiment trend labels.
const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// ChatExchange is one student message and the reply it produced,
// with the analysis that drove the reply.
type ChatExchange struct {
	StudentID string           `json:"student_id"`
	Message   string           `json:"student_message"`
	Reply     string           `json:"bot_response"`
	Category  ResponseCategory `json:"response_type"`
	Sentiment *SentimentResult `json:"sentiment_analysis"`
	Timestamp time.Time        `json:"timestamp"`
}

// Resource is a support resource attached to a chat reply.
type Resource struct {
	Type        string `json:"type"` // "crisis", "professional", "academic"
	Name        string `json:"name"`
	Contact     string `json:"contact,omitempty"`
	Description string `json:"description,omitempty"`
}

// ConversationState is the mutable per-session record. The chat package
// owns all mutation under a per-session lock; this struct itself carries
// no synchronization so it can be snapshotted and persisted freely.
type ConversationState struct {
	SessionID        string        `json:"session_id"`
	StudentID        string        `json:"student_id"`
	MessageCount     int           `json:"message_count"`
	CompoundHistory  []float64     `json:"compound_history"`
	AverageSentiment float64       `json:"average_sentiment"`
	HighestRisk      TextRiskLevel `json:"highest_risk"`
	CurrentRisk      TextRiskLevel `json:"current_risk"`
	HighRiskCount    int           `json:"high_risk_messages"`
	MediumRiskCount  int           `json:"medium_risk_messages"`
	// NeedsHumanReview is sticky: once any message in the session scores
	// high it stays set for the lifetime of the session.
	NeedsHumanReview bool      `json:"needs_human_review"`
	CounselorAlerted bool      `json:"counselor_alerted"`
	StartedAt        time.Time `json:"started_at"`
	LastMessageAt    time.Time `json:"last_message_at"`
}

// ConversationSummary is the counselor-facing rollup of a session.
type ConversationSummary struct {
	SessionID          string    `json:"session_id"`
	ConversationLength int       `json:"conversation_length"`
	SentimentTrend     Trend     `json:"sentiment_trend"`
	AverageSentiment   float64   `json:"average_sentiment"`
	HighRiskMessages   int       `json:"high_risk_messages"`
	MediumRiskMessages int       `json:"medium_risk_messages"`
	NeedsHumanReview   bool      `json:"needs_human_review"`
	LastInteraction    time.Time `json:"last_interaction"`
	KeyConcerns        []string  `json:"key_concerns"`
	Recommendations    []string  `json:"recommendations"`
}

// ChatResponse is the full payload returned for one chat message.
type ChatResponse struct {
	SessionID         string           `json:"session_id"`
	StudentID         string           `json:"student_id"`
	Timestamp         time.Time        `json:"timestamp"`
	Message           string           `json:"student_message"`
	Reply             string           `json:"bot_response"`
	Category          ResponseCategory `json:"response_type"`
	Sentiment         *SentimentResult `json:"sentiment_analysis"`
	Resources         []Resource       `json:"resources_provided"`
	ReplySource       string           `json:"reply_source"` // "backend" or "fallback"
	NeedsHumanReview  bool             `json:"needs_human_intervention"`
	CounselorAlert    bool             `json:"counselor_alert"`
}
