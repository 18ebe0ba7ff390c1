package api

import (
	"github.com/edupulse/riskcore/internal/domain"
)

// SentimentRequest represents a single analysis request.
type SentimentRequest struct {
	Text string `json:"text" binding:"required"`
}

// SentimentBatchRequest represents a batch analysis request.
type SentimentBatchRequest struct {
	Texts []string `json:"texts" binding:"required,min=1,max=100"`
}

// SentimentBatchResponse represents a batch analysis response.
type SentimentBatchResponse struct {
	Results []*domain.SentimentResult `json:"results"`
	Total   int                       `json:"total"`
}

// AssessRequest represents a structured assessment request. Either
// metrics is set inline or student_id names a roster entry.
type AssessRequest struct {
	StudentID string                 `json:"student_id"`
	Metrics   *domain.StudentMetrics `json:"metrics"`
}

// AssessBatchRequest represents a batch assessment request.
type AssessBatchRequest struct {
	Students []domain.StudentMetrics `json:"students" binding:"required,min=1,max=100"`
}

// AssessResult is one student's outcome inside a batch response.
type AssessResult struct {
	StudentID  string                 `json:"student_id"`
	Assessment *domain.RiskAssessment `json:"assessment,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// AssessBatchResponse represents a batch assessment response.
type AssessBatchResponse struct {
	Results []AssessResult `json:"results"`
	Total   int            `json:"total"`
	Success int            `json:"success"`
	Failed  int            `json:"failed"`
}

// ChatRequest represents one chat message.
type ChatRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// AssessmentHistoryResponse lists a student's assessments newest first.
type AssessmentHistoryResponse struct {
	Assessments []domain.RiskAssessment `json:"assessments"`
	Total       int                     `json:"total"`
}

// ChatHistoryResponse lists a session's exchanges oldest first.
type ChatHistoryResponse struct {
	SessionID string                `json:"session_id"`
	Exchanges []domain.ChatExchange `json:"exchanges"`
	Total     int                   `json:"total"`
}

// AlertsListResponse represents the alert feed.
type AlertsListResponse struct {
	Alerts []domain.Alert `json:"alerts"`
	Total  int            `json:"total"`
}
