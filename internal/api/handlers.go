// Package api exposes the risk pipeline over HTTP: sentiment analysis,
// structured assessment, the support chat and the alert feed.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edupulse/riskcore/internal/chat"
	"github.com/edupulse/riskcore/internal/database"
	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/processor"
	"github.com/edupulse/riskcore/internal/scoring"
)

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// DocumentMirror mirrors chat documents for counselor dashboard reads.
// A nil mirror disables mirroring; writes are best effort.
type DocumentMirror interface {
	SaveAnalysis(ctx context.Context, studentID string, result *domain.SentimentResult) error
	SaveSummary(ctx context.Context, summary *domain.ConversationSummary) error
}

// Handler handles HTTP requests for the riskcore API
type Handler struct {
	analyzer    *scoring.Analyzer
	pipeline    *processor.Pipeline
	batch       *processor.BatchProcessor
	chatbot     *chat.Chatbot
	students    *database.StudentRepository
	assessments *database.AssessmentRepository
	alerts      *database.AlertRepository
	chatStore   *database.ChatRepository
	mirror      DocumentMirror
	readiness   []ReadinessCheck
	logger      Logger
}

// ReadinessCheck reports one dependency's health for /ready.
type ReadinessCheck struct {
	Name  string
	Check func() error
}

// NewHandler creates a new API handler
func NewHandler(
	analyzer *scoring.Analyzer,
	pipeline *processor.Pipeline,
	batch *processor.BatchProcessor,
	chatbot *chat.Chatbot,
	students *database.StudentRepository,
	assessments *database.AssessmentRepository,
	alerts *database.AlertRepository,
	chatStore *database.ChatRepository,
	mirror DocumentMirror,
	readiness []ReadinessCheck,
	logger Logger,
) *Handler {
	return &Handler{
		analyzer:    analyzer,
		pipeline:    pipeline,
		batch:       batch,
		chatbot:     chatbot,
		students:    students,
		assessments: assessments,
		alerts:      alerts,
		chatStore:   chatStore,
		mirror:      mirror,
		readiness:   readiness,
		logger:      logger,
	}
}

// AnalyzeSentiment handles POST /api/v1/sentiment
func (h *Handler) AnalyzeSentiment(c *gin.Context) {
	var req SentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid sentiment request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.analyzer.Analyze(req.Text)
	c.JSON(http.StatusOK, result)
}

// AnalyzeSentimentBatch handles POST /api/v1/sentiment/batch
func (h *Handler) AnalyzeSentimentBatch(c *gin.Context) {
	var req SentimentBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid batch sentiment request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := h.analyzer.AnalyzeBatch(req.Texts)
	c.JSON(http.StatusOK, SentimentBatchResponse{
		Results: results,
		Total:   len(results),
	})
}

// AssessStudent handles POST /api/v1/students/assess. The caller either
// submits full metrics inline or just a student ID to assess from the
// stored roster snapshot.
func (h *Handler) AssessStudent(c *gin.Context) {
	var req AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid assessment request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics, err := h.resolveMetrics(c, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.logger.Info("Assessing student", "student_id", metrics.StudentID)

	assessment, err := h.pipeline.Assess(c.Request.Context(), metrics)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// AssessBatch handles POST /api/v1/students/assess/batch
func (h *Handler) AssessBatch(c *gin.Context) {
	var req AssessBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid batch assessment request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := h.batch.Process(c.Request.Context(), req.Students)

	resp := AssessBatchResponse{Total: len(results)}
	for _, result := range results {
		if result.Error != nil {
			resp.Failed++
			resp.Results = append(resp.Results, AssessResult{
				StudentID: result.Metrics.StudentID,
				Error:     result.Error.Error(),
			})
			continue
		}
		resp.Success++
		resp.Results = append(resp.Results, AssessResult{
			StudentID:  result.Metrics.StudentID,
			Assessment: result.Assessment,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Chat handles POST /api/v1/chat
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid chat request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatbot.Message(c.Request.Context(), req.StudentID, req.SessionID, req.Message)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// Persist the exchange for counselor review; the reply has already
	// been produced, so a storage failure only loses history.
	if h.chatStore != nil && resp.Sentiment != nil {
		exchange := domain.ChatExchange{
			StudentID: resp.StudentID,
			Message:   resp.Message,
			Reply:     resp.Reply,
			Category:  resp.Category,
			Sentiment: resp.Sentiment,
			Timestamp: resp.Timestamp,
		}
		if err := h.chatStore.Insert(c.Request.Context(), resp.SessionID, &exchange); err != nil {
			h.logger.Error("Failed to persist chat exchange",
				"session_id", resp.SessionID,
				"error", err,
			)
		}
	}
	if h.mirror != nil && resp.Sentiment != nil {
		if err := h.mirror.SaveAnalysis(c.Request.Context(), resp.StudentID, resp.Sentiment); err != nil {
			h.logger.Warn("Failed to mirror chat analysis",
				"session_id", resp.SessionID,
				"error", err,
			)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ChatSummary handles GET /api/v1/chat/:session_id/summary
func (h *Handler) ChatSummary(c *gin.Context) {
	sessionID := c.Param("session_id")

	summary, err := h.chatbot.Summary(sessionID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// Refresh the dashboard's summary document on read.
	if h.mirror != nil {
		if err := h.mirror.SaveSummary(c.Request.Context(), summary); err != nil {
			h.logger.Warn("Failed to mirror conversation summary",
				"session_id", sessionID,
				"error", err,
			)
		}
	}

	c.JSON(http.StatusOK, summary)
}

// ListAlerts handles GET /api/v1/alerts
func (h *Handler) ListAlerts(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	alerts, err := h.alerts.Recent(c.Request.Context(), c.Query("type"), c.Query("student_id"), limit)
	if err != nil {
		h.logger.Error("Failed to list alerts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list alerts"})
		return
	}

	c.JSON(http.StatusOK, AlertsListResponse{Alerts: alerts, Total: len(alerts)})
}

// GetStudent handles GET /api/v1/students/:student_id
func (h *Handler) GetStudent(c *gin.Context) {
	metrics, err := h.students.Get(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// LatestAssessment handles GET /api/v1/students/:student_id/assessments/latest
func (h *Handler) LatestAssessment(c *gin.Context) {
	studentID := c.Param("student_id")

	assessment, err := h.assessments.Latest(c.Request.Context(), studentID)
	if err != nil {
		h.logger.Error("Failed to load latest assessment", "student_id", studentID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessment"})
		return
	}
	if assessment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no assessment for student " + studentID})
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// AssessmentHistory handles GET /api/v1/students/:student_id/assessments
func (h *Handler) AssessmentHistory(c *gin.Context) {
	studentID := c.Param("student_id")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	history, err := h.assessments.HistoryForStudent(c.Request.Context(), studentID, limit)
	if err != nil {
		h.logger.Error("Failed to load assessment history", "student_id", studentID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessment history"})
		return
	}
	c.JSON(http.StatusOK, AssessmentHistoryResponse{Assessments: history, Total: len(history)})
}

// ChatHistory handles GET /api/v1/chat/:session_id/history
func (h *Handler) ChatHistory(c *gin.Context) {
	sessionID := c.Param("session_id")

	exchanges, err := h.chatStore.SessionHistory(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to load chat history", "session_id", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat history"})
		return
	}
	c.JSON(http.StatusOK, ChatHistoryResponse{
		SessionID: sessionID,
		Exchanges: exchanges,
		Total:     len(exchanges),
	})
}

// UpsertStudent handles PUT /api/v1/students/:student_id
func (h *Handler) UpsertStudent(c *gin.Context) {
	var metrics domain.StudentMetrics
	if err := c.ShouldBindJSON(&metrics); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	metrics.StudentID = c.Param("student_id")

	if err := metrics.Validate(); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := h.students.Upsert(c.Request.Context(), &metrics); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "riskcore",
		"version": "1.0.0",
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	checks := gin.H{}
	ready := true
	for _, rc := range h.readiness {
		if err := rc.Check(); err != nil {
			checks[rc.Name] = err.Error()
			ready = false
			continue
		}
		checks[rc.Name] = "ok"
	}

	status := http.StatusOK
	label := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		label = "not ready"
	}
	c.JSON(status, gin.H{"status": label, "checks": checks})
}

// resolveMetrics returns inline metrics when present, otherwise loads
// the roster snapshot for the requested student ID.
func (h *Handler) resolveMetrics(c *gin.Context, req *AssessRequest) (*domain.StudentMetrics, error) {
	if req.Metrics != nil {
		if req.Metrics.StudentID == "" {
			req.Metrics.StudentID = req.StudentID
		}
		if err := req.Metrics.Validate(); err != nil {
			return nil, err
		}
		return req.Metrics, nil
	}
	if req.StudentID == "" {
		return nil, domain.NewValidationError("student_id", "student_id or metrics required")
	}
	if h.students == nil {
		return nil, domain.NewValidationError("metrics", "roster lookups are not configured")
	}
	return h.students.Get(c.Request.Context(), req.StudentID)
}

// respondDomainError maps domain errors onto HTTP status codes.
func respondDomainError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr), errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrBackendUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
