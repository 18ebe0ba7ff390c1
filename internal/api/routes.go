package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes. metricsHandler serves the
// Prometheus scrape endpoint and may be nil.
func SetupRoutes(router *gin.Engine, handler *Handler, metricsHandler http.Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Text analysis endpoints
		sentiment := v1.Group("/sentiment")
		{
			sentiment.POST("", handler.AnalyzeSentiment)            // POST /api/v1/sentiment
			sentiment.POST("/batch", handler.AnalyzeSentimentBatch) // POST /api/v1/sentiment/batch
		}

		// Structured risk endpoints
		students := v1.Group("/students")
		{
			students.POST("/assess", handler.AssessStudent)     // POST /api/v1/students/assess
			students.POST("/assess/batch", handler.AssessBatch) // POST /api/v1/students/assess/batch
			students.GET("/:student_id", handler.GetStudent)    // GET /api/v1/students/:student_id
			students.PUT("/:student_id", handler.UpsertStudent) // PUT /api/v1/students/:student_id

			students.GET("/:student_id/assessments", handler.AssessmentHistory)       // GET /api/v1/students/:student_id/assessments
			students.GET("/:student_id/assessments/latest", handler.LatestAssessment) // GET /api/v1/students/:student_id/assessments/latest
		}

		// Support chat endpoints
		chatGroup := v1.Group("/chat")
		{
			chatGroup.POST("", handler.Chat)                           // POST /api/v1/chat
			chatGroup.GET("/:session_id/summary", handler.ChatSummary) // GET /api/v1/chat/:session_id/summary
			chatGroup.GET("/:session_id/history", handler.ChatHistory) // GET /api/v1/chat/:session_id/history
		}

		// Alert feed
		v1.GET("/alerts", handler.ListAlerts) // GET /api/v1/alerts
	}
}
