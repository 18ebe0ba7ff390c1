package scoring

import (
	"strings"
	"time"

	"github.com/edupulse/riskcore/internal/domain"
)

const textExcerptWordLimit = 10

// truncateWords returns the first n words of s, appending "..." if truncated.
// Log lines carry an excerpt, never the full message text.
func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + "..."
}

// logAnalysis emits one structured line per completed sentiment analysis.
// High-risk results log at Warn so they stand out in aggregation.
func (a *Analyzer) logAnalysis(result *domain.SentimentResult, elapsed time.Duration) {
	if a.logger == nil {
		return
	}

	fields := []interface{}{
		"text_excerpt", truncateWords(result.Text, textExcerptWordLimit),
		"overall_sentiment", string(result.OverallSentiment),
		"risk_level", result.RiskLevel.String(),
		"compound", result.Scores.VaderCompound,
		"polarity", result.Scores.Polarity,
		"keywords_detected", len(result.Emotion.DetectedKeywords),
		"academic_stress", result.AcademicStress.HasAcademicStress,
		"confidence", result.Confidence,
		"duration_ms", elapsed.Milliseconds(),
	}

	if result.RiskLevel == domain.TextRiskHigh {
		a.logger.Warn("high-risk sentiment detected", fields...)
		return
	}
	a.logger.Debug("sentiment analysis complete", fields...)
}
