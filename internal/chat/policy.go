package chat

import (
	"math"

	"github.com/edupulse/riskcore/internal/domain"
)

const (
	// trendWindow is how many trailing scores form the "recent" average.
	trendWindow = 3
	// trendDelta is the minimum recent-vs-earlier gap that counts as a
	// direction rather than noise.
	trendDelta = 0.1
	// maxKeyConcerns caps the distinct risk terms surfaced in a summary.
	maxKeyConcerns = 5
	// followUpMediumThreshold is the medium-risk message count that
	// triggers a human follow-up recommendation.
	followUpMediumThreshold = 3
)

// responseCategory maps a message analysis to the reply strategy. High
// risk always wins; academic stress wins over everything except high risk.
func responseCategory(result *domain.SentimentResult) domain.ResponseCategory {
	if result.RiskLevel == domain.TextRiskHigh {
		return domain.ResponseHighRisk
	}
	if result.AcademicStress.HasAcademicStress {
		return domain.ResponseAcademicStress
	}
	return domain.ResponseGeneralSupport
}

// sentimentTrend compares the average of the last trendWindow compound
// scores against the average of everything before them.
func sentimentTrend(compounds []float64) domain.Trend {
	if len(compounds) < 2 {
		return domain.TrendInsufficientData
	}

	recentStart := len(compounds) - trendWindow
	if recentStart < 0 {
		recentStart = 0
	}
	recent := mean(compounds[recentStart:])

	var earlier float64
	if recentStart > 0 {
		earlier = mean(compounds[:recentStart])
	}

	switch {
	case recent > earlier+trendDelta:
		return domain.TrendImproving
	case recent < earlier-trendDelta:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// Summarize builds a counselor-facing summary from a session snapshot and
// its transcript.
func Summarize(state domain.ConversationState, exchanges []domain.ChatExchange) domain.ConversationSummary {
	summary := domain.ConversationSummary{
		SessionID:          state.SessionID,
		ConversationLength: state.MessageCount,
		SentimentTrend:     sentimentTrend(state.CompoundHistory),
		AverageSentiment:   round3(state.AverageSentiment),
		HighRiskMessages:   state.HighRiskCount,
		MediumRiskMessages: state.MediumRiskCount,
		NeedsHumanReview:   state.NeedsHumanReview || state.MediumRiskCount >= followUpMediumThreshold,
		LastInteraction:    state.LastMessageAt,
		KeyConcerns:        keyConcerns(exchanges),
	}
	summary.Recommendations = recommendations(state, summary.SentimentTrend)
	return summary
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// keyConcerns collects distinct high- and medium-risk terms seen across
// the transcript, first-seen order, capped at maxKeyConcerns.
func keyConcerns(exchanges []domain.ChatExchange) []string {
	seen := make(map[string]bool)
	var concerns []string
	for _, ex := range exchanges {
		if ex.Sentiment == nil {
			continue
		}
		for _, kw := range ex.Sentiment.Emotion.DetectedKeywords {
			if kw.Tag == domain.KeywordTagPositive || seen[kw.Term] {
				continue
			}
			seen[kw.Term] = true
			concerns = append(concerns, kw.Term)
			if len(concerns) >= maxKeyConcerns {
				return concerns
			}
		}
	}
	return concerns
}

func recommendations(state domain.ConversationState, trend domain.Trend) []string {
	var recs []string
	if state.HighRiskCount > 0 {
		recs = append(recs,
			"URGENT: Immediate human counselor intervention recommended",
			"Schedule in-person or video call within 24 hours",
		)
	}
	if state.MediumRiskCount >= followUpMediumThreshold {
		recs = append(recs, "Schedule follow-up session with human counselor")
	}
	if trend == domain.TrendDeclining {
		recs = append(recs, "Monitor closely - sentiment trend is declining")
	}
	if state.HighRiskCount > 0 || state.MediumRiskCount >= followUpMediumThreshold {
		recs = append(recs, "Consider proactive outreach and additional support resources")
	}
	return recs
}
