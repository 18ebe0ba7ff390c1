package scoring

import (
	"strings"
	"time"

	"github.com/edupulse/riskcore/internal/domain"
	"github.com/edupulse/riskcore/internal/telemetry"
)

// Fusion thresholds from the scoring contract.
const (
	positiveSentimentThreshold = 0.1  // avg(polarity, compound) >= 0.1 -> positive
	negativeSentimentThreshold = -0.1 // avg(polarity, compound) <= -0.1 -> negative
	mediumRiskKeywordThreshold = 2    // distinct distress terms for medium risk
	estimatorDisagreementSpan  = 2.0  // |polarity - compound| normalizer
)

// Analyzer is the text sentiment scorer. All methods are pure functions
// of their input (plus the result timestamp); a single Analyzer is safe
// for unlimited concurrent use.
type Analyzer struct {
	matcher   *TaxonomyMatcher
	telemetry *telemetry.Provider
	logger    Logger
}

// NewAnalyzer builds the analyzer with its taxonomy automaton.
// telemetry may be nil (tests); logger may be nil for a silent analyzer.
func NewAnalyzer(logger Logger, tp *telemetry.Provider) *Analyzer {
	return &Analyzer{
		matcher:   NewTaxonomyMatcher(),
		telemetry: tp,
		logger:    logger,
	}
}

// Analyze scores one text. Total over any UTF-8 input: empty or
// whitespace-only text yields the fixed neutral result, never an error.
func (a *Analyzer) Analyze(text string) *domain.SentimentResult {
	start := time.Now()

	if strings.TrimSpace(text) == "" {
		return a.emptyResult()
	}

	// 1. Normalize
	cleaned := preprocessText(text)

	// 2. Two independent polarity estimates
	polarity, subjectivity := scorePolarity(cleaned)
	scores := scoreValence(cleaned)
	scores.Polarity = polarity
	scores.Subjectivity = subjectivity

	// 3. Taxonomy evidence
	emotion, stress := a.matcher.Scan(cleaned)

	// 4. Fusion
	overall := classifyOverallSentiment(polarity, scores.VaderCompound, emotion)
	risk := assessRiskLevel(emotion, overall, stress)

	result := &domain.SentimentResult{
		Text:              text,
		Timestamp:         time.Now(),
		Scores:            scores,
		OverallSentiment:  overall,
		Emotion:           emotion,
		AcademicStress:    stress,
		RiskLevel:         risk,
		NeedsAttention:    risk >= domain.TextRiskMedium,
		CounselorReferral: risk == domain.TextRiskHigh,
		Confidence:        estimatorAgreement(polarity, scores.VaderCompound),
	}

	if a.telemetry != nil {
		a.telemetry.RecordAnalysis(time.Since(start), risk.String())
	}
	a.logAnalysis(result, time.Since(start))

	return result
}

// AnalyzeBatch scores multiple texts in order.
func (a *Analyzer) AnalyzeBatch(texts []string) []*domain.SentimentResult {
	results := make([]*domain.SentimentResult, len(texts))
	for i, text := range texts {
		results[i] = a.Analyze(text)
	}
	return results
}

// classifyOverallSentiment fuses the two estimators with keyword
// evidence. Precedence: crisis keywords, then distress-vs-positive
// counts, then the averaged numeric score.
func classifyOverallSentiment(polarity, compound float64, emotion domain.EmotionAnalysis) domain.SentimentLabel {
	switch {
	case emotion.HighRiskCount > 0:
		return domain.SentimentVeryNegative
	case emotion.MediumRiskCount > emotion.PositiveCount:
		return domain.SentimentNegative
	}

	avg := (polarity + compound) / 2
	switch {
	case avg >= positiveSentimentThreshold:
		return domain.SentimentPositive
	case avg <= negativeSentimentThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// assessRiskLevel maps fused evidence to the text risk scale.
func assessRiskLevel(emotion domain.EmotionAnalysis, overall domain.SentimentLabel, stress domain.AcademicStress) domain.TextRiskLevel {
	switch {
	case emotion.HighRiskCount > 0:
		return domain.TextRiskHigh
	case emotion.MediumRiskCount >= mediumRiskKeywordThreshold,
		overall == domain.SentimentVeryNegative,
		overall == domain.SentimentNegative && stress.HasAcademicStress:
		return domain.TextRiskMedium
	default:
		return domain.TextRiskLow
	}
}

// estimatorAgreement is higher when the two independent estimators agree.
func estimatorAgreement(polarity, compound float64) float64 {
	agreement := 1 - abs(polarity-compound)/estimatorDisagreementSpan
	return clamp(agreement, 0, 1)
}

// emptyResult is the fixed neutral analysis for blank input.
func (a *Analyzer) emptyResult() *domain.SentimentResult {
	return &domain.SentimentResult{
		Text:             "",
		Timestamp:        time.Now(),
		Scores:           neutralValence(),
		OverallSentiment: domain.SentimentNeutral,
		Emotion:          domain.EmotionAnalysis{DetectedKeywords: []domain.KeywordMatch{}},
		AcademicStress:   domain.AcademicStress{DetectedTerms: []string{}},
		RiskLevel:        domain.TextRiskLow,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
