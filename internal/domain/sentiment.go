package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TextRiskLevel is the ordered risk scale for the text path. It is
// deliberately a distinct type from RiskTier: the two scales are never
// silently equated, only mapped through AlertAction.
type TextRiskLevel int

// Text-path risk levels, least to most severe.
const (
	TextRiskLow TextRiskLevel = iota
	TextRiskMedium
	TextRiskHigh
)

// String returns the wire label (low/medium/high).
func (r TextRiskLevel) String() string {
	switch r {
	case TextRiskMedium:
		return "medium"
	case TextRiskHigh:
		return "high"
	default:
		return "low"
	}
}

// MarshalJSON encodes the level as its wire label.
func (r TextRiskLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON decodes a wire label back into a level.
func (r *TextRiskLevel) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	level, err := ParseTextRiskLevel(label)
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// ParseTextRiskLevel maps a wire label to its level.
func ParseTextRiskLevel(label string) (TextRiskLevel, error) {
	switch label {
	case "low":
		return TextRiskLow, nil
	case "medium":
		return TextRiskMedium, nil
	case "high":
		return TextRiskHigh, nil
	default:
		return TextRiskLow, fmt.Errorf("unknown risk level %q: %w", label, ErrMalformedResult)
	}
}

// AlertAction maps a text risk level onto the shared alerting contract.
func (r TextRiskLevel) AlertAction() AlertAction {
	switch r {
	case TextRiskHigh:
		return ActionEscalate
	case TextRiskMedium:
		return ActionFlag
	default:
		return ActionNone
	}
}

// SentimentLabel is the fused overall sentiment classification.
type SentimentLabel string

// Overall sentiment labels.
const (
	SentimentVeryNegative SentimentLabel = "very_negative"
	SentimentNegative     SentimentLabel = "negative"
	SentimentNeutral      SentimentLabel = "neutral"
	SentimentPositive     SentimentLabel = "positive"
)

// Keyword taxonomy tags.
const (
	KeywordTagHighRisk   = "high_risk"
	KeywordTagMediumRisk = "medium_risk"
	KeywordTagPositive   = "positive"
)

// SentimentScores holds the two independent polarity estimates computed
// over the cleaned text.
type SentimentScores struct {
	Polarity      float64 `json:"polarity"`       // general lexicon, [-1,1]
	Subjectivity  float64 `json:"subjectivity"`   // general lexicon, [0,1]
	VaderPositive float64 `json:"vader_positive"` // valence fractions sum to ~1
	VaderNeutral  float64 `json:"vader_neutral"`
	VaderNegative float64 `json:"vader_negative"`
	VaderCompound float64 `json:"vader_compound"` // [-1,1]
}

// KeywordMatch is one taxonomy hit: which list, which literal term.
type KeywordMatch struct {
	Tag  string `json:"tag"`
	Term string `json:"term"`
}

// EmotionAnalysis summarizes distress-taxonomy evidence in a text.
type EmotionAnalysis struct {
	HighRiskCount    int            `json:"high_risk_count"`
	MediumRiskCount  int            `json:"medium_risk_count"`
	PositiveCount    int            `json:"positive_count"`
	DetectedKeywords []KeywordMatch `json:"detected_keywords"`
}

// AcademicStress summarizes academic-stress-taxonomy evidence.
type AcademicStress struct {
	StressIndicators  int      `json:"stress_indicators"`
	DetectedTerms     []string `json:"detected_terms"`
	HasAcademicStress bool     `json:"has_academic_stress"`
}

// SentimentResult is the complete text-path evaluation of one message.
// Except for Timestamp it is a pure function of the input text.
type SentimentResult struct {
	Text              string          `json:"text"`
	Timestamp         time.Time       `json:"timestamp"`
	Scores            SentimentScores `json:"sentiment_scores"`
	OverallSentiment  SentimentLabel  `json:"overall_sentiment"`
	Emotion           EmotionAnalysis `json:"emotion_analysis"`
	AcademicStress    AcademicStress  `json:"academic_stress"`
	RiskLevel         TextRiskLevel   `json:"risk_level"`
	NeedsAttention    bool            `json:"needs_attention"`
	CounselorReferral bool            `json:"counselor_referral"`
	Confidence        float64         `json:"confidence_score"` // [0,1]
}

// Validate checks the structural contract of a result passed back in as
// history. Downstream policy depends on these fields being coherent, so a
// malformed prior analysis is rejected rather than patched with defaults.
func (s *SentimentResult) Validate() error {
	if s == nil {
		return NewMalformedResultError("result is nil")
	}
	if s.OverallSentiment == "" {
		return NewMalformedResultError("overall_sentiment missing")
	}
	if s.Scores.VaderCompound < -1 || s.Scores.VaderCompound > 1 {
		return NewMalformedResultError("vader_compound out of [-1,1]")
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return NewMalformedResultError("confidence_score out of [0,1]")
	}
	if s.CounselorReferral != (s.RiskLevel == TextRiskHigh) {
		return NewMalformedResultError("counselor_referral inconsistent with risk_level")
	}
	if s.NeedsAttention != (s.RiskLevel >= TextRiskMedium) {
		return NewMalformedResultError("needs_attention inconsistent with risk_level")
	}
	return nil
}
