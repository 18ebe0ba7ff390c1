//nolint:testpackage // Testing internal domain requires same package access
package domain

import (
	"errors"
	"testing"
)

func TestSentimentResult_Validate(t *testing.T) {
	t.Helper()

	valid := func() *SentimentResult {
		return &SentimentResult{
			OverallSentiment:  SentimentNegative,
			Scores:            SentimentScores{VaderCompound: -0.4},
			RiskLevel:         TextRiskMedium,
			NeedsAttention:    true,
			CounselorReferral: false,
			Confidence:        0.9,
		}
	}

	tests := []struct {
		name   string
		mutate func(*SentimentResult)
		valid  bool
	}{
		{"valid", func(r *SentimentResult) {}, true},
		{"missing sentiment", func(r *SentimentResult) { r.OverallSentiment = "" }, false},
		{"compound out of range", func(r *SentimentResult) { r.Scores.VaderCompound = 1.5 }, false},
		{"confidence out of range", func(r *SentimentResult) { r.Confidence = -0.1 }, false},
		{"referral without high risk", func(r *SentimentResult) { r.CounselorReferral = true }, false},
		{"attention without risk", func(r *SentimentResult) {
			r.RiskLevel = TextRiskLow
			r.NeedsAttention = true
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := valid()
			tt.mutate(result)

			err := result.Validate()
			if tt.valid {
				if err != nil {
					t.Errorf("expected valid result, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrMalformedResult) {
				t.Errorf("expected ErrMalformedResult, got %v", err)
			}
		})
	}
}

func TestSentimentResult_Validate_Nil(t *testing.T) {
	t.Helper()

	var result *SentimentResult
	if err := result.Validate(); !errors.Is(err, ErrMalformedResult) {
		t.Errorf("nil result should be malformed, got %v", err)
	}
}
