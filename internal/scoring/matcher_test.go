//nolint:testpackage // Testing internal scoring requires same package access
package scoring

import (
	"testing"

	"github.com/edupulse/riskcore/internal/domain"
)

func TestTaxonomyMatcher_Scan(t *testing.T) {
	t.Helper()

	matcher := NewTaxonomyMatcher()

	tests := []struct {
		name           string
		text           string
		highRisk       int
		mediumRisk     int
		positive       int
		stressTerms    int
		academicStress bool
	}{
		{
			name:       "crisis phrase",
			text:       "i just want to end it all",
			highRisk:   1,
			mediumRisk: 0,
		},
		{
			name:       "whole word match",
			text:       "i am scared",
			mediumRisk: 1,
		},
		{
			name: "no match inside longer word",
			text: "i am a scaredycat",
		},
		{
			name:       "repeated term counts once",
			text:       "stressed stressed stressed",
			mediumRisk: 1,
		},
		{
			name:        "single academic term below threshold",
			text:        "the exam is tomorrow",
			stressTerms: 1,
		},
		{
			name:           "two academic terms trip the threshold",
			text:           "the exam deadline is tomorrow",
			stressTerms:    2,
			academicStress: true,
		},
		{
			name:     "positive terms",
			text:     "i feel proud and motivated",
			positive: 2,
		},
		{
			name: "empty text",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emotion, stress := matcher.Scan(tt.text)

			if emotion.HighRiskCount != tt.highRisk {
				t.Errorf("high risk count: got %d, want %d", emotion.HighRiskCount, tt.highRisk)
			}
			if emotion.MediumRiskCount != tt.mediumRisk {
				t.Errorf("medium risk count: got %d, want %d", emotion.MediumRiskCount, tt.mediumRisk)
			}
			if emotion.PositiveCount != tt.positive {
				t.Errorf("positive count: got %d, want %d", emotion.PositiveCount, tt.positive)
			}
			if stress.StressIndicators != tt.stressTerms {
				t.Errorf("stress indicators: got %d, want %d", stress.StressIndicators, tt.stressTerms)
			}
			if stress.HasAcademicStress != tt.academicStress {
				t.Errorf("academic stress: got %t, want %t", stress.HasAcademicStress, tt.academicStress)
			}
		})
	}
}

func TestTaxonomyMatcher_Scan_TagsDetectedKeywords(t *testing.T) {
	t.Helper()

	matcher := NewTaxonomyMatcher()
	emotion, _ := matcher.Scan("hopeless and exhausted but grateful")

	tags := make(map[string]bool)
	for _, kw := range emotion.DetectedKeywords {
		tags[kw.Tag] = true
	}

	for _, want := range []string{domain.KeywordTagHighRisk, domain.KeywordTagMediumRisk, domain.KeywordTagPositive} {
		if !tags[want] {
			t.Errorf("expected a detected keyword tagged %q, got %v", want, emotion.DetectedKeywords)
		}
	}
}
