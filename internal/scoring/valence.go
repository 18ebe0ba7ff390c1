package scoring

import (
	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"

	"github.com/edupulse/riskcore/internal/domain"
)

// scoreValence runs the VADER rule-based valence lexicon over cleaned
// text. The library applies the algorithm family's degree modifiers and
// negation handling; the positive/neutral/negative fractions sum to ~1
// and compound is in [-1,1].
func scoreValence(cleaned string) domain.SentimentScores {
	if cleaned == "" {
		return neutralValence()
	}

	parsed := sentitext.Parse(cleaned, lexicon.DefaultLexicon)
	score := sentitext.PolarityScore(parsed)

	return domain.SentimentScores{
		VaderPositive: score.Positive,
		VaderNeutral:  score.Neutral,
		VaderNegative: score.Negative,
		VaderCompound: clamp(score.Compound, -1, 1),
	}
}

// neutralValence is the fixed valence for empty input: all mass on neutral.
func neutralValence() domain.SentimentScores {
	return domain.SentimentScores{VaderNeutral: 1}
}
