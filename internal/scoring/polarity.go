package scoring

import "strings"

// The general polarity scorer is a pattern-lexicon estimator: every
// sentiment-bearing word carries a polarity in [-1,1] and a subjectivity
// in [0,1], negators within a two-token window flip and dampen polarity,
// and degree adverbs scale it. Scores are averaged over the words that
// actually carry sentiment. It is the second, independent estimator next
// to the VADER valence scorer; fusion confidence grows when they agree.

// polarityEntry is one lexicon row.
type polarityEntry struct {
	polarity     float64
	subjectivity float64
}

// Negation and degree handling constants.
const (
	negationWindow   = 2    // tokens to look back for a negator
	negationFactor   = -0.5 // flip and dampen, like adjective-level "not good"
	maxDegreeStack   = 1    // only the nearest booster applies
	polarityScaleMin = -1.0
	polarityScaleMax = 1.0
)

var polarityNegators = map[string]bool{
	"not": true, "no": true, "never": true, "cannot": true,
	"nothing": true, "nobody": true, "neither": true, "nor": true,
}

var polarityBoosters = map[string]float64{
	"very": 1.3, "really": 1.3, "extremely": 1.5, "so": 1.2,
	"totally": 1.4, "completely": 1.4, "absolutely": 1.5,
	"slightly": 0.7, "somewhat": 0.8, "barely": 0.6, "kinda": 0.8,
	"pretty": 1.2, "quite": 1.2,
}

var polarityLexicon = map[string]polarityEntry{
	// positive
	"good": {0.7, 0.6}, "great": {0.8, 0.75}, "excellent": {1.0, 1.0},
	"amazing": {0.6, 0.9}, "wonderful": {1.0, 1.0}, "awesome": {1.0, 1.0},
	"happy": {0.8, 1.0}, "excited": {0.34, 1.0}, "grateful": {0.5, 0.8},
	"confident": {0.5, 0.7}, "motivated": {0.4, 0.6}, "proud": {0.5, 0.8},
	"accomplished": {0.5, 0.6}, "successful": {0.75, 0.95}, "improving": {0.4, 0.5},
	"better": {0.5, 0.5}, "best": {1.0, 0.3}, "love": {0.5, 0.6},
	"enjoy": {0.4, 0.5}, "fun": {0.3, 0.2}, "nice": {0.6, 1.0},
	"helpful": {0.4, 0.4}, "calm": {0.3, 0.4}, "hopeful": {0.4, 0.6},
	"fine": {0.2, 0.4}, "okay": {0.2, 0.5}, "glad": {0.5, 1.0},
	// negative
	"bad": {-0.7, 0.67}, "terrible": {-1.0, 1.0}, "awful": {-1.0, 1.0},
	"horrible": {-1.0, 1.0}, "worst": {-1.0, 0.3}, "hate": {-0.8, 0.9},
	"sad": {-0.5, 1.0}, "unhappy": {-0.6, 0.8}, "miserable": {-1.0, 1.0},
	"stressed": {-0.5, 0.8}, "anxious": {-0.6, 0.9}, "depressed": {-0.7, 0.9},
	"lonely": {-0.5, 0.7}, "isolated": {-0.4, 0.6}, "worried": {-0.4, 0.7},
	"scared": {-0.6, 0.9}, "afraid": {-0.6, 0.9}, "exhausted": {-0.6, 0.8},
	"tired": {-0.4, 0.6}, "hopeless": {-0.9, 0.9}, "worthless": {-0.9, 0.9},
	"overwhelmed": {-0.6, 0.8}, "struggling": {-0.5, 0.6}, "difficult": {-0.5, 0.7},
	"hard": {-0.3, 0.5}, "failing": {-0.7, 0.7}, "fail": {-0.7, 0.7},
	"failed": {-0.7, 0.7}, "angry": {-0.7, 0.9}, "upset": {-0.5, 0.8},
	"hurt": {-0.5, 0.7}, "pain": {-0.6, 0.7}, "cry": {-0.5, 0.8},
	"alone": {-0.3, 0.5}, "useless": {-0.8, 0.8}, "stupid": {-0.8, 0.9},
}

// scorePolarity computes the general polarity and subjectivity of cleaned
// text. Returns (0,0) when no lexicon word is present.
func scorePolarity(cleaned string) (polarity, subjectivity float64) {
	tokens := tokenizeWords(cleaned)
	if len(tokens) == 0 {
		return 0, 0
	}

	var polaritySum, subjectivitySum float64
	matched := 0

	for i, tok := range tokens {
		entry, ok := polarityLexicon[tok]
		if !ok {
			continue
		}

		p := entry.polarity

		// Nearest preceding booster scales the word.
		applied := 0
		for j := i - 1; j >= 0 && i-j <= negationWindow && applied < maxDegreeStack; j-- {
			if factor, boosted := polarityBoosters[tokens[j]]; boosted {
				p *= factor
				applied++
			}
		}

		// A negator within the window flips and dampens.
		for j := i - 1; j >= 0 && i-j <= negationWindow; j-- {
			if polarityNegators[tokens[j]] {
				p *= negationFactor
				break
			}
		}

		polaritySum += clamp(p, polarityScaleMin, polarityScaleMax)
		subjectivitySum += entry.subjectivity
		matched++
	}

	if matched == 0 {
		return 0, 0
	}
	return polaritySum / float64(matched), subjectivitySum / float64(matched)
}

// tokenizeWords splits cleaned text into lowercase word tokens,
// dropping punctuation but keeping in-word apostrophes out entirely
// (the polarity lexicon carries no contractions).
func tokenizeWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
