package scoring

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// contractionExpansion maps informal shorthand to its expanded form.
// Replacement is whole-word only, so "dont" expands but "donut" is left alone.
type contractionExpansion struct {
	pattern     *regexp.Regexp
	replacement string
}

var contractionExpansions = buildContractionExpansions(map[string]string{
	"u":     "you",
	"ur":    "your",
	"cant":  "cannot",
	"wont":  "will not",
	"dont":  "do not",
	"im":    "i am",
	"ive":   "i have",
	"thats": "that is",
})

func buildContractionExpansions(m map[string]string) []contractionExpansion {
	expansions := make([]contractionExpansion, 0, len(m))
	for short, full := range m {
		expansions = append(expansions, contractionExpansion{
			pattern:     regexp.MustCompile(`\b` + short + `\b`),
			replacement: full,
		})
	}
	return expansions
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// diacriticStripper removes combining marks after NFD decomposition, so
// "café" and "cafe" score identically.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// preprocessText normalizes raw text for scoring: lowercase, diacritics
// stripped, whitespace collapsed, informal contractions expanded.
// Total over any UTF-8 input; empty input stays empty.
func preprocessText(text string) string {
	text = strings.ToLower(text)

	if stripped, _, err := transform.String(diacriticStripper, text); err == nil {
		text = stripped
	}

	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))

	for _, exp := range contractionExpansions {
		text = exp.pattern.ReplaceAllString(text, exp.replacement)
	}

	return text
}
