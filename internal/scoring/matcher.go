package scoring

import (
	"regexp"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/edupulse/riskcore/internal/domain"
)

// taxonomyTerm is one literal term with its tag and the boundary-anchored
// pattern that confirms a candidate hit. The Aho-Corasick automaton finds
// substring candidates in one pass; the regexp rejects hits inside longer
// words ("scared" must not match inside "scaredycat").
type taxonomyTerm struct {
	tag     string
	term    string
	pattern *regexp.Regexp
}

// TaxonomyMatcher scans cleaned text for distress and academic-stress
// taxonomy terms. It is immutable after construction and safe for
// concurrent use.
type TaxonomyMatcher struct {
	automaton *ahocorasick.Matcher
	terms     []taxonomyTerm
}

// NewTaxonomyMatcher builds the automaton over all four taxonomies.
func NewTaxonomyMatcher() *TaxonomyMatcher {
	terms := make([]taxonomyTerm, 0,
		len(highRiskKeywords)+len(mediumRiskKeywords)+len(positiveKeywords)+len(academicStressKeywords))

	add := func(tag string, list []string) {
		for _, kw := range list {
			terms = append(terms, taxonomyTerm{
				tag:     tag,
				term:    kw,
				pattern: boundaryPattern(kw),
			})
		}
	}
	add(domain.KeywordTagHighRisk, highRiskKeywords)
	add(domain.KeywordTagMediumRisk, mediumRiskKeywords)
	add(domain.KeywordTagPositive, positiveKeywords)
	add(tagAcademicStress, academicStressKeywords)

	literals := make([]string, len(terms))
	for i, t := range terms {
		literals[i] = t.term
	}

	return &TaxonomyMatcher{
		automaton: ahocorasick.NewStringMatcher(literals),
		terms:     terms,
	}
}

// tagAcademicStress is internal to the matcher; academic-stress hits are
// reported separately from the emotion taxonomy.
const tagAcademicStress = "academic_stress"

// academicStressThreshold is the number of distinct academic terms that
// classifies a text as carrying academic stress.
const academicStressThreshold = 2

// Scan matches the taxonomies against cleaned text. Each distinct term is
// counted at most once regardless of how often it occurs.
func (m *TaxonomyMatcher) Scan(cleaned string) (domain.EmotionAnalysis, domain.AcademicStress) {
	emotion := domain.EmotionAnalysis{DetectedKeywords: []domain.KeywordMatch{}}
	stress := domain.AcademicStress{DetectedTerms: []string{}}

	if cleaned == "" {
		return emotion, stress
	}

	seen := make(map[int]bool)
	for _, hit := range m.automaton.Match([]byte(cleaned)) {
		if hit >= len(m.terms) || seen[hit] {
			continue
		}
		seen[hit] = true

		t := m.terms[hit]
		if !t.pattern.MatchString(cleaned) {
			continue // substring of a longer word, not a real match
		}

		switch t.tag {
		case domain.KeywordTagHighRisk:
			emotion.HighRiskCount++
			emotion.DetectedKeywords = append(emotion.DetectedKeywords, domain.KeywordMatch{Tag: t.tag, Term: t.term})
		case domain.KeywordTagMediumRisk:
			emotion.MediumRiskCount++
			emotion.DetectedKeywords = append(emotion.DetectedKeywords, domain.KeywordMatch{Tag: t.tag, Term: t.term})
		case domain.KeywordTagPositive:
			emotion.PositiveCount++
			emotion.DetectedKeywords = append(emotion.DetectedKeywords, domain.KeywordMatch{Tag: t.tag, Term: t.term})
		case tagAcademicStress:
			stress.StressIndicators++
			stress.DetectedTerms = append(stress.DetectedTerms, t.term)
		}
	}

	stress.HasAcademicStress = stress.StressIndicators >= academicStressThreshold
	return emotion, stress
}

// boundaryPattern compiles a case-insensitive whole-word/phrase pattern
// for a literal term.
func boundaryPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}
