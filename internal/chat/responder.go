package chat

import (
	"regexp"
	"strings"

	"github.com/edupulse/riskcore/internal/domain"
)

// Fallback reply templates, used whenever the generative backend is
// disabled or fails. They are deliberately static so the degraded mode
// stays predictable.
const (
	defaultGreeting = "Hi there! I'm here to listen and support you. How are you feeling today?"

	crisisFallback = `I'm very concerned about what you're sharing with me. Your safety and wellbeing are the most important things right now.

Please reach out for immediate help:
• Crisis Hotline: 988 (Suicide & Crisis Lifeline)
• Crisis Text Line: Text HOME to 741741
• Emergency: Call 911 if you're in immediate danger

You don't have to go through this alone. There are people who want to help you.`

	academicFallback = `I understand that academic challenges can feel overwhelming. It's completely normal to feel stressed about your studies.

Here are some strategies that might help:
• Break large tasks into smaller, manageable steps
• Create a study schedule and stick to it
• Take regular breaks to avoid burnout
• Reach out to your professors during office hours
• Consider forming study groups with classmates
• Visit the tutoring center for additional support

Remember, asking for help is a sign of strength, not weakness. What specific academic challenge would you like to talk about?`

	emotionalFallback = `Thank you for sharing your feelings with me. It takes courage to reach out when you're struggling.

What you're experiencing is valid, and you're not alone in feeling this way. Many students go through similar challenges.

Some things that might help:
• Practice deep breathing or mindfulness exercises
• Maintain a regular sleep schedule
• Stay connected with friends and family
• Engage in activities you enjoy
• Consider speaking with a counselor

Would you like to talk more about what's been on your mind? I'm here to listen and support you.`

	generalFallback = `Thank you for reaching out. I'm here to listen and support you through whatever you're going through.

As a student, it's normal to face various challenges - whether they're academic, social, or personal. Remember that seeking support is a positive step.

Some general resources that might be helpful:
• Campus counseling services
• Academic support centers
• Student wellness programs
• Peer support groups

Is there something specific you'd like to talk about? I'm here to help in any way I can.`
)

// Crisis and support contact lines surfaced alongside replies.
const (
	crisisHotlineContact    = "988 (Suicide & Crisis Lifeline)"
	crisisTextLineContact   = "Text HOME to 741741 (Crisis Text Line)"
	campusCounselingContact = "Contact your campus counseling center"
	emergencyContact        = "Call 911 or go to nearest emergency room if in immediate danger"
)

// Keyword triggers for the fallback selector. These are intentionally a
// narrower set than the analyzer taxonomy: the fallback is a safety net,
// not a second classifier.
var (
	fallbackCrisisTerms   = []string{"suicide", "kill myself", "end it all", "hurt myself", "die", "hopeless"}
	fallbackAcademicTerms = []string{"exam", "test", "grade", "study", "homework", "assignment", "fail", "stress"}
	fallbackEmotionTerms  = []string{"sad", "depressed", "anxious", "worried", "scared", "lonely", "overwhelmed"}
)

var (
	fallbackCrisisPatterns   = compileBoundaryPatterns(fallbackCrisisTerms)
	fallbackAcademicPatterns = compileBoundaryPatterns(fallbackAcademicTerms)
	fallbackEmotionPatterns  = compileBoundaryPatterns(fallbackEmotionTerms)
)

func compileBoundaryPatterns(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(terms))
	for i, term := range terms {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return patterns
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// fallbackReply picks a canned reply. Precedence: analyzed high risk,
// then crisis terms in the raw message, then academic terms, then
// emotional terms, then the generic template.
func fallbackReply(message string, result *domain.SentimentResult) string {
	if result != nil && result.RiskLevel == domain.TextRiskHigh {
		return crisisFallback
	}

	lower := strings.ToLower(message)
	switch {
	case anyMatch(fallbackCrisisPatterns, lower):
		return crisisFallback
	case anyMatch(fallbackAcademicPatterns, lower):
		return academicFallback
	case anyMatch(fallbackEmotionPatterns, lower):
		return emotionalFallback
	default:
		return generalFallback
	}
}

// relevantResources returns the contact cards attached to a reply. High
// risk always carries the crisis set; academic stress adds study support.
func relevantResources(result *domain.SentimentResult, category domain.ResponseCategory) []domain.Resource {
	var resources []domain.Resource

	if result != nil && result.RiskLevel == domain.TextRiskHigh {
		resources = append(resources,
			domain.Resource{Type: "crisis", Name: "Crisis Hotline", Contact: crisisHotlineContact},
			domain.Resource{Type: "crisis", Name: "Crisis Text Line", Contact: crisisTextLineContact},
			domain.Resource{Type: "professional", Name: "Campus Counseling", Contact: campusCounselingContact},
		)
	}

	if category == domain.ResponseAcademicStress {
		resources = append(resources,
			domain.Resource{Type: "academic", Name: "Tutoring Center", Description: "Academic tutoring center"},
			domain.Resource{Type: "academic", Name: "Writing Center", Description: "Writing support center"},
			domain.Resource{Type: "academic", Name: "Study Skills", Description: "Academic success workshops"},
		)
	}

	return resources
}
