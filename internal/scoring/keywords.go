// Package scoring implements the risk and sentiment scoring engines:
// keyword taxonomy matching, dual-lexicon text sentiment, risk fusion,
// the attendance-threshold classifier and the intervention policy.
package scoring

// Distress taxonomy. Terms are matched case-insensitively on whole
// word/phrase boundaries; each distinct term counts at most once per text.

// highRiskKeywords signal crisis-level distress. Any single hit forces
// sentiment very_negative and risk high.
var highRiskKeywords = []string{
	"suicide", "kill myself", "end it all", "want to die", "no point living",
	"hopeless", "worthless", "hate myself", "can't take it", "give up",
	"overwhelmed", "breaking down", "can't cope", "falling apart",
}

// mediumRiskKeywords signal sustained distress short of crisis.
var mediumRiskKeywords = []string{
	"stressed", "anxious", "depressed", "sad", "lonely", "isolated",
	"struggling", "difficult", "hard time", "worried", "scared",
	"exhausted", "tired", "burnt out", "pressure", "failing",
}

// positiveKeywords counterbalance distress evidence in the fusion rules.
var positiveKeywords = []string{
	"happy", "excited", "grateful", "confident", "motivated",
	"proud", "accomplished", "successful", "improving", "better",
}

// academicStressKeywords form a separate taxonomy: two or more distinct
// hits classify the text as carrying academic stress.
var academicStressKeywords = []string{
	"exam", "test", "assignment", "deadline", "grade", "fail",
	"behind", "catch up", "study", "homework", "project", "presentation",
}
