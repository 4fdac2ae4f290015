package heuristics

import "strings"

// Word-count thresholds for complexity classification.
const (
	complexWordCount  = 20
	moderateWordCount = 10
)

// DetectIntent scans the ordered intent categories and returns the first
// matching label, or "general" when nothing matches. Category order is the
// tie-break: pricing and technical outrank the generic inquiry patterns.
func DetectIntent(text string) string {
	for _, cat := range intentCategories {
		for _, re := range cat.patterns {
			if re.MatchString(text) {
				return cat.name
			}
		}
	}
	return "general"
}

// AnalyzeComplexity buckets the text by word count and technical vocabulary.
// Long messages are complex regardless of vocabulary.
func AnalyzeComplexity(text string) string {
	words := len(strings.Fields(text))
	switch {
	case words > complexWordCount || technicalTerms.MatchString(text):
		return "complex"
	case words > moderateWordCount:
		return "moderate"
	default:
		return "simple"
	}
}

// DetectUrgency returns "high" when any urgency cue is present, else "normal".
func DetectUrgency(text string) string {
	for _, re := range urgencyPatterns {
		if re.MatchString(text) {
			return "high"
		}
	}
	return "normal"
}
