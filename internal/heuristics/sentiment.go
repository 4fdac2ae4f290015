package heuristics

// SentimentAnalysis is the result of lexical sentiment scoring.
type SentimentAnalysis struct {
	Polarity     string  `json:"polarity"`
	Score        float64 `json:"score"`
	Confidence   float64 `json:"confidence"`
	Subjectivity float64 `json:"subjectivity"`
}

// polarityThreshold separates positive/negative from neutral on the score axis.
const polarityThreshold = 0.2

// AnalyzeSentiment sums the weighted matches of the positive and negative cue
// families, normalizes each side by total matched weight plus a unit smoothing
// term, and scores the difference in [-1, 1]. The smoothing term keeps
// repetition meaningful: "great great great" scores strictly higher than
// "great" while both stay positive. Subjectivity is the total matched weight
// capped via /10.
func AnalyzeSentiment(text string) SentimentAnalysis {
	var positive, negative float64
	for _, p := range positiveCues {
		if n := len(p.re.FindAllStringIndex(text, -1)); n > 0 {
			positive += p.weight * float64(n)
		}
	}
	for _, p := range negativeCues {
		if n := len(p.re.FindAllStringIndex(text, -1)); n > 0 {
			negative += p.weight * float64(n)
		}
	}

	denom := positive + negative + 1
	score := positive/denom - negative/denom

	polarity := "neutral"
	if score > polarityThreshold {
		polarity = "positive"
	} else if score < -polarityThreshold {
		polarity = "negative"
	}

	confidence := score
	if confidence < 0 {
		confidence = -confidence
	}

	subjectivity := (positive + negative) / 10
	if subjectivity > 1 {
		subjectivity = 1
	}

	return SentimentAnalysis{
		Polarity:     polarity,
		Score:        score,
		Confidence:   confidence,
		Subjectivity: subjectivity,
	}
}
