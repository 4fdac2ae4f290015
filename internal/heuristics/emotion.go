package heuristics

import "sort"

// EmotionAnalysis is the full result of emotion scoring.
type EmotionAnalysis struct {
	Primary       string             `json:"primary"`
	Secondary     string             `json:"secondary,omitempty"`
	Confidence    float64            `json:"confidence"`
	Intensity     string             `json:"intensity"`
	EmotionScores map[string]float64 `json:"emotion_scores"`
}

// secondaryFloor is the minimum score for a second-place category to be reported.
const secondaryFloor = 0.3

// DetectEmotionWithConfidence scores the text against every emotion category.
// Each category starts at its base score; every matching pattern adds
// weight * matchCount / 10, and the final score is capped at 1.0. Safe on
// empty input: all categories report their base score.
func DetectEmotionWithConfidence(text string) EmotionAnalysis {
	scores := make(map[string]float64, len(emotionCategories))
	for name, cat := range emotionCategories {
		score := cat.base
		for _, p := range cat.patterns {
			matches := p.re.FindAllStringIndex(text, -1)
			if len(matches) == 0 {
				continue
			}
			score += p.weight * float64(len(matches)) / matchDivisor
		}
		if score > 1.0 {
			score = 1.0
		}
		scores[name] = score
	}

	type scored struct {
		name  string
		score float64
	}
	ranked := make([]scored, 0, len(scores))
	for name, s := range scores {
		ranked = append(ranked, scored{name, s})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	result := EmotionAnalysis{
		Primary:       ranked[0].name,
		Confidence:    ranked[0].score,
		EmotionScores: scores,
	}
	if len(ranked) > 1 && ranked[1].score > secondaryFloor {
		result.Secondary = ranked[1].name
	}

	switch {
	case result.Confidence > 0.7:
		result.Intensity = "high"
	case result.Confidence > 0.4:
		result.Intensity = "medium"
	default:
		result.Intensity = "low"
	}
	return result
}

// DetectEmotion returns only the primary emotion label.
func DetectEmotion(text string) string {
	return DetectEmotionWithConfidence(text).Primary
}
