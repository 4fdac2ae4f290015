package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSentiment_EmptyInput(t *testing.T) {
	result := AnalyzeSentiment("")

	assert.Equal(t, "neutral", result.Polarity)
	assert.Zero(t, result.Score)
	assert.Zero(t, result.Confidence)
	assert.Zero(t, result.Subjectivity)
}

func TestAnalyzeSentiment_RepetitionRaisesScore(t *testing.T) {
	single := AnalyzeSentiment("great")
	triple := AnalyzeSentiment("great great great")

	assert.Equal(t, "positive", single.Polarity)
	assert.Equal(t, "positive", triple.Polarity)
	assert.Greater(t, triple.Score, single.Score)
}

func TestAnalyzeSentiment_Negative(t *testing.T) {
	result := AnalyzeSentiment("this is terrible, the site is broken and slow")

	assert.Equal(t, "negative", result.Polarity)
	assert.Less(t, result.Score, -polarityThreshold)
	assert.Equal(t, -result.Score, result.Confidence)
}

func TestAnalyzeSentiment_MixedLeansNeutral(t *testing.T) {
	// Balanced cues must not cross either polarity threshold.
	result := AnalyzeSentiment("the design is great but the checkout is broken")

	assert.Equal(t, "neutral", result.Polarity)
	assert.InDelta(t, 0, result.Score, polarityThreshold)
}

func TestAnalyzeSentiment_SubjectivityCapped(t *testing.T) {
	result := AnalyzeSentiment("great great great terrible terrible awful awesome amazing love hate hate worst best nice bad")

	assert.Equal(t, 1.0, result.Subjectivity)
}

func TestAnalyzeSentiment_ConfidenceIsAbsoluteScore(t *testing.T) {
	for _, text := range []string{"great work, thanks!", "awful, useless, broken", "the meeting is at noon"} {
		result := AnalyzeSentiment(text)
		expected := result.Score
		if expected < 0 {
			expected = -expected
		}
		assert.Equal(t, expected, result.Confidence, "text %q", text)
	}
}
