package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEmotionWithConfidence_EmptyInput(t *testing.T) {
	result := DetectEmotionWithConfidence("")

	// With no pattern contributions every category sits at its base score and
	// the professional default wins.
	require.Len(t, result.EmotionScores, len(emotionCategories))
	for name, cat := range emotionCategories {
		assert.Equal(t, cat.base, result.EmotionScores[name], "category %s", name)
	}
	assert.Equal(t, "professional", result.Primary)
	assert.Equal(t, emotionCategories["professional"].base, result.Confidence)
	assert.Equal(t, "low", result.Intensity)
	assert.Empty(t, result.Secondary)
}

func TestDetectEmotionWithConfidence_Excited(t *testing.T) {
	result := DetectEmotionWithConfidence("This is awesome!! I can't wait to see the new site")

	assert.Equal(t, "excited", result.Primary)
	assert.Equal(t, "high", result.Intensity)
	assert.Greater(t, result.Confidence, 0.7)
}

func TestDetectEmotionWithConfidence_Frustrated(t *testing.T) {
	result := DetectEmotionWithConfidence("The contact form is broken again, this is ridiculous and it still doesn't work")

	assert.Equal(t, "frustrated", result.Primary)
	assert.Greater(t, result.Confidence, 0.4)
}

func TestDetectEmotionWithConfidence_ScoreCap(t *testing.T) {
	// Stacked cues must never push a category past 1.0.
	text := "awesome awesome awesome amazing amazing fantastic incredible wow!! excited thrilled stoked pumped can't wait!!"
	result := DetectEmotionWithConfidence(text)

	for name, score := range result.EmotionScores {
		assert.LessOrEqual(t, score, 1.0, "category %s", name)
	}
	assert.Equal(t, "excited", result.Primary)
}

func TestDetectEmotionWithConfidence_SecondaryOnlyAboveFloor(t *testing.T) {
	// A short urgent-and-frustrated message should produce a secondary label
	// only when the runner-up clears the 0.3 floor.
	result := DetectEmotionWithConfidence("urgent: the checkout is broken and failing, fix asap immediately!!")

	require.NotEmpty(t, result.Primary)
	if result.Secondary != "" {
		assert.Greater(t, result.EmotionScores[result.Secondary], secondaryFloor)
	}
}

func TestDetectEmotion_ReturnsPrimaryOnly(t *testing.T) {
	assert.Equal(t, DetectEmotionWithConfidence("hey lol that's cool").Primary, DetectEmotion("hey lol that's cool"))
}

func TestDetectEmotionWithConfidence_IntensityBuckets(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		intensity string
	}{
		{"low on empty", "", "low"},
		{"high on stacked cues", "awesome amazing fantastic!! excited thrilled can't wait!!", "high"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.intensity, DetectEmotionWithConfidence(tc.text).Intensity)
		})
	}
}
