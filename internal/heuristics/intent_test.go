package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntent_CategoryOrder(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		// Pricing outranks the generic inquiry patterns even though "what"
		// also matches.
		{"What is the price for this?", "pricing"},
		{"How much does a landing page cost?", "pricing"},
		{"How does your API handle webhooks?", "technical"},
		{"React vs Vue, which do you use?", "comparison"},
		{"Can you help me redesign my shop?", "request"},
		{"What services do you offer?", "inquiry"},
		{"hello there", "general"},
		{"", "general"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectIntent(tc.text))
		})
	}
}

func TestAnalyzeComplexity_WordCountRuleIsVocabularyIndependent(t *testing.T) {
	// 25 plain English words with no technical vocabulary.
	text := "the quick brown fox jumps over the lazy dog while the calm white cat naps near the warm stone wall under the old oak tree"
	assert.Equal(t, "complex", AnalyzeComplexity(text))
}

func TestAnalyzeComplexity_Buckets(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", "simple"},
		{"short", "nice site", "simple"},
		{"technical term forces complex", "api question", "complex"},
		{"medium length", "I would like to know more about the work you have done recently", "moderate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AnalyzeComplexity(tc.text))
		})
	}
}

func TestDetectUrgency(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"we need this fixed asap", "high"},
		{"please respond!!", "high"},
		{"the launch deadline is by tomorrow", "high"},
		{"just checking in on the project", "normal"},
		{"", "normal"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectUrgency(tc.text))
		})
	}
}
