package heuristics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectResponse_FillsPlaceholders(t *testing.T) {
	sel := NewSelector(16)

	reply, err := sel.SelectResponse("how much is a website", "pricing_inquiry", map[string]string{
		"service":       "web development",
		"startingPrice": "$2,500",
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "web development")
	assert.Contains(t, reply, "$2,500")
	assert.NotContains(t, reply, "{service}")
}

func TestSelectResponse_RotatesForSameQuery(t *testing.T) {
	sel := NewSelector(16)
	values := map[string]string{"service": "branding", "startingPrice": "$1,000"}

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		reply, err := sel.SelectResponse("How much is branding?", "pricing_inquiry", values)
		require.NoError(t, err)
		seen[reply] = true
	}
	assert.Len(t, seen, 3, "three calls over three variants must all differ")

	// Fourth call wraps back to the first variant.
	reply, err := sel.SelectResponse("How much is branding?", "pricing_inquiry", values)
	require.NoError(t, err)
	assert.True(t, seen[reply])
}

func TestSelectResponse_QueryNormalization(t *testing.T) {
	sel := NewSelector(16)
	values := map[string]string{"contactChannel": "hello@nexdevs.example", "responseTime": "one business day"}

	first, err := sel.SelectResponse("How do I contact you?", "contact_inquiry", values)
	require.NoError(t, err)
	second, err := sel.SelectResponse("  how do i CONTACT you  ", "contact_inquiry", values)
	require.NoError(t, err)

	// Same conceptual query shares rotation state, so phrasing advances.
	assert.NotEqual(t, first, second)
}

func TestSelectResponse_UnknownCategory(t *testing.T) {
	sel := NewSelector(16)

	_, err := sel.SelectResponse("anything", "nonexistent_category", nil)
	assert.Error(t, err)
}

func TestSelectResponse_MissingValuesLeaveSlotVisible(t *testing.T) {
	sel := NewSelector(16)

	reply, err := sel.SelectResponse("services?", "service_inquiry", nil)
	require.NoError(t, err)
	assert.Contains(t, reply, "{service}")
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "what is the price", normalizeQuery("  What IS the price?! "))
	assert.Equal(t, "", normalizeQuery("???"))
}

func TestFillPlaceholders(t *testing.T) {
	out := fillPlaceholders("hi {name}, your {thing} is ready", map[string]string{"name": "Ada"})
	assert.Equal(t, "hi Ada, your {thing} is ready", out)
}

func TestSelector_RotationCacheBounded(t *testing.T) {
	sel := NewSelector(4)
	values := map[string]string{"service": "x", "startingPrice": "$1"}

	// Push more distinct keys than the cache holds; no panic, no error.
	for _, q := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		_, err := sel.SelectResponse(q, "pricing_inquiry", values)
		require.NoError(t, err)
	}
	// Evicted keys simply restart their rotation.
	reply, err := sel.SelectResponse("a", "pricing_inquiry", values)
	require.NoError(t, err)
	assert.True(t, strings.Contains(reply, "x"))
}
