package heuristics

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ResponseTemplate is a canned reply with rotating phrasing variants. Each
// variant may contain {placeholder} slots filled at selection time.
type ResponseTemplate struct {
	ID           string   `json:"id"`
	Category     string   `json:"category"`
	Variants     []string `json:"variants"`
	Placeholders []string `json:"placeholders"`
	Priority     int      `json:"priority"`
}

// ResponseTemplates are the built-in reply templates, highest priority first
// within a category.
var ResponseTemplates = []ResponseTemplate{
	{
		ID:       "pricing-standard",
		Category: "pricing_inquiry",
		Variants: []string{
			"Our {service} projects typically start at {startingPrice}. The final quote depends on scope, so tell me a bit about what you have in mind.",
			"Pricing for {service} work starts around {startingPrice} and scales with scope. What are you looking to build?",
			"For {service}, budgets usually begin at {startingPrice}. Share some details and I can narrow that down.",
		},
		Placeholders: []string{"service", "startingPrice"},
		Priority:     10,
	},
	{
		ID:       "service-overview",
		Category: "service_inquiry",
		Variants: []string{
			"We build {service} end to end, from design through launch. Want me to walk you through recent {service} work?",
			"{service} is one of our core offerings. I can share examples or set up a call with the team.",
			"Yes, we handle {service}. Tell me about your project and I'll point you at the most relevant work we've done.",
		},
		Placeholders: []string{"service"},
		Priority:     10,
	},
	{
		ID:       "contact-handoff",
		Category: "contact_inquiry",
		Variants: []string{
			"The fastest way to reach the team is {contactChannel}. They usually reply within {responseTime}.",
			"You can contact us via {contactChannel}; expect a reply within {responseTime}.",
			"Reach out through {contactChannel} and someone will get back to you within {responseTime}.",
		},
		Placeholders: []string{"contactChannel", "responseTime"},
		Priority:     10,
	},
}

// rotation tracks per-key round-robin state so similar queries don't get the
// identical canned phrase twice in a row.
type rotation struct {
	nextIndex  int
	usageCount int
	lastUsed   time.Time
}

// Selector owns the rotation state for template variants and filter
// alternatives. It is the only cross-call memory in this package; everything
// else is pure. Safe for concurrent use.
type Selector struct {
	mu        sync.Mutex
	rotations *lru.Cache[string, *rotation]
	templates map[string][]ResponseTemplate
}

const defaultRotationCacheSize = 256

// NewSelector creates a Selector with a bounded rotation cache. cacheSize <= 0
// selects the default.
func NewSelector(cacheSize int) *Selector {
	if cacheSize <= 0 {
		cacheSize = defaultRotationCacheSize
	}
	cache, _ := lru.New[string, *rotation](cacheSize)

	byCategory := make(map[string][]ResponseTemplate)
	for _, t := range ResponseTemplates {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}
	return &Selector{rotations: cache, templates: byCategory}
}

var normalizeRe = regexp.MustCompile(`[^a-z0-9 ]+`)

// normalizeQuery folds a raw query into a stable rotation key.
func normalizeQuery(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	q = normalizeRe.ReplaceAllString(q, "")
	return strings.Join(strings.Fields(q), " ")
}

// advance returns the next round-robin index for key over n variants and
// records the usage.
func (s *Selector) advance(key string, n int) int {
	if n <= 1 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rot, ok := s.rotations.Get(key)
	if !ok {
		rot = &rotation{}
		s.rotations.Add(key, rot)
	}
	idx := rot.nextIndex % n
	rot.nextIndex = idx + 1
	rot.usageCount++
	rot.lastUsed = time.Now()
	return idx
}

// SelectResponse picks the highest-priority template of the category, rotates
// its variants keyed by the normalized query, and fills the placeholders.
// Unknown categories return an error; missing placeholder values are left as
// their {name} slot so the omission is visible downstream.
func (s *Selector) SelectResponse(query, category string, values map[string]string) (string, error) {
	candidates, ok := s.templates[category]
	if !ok || len(candidates) == 0 {
		return "", fmt.Errorf("no response template for category %q", category)
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Priority > best.Priority {
			best = c
		}
	}

	key := "tpl:" + best.ID + ":" + normalizeQuery(query)
	variant := best.Variants[s.advance(key, len(best.Variants))]
	return fillPlaceholders(variant, values), nil
}

// alternative rotates through a filter category's professional alternatives.
func (s *Selector) alternative(category string, variants []string) string {
	if len(variants) == 0 {
		return ""
	}
	return variants[s.advance("alt:"+category, len(variants))]
}

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9]*)\}`)

// fillPlaceholders substitutes {name} slots from values, leaving unresolved
// slots intact.
func fillPlaceholders(template string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(slot string) string {
		name := slot[1 : len(slot)-1]
		if v, ok := values[name]; ok {
			return v
		}
		return slot
	})
}
