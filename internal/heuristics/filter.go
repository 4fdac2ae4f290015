package heuristics

import "strings"

// FilterResult is the outcome of the base content-policy check.
type FilterResult struct {
	IsAppropriate       bool     `json:"is_appropriate"`
	FlaggedCategories   []string `json:"flagged_categories,omitempty"`
	Severity            string   `json:"severity,omitempty"`
	AlternativeResponse string   `json:"alternative_response,omitempty"`
}

// AdvancedFilterResult extends FilterResult with relevance scoring for the
// section-aware assistant flow.
type AdvancedFilterResult struct {
	FilterResult
	ConfidenceScore     float64 `json:"confidence_score"`
	ContextualRelevance float64 `json:"contextual_relevance"`
	SuggestedRedirect   string  `json:"suggested_redirect,omitempty"`
	FilteringReason     string  `json:"filtering_reason,omitempty"`
}

// SectionContext is optional page context a caller may attach so the advanced
// filter can judge topical relevance. Zero value means no context.
type SectionContext struct {
	Section  string   `json:"section"`
	Keywords []string `json:"keywords"`
}

// FilterContent matches the text against every policy category. On a hit it
// reports all flagged categories, the severity of the first (highest-priority)
// match, and an alternative response rotated by sel. A nil sel picks each
// category's first alternative deterministically.
func FilterContent(text string, sel *Selector) FilterResult {
	var flagged []string
	severity := ""
	alternative := ""

	for _, cat := range filterCategories {
		matched := false
		for _, re := range cat.patterns {
			if re.MatchString(text) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		flagged = append(flagged, cat.name)
		if severity == "" {
			severity = cat.severity
			if sel != nil {
				alternative = sel.alternative(cat.name, cat.alternatives)
			} else {
				alternative = cat.alternatives[0]
			}
		}
	}

	if len(flagged) == 0 {
		return FilterResult{IsAppropriate: true}
	}
	return FilterResult{
		IsAppropriate:       false,
		FlaggedCategories:   flagged,
		Severity:            severity,
		AlternativeResponse: alternative,
	}
}

// FilterContentAdvanced runs the base filter and adds confidence and
// contextual-relevance scoring. Text that passes the policy check but has no
// topical overlap with the section context is flagged off-topic with a
// redirect instead of a block.
func FilterContentAdvanced(text string, sctx *SectionContext, sel *Selector) AdvancedFilterResult {
	base := FilterContent(text, sel)
	result := AdvancedFilterResult{FilterResult: base}

	if !base.IsAppropriate {
		// Confidence grows with the number of distinct matched categories.
		result.ConfidenceScore = 0.6 + 0.1*float64(len(base.FlaggedCategories))
		if result.ConfidenceScore > 1 {
			result.ConfidenceScore = 1
		}
		result.FilteringReason = "matched content policy: " + strings.Join(base.FlaggedCategories, ", ")
		result.ContextualRelevance = 0
		return result
	}

	result.ConfidenceScore = 0.5
	result.ContextualRelevance = contextualRelevance(text, sctx)

	offTopic := false
	for _, re := range offTopicPatterns {
		if re.MatchString(text) {
			offTopic = true
			break
		}
	}
	if offTopic || (sctx != nil && len(sctx.Keywords) > 0 && result.ContextualRelevance == 0 && len(strings.Fields(text)) > 3) {
		result.FlaggedCategories = append(result.FlaggedCategories, "off-topic")
		result.FilteringReason = "no topical overlap with current section"
		result.SuggestedRedirect = "I'm best at questions about our services, projects, and pricing. What would you like to know?"
	}
	return result
}

// contextualRelevance is the fraction of section keywords present in the text.
func contextualRelevance(text string, sctx *SectionContext) float64 {
	if sctx == nil || len(sctx.Keywords) == 0 {
		return 0.5
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range sctx.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			hits++
		}
	}
	return float64(hits) / float64(len(sctx.Keywords))
}
