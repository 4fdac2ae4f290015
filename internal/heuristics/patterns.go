// Package heuristics provides pure, regex-weighted scoring functions over user
// text: emotion, sentiment, intent, complexity, urgency and content-policy
// classification. No trained model is involved; every classifier works off the
// pattern tables in this file so the tables can be tested apart from the
// scorers that consume them.
package heuristics

import "regexp"

// weightedPattern pairs a compiled expression with its contribution weight.
type weightedPattern struct {
	re     *regexp.Regexp
	weight float64
}

func wp(expr string, weight float64) weightedPattern {
	return weightedPattern{re: regexp.MustCompile(expr), weight: weight}
}

// matchDivisor normalizes per-pattern match counts in emotion scoring.
const matchDivisor = 10.0

// emotionCategory holds the base score and cue patterns for one emotion label.
type emotionCategory struct {
	base     float64
	patterns []weightedPattern
}

// emotionCategories is the closed label set. Base scores keep every category
// represented on empty input, with "professional" as the default tone.
var emotionCategories = map[string]emotionCategory{
	"excited": {base: 0.10, patterns: []weightedPattern{
		wp(`(?i)\b(awesome|amazing|incredible|fantastic|love (it|this)|wow)\b`, 3),
		wp(`(?i)\b(excited|thrilled|stoked|pumped)\b`, 3),
		wp(`(?i)\bcan'?t wait\b`, 2.5),
		wp(`!{2,}`, 2),
	}},
	"frustrated": {base: 0.10, patterns: []weightedPattern{
		wp(`(?i)\b(frustrat\w+|annoy\w+|ridiculous|useless|unacceptable)\b`, 3),
		wp(`(?i)\b(doesn'?t|won'?t|still not|never)\s+work\w*\b`, 2.5),
		wp(`(?i)\b(again|broken|failing|fed up)\b`, 2),
		wp(`(?i)\bwhy (is|does|won'?t|can'?t)\b`, 1.5),
	}},
	"curious": {base: 0.15, patterns: []weightedPattern{
		wp(`(?i)\b(curious|wonder\w*|interest\w*|intrigu\w*)\b`, 2.5),
		wp(`(?i)\bhow (does|do|can|would)\b`, 2),
		wp(`(?i)\bwhat (is|are|about|if)\b`, 1.5),
		wp(`\?`, 1),
	}},
	"professional": {base: 0.20, patterns: []weightedPattern{
		wp(`(?i)\b(regarding|per our|proposal|requirements?|deliverables?)\b`, 2),
		wp(`(?i)\b(please advise|follow(ing)? up|partnership|engagement)\b`, 2),
		wp(`(?i)\b(dear|sincerely|kind(est)? regards|best regards)\b`, 1.5),
		wp(`(?i)\b(invoice|contract|agreement|timeline)\b`, 1.5),
	}},
	"casual": {base: 0.15, patterns: []weightedPattern{
		wp(`(?i)\b(hey|yo|sup|lol|haha|btw)\b`, 2),
		wp(`(?i)\b(gonna|wanna|kinda|sorta)\b`, 2),
		wp(`(?i)\b(cool|nice one|no worries|cheers)\b`, 1.5),
	}},
	"urgent": {base: 0.05, patterns: []weightedPattern{
		wp(`(?i)\b(urgent\w*|asap|emergency|immediately|right (now|away))\b`, 3),
		wp(`(?i)\b(deadline|by (today|tonight|tomorrow))\b`, 2.5),
		wp(`(?i)\b(critical|time.sensitive)\b`, 2),
	}},
	"satisfied": {base: 0.10, patterns: []weightedPattern{
		wp(`(?i)\b(perfect|great job|well done|works now|solved|exactly what)\b`, 3),
		wp(`(?i)\b(happy|satisfied|pleased|delighted)\b`, 2.5),
		wp(`(?i)\bthank(s| you)( so much| a lot)?\b`, 2),
	}},
	"concerned": {base: 0.10, patterns: []weightedPattern{
		wp(`(?i)\b(worried|concern\w*|afraid|nervous|unsure|hesitant)\b`, 3),
		wp(`(?i)\b(is (it|this) (safe|secure)|data loss|privacy)\b`, 2.5),
		wp(`(?i)\b(risk\w*|what happens if)\b`, 2),
	}},
}

// Sentiment cue families. Each side is summed independently; see
// AnalyzeSentiment for the normalization.
var positiveCues = []weightedPattern{
	wp(`(?i)\b(good|great|excellent|awesome|amazing|perfect|fantastic|wonderful|best|nice|helpful|impressive)\b`, 2),
	wp(`(?i)\b(love|like|enjoy\w*|recommend\w*)\b`, 2),
	wp(`(?i)\b(thank(s| you)?|appreciate\w*|grateful)\b`, 2),
	wp(`(?i)\b(yes|yeah|sure|definitely|absolutely|agreed)\b`, 1),
	wp(`!`, 0.5),
}

var negativeCues = []weightedPattern{
	wp(`(?i)\b(bad|terrible|awful|horrible|worst|broken|useless|disappointing|poor|slow|buggy)\b`, 2),
	wp(`(?i)\b(hate|dislike|regret\w*)\b`, 2),
	wp(`(?i)\b(frustrat\w+|annoy\w+|angry|upset)\b`, 2),
	wp(`(?i)\b(no|not|never|nothing|can'?t|won'?t|doesn'?t)\b`, 1),
	wp(`\?{2,}`, 1),
}

// intentCategory is one entry of the ordered first-match-wins intent scan.
type intentCategory struct {
	name     string
	patterns []*regexp.Regexp
}

// intentCategories is ordered most-specific first: a pricing question that
// also reads as a general inquiry must classify as pricing.
var intentCategories = []intentCategory{
	{"pricing", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(price|pricing|cost\w*|how much|budget|quote|rates?|fees?)\b`),
	}},
	{"technical", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(api|database|deploy\w*|integrat\w*|framework|backend|frontend|hosting|bug|error)\b`),
	}},
	{"comparison", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(vs\.?|versus|compar\w*|difference|better than|alternative\w*)\b`),
	}},
	{"request", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(can you|could you|please|i need|i want|help me|build me)\b`),
	}},
	{"inquiry", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(what|how|when|where|who|why|which)\b`),
		regexp.MustCompile(`\?`),
	}},
}

// technicalTerms flags vocabulary that makes a message complex regardless of length.
var technicalTerms = regexp.MustCompile(`(?i)\b(api|architecture|database|infrastructure|authentication|deployment|scalab\w+|integration\w*|microservice\w*|kubernetes|migration\w*)\b`)

var urgencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(urgent\w*|asap|emergency|immediately|right (now|away)|critical)\b`),
	regexp.MustCompile(`!{2,}`),
	regexp.MustCompile(`(?i)\b(deadline|by (today|tonight|tomorrow|monday|friday)|end of (day|week))\b`),
}

// filterCategory is one entry of the ordered content-policy scan.
type filterCategory struct {
	name         string
	severity     string
	patterns     []*regexp.Regexp
	alternatives []string
}

// filterCategories drive the content filter. Scan order fixes the severity
// reported when multiple categories match (first match wins for severity,
// all matches are reported as flagged).
var filterCategories = []filterCategory{
	{
		name:     "explicit",
		severity: "high",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(nsfw|porn\w*|sexual\w*|explicit content)\b`),
			regexp.MustCompile(`(?i)\b(nude\w*|xxx)\b`),
		},
		alternatives: []string{
			"I keep our conversation focused on professional topics. Is there a project or service question I can help with?",
			"Let's keep things professional here. I'm happy to talk about our services, portfolio, or pricing.",
			"That's outside what I can discuss. Would you like to hear about what we can build for you instead?",
		},
	},
	{
		name:     "violence",
		severity: "high",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(kill\w*|murder\w*|attack\w* (you|them|him|her)|weapon\w*|bomb\w*|shoot\w*)\b`),
			regexp.MustCompile(`(?i)\b(violen\w+|assault\w*)\b`),
		},
		alternatives: []string{
			"I can't engage with that topic. If you have a question about our work or services, I'm glad to help.",
			"That's not something I can discuss. Can I help you with a project inquiry instead?",
			"Let's steer back to something I can help with, like our services or a quote.",
		},
	},
	{
		name:     "harassment",
		severity: "medium",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(stupid|idiot|loser|shut up|pathetic)\b`),
			regexp.MustCompile(`(?i)\b(harass\w*|bully\w*|threat\w*)\b`),
		},
		alternatives: []string{
			"I understand things can be frustrating. Let me try to actually help: what were you trying to do?",
			"I'm here to help, not to argue. Tell me what went wrong and I'll do my best.",
			"Let's reset. What can I help you with today?",
		},
	},
	{
		name:     "illegal",
		severity: "high",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(hack\w* into|stolen (card|account|data)|launder\w*|counterfeit|pirat\w+ (software|content))\b`),
			regexp.MustCompile(`(?i)\b(crack\w* (password|account)s?|ddos|credit card fraud)\b`),
		},
		alternatives: []string{
			"I can't help with that. If you have a legitimate security or development question, I'm happy to assist.",
			"That's not something we do. We can help with secure, above-board development work though.",
			"I have to pass on that one. Want to talk about a real project instead?",
		},
	},
	{
		name:     "personal",
		severity: "medium",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
			regexp.MustCompile(`\b\d{3}[-.\s]\d{3,4}[-.\s]\d{4}\b`),
			regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			regexp.MustCompile(`(?i)\b(home address|credit card number|passport number)\b`),
		},
		alternatives: []string{
			"Please don't share personal details in chat. Use our contact form instead and we'll follow up securely.",
			"For your privacy I'd rather not handle personal information here. Our contact page is the safe route.",
			"I avoid processing personal data in this chat. Reach out through the contact form and the team will respond.",
		},
	},
}

// offTopicPatterns feed the advanced filter's relevance scoring; off-topic
// text is redirected rather than blocked.
var offTopicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(weather|sports score|celebrity|lottery|horoscope)\b`),
	regexp.MustCompile(`(?i)\b(recipe|cooking|movie recommendation)\b`),
}
