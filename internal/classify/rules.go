package classify

import (
	"strings"

	"github.com/openfunnel/intentd/internal/intent"
)

// A rule maps a matched fragment of a capture payload to one signal shape.
// Tables are ordered: the first matching rule wins within a table, so more
// specific fragments must come before broader ones.
type rule struct {
	match      string // substring for path rules, exact name for interaction rules
	signalType string
	weight     float64
	category   intent.Category
	decay      float64
}

// Website page-path rules. Matched by substring against the page URL;
// /docs/getting-started precedes /docs for that reason.
var websitePathRules = []rule{
	{"/pricing", "pricing-page-visit", 0.8, intent.CategoryPurchaseIntent, 0.05},
	{"/demo", "demo-page-visit", 0.9, intent.CategoryPurchaseIntent, 0.05},
	{"/contact", "contact-page-visit", 0.85, intent.CategoryPurchaseIntent, 0.05},
	{"/docs/getting-started", "getting-started-visit", 0.6, intent.CategoryEvaluation, 0.10},
	{"/docs", "docs-visit", 0.4, intent.CategoryConsideration, 0.10},
	{"/case-studies", "case-study-visit", 0.5, intent.CategoryConsideration, 0.10},
	{"/integrations", "integrations-visit", 0.5, intent.CategoryEvaluation, 0.10},
	{"/download", "download-page-visit", 0.7, intent.CategoryEvaluation, 0.10},
	{"/security", "security-page-visit", 0.6, intent.CategoryEvaluation, 0.10},
	{"/compliance", "compliance-page-visit", 0.6, intent.CategoryEvaluation, 0.10},
	{"/blog", "blog-visit", 0.2, intent.CategoryAwareness, 0.10},
}

// Named page interactions. Matched exactly; every matching interaction in a
// visit emits its own signal.
var interactionRules = []rule{
	{"demo-request", "demo-request", 0.95, intent.CategoryPurchaseIntent, 0.03},
	{"trial-started", "trial-started", 0.95, intent.CategoryPurchaseIntent, 0.03},
	{"signup-started", "signup-started", 0.9, intent.CategoryPurchaseIntent, 0.04},
	{"pricing-calculator", "pricing-calculator", 0.85, intent.CategoryPurchaseIntent, 0.05},
	{"chat-opened", "chat-opened", 0.5, intent.CategoryConsideration, 0.10},
	{"newsletter-signup", "newsletter-signup", 0.3, intent.CategoryAwareness, 0.20},
}

// Documentation path rules. Migration and pricing docs signal purchase
// intent; anything else under /docs is consideration at best.
var docPathRules = []rule{
	{"/docs/migration", "migration-docs-view", 0.8, intent.CategoryPurchaseIntent, 0.05},
	{"/docs/pricing", "pricing-docs-view", 0.75, intent.CategoryPurchaseIntent, 0.05},
	{"/docs/api", "api-docs-view", 0.7, intent.CategoryEvaluation, 0.08},
	{"/docs/install", "install-docs-view", 0.7, intent.CategoryEvaluation, 0.08},
	{"/docs/getting-started", "getting-started-docs-view", 0.65, intent.CategoryEvaluation, 0.08},
	{"/docs", "docs-view", 0.4, intent.CategoryConsideration, 0.10},
}

// Doc search keywords that indicate active evaluation.
var evalSearchKeywords = []string{"migrate", "vs ", "pricing", "limits"}

// Known competitor domains. A referrer or researched site matching one of
// these produces a competitive signal naming the competitor. Competitive
// signals decay near-permanently slowly: once an identity is shopping around,
// that fact stays relevant.
var competitorDomains = []struct {
	domain string
	name   string
}{
	{"datadoghq.com", "Datadog"},
	{"pagerduty.com", "PagerDuty"},
	{"newrelic.com", "New Relic"},
	{"splunk.com", "Splunk"},
	{"grafana.com", "Grafana"},
	{"opsgenie.com", "Opsgenie"},
}

// matchCompetitor returns the competitor name whose domain appears in the
// URL, or "" if none match.
func matchCompetitor(url string) string {
	lower := strings.ToLower(url)
	for _, c := range competitorDomains {
		if strings.Contains(lower, c.domain) {
			return c.name
		}
	}
	return ""
}

func matchRuleSubstring(table []rule, s string) (rule, bool) {
	for _, r := range table {
		if strings.Contains(s, r.match) {
			return r, true
		}
	}
	return rule{}, false
}

func matchRuleExact(table []rule, name string) (rule, bool) {
	for _, r := range table {
		if r.match == name {
			return r, true
		}
	}
	return rule{}, false
}

// clampSeconds floors negative durations to zero so hostile or buggy
// payloads never fail a capture call.
func clampSeconds(s float64) float64 {
	if s < 0 {
		return 0
	}
	return s
}

// deepEngagementWeight scales with dwell time, reaching the 0.7 ceiling at
// five minutes.
func deepEngagementWeight(seconds float64) float64 {
	w := seconds / 300 * 0.7
	if w > 0.7 {
		w = 0.7
	}
	return w
}
