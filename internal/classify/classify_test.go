package classify

import (
	"testing"

	"github.com/openfunnel/intentd/internal/intent"
)

func TestRepositoryLadder(t *testing.T) {
	signals := Repository("acct-1", RepositoryActivity{
		AccountHandle: "octocat",
		Starred:       []string{"openfunnel/agent"},
		Forked:        []string{"openfunnel/agent"},
		PullRequests:  []string{"openfunnel/agent#42"},
	}, testNow)

	star := findType(t, signals, "repo-starred")
	fork := findType(t, signals, "repo-forked")
	pr := findType(t, signals, "pull-request-opened")

	// Escalating weight: star < fork < contribution
	if !(star.IntentWeight < fork.IntentWeight && fork.IntentWeight < pr.IntentWeight) {
		t.Errorf("weights not escalating: star %f, fork %f, pr %f",
			star.IntentWeight, fork.IntentWeight, pr.IntentWeight)
	}
	// Progressively slower decay: code engagement is stickier
	if !(star.DecayRate > fork.DecayRate && fork.DecayRate > pr.DecayRate) {
		t.Errorf("decay not slowing: star %f, fork %f, pr %f",
			star.DecayRate, fork.DecayRate, pr.DecayRate)
	}
	if star.Category != intent.CategoryConsideration {
		t.Errorf("star category = %q, want consideration", star.Category)
	}
	if pr.Category != intent.CategoryEvaluation {
		t.Errorf("pr category = %q, want evaluation", pr.Category)
	}
}

func TestRepositoryOrgMembership(t *testing.T) {
	signals := Repository("acct-1", RepositoryActivity{
		AccountHandle: "octocat",
		Organizations: []string{"SomeOtherOrg", "OpenFunnel"},
	}, testNow)

	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1 (only the tracked org)", len(signals))
	}
	if signals[0].SignalType != "org-member" {
		t.Errorf("signal type = %q", signals[0].SignalType)
	}
}

func TestDocumentationDeepEngagement(t *testing.T) {
	signals := Documentation("acct-1", DocumentationView{
		DocPath:          "/docs/api/alerts",
		TimeSpentSeconds: 240,
		ScrollDepth:      0.9,
	}, testNow)

	page := findType(t, signals, "api-docs-view")
	deep := findType(t, signals, "deep-doc-engagement")
	if deep.Category != intent.CategoryEvaluation {
		t.Errorf("category = %q, want evaluation", deep.Category)
	}
	if len(deep.Correlations) != 1 || deep.Correlations[0] != page.ID {
		t.Errorf("correlations = %v, want [%s]", deep.Correlations, page.ID)
	}

	// Shallow scroll blocks the deep-engagement signal no matter the dwell
	signals = Documentation("acct-1", DocumentationView{
		DocPath:          "/docs/api/alerts",
		TimeSpentSeconds: 600,
		ScrollDepth:      0.3,
	}, testNow)
	for _, s := range signals {
		if s.SignalType == "deep-doc-engagement" {
			t.Error("deep engagement emitted below scroll threshold")
		}
	}
}

func TestDocumentationScrollClamped(t *testing.T) {
	// Out-of-range scroll depth is clamped, never rejected
	signals := Documentation("acct-1", DocumentationView{
		DocPath:          "/docs/install",
		TimeSpentSeconds: 400,
		ScrollDepth:      3.5,
	}, testNow)
	findType(t, signals, "deep-doc-engagement")
}

func TestDocumentationSearchAndAssets(t *testing.T) {
	signals := Documentation("acct-1", DocumentationView{
		DocPath:          "/docs",
		SearchQueries:    []string{"migrate from datadog", "weather"},
		DownloadedAssets: []string{"sizing-guide.pdf"},
	}, testNow)

	var evalSearches int
	for _, s := range signals {
		if s.SignalType == "evaluation-search" {
			evalSearches++
		}
	}
	if evalSearches != 1 {
		t.Errorf("evaluation searches = %d, want 1 (only the migrate query)", evalSearches)
	}
	findType(t, signals, "asset-downloaded")
}

func TestCommunityActivity(t *testing.T) {
	signals := Community("acct-1", CommunityActivity{
		QuestionsAsked:  []string{"how to set up alert routing"},
		AnswersProvided: []string{"re: ingest limits"},
		ChatMessages:    3,
	}, testNow)

	q := findType(t, signals, "question-asked")
	a := findType(t, signals, "answer-provided")
	if a.IntentWeight <= q.IntentWeight {
		t.Errorf("answering (%f) should outweigh asking (%f)", a.IntentWeight, q.IntentWeight)
	}
	// 3 chat messages is below the activity threshold
	for _, s := range signals {
		if s.SignalType == "chat-activity" {
			t.Error("chat-activity emitted below 5-message threshold")
		}
	}
}

func TestContentEmailOpensIgnored(t *testing.T) {
	signals := Content("acct-1", ContentEngagement{
		EmailOpens: []string{"june-newsletter"},
	}, testNow)
	if len(signals) != 0 {
		t.Errorf("email opens produced %d signals, want 0", len(signals))
	}
}

func TestContentVideoThreshold(t *testing.T) {
	signals := Content("acct-1", ContentEngagement{
		VideoWatchTime: map[string]float64{"overview": 200, "deep-dive": 150},
	}, testNow)
	findType(t, signals, "video-engagement")

	signals = Content("acct-1", ContentEngagement{
		VideoWatchTime: map[string]float64{"overview": 100},
	}, testNow)
	if len(signals) != 0 {
		t.Errorf("sub-threshold watch time produced %d signals, want 0", len(signals))
	}
}

func TestCompetitiveCapture(t *testing.T) {
	signals := Competitive("acct-1", CompetitiveActivity{
		CompetitorSitesVisited: []string{"https://www.datadoghq.com/product"},
		ComparisonSearches:     []string{"datadoghq.com vs openfunnel"},
		RFPSignals:             []string{"rfp-2025-q3"},
	}, testNow)

	site := findType(t, signals, "competitor-site-visited")
	if site.Category != intent.CategoryCompetitive {
		t.Errorf("category = %q, want competitive", site.Category)
	}
	if site.SignalData["competitor"] != "Datadog" {
		t.Errorf("competitor = %q, want Datadog", site.SignalData["competitor"])
	}

	rfp := findType(t, signals, "rfp-signal")
	if rfp.Category != intent.CategoryPurchaseIntent {
		t.Errorf("rfp category = %q, want purchase-intent", rfp.Category)
	}
}
