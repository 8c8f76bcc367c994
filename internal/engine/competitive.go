package engine

import (
	"sort"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// Win-probability heuristic bounds and weights.
const (
	winBase          = 0.5
	winPerAdvantage  = 0.06
	winPerRisk       = 0.08
	winFloor         = 0.05
	winCeiling       = 0.95
	evalDecidedAfter = 30 * 24 * time.Hour // final-stage research gone quiet
)

// Per-competitor positioning. Unknown competitors fall back to the generic
// entry.
var competitorBooks = map[string]struct {
	advantages []string
	risks      []string
}{
	"Datadog": {
		advantages: []string{"predictable pricing at scale", "open data pipeline"},
		risks:      []string{"entrenched dashboards", "broad platform lock-in"},
	},
	"PagerDuty": {
		advantages: []string{"unified signals and alerting", "simpler on-call setup"},
		risks:      []string{"mature escalation workflows"},
	},
	"New Relic": {
		advantages: []string{"transparent usage billing", "lighter agent footprint"},
		risks:      []string{"free-tier stickiness"},
	},
	"Splunk": {
		advantages: []string{"faster time to value", "lower ingest cost"},
		risks:      []string{"enterprise procurement relationships", "deep SIEM install base"},
	},
	"Grafana": {
		advantages: []string{"managed operations out of the box"},
		risks:      []string{"open-source community pull"},
	},
	"Opsgenie": {
		advantages: []string{"richer intent analytics", "broader integrations"},
		risks:      []string{"bundled suite pricing"},
	},
	"": {
		advantages: []string{"developer-first workflow"},
		risks:      []string{"unknown incumbent"},
	},
}

var strategyByStage = map[intent.EvalStage]string{
	intent.EvalEarly:   "educate",
	intent.EvalActive:  "differentiate",
	intent.EvalFinal:   "prove-value",
	intent.EvalDecided: "maintain-relationship",
}

// analyzeCompetitiveSignals derives competitive intel from the identity's
// signal log. Returns nil when nothing competitor-related has been observed.
func analyzeCompetitiveSignals(identityID string, signals []intent.Signal, asOf time.Time) *intent.CompetitiveIntel {
	var (
		competitive   []intent.Signal
		hasVendorEval bool
		hasComparison bool
		newest        time.Time
	)
	names := make(map[string]bool)

	for _, s := range signals {
		switch s.SignalType {
		case "vendor-eval-content", "rfp-signal":
			hasVendorEval = true
		case "comparison-search":
			hasComparison = true
		}
		if s.Category != intent.CategoryCompetitive && s.SignalType != "rfp-signal" {
			continue
		}
		competitive = append(competitive, s)
		if s.Timestamp.After(newest) {
			newest = s.Timestamp
		}
		if comp := s.SignalData["competitor"]; comp != "" {
			names[comp] = true
		}
	}

	if len(competitive) == 0 {
		return nil
	}

	competitors := make([]string, 0, len(names))
	for n := range names {
		competitors = append(competitors, n)
	}
	sort.Strings(competitors)

	stage := intent.EvalEarly
	switch {
	case hasVendorEval:
		stage = intent.EvalFinal
	case hasComparison || len(competitors) >= 2:
		stage = intent.EvalActive
	}
	// Final-stage research that went silent means the decision already
	// happened, one way or the other.
	if stage == intent.EvalFinal && asOf.Sub(newest) > evalDecidedAfter {
		stage = intent.EvalDecided
	}

	advantages, risks := positioning(competitors)

	win := winBase + winPerAdvantage*float64(len(advantages)) - winPerRisk*float64(len(risks))
	if win < winFloor {
		win = winFloor
	}
	if win > winCeiling {
		win = winCeiling
	}

	return &intent.CompetitiveIntel{
		IdentityID:     identityID,
		Competitors:    competitors,
		EvalStage:      stage,
		Advantages:     advantages,
		Risks:          risks,
		WinProbability: win,
		Strategy:       strategyByStage[stage],
		UpdatedAt:      asOf,
	}
}

// positioning unions the advantage/risk books of every named competitor,
// deduplicated in first-seen order.
func positioning(competitors []string) (advantages, risks []string) {
	keys := competitors
	if len(keys) == 0 {
		keys = []string{""}
	}

	seenAdv := make(map[string]bool)
	seenRisk := make(map[string]bool)
	for _, name := range keys {
		book, ok := competitorBooks[name]
		if !ok {
			book = competitorBooks[""]
		}
		for _, a := range book.advantages {
			if !seenAdv[a] {
				seenAdv[a] = true
				advantages = append(advantages, a)
			}
		}
		for _, r := range book.risks {
			if !seenRisk[r] {
				seenRisk[r] = true
				risks = append(risks, r)
			}
		}
	}
	return advantages, risks
}
