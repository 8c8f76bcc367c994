package engine

import (
	"testing"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

func competitiveSignal(signalType, competitor string, ts time.Time) intent.Signal {
	s := intent.NewSignal("acct-1", ts, intent.SourceExternal, intent.CategoryCompetitive, signalType, 0.7, 0.75, 0.02)
	if competitor != "" {
		s.SignalData = map[string]string{"competitor": competitor}
	}
	return s
}

func TestAnalyzeNoCompetitiveSignals(t *testing.T) {
	signals := []intent.Signal{
		newTestSignal(intent.SourceWebsite, intent.CategoryConsideration, "docs-visit", testNow, 0.4, 0.1),
	}
	if ci := analyzeCompetitiveSignals("acct-1", signals, testNow); ci != nil {
		t.Errorf("expected nil intel without competitive signals, got %+v", ci)
	}
}

func TestAnalyzeExtractsCompetitors(t *testing.T) {
	signals := []intent.Signal{
		competitiveSignal("competitor-site-visited", "Splunk", testNow.Add(-time.Hour)),
		competitiveSignal("competitor-site-visited", "Datadog", testNow.Add(-2*time.Hour)),
		competitiveSignal("competitor-content-consumed", "Datadog", testNow.Add(-3*time.Hour)),
	}

	ci := analyzeCompetitiveSignals("acct-1", signals, testNow)
	if ci == nil {
		t.Fatal("expected intel, got nil")
	}
	if len(ci.Competitors) != 2 || ci.Competitors[0] != "Datadog" || ci.Competitors[1] != "Splunk" {
		t.Errorf("competitors = %v, want [Datadog Splunk] sorted and deduplicated", ci.Competitors)
	}
	// Two competitors in play: active evaluation
	if ci.EvalStage != intent.EvalActive {
		t.Errorf("stage = %q, want active", ci.EvalStage)
	}
	if ci.Strategy != "differentiate" {
		t.Errorf("strategy = %q, want differentiate", ci.Strategy)
	}
}

func TestAnalyzeStages(t *testing.T) {
	one := []intent.Signal{competitiveSignal("competitor-site-visited", "Grafana", testNow.Add(-time.Hour))}
	ci := analyzeCompetitiveSignals("acct-1", one, testNow)
	if ci.EvalStage != intent.EvalEarly {
		t.Errorf("single competitor stage = %q, want early", ci.EvalStage)
	}

	comparison := append(one, competitiveSignal("comparison-search", "", testNow.Add(-time.Hour)))
	ci = analyzeCompetitiveSignals("acct-1", comparison, testNow)
	if ci.EvalStage != intent.EvalActive {
		t.Errorf("comparison-search stage = %q, want active", ci.EvalStage)
	}

	vendorEval := append(one, competitiveSignal("vendor-eval-content", "", testNow.Add(-time.Hour)))
	ci = analyzeCompetitiveSignals("acct-1", vendorEval, testNow)
	if ci.EvalStage != intent.EvalFinal {
		t.Errorf("vendor-eval stage = %q, want final", ci.EvalStage)
	}
	if ci.Strategy != "prove-value" {
		t.Errorf("strategy = %q, want prove-value", ci.Strategy)
	}
}

func TestAnalyzeDecidedWhenFinalGoesQuiet(t *testing.T) {
	// Final-stage research that stopped 45 days ago: the decision happened.
	stale := []intent.Signal{
		competitiveSignal("competitor-site-visited", "Datadog", testNow.Add(-50*24*time.Hour)),
		competitiveSignal("vendor-eval-content", "", testNow.Add(-45*24*time.Hour)),
	}
	ci := analyzeCompetitiveSignals("acct-1", stale, testNow)
	if ci.EvalStage != intent.EvalDecided {
		t.Errorf("stage = %q, want decided", ci.EvalStage)
	}
	if ci.Strategy != "maintain-relationship" {
		t.Errorf("strategy = %q, want maintain-relationship", ci.Strategy)
	}
}

func TestAnalyzeWinProbabilityBounds(t *testing.T) {
	// Every known competitor at once piles up risks; probability must stay
	// inside [0.05, 0.95].
	var signals []intent.Signal
	for _, c := range []string{"Datadog", "PagerDuty", "New Relic", "Splunk", "Grafana", "Opsgenie"} {
		signals = append(signals, competitiveSignal("competitor-site-visited", c, testNow.Add(-time.Hour)))
	}

	ci := analyzeCompetitiveSignals("acct-1", signals, testNow)
	if ci.WinProbability < 0.05 || ci.WinProbability > 0.95 {
		t.Errorf("win probability = %f, want within [0.05, 0.95]", ci.WinProbability)
	}
	if len(ci.Advantages) == 0 || len(ci.Risks) == 0 {
		t.Error("expected positioning for known competitors")
	}
}

func TestAnalyzeUnknownCompetitorFallback(t *testing.T) {
	signals := []intent.Signal{competitiveSignal("competitor-site-visited", "", testNow.Add(-time.Hour))}
	ci := analyzeCompetitiveSignals("acct-1", signals, testNow)
	if ci == nil {
		t.Fatal("expected intel for unnamed competitor research")
	}
	if len(ci.Competitors) != 0 {
		t.Errorf("competitors = %v, want none named", ci.Competitors)
	}
	if len(ci.Advantages) == 0 {
		t.Error("expected generic positioning for unnamed competitor")
	}
}
