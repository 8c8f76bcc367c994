package classify

import (
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// Competitive classifies explicit competitor-research behavior. Where a URL
// matches a known competitor domain the signal names it in signal_data, which
// the competitive analyzer later reads back out.
func Competitive(identityID string, c CompetitiveActivity, now time.Time) []intent.Signal {
	const confidence = 0.75

	emit := func(out []intent.Signal, cat intent.Category, signalType, value string, weight, decay float64) []intent.Signal {
		s := intent.NewSignal(identityID, now, intent.SourceExternal, cat, signalType, weight, confidence, decay)
		s.SignalData = map[string]string{"reference": value}
		if comp := matchCompetitor(value); comp != "" {
			s.SignalData["competitor"] = comp
		}
		return append(out, s)
	}

	var out []intent.Signal
	for _, site := range c.CompetitorSitesVisited {
		out = emit(out, intent.CategoryCompetitive, "competitor-site-visited", site, 0.7, 0.02)
	}
	for _, content := range c.CompetitorContentConsumed {
		out = emit(out, intent.CategoryCompetitive, "competitor-content-consumed", content, 0.65, 0.02)
	}
	for _, search := range c.ComparisonSearches {
		out = emit(out, intent.CategoryCompetitive, "comparison-search", search, 0.75, 0.02)
	}
	for _, doc := range c.VendorEvalContent {
		out = emit(out, intent.CategoryCompetitive, "vendor-eval-content", doc, 0.85, 0.01)
	}
	for _, rfp := range c.RFPSignals {
		out = emit(out, intent.CategoryPurchaseIntent, "rfp-signal", rfp, 0.9, 0.02)
	}
	return out
}
