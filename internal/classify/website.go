package classify

import (
	"fmt"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// Dwell thresholds for the derived deep-engagement signals.
const (
	deepPageSeconds = 120
	deepDocSeconds  = 180
	deepDocScroll   = 0.7
)

// Website classifies a single page visit. An unknown path with no
// interactions and short dwell time produces no signals, which is not an
// error.
func Website(identityID string, v WebsiteVisit, now time.Time) []intent.Signal {
	seconds := clampSeconds(v.TimeOnPageSeconds)
	confidence := pageConfidence(seconds, len(v.Interactions))

	var out []intent.Signal
	var pageSignalID string

	if r, ok := matchRuleSubstring(websitePathRules, v.PageURL); ok {
		s := intent.NewSignal(identityID, now, intent.SourceWebsite, r.category, r.signalType, r.weight, confidence, r.decay)
		s.SignalData = map[string]string{"page_url": v.PageURL}
		pageSignalID = s.ID
		out = append(out, s)
	}

	for _, name := range v.Interactions {
		r, ok := matchRuleExact(interactionRules, name)
		if !ok {
			continue
		}
		s := intent.NewSignal(identityID, now, intent.SourceWebsite, r.category, r.signalType, r.weight, confidence, r.decay)
		s.SignalData = map[string]string{"page_url": v.PageURL, "interaction": name}
		out = append(out, s)
	}

	if seconds > deepPageSeconds {
		s := intent.NewSignal(identityID, now, intent.SourceWebsite, intent.CategoryConsideration,
			"deep-page-engagement", deepEngagementWeight(seconds), confidence, 0.15)
		s.SignalData = map[string]string{
			"page_url": v.PageURL,
			"seconds":  fmt.Sprintf("%.0f", seconds),
		}
		// Deep engagement elaborates on the same visit as the page signal.
		if pageSignalID != "" {
			s.Correlations = []string{pageSignalID}
		}
		out = append(out, s)
	}

	if v.Referrer != "" {
		if comp := matchCompetitor(v.Referrer); comp != "" {
			s := intent.NewSignal(identityID, now, intent.SourceWebsite, intent.CategoryCompetitive,
				"competitive-referrer", 0.75, 0.85, 0.01)
			s.SignalData = map[string]string{
				"competitor": comp,
				"referrer":   v.Referrer,
			}
			out = append(out, s)
		}
	}

	return out
}

// pageConfidence starts from a 0.5 base, boosted by dwell time (up to +0.3 at
// ten minutes) and interaction count, capped at 1.
func pageConfidence(seconds float64, interactions int) float64 {
	dwell := seconds / 600
	if dwell > 0.3 {
		dwell = 0.3
	}
	return intent.Clamp01(0.5 + dwell + 0.05*float64(interactions))
}
