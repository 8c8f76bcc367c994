package classify

import (
	"fmt"
	"strings"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// Documentation classifies a docs page view. Scroll depth is clamped into
// [0,1] before the deep-engagement check.
func Documentation(identityID string, d DocumentationView, now time.Time) []intent.Signal {
	const confidence = 0.8

	seconds := clampSeconds(d.TimeSpentSeconds)
	scroll := intent.Clamp01(d.ScrollDepth)

	var out []intent.Signal
	var pathSignalID string

	if r, ok := matchRuleSubstring(docPathRules, d.DocPath); ok {
		s := intent.NewSignal(identityID, now, intent.SourceDocs, r.category, r.signalType, r.weight, confidence, r.decay)
		s.SignalData = map[string]string{"doc_path": d.DocPath}
		pathSignalID = s.ID
		out = append(out, s)
	}

	if seconds > deepDocSeconds && scroll >= deepDocScroll {
		s := intent.NewSignal(identityID, now, intent.SourceDocs, intent.CategoryEvaluation,
			"deep-doc-engagement", deepEngagementWeight(seconds), confidence, 0.10)
		s.SignalData = map[string]string{
			"doc_path": d.DocPath,
			"seconds":  fmt.Sprintf("%.0f", seconds),
			"scroll":   fmt.Sprintf("%.2f", scroll),
		}
		if pathSignalID != "" {
			s.Correlations = []string{pathSignalID}
		}
		out = append(out, s)
	}

	for _, q := range d.SearchQueries {
		if !evalQuery(q) {
			continue
		}
		s := intent.NewSignal(identityID, now, intent.SourceDocs, intent.CategoryEvaluation,
			"evaluation-search", 0.6, confidence, 0.10)
		s.SignalData = map[string]string{"query": q}
		out = append(out, s)
	}

	for _, asset := range d.DownloadedAssets {
		s := intent.NewSignal(identityID, now, intent.SourceDocs, intent.CategoryEvaluation,
			"asset-downloaded", 0.65, confidence, 0.08)
		s.SignalData = map[string]string{"asset": asset}
		out = append(out, s)
	}

	return out
}

func evalQuery(q string) bool {
	lower := strings.ToLower(q)
	for _, kw := range evalSearchKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
