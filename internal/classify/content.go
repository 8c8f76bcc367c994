package classify

import (
	"fmt"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// Watch time across all videos that counts as real engagement.
const videoWatchThreshold = 300

// Content classifies marketing-content engagement. Email opens alone carry
// no intent and produce nothing; clicks do.
func Content(identityID string, c ContentEngagement, now time.Time) []intent.Signal {
	const confidence = 0.6

	emit := func(out []intent.Signal, cat intent.Category, signalType string, data map[string]string, weight, decay float64) []intent.Signal {
		s := intent.NewSignal(identityID, now, intent.SourceContent, cat, signalType, weight, confidence, decay)
		s.SignalData = data
		return append(out, s)
	}

	var out []intent.Signal
	for _, cs := range c.CaseStudiesViewed {
		out = emit(out, intent.CategoryConsideration, "case-study-viewed", map[string]string{"case_study": cs}, 0.6, 0.08)
	}
	for _, wp := range c.WhitepapersDownloaded {
		out = emit(out, intent.CategoryConsideration, "whitepaper-downloaded", map[string]string{"whitepaper": wp}, 0.65, 0.08)
	}
	for _, w := range c.WebinarsAttended {
		out = emit(out, intent.CategoryEvaluation, "webinar-attended", map[string]string{"webinar": w}, 0.7, 0.05)
	}
	for _, b := range c.BlogPostsRead {
		out = emit(out, intent.CategoryAwareness, "blog-post-read", map[string]string{"post": b}, 0.25, 0.15)
	}
	for _, e := range c.EmailClicks {
		out = emit(out, intent.CategoryAwareness, "email-clicked", map[string]string{"email": e}, 0.35, 0.15)
	}

	var watch float64
	for _, seconds := range c.VideoWatchTime {
		watch += clampSeconds(seconds)
	}
	if watch >= videoWatchThreshold {
		out = emit(out, intent.CategoryConsideration, "video-engagement",
			map[string]string{"seconds": fmt.Sprintf("%.0f", watch)}, 0.5, 0.10)
	}

	return out
}
