package classify

import (
	"fmt"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// Community classifies forum, chat and event activity. Providing answers
// outranks asking questions: a contributor has already committed time to the
// product.
func Community(identityID string, c CommunityActivity, now time.Time) []intent.Signal {
	const confidence = 0.7

	emit := func(out []intent.Signal, cat intent.Category, signalType string, data map[string]string, weight, decay float64) []intent.Signal {
		s := intent.NewSignal(identityID, now, intent.SourceCommunity, cat, signalType, weight, confidence, decay)
		s.SignalData = data
		return append(out, s)
	}

	var out []intent.Signal
	for _, q := range c.QuestionsAsked {
		out = emit(out, intent.CategoryConsideration, "question-asked", map[string]string{"question": q}, 0.55, 0.08)
	}
	for _, a := range c.AnswersProvided {
		out = emit(out, intent.CategoryEvaluation, "answer-provided", map[string]string{"answer": a}, 0.6, 0.05)
	}
	for _, e := range c.EventsAttended {
		out = emit(out, intent.CategoryConsideration, "event-attended", map[string]string{"event": e}, 0.5, 0.08)
	}
	for _, h := range c.HelpRequests {
		out = emit(out, intent.CategoryEvaluation, "help-requested", map[string]string{"request": h}, 0.7, 0.05)
	}
	for _, d := range c.Discussions {
		out = emit(out, intent.CategoryConsideration, "discussion-joined", map[string]string{"discussion": d}, 0.5, 0.08)
	}
	if c.ForumPosts > 0 {
		out = emit(out, intent.CategoryAwareness, "forum-activity",
			map[string]string{"posts": fmt.Sprintf("%d", c.ForumPosts)}, 0.4, 0.12)
	}
	if c.ChatMessages >= 5 {
		out = emit(out, intent.CategoryAwareness, "chat-activity",
			map[string]string{"messages": fmt.Sprintf("%d", c.ChatMessages)}, 0.35, 0.15)
	}
	return out
}
