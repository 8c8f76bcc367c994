package classify

import (
	"fmt"
	"strings"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// productOrg is the vendor's own code-hosting organization; membership is a
// stronger tie than a star but weaker than a contribution.
const productOrg = "openfunnel"

// Repository classifies code-repository activity. Weights escalate
// star < fork < contribution (issue/PR/commits), with progressively slower
// decay: code-level engagement is stickier evidence than browsing.
func Repository(identityID string, a RepositoryActivity, now time.Time) []intent.Signal {
	const confidence = 0.9

	emit := func(out []intent.Signal, cat intent.Category, signalType, repo string, weight, decay float64) []intent.Signal {
		s := intent.NewSignal(identityID, now, intent.SourceRepository, cat, signalType, weight, confidence, decay)
		s.SignalData = map[string]string{"account": a.AccountHandle}
		if repo != "" {
			s.SignalData["repo"] = repo
		}
		return append(out, s)
	}

	var out []intent.Signal
	for _, repo := range a.Starred {
		out = emit(out, intent.CategoryConsideration, "repo-starred", repo, 0.45, 0.08)
	}
	for _, repo := range a.Forked {
		out = emit(out, intent.CategoryConsideration, "repo-forked", repo, 0.65, 0.05)
	}
	for _, issue := range a.IssuesOpened {
		out = emit(out, intent.CategoryEvaluation, "issue-opened", issue, 0.8, 0.03)
	}
	for _, pr := range a.PullRequests {
		out = emit(out, intent.CategoryEvaluation, "pull-request-opened", pr, 0.85, 0.02)
	}
	if a.Commits > 0 {
		s := intent.NewSignal(identityID, now, intent.SourceRepository, intent.CategoryEvaluation,
			"commits-pushed", 0.8, confidence, 0.03)
		s.SignalData = map[string]string{
			"account": a.AccountHandle,
			"commits": fmt.Sprintf("%d", a.Commits),
		}
		out = append(out, s)
	}
	for _, org := range a.Organizations {
		if strings.EqualFold(org, productOrg) {
			out = emit(out, intent.CategoryConsideration, "org-member", org, 0.5, 0.05)
		}
	}
	return out
}
