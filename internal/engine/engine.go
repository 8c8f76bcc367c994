// Package engine turns an identity's signal log into its intent score: decay
// and aggregation, stage/urgency/fit/trend classification, the competitive
// analyzer, and the processing scheduler that drives recomputation.
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/openfunnel/intentd/internal/intent"
	"github.com/openfunnel/intentd/internal/profile"
	"github.com/openfunnel/intentd/internal/store"
	"github.com/openfunnel/intentd/internal/workflow"
)

// Workflow trigger thresholds checked after every recomputation.
const (
	highIntentScore   = 70
	highIntentUrgency = 80
	mediumIntentScore = 40
)

// Engine owns all derived state. One instance is constructed at process start
// and shared; the store serializes writes underneath it.
type Engine struct {
	DB        *store.DB
	Profiles  profile.Source
	Workflows workflow.Trigger
	clock     clockwork.Clock
}

// New creates an Engine. Nil collaborators fall back to an empty profile
// source and a no-op workflow trigger; a nil clock means wall clock.
func New(db *store.DB, profiles profile.Source, workflows workflow.Trigger, clock clockwork.Clock) *Engine {
	if profiles == nil {
		profiles = &profile.Static{}
	}
	if workflows == nil {
		workflows = workflow.Noop{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		DB:        db,
		Profiles:  profiles,
		Workflows: workflows,
		clock:     clock,
	}
}

// Recompute rebuilds the identity's score from its current signal log and
// saves it, firing workflow triggers when thresholds are crossed. An identity
// with no live signals has its score deleted and (nil, nil) returned.
// Aggregation is a pure function of (signals, asOf), so rerunning a
// recomputation is harmless.
func (e *Engine) Recompute(ctx context.Context, identityID string) (*intent.Score, error) {
	asOf := e.clock.Now()

	// The store already excludes expired signals from reads, so the sweep
	// lagging behind never inflates a score.
	live, err := e.DB.SignalsFor(identityID, asOf)
	if err != nil {
		return nil, fmt.Errorf("load signals for %s: %w", identityID, err)
	}

	if len(live) == 0 {
		if err := e.DB.DeleteScore(identityID); err != nil {
			return nil, fmt.Errorf("delete empty score for %s: %w", identityID, err)
		}
		return nil, nil
	}

	overall, breakdown := Aggregate(live, asOf)

	prof, err := e.Profiles.GetProfile(ctx, identityID)
	if err != nil {
		// Fail-soft: an unreachable profile service costs fit points, not
		// the whole recomputation.
		log.Printf("profile lookup for %s: %v", identityID, err)
		prof = nil
	}

	score := intent.Score{
		IdentityID: identityID,
		Overall:    overall,
		Breakdown:  breakdown,
		Stage:      PredictStage(overall, live, asOf),
		Urgency:    UrgencyScore(live, asOf),
		Fit:        FitScore(prof),
		Trend:      TrendOf(live, asOf),
		UpdatedAt:  asOf,
	}

	if err := e.DB.SaveScore(score); err != nil {
		return nil, fmt.Errorf("save score for %s: %w", identityID, err)
	}

	e.checkThresholds(ctx, score)
	return &score, nil
}

// checkThresholds fires at most one workflow trigger per recomputation.
// Failures are logged and never retried; the stored score is unaffected.
func (e *Engine) checkThresholds(ctx context.Context, s intent.Score) {
	switch {
	case s.Overall > highIntentScore && s.Urgency > highIntentUrgency:
		if err := e.Workflows.HighIntent(ctx, s.IdentityID); err != nil {
			log.Printf("high-intent trigger for %s: %v", s.IdentityID, err)
		}
	case s.Overall > mediumIntentScore:
		if err := e.Workflows.MediumIntent(ctx, s.IdentityID); err != nil {
			log.Printf("medium-intent trigger for %s: %v", s.IdentityID, err)
		}
	}
}

// AnalyzeCompetitive runs the competitive analyzer over the identity's
// current signals and persists the result. Returns (nil, nil) when the
// identity has no competitor-related signals. Unlike scoring this runs only
// on explicit request, never on a scheduler tick.
func (e *Engine) AnalyzeCompetitive(ctx context.Context, identityID string) (*intent.CompetitiveIntel, error) {
	asOf := e.clock.Now()
	signals, err := e.DB.SignalsFor(identityID, asOf)
	if err != nil {
		return nil, fmt.Errorf("load signals for %s: %w", identityID, err)
	}

	ci := analyzeCompetitiveSignals(identityID, signals, asOf)
	if ci == nil {
		return nil, nil
	}

	if err := e.DB.SaveIntel(*ci); err != nil {
		return nil, fmt.Errorf("save intel for %s: %w", identityID, err)
	}
	return ci, nil
}

// RunCleanup sweeps expired signals across all identities and re-enqueues the
// survivors so their scores reflect the trimmed logs.
func (e *Engine) RunCleanup(enqueue func(string)) error {
	asOf := e.clock.Now()
	removed, gone, err := e.DB.RemoveExpired(asOf)
	if err != nil {
		return fmt.Errorf("retention sweep: %w", err)
	}
	if removed > 0 {
		log.Printf("retention: removed %d signals, %d identities expired entirely", removed, len(gone))
	}

	if enqueue == nil {
		return nil
	}
	ids, err := e.DB.Identities()
	if err != nil {
		return fmt.Errorf("list identities after sweep: %w", err)
	}
	for _, id := range ids {
		enqueue(id)
	}
	return nil
}

// Now exposes the engine clock for callers that must stamp captures with the
// same time source the scheduler uses.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}
