package engine

import (
	"context"
	"testing"
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

func TestEnqueueDeduplicates(t *testing.T) {
	eng, _, _ := testEngine(t)
	sched := NewScheduler(eng, nil, 0, 0)

	sched.Enqueue("acct-1")
	sched.Enqueue("acct-1")
	sched.Enqueue("acct-2")

	if got := sched.Pending(); got != 2 {
		t.Errorf("pending = %d, want 2 (acct-1 queued once)", got)
	}
}

func TestTickProcessesBoundedBatch(t *testing.T) {
	eng, _, _ := testEngine(t)
	sched := NewScheduler(eng, nil, 0, 2)

	for _, id := range []string{"a", "b", "c"} {
		sched.Enqueue(id)
	}

	if n := sched.Tick(context.Background()); n != 2 {
		t.Errorf("first tick processed %d, want 2", n)
	}
	if got := sched.Pending(); got != 1 {
		t.Errorf("pending after tick = %d, want 1", got)
	}
	if n := sched.Tick(context.Background()); n != 1 {
		t.Errorf("second tick processed %d, want 1", n)
	}
}

func TestTickRecomputesScores(t *testing.T) {
	eng, _, _ := testEngine(t)
	sched := NewScheduler(eng, nil, 0, 0)

	appendSignals(t, eng,
		newTestSignal(intent.SourceWebsite, intent.CategoryPurchaseIntent, "pricing-page-visit", testNow.Add(-time.Hour), 0.8, 0.05),
	)
	sched.Enqueue("acct-1")

	if score, _ := eng.DB.GetScore("acct-1"); score != nil {
		t.Fatal("score exists before any tick")
	}

	sched.Tick(context.Background())

	score, err := eng.DB.GetScore("acct-1")
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if score == nil {
		t.Fatal("tick did not produce a score")
	}
}

func TestTickSurvivesBadIdentity(t *testing.T) {
	eng, _, _ := testEngine(t)
	sched := NewScheduler(eng, nil, 0, 0)

	// An identity with no signals recomputes to "no score" without error,
	// and must not keep the rest of the batch from processing.
	appendSignals(t, eng,
		newTestSignal(intent.SourceWebsite, intent.CategoryConsideration, "docs-visit", testNow.Add(-time.Hour), 0.4, 0.1),
	)
	sched.Enqueue("ghost")
	sched.Enqueue("acct-1")

	if n := sched.Tick(context.Background()); n != 2 {
		t.Errorf("processed %d, want 2", n)
	}
	if score, _ := eng.DB.GetScore("acct-1"); score == nil {
		t.Error("batch member not processed after empty identity")
	}
}

func TestReEnqueueAfterDrain(t *testing.T) {
	eng, _, _ := testEngine(t)
	sched := NewScheduler(eng, nil, 0, 0)

	sched.Enqueue("acct-1")
	sched.Tick(context.Background())

	// Once drained, the identity may be queued again for the next tick.
	sched.Enqueue("acct-1")
	if got := sched.Pending(); got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}
}

func TestCleanupExpiresIdentity(t *testing.T) {
	eng, clock, _ := testEngine(t)
	sched := NewScheduler(eng, clock, 0, 0)

	appendSignals(t, eng,
		newTestSignal(intent.SourceWebsite, intent.CategoryConsideration, "docs-visit", testNow.Add(-time.Hour), 0.4, 0.1),
	)
	sched.Enqueue("acct-1")
	sched.Tick(context.Background())

	if score, _ := eng.DB.GetScore("acct-1"); score == nil {
		t.Fatal("expected score before expiry")
	}

	clock.Advance(91 * 24 * time.Hour)
	sched.Cleanup()

	if signals, _ := eng.DB.SignalsFor("acct-1", clock.Now()); len(signals) != 0 {
		t.Errorf("signals survived cleanup: %d", len(signals))
	}
	if score, _ := eng.DB.GetScore("acct-1"); score != nil {
		t.Error("score survived cleanup of an emptied identity")
	}
}

func TestCleanupReEnqueuesSurvivors(t *testing.T) {
	eng, clock, _ := testEngine(t)
	sched := NewScheduler(eng, clock, 0, 0)

	old := newTestSignal(intent.SourceWebsite, intent.CategoryConsideration, "docs-visit", testNow.Add(-85*24*time.Hour), 0.4, 0.1)
	fresh := newTestSignal(intent.SourceWebsite, intent.CategoryConsideration, "docs-visit", testNow, 0.4, 0.1)
	appendSignals(t, eng, old, fresh)

	// A week on, the old signal ages past the window but the fresh one keeps
	// the identity alive; cleanup must queue it so the trimmed log is
	// rescored.
	clock.Advance(7 * 24 * time.Hour)
	sched.Cleanup()

	if got := sched.Pending(); got != 1 {
		t.Errorf("pending after cleanup = %d, want 1", got)
	}
	signals, _ := eng.DB.SignalsFor("acct-1", clock.Now())
	if len(signals) != 1 || signals[0].ID != fresh.ID {
		t.Errorf("expected only the fresh signal to survive, got %d", len(signals))
	}
}
