package intent

import (
	"testing"
	"time"
)

func TestWeightDecaysMonotonically(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := NewSignal("acct-1", created, SourceWebsite, CategoryPurchaseIntent, "pricing-page-visit", 0.8, 0.9, 0.1)

	prev := s.WeightAt(created)
	if prev != 0.8 {
		t.Fatalf("weight at creation = %f, want 0.8", prev)
	}

	for day := 1; day <= 120; day++ {
		w := s.WeightAt(created.Add(time.Duration(day) * 24 * time.Hour))
		if w >= prev {
			t.Fatalf("weight did not decrease on day %d: %f >= %f", day, w, prev)
		}
		if w < 0 {
			t.Fatalf("weight went negative on day %d: %f", day, w)
		}
		prev = w
	}
}

func TestWeightContinuousDays(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := NewSignal("acct-1", created, SourceWebsite, CategoryConsideration, "docs-visit", 1.0, 0.8, 0.5)

	// Half a day at 50% daily decay: 0.5^0.5 ≈ 0.7071, not a floored full day.
	w := s.WeightAt(created.Add(12 * time.Hour))
	if w < 0.70 || w > 0.71 {
		t.Errorf("weight at 12h = %f, want ≈0.7071 (continuous elapsed days)", w)
	}
}

func TestWeightBeforeCreation(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := NewSignal("acct-1", created, SourceWebsite, CategoryAwareness, "blog-visit", 0.3, 0.5, 0.2)

	if w := s.WeightAt(created.Add(-time.Hour)); w != 0.3 {
		t.Errorf("weight before creation = %f, want full base weight", w)
	}
}

func TestNewSignalClampsInputs(t *testing.T) {
	now := time.Now()
	s := NewSignal("acct-1", now, SourceDocs, CategoryEvaluation, "api-docs-view", 1.7, -0.2, 3)
	if s.IntentWeight != 1 {
		t.Errorf("weight = %f, want clamped to 1", s.IntentWeight)
	}
	if s.Confidence != 0 {
		t.Errorf("confidence = %f, want clamped to 0", s.Confidence)
	}
	if s.DecayRate != 1 {
		t.Errorf("decay rate = %f, want clamped to 1", s.DecayRate)
	}
	if s.ID == "" {
		t.Error("expected generated id")
	}
}
