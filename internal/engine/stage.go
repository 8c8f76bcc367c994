package engine

import (
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// Buying-stage ladder thresholds on the overall score.
const (
	purchaseThreshold      = 80
	evaluationThreshold    = 60
	considerationThreshold = 30
)

// An identity above the purchase threshold whose purchase intent is this old
// is read as an existing customer growing usage rather than a new deal.
const expansionAge = 30 * 24 * time.Hour

// PredictStage maps the overall score onto a buying stage. The classification
// is re-derived fresh each pass, so a stage can move backward as decayed
// interest fades; that is intentional.
func PredictStage(overall float64, signals []intent.Signal, asOf time.Time) intent.Stage {
	switch {
	case overall > purchaseThreshold:
		for _, s := range signals {
			if s.Category == intent.CategoryPurchaseIntent && asOf.Sub(s.Timestamp) > expansionAge {
				return intent.StageExpansion
			}
		}
		return intent.StagePurchase
	case overall > evaluationThreshold:
		return intent.StageEvaluation
	case overall > considerationThreshold:
		return intent.StageConsideration
	default:
		return intent.StageAwareness
	}
}

// UrgencyScore measures 7-day signal velocity: volume (capped at 50), heavy
// signals, competitive pressure and explicit purchase intent, saturating at
// 100.
func UrgencyScore(signals []intent.Signal, asOf time.Time) float64 {
	weekAgo := asOf.Add(-7 * 24 * time.Hour)

	var recent, heavy, competitive, purchase int
	for _, s := range signals {
		if s.Timestamp.Before(weekAgo) {
			continue
		}
		recent++
		if s.IntentWeight > 0.8 {
			heavy++
		}
		switch s.Category {
		case intent.CategoryCompetitive:
			competitive++
		case intent.CategoryPurchaseIntent:
			purchase++
		}
	}

	volume := float64(5 * recent)
	if volume > 50 {
		volume = 50
	}
	score := volume + float64(10*heavy) + float64(15*competitive) + float64(20*purchase)
	if score > 100 {
		score = 100
	}
	return score
}

// TrendOf compares raw (non-decayed) intent weight in the last 7 days against
// the 7 days before that. An empty previous window with fresh activity is
// increasing, never a division error.
func TrendOf(signals []intent.Signal, asOf time.Time) intent.Trend {
	weekAgo := asOf.Add(-7 * 24 * time.Hour)
	twoWeeksAgo := asOf.Add(-14 * 24 * time.Hour)

	var recent, previous float64
	for _, s := range signals {
		switch {
		case !s.Timestamp.Before(weekAgo):
			recent += s.IntentWeight
		case !s.Timestamp.Before(twoWeeksAgo):
			previous += s.IntentWeight
		}
	}

	if previous == 0 {
		if recent > 0 {
			return intent.TrendIncreasing
		}
		return intent.TrendStable
	}

	switch {
	case recent > previous*1.2:
		return intent.TrendIncreasing
	case recent < previous*0.8:
		return intent.TrendDecreasing
	default:
		return intent.TrendStable
	}
}
