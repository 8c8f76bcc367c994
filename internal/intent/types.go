package intent

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Source identifies the channel a signal was observed on.
type Source string

const (
	SourceWebsite    Source = "website"
	SourceRepository Source = "code-repository"
	SourceDocs       Source = "documentation"
	SourceCommunity  Source = "community"
	SourceContent    Source = "content"
	SourceEvent      Source = "event"
	SourceExternal   Source = "external"
)

// Sources lists every channel in breakdown order.
var Sources = []Source{
	SourceWebsite,
	SourceRepository,
	SourceDocs,
	SourceCommunity,
	SourceContent,
	SourceEvent,
	SourceExternal,
}

// Category places a signal on the buying journey.
type Category string

const (
	CategoryAwareness      Category = "awareness"
	CategoryConsideration  Category = "consideration"
	CategoryEvaluation     Category = "evaluation"
	CategoryPurchaseIntent Category = "purchase-intent"
	CategoryCompetitive    Category = "competitive"
)

// Stage is the predicted buying stage for an identity.
type Stage string

const (
	StageAwareness     Stage = "awareness"
	StageConsideration Stage = "consideration"
	StageEvaluation    Stage = "evaluation"
	StagePurchase      Stage = "purchase"
	StageExpansion     Stage = "expansion"
)

// Trend is the direction of an identity's recent signal activity.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)

// EvalStage classifies how far along a competitive evaluation is.
type EvalStage string

const (
	EvalEarly   EvalStage = "early"
	EvalActive  EvalStage = "active"
	EvalFinal   EvalStage = "final"
	EvalDecided EvalStage = "decided"
)

// Signal is one observed behavioral event for an identity. Signals are
// immutable once created: they are never edited, only superseded by newer
// signals or dropped by the retention sweep.
type Signal struct {
	ID           string            `json:"id"`
	IdentityID   string            `json:"identity_id"`
	Timestamp    time.Time         `json:"timestamp"`
	Source       Source            `json:"source"`
	Category     Category          `json:"category"`
	SignalType   string            `json:"signal_type"`
	SignalData   map[string]string `json:"signal_data,omitempty"`
	IntentWeight float64           `json:"intent_weight"` // base strength at creation, 0..1
	Confidence   float64           `json:"confidence"`    // reliability, 0..1; not part of the decay math
	DecayRate    float64           `json:"decay_rate"`    // fractional weight loss per elapsed day, 0..1
	Correlations []string          `json:"correlations,omitempty"`
}

// NewSignal builds a signal with a fresh id, clamping weight, confidence and
// decay rate into [0,1]. Capture calls never fail on bad numeric input.
func NewSignal(identityID string, ts time.Time, src Source, cat Category, signalType string, weight, confidence, decayRate float64) Signal {
	return Signal{
		ID:           uuid.NewString(),
		IdentityID:   identityID,
		Timestamp:    ts,
		Source:       src,
		Category:     cat,
		SignalType:   signalType,
		IntentWeight: Clamp01(weight),
		Confidence:   Clamp01(confidence),
		DecayRate:    Clamp01(decayRate),
	}
}

// WeightAt returns the signal's decayed weight at the given instant:
// intent_weight × (1−decay_rate)^elapsed_days, with elapsed days continuous
// rather than floored. Signals observed after asOf contribute their full
// weight (no future discount).
func (s Signal) WeightAt(asOf time.Time) float64 {
	days := asOf.Sub(s.Timestamp).Hours() / 24
	if days <= 0 {
		return s.IntentWeight
	}
	return s.IntentWeight * math.Pow(1-s.DecayRate, days)
}

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Score is the derived intent score for one identity. It is recomputed from
// scratch on every processing pass and overwritten in place; it disappears
// when the identity's last signal expires.
type Score struct {
	IdentityID string             `json:"identity_id"`
	Overall    float64            `json:"overall_score"` // 0..100
	Breakdown  map[Source]float64 `json:"signal_breakdown"`
	Stage      Stage              `json:"buying_stage_prediction"`
	Urgency    float64            `json:"urgency_score"` // 0..100
	Fit        float64            `json:"fit_score"`     // 0..100
	Trend      Trend              `json:"trend"`
	UpdatedAt  time.Time          `json:"last_updated"`
}

// CompetitiveIntel is the derived competitive picture for one identity,
// produced by an explicit analysis call rather than the periodic scheduler.
type CompetitiveIntel struct {
	IdentityID     string    `json:"identity_id"`
	Competitors    []string  `json:"competitors_researched"`
	EvalStage      EvalStage `json:"evaluation_stage"`
	Advantages     []string  `json:"advantage_areas"`
	Risks          []string  `json:"risk_factors"`
	WinProbability float64   `json:"win_probability"` // 0..1
	Strategy       string    `json:"recommended_strategy"`
	UpdatedAt      time.Time `json:"updated_at"`
}
