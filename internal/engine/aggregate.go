package engine

import (
	"time"

	"github.com/openfunnel/intentd/internal/intent"
)

// sourceScale converts a sum of decayed signal weights into a 0..100-ish
// per-source score. Per-source scores are deliberately uncapped; only the
// overall score saturates at 100.
const sourceScale = 20

// Aggregate computes the per-source breakdown and capped overall score as of
// the given instant. It is a pure function of (signals, asOf): identical
// inputs always produce identical outputs, so retries and double processing
// are safe.
func Aggregate(signals []intent.Signal, asOf time.Time) (float64, map[intent.Source]float64) {
	breakdown := make(map[intent.Source]float64, len(intent.Sources))
	for _, src := range intent.Sources {
		breakdown[src] = 0
	}

	for _, s := range signals {
		breakdown[s.Source] += s.WeightAt(asOf) * sourceScale
	}

	// Sum in declaration order, not map order: float addition is not
	// associative, and map iteration would make identical inputs produce
	// scores differing at the last bit.
	var overall float64
	for _, src := range intent.Sources {
		overall += breakdown[src]
	}
	if overall > 100 {
		overall = 100
	}
	return overall, breakdown
}
