package scoring

import (
	"math"

	"github.com/mwenyemali/smartcoins/models"
)

// MomentumScore computes the weighted momentum score for one record, on an
// approximate 0-100 scale. Each factor is normalized independently before
// weighting. An absent factor drops its whole term; the remaining weights are
// not renormalized, so incomplete records score structurally lower than
// complete ones.
func MomentumScore(rec *models.CoinRecord, w MomentumWeights) float64 {
	score := 0.0

	if has(rec.ChangeMomentum) {
		// Usually between 0 and 3, capped at 100 from above only.
		score += math.Min(*rec.ChangeMomentum*33.33, 100) * w.ChangeMomentum
	}
	if has(rec.MomentumConsistency) {
		score += math.Min(*rec.MomentumConsistency, 100) * w.MomentumConsistency
	}
	if has(rec.MomentumAcceleration) {
		// Signed, nominal +-100 range, shifted around 0. Not clamped:
		// inputs outside +-100 push the normalized value outside 0-100.
		score += (*rec.MomentumAcceleration + 100) / 200 * 100 * w.MomentumAcceleration
	}
	if has(rec.RiskAdjustedMomentum) {
		score += math.Min(*rec.RiskAdjustedMomentum*50, 100) * w.RiskAdjustedMomentum
	}

	return round2(score)
}
