package scoring

import (
	"math"

	"github.com/mwenyemali/smartcoins/models"
)

// InvestmentScore computes the overall attractiveness score. Higher is
// better. It consumes the momentum and risk scores already derived on the
// record, so it must run strictly after MomentumScore and RiskScore.
//
// The overall_score term divides by 100 before weighting, which makes it
// near-negligible for 0-100 inputs. That asymmetry is part of the formula and
// is kept as-is.
func InvestmentScore(rec *models.CoinRecord, w InvestmentWeights) float64 {
	score := 0.0

	if has(rec.OverallScore) {
		score += math.Min(*rec.OverallScore/100, 100) * w.OverallScore
	}
	score += rec.MomentumScore * w.MomentumScore
	if has(rec.EfficiencyScore) {
		score += *rec.EfficiencyScore * w.EfficiencyScore
	}
	score += (100 - rec.RiskScore) * w.InvertedRisk
	if has(rec.MVRVScore) {
		score += *rec.MVRVScore * w.MVRVScore
	}

	return round2(score)
}
