package scoring

import (
	"math"

	"github.com/mwenyemali/smartcoins/models"
)

// RiskScore computes the weighted risk score for one record. Lower is safer.
// The three *_risk inputs are already on a 0-100 scale and enter as-is;
// price_volatility is rescaled and capped. Absent components drop their term
// without renormalization, same as MomentumScore.
func RiskScore(rec *models.CoinRecord, w RiskWeights) float64 {
	score := 0.0

	if has(rec.VolatilityRisk) {
		score += *rec.VolatilityRisk * w.VolatilityRisk
	}
	if has(rec.LiquidityRisk) {
		score += *rec.LiquidityRisk * w.LiquidityRisk
	}
	if has(rec.ConcentrationRisk) {
		score += *rec.ConcentrationRisk * w.ConcentrationRisk
	}
	if has(rec.PriceVolatility) {
		score += math.Min(*rec.PriceVolatility/10, 100) * w.PriceVolatility
	}

	return round2(score)
}
