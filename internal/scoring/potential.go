package scoring

import (
	"math"

	"github.com/mwenyemali/smartcoins/models"
)

// PotentialReturn estimates a signed percentage return from the raw momentum
// metrics. Unlike the weighted sums, absent inputs are substituted with
// declared defaults instead of dropping a term. The result is unclamped in
// both directions.
func PotentialReturn(rec *models.CoinRecord) float64 {
	momentum := orDefault(rec.ChangeMomentum, 1)
	consistency := orDefault(rec.MomentumConsistency, 50)
	volatility := orDefault(rec.PriceVolatility, 50)

	base := (momentum - 1) * 100
	consistencyFactor := consistency / 100
	riskFactor := math.Max(0.1, 1-volatility/500)

	return round2(base * consistencyFactor * riskFactor)
}
