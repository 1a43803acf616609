package scoring

import "github.com/mwenyemali/smartcoins/models"

// signalRule is one entry of the ordered decision table.
type signalRule struct {
	label string
	match func(inv, momentum, risk float64) bool
}

// signalRules is evaluated top to bottom, first match wins. Do not reorder:
// the HOLD disjunction shadows part of the STRONG_SELL condition, so
// STRONG_SELL is only reachable for low-investment, low-momentum, high-risk
// records. That narrowing is intentional.
var signalRules = []signalRule{
	{models.SignalStrongBuy, func(inv, momentum, risk float64) bool {
		return inv > 70 && momentum > 60 && risk < 50
	}},
	{models.SignalBuy, func(inv, momentum, risk float64) bool {
		return inv > 50 && momentum > 40 && risk < 70
	}},
	{models.SignalHold, func(inv, momentum, risk float64) bool {
		return inv > 30 || momentum > 30
	}},
	{models.SignalStrongSell, func(inv, momentum, risk float64) bool {
		return inv < 20 && risk > 80
	}},
}

// ClassifySignal maps the derived scores onto a discrete trading signal.
// Records failing every rule fall through to SELL.
func ClassifySignal(inv, momentum, risk float64) string {
	for _, rule := range signalRules {
		if rule.match(inv, momentum, risk) {
			return rule.label
		}
	}
	return models.SignalSell
}

// PredictSignal classifies an already-scored record. The derived scores are
// always present after the pipeline runs, so no defaulting applies here; see
// ClassifySignal for the bare decision table.
func PredictSignal(rec *models.CoinRecord) string {
	return ClassifySignal(rec.InvestmentScore, rec.MomentumScore, rec.RiskScore)
}
