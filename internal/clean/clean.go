// Package clean preprocesses the flattened snapshot before scoring: missing
// value handling, dedupe and the derived descriptive columns.
package clean

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mwenyemali/smartcoins/internal/scoring"
	"github.com/mwenyemali/smartcoins/models"
)

// numericField names one optional metric together with its storage slot, so
// the fill pass can iterate columns the way a dataframe would.
type numericField struct {
	name string
	get  func(*models.CoinRecord) **float64
}

var numericFields = []numericField{
	{"price_usd", func(r *models.CoinRecord) **float64 { return &r.PriceUSD }},
	{"market_cap", func(r *models.CoinRecord) **float64 { return &r.MarketCap }},
	{"volume_24h", func(r *models.CoinRecord) **float64 { return &r.Volume24h }},
	{"volume_change_24h", func(r *models.CoinRecord) **float64 { return &r.VolumeChange24h }},
	{"pct_change_1h", func(r *models.CoinRecord) **float64 { return &r.PctChange1h }},
	{"pct_change_24h", func(r *models.CoinRecord) **float64 { return &r.PctChange24h }},
	{"pct_change_7d", func(r *models.CoinRecord) **float64 { return &r.PctChange7d }},
	{"pct_change_30d", func(r *models.CoinRecord) **float64 { return &r.PctChange30d }},
	{"pct_change_60d", func(r *models.CoinRecord) **float64 { return &r.PctChange60d }},
	{"pct_change_90d", func(r *models.CoinRecord) **float64 { return &r.PctChange90d }},
	{"signal_strength", func(r *models.CoinRecord) **float64 { return &r.SignalStrength }},
	{"overall_score", func(r *models.CoinRecord) **float64 { return &r.OverallScore }},
	{"composite_score", func(r *models.CoinRecord) **float64 { return &r.CompositeScore }},
	{"change_momentum", func(r *models.CoinRecord) **float64 { return &r.ChangeMomentum }},
	{"momentum_acceleration", func(r *models.CoinRecord) **float64 { return &r.MomentumAcceleration }},
	{"momentum_consistency", func(r *models.CoinRecord) **float64 { return &r.MomentumConsistency }},
	{"risk_adjusted_momentum", func(r *models.CoinRecord) **float64 { return &r.RiskAdjustedMomentum }},
	{"price_volatility", func(r *models.CoinRecord) **float64 { return &r.PriceVolatility }},
	{"volatility_risk", func(r *models.CoinRecord) **float64 { return &r.VolatilityRisk }},
	{"liquidity_risk", func(r *models.CoinRecord) **float64 { return &r.LiquidityRisk }},
	{"concentration_risk", func(r *models.CoinRecord) **float64 { return &r.ConcentrationRisk }},
	{"nvt_score", func(r *models.CoinRecord) **float64 { return &r.NVTScore }},
	{"mvrv_score", func(r *models.CoinRecord) **float64 { return &r.MVRVScore }},
	{"scarcity_score", func(r *models.CoinRecord) **float64 { return &r.ScarcityScore }},
	{"efficiency_score", func(r *models.CoinRecord) **float64 { return &r.EfficiencyScore }},
	{"inv_momentum_score", func(r *models.CoinRecord) **float64 { return &r.InvMomentumScore }},
	{"inv_value_score", func(r *models.CoinRecord) **float64 { return &r.InvValueScore }},
	{"inv_risk_score", func(r *models.CoinRecord) **float64 { return &r.InvRiskScore }},
	{"inv_activity_score", func(r *models.CoinRecord) **float64 { return &r.InvActivityScore }},
	{"inv_network_score", func(r *models.CoinRecord) **float64 { return &r.InvNetworkScore }},
	{"max_supply", func(r *models.CoinRecord) **float64 { return &r.MaxSupply }},
	{"circulating_supply", func(r *models.CoinRecord) **float64 { return &r.CirculatingSupply }},
	{"total_supply", func(r *models.CoinRecord) **float64 { return &r.TotalSupply }},
	{"annual_inflation", func(r *models.CoinRecord) **float64 { return &r.AnnualInflation }},
	{"stock_to_flow", func(r *models.CoinRecord) **float64 { return &r.StockToFlow }},
}

// fillWithMedian reports whether a missing value in this column is filled
// with the column median rather than zero.
func fillWithMedian(name string) bool {
	return strings.Contains(name, "score") || strings.Contains(name, "risk")
}

// Records cleans the flattened snapshot in place and returns the deduplicated
// slice: score/risk columns get their column median for missing values, other
// numerics get zero, empty categoricals become "Unknown", duplicate symbols
// keep the first occurrence, and the descriptive tier columns plus
// days_since_added are derived.
func Records(recs []models.CoinRecord, now time.Time) []models.CoinRecord {
	logger := log.With().Str("component", "cleaner").Logger()

	for _, field := range numericFields {
		var present []float64
		missing := 0
		for i := range recs {
			if v := *field.get(&recs[i]); v != nil {
				present = append(present, *v)
			} else {
				missing++
			}
		}
		if missing == 0 {
			continue
		}

		fill := 0.0
		if fillWithMedian(field.name) && len(present) > 0 {
			fill = median(present)
		}
		for i := range recs {
			slot := field.get(&recs[i])
			if *slot == nil {
				v := fill
				*slot = &v
			}
		}
		logger.Debug().Str("column", field.name).Int("filled", missing).Float64("value", fill).Msg("Filled missing values")
	}

	for i := range recs {
		recs[i].CoinType = orUnknown(recs[i].CoinType)
		recs[i].Platform = orUnknown(recs[i].Platform)
		recs[i].Category = orUnknown(recs[i].Category)
		recs[i].PrimarySignal = orUnknown(recs[i].PrimarySignal)
	}

	deduped := dedupeBySymbol(recs)
	if removed := len(recs) - len(deduped); removed > 0 {
		logger.Info().Int("removed", removed).Msg("Removed duplicate symbols")
	}

	for i := range deduped {
		rec := &deduped[i]
		rec.PriceTier = scoring.PriceTier(rec.PriceUSD)
		rec.MomentumCategory = scoring.MomentumCategory(rec.ChangeMomentum)
		rec.RiskLevel = scoring.RiskLevel(rec.VolatilityRisk)
		if rec.DateAdded != nil {
			days := int(now.Sub(*rec.DateAdded).Hours() / 24)
			rec.DaysSinceAdded = &days
		}
	}

	return deduped
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// dedupeBySymbol keeps the first record per symbol, preserving order.
func dedupeBySymbol(recs []models.CoinRecord) []models.CoinRecord {
	seen := make(map[string]bool, len(recs))
	out := recs[:0:0]
	for _, rec := range recs {
		if seen[rec.Symbol] {
			continue
		}
		seen[rec.Symbol] = true
		out = append(out, rec)
	}
	return out
}

// median interpolates between the two middle values on even lengths, the way
// a dataframe median does.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
