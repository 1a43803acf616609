// Package rank selects top-N slices of the scored snapshot for reports and
// exports.
package rank

import (
	"sort"

	"github.com/mwenyemali/smartcoins/models"
)

// By names a sortable score column.
type By func(*models.CoinRecord) float64

func ByInvestmentScore(r *models.CoinRecord) float64 { return r.InvestmentScore }
func ByMomentumScore(r *models.CoinRecord) float64   { return r.MomentumScore }
func ByRiskScore(r *models.CoinRecord) float64       { return r.RiskScore }
func ByPotentialReturn(r *models.CoinRecord) float64 { return r.PotentialReturn }

func ByOverallScore(r *models.CoinRecord) float64 {
	if r.OverallScore == nil {
		return 0
	}
	return *r.OverallScore
}

// Options filters and orders a TopN selection.
type Options struct {
	N         int
	Ascending bool
	CoinType  string // empty = all types
}

// TopN returns the n best records by the given column without mutating the
// input order. Ties keep the input order (stable sort).
func TopN(recs []models.CoinRecord, by By, opts Options) []models.CoinRecord {
	filtered := make([]models.CoinRecord, 0, len(recs))
	for _, rec := range recs {
		if opts.CoinType != "" && rec.CoinType != opts.CoinType {
			continue
		}
		filtered = append(filtered, rec)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if opts.Ascending {
			return by(&filtered[i]) < by(&filtered[j])
		}
		return by(&filtered[i]) > by(&filtered[j])
	})

	if opts.N > 0 && len(filtered) > opts.N {
		filtered = filtered[:opts.N]
	}
	return filtered
}

// WithSignal returns the records carrying the given predicted signal, in
// input order.
func WithSignal(recs []models.CoinRecord, signal string) []models.CoinRecord {
	var out []models.CoinRecord
	for _, rec := range recs {
		if rec.PredictedSignal == signal {
			out = append(out, rec)
		}
	}
	return out
}

// CountBySignal tallies predicted signals.
func CountBySignal(recs []models.CoinRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range recs {
		counts[rec.PredictedSignal]++
	}
	return counts
}
