// Package stats computes the descriptive statistics of an analyzed snapshot:
// per-column summaries, correlations, grouped aggregates and outlier reports.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mwenyemali/smartcoins/models"
)

// Column adapts one record field to a numeric series. Value reports false
// when the field is absent on that record, so statistics skip it the way a
// dataframe skips NaN.
type Column struct {
	Name  string
	Value func(*models.CoinRecord) (float64, bool)
}

func optional(get func(*models.CoinRecord) *float64) func(*models.CoinRecord) (float64, bool) {
	return func(rec *models.CoinRecord) (float64, bool) {
		if v := get(rec); v != nil {
			return *v, true
		}
		return 0, false
	}
}

func derived(get func(*models.CoinRecord) float64) func(*models.CoinRecord) (float64, bool) {
	return func(rec *models.CoinRecord) (float64, bool) {
		return get(rec), true
	}
}

// KeyColumns lists the metrics the analysis describes and correlates.
func KeyColumns() []Column {
	return []Column{
		{"price_usd", optional(func(r *models.CoinRecord) *float64 { return r.PriceUSD })},
		{"market_cap", optional(func(r *models.CoinRecord) *float64 { return r.MarketCap })},
		{"volume_24h", optional(func(r *models.CoinRecord) *float64 { return r.Volume24h })},
		{"overall_score", optional(func(r *models.CoinRecord) *float64 { return r.OverallScore })},
		{"composite_score", optional(func(r *models.CoinRecord) *float64 { return r.CompositeScore })},
		{"change_momentum", optional(func(r *models.CoinRecord) *float64 { return r.ChangeMomentum })},
		{"price_volatility", optional(func(r *models.CoinRecord) *float64 { return r.PriceVolatility })},
		{"volatility_risk", optional(func(r *models.CoinRecord) *float64 { return r.VolatilityRisk })},
		{"efficiency_score", optional(func(r *models.CoinRecord) *float64 { return r.EfficiencyScore })},
		{"mvrv_score", optional(func(r *models.CoinRecord) *float64 { return r.MVRVScore })},
		{"momentum_score", derived(func(r *models.CoinRecord) float64 { return r.MomentumScore })},
		{"risk_score", derived(func(r *models.CoinRecord) float64 { return r.RiskScore })},
		{"investment_score", derived(func(r *models.CoinRecord) float64 { return r.InvestmentScore })},
		{"potential_return", derived(func(r *models.CoinRecord) float64 { return r.PotentialReturn })},
	}
}

// Summary is the describe() row for one column.
type Summary struct {
	Column   string
	Count    int
	Mean     float64
	Median   float64
	Std      float64
	Min      float64
	Q25      float64
	Q75      float64
	Max      float64
	Skewness float64
	Kurtosis float64
}

// series collects the present values of a column.
func series(recs []models.CoinRecord, col Column) []float64 {
	var out []float64
	for i := range recs {
		if v, ok := col.Value(&recs[i]); ok {
			out = append(out, v)
		}
	}
	return out
}

// Describe summarizes every column over the snapshot. Columns with no
// present values yield a zero summary with Count 0.
func Describe(recs []models.CoinRecord, cols []Column) []Summary {
	summaries := make([]Summary, 0, len(cols))
	for _, col := range cols {
		data := series(recs, col)
		s := Summary{Column: col.Name, Count: len(data)}
		if len(data) > 0 {
			sorted := append([]float64(nil), data...)
			sort.Float64s(sorted)

			s.Mean = stat.Mean(data, nil)
			s.Std = stat.StdDev(data, nil)
			s.Min = sorted[0]
			s.Max = sorted[len(sorted)-1]
			s.Q25 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
			s.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
			s.Q75 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
			if len(data) > 2 {
				s.Skewness = stat.Skew(data, nil)
			}
			if len(data) > 3 {
				s.Kurtosis = stat.ExKurtosis(data, nil)
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// Matrix is a symmetric correlation matrix over named columns.
type Matrix struct {
	Columns []string
	Values  [][]float64 // Values[i][j] = corr(Columns[i], Columns[j]); NaN when undefined
}

// CorrPair is one off-diagonal matrix entry, for top-correlation listings.
type CorrPair struct {
	A, B string
	Corr float64
}

// CorrelationMatrix computes pairwise Pearson correlations, using for each
// pair only the records where both columns are present.
func CorrelationMatrix(recs []models.CoinRecord, cols []Column) *Matrix {
	m := &Matrix{
		Columns: make([]string, len(cols)),
		Values:  make([][]float64, len(cols)),
	}
	for i, col := range cols {
		m.Columns[i] = col.Name
		m.Values[i] = make([]float64, len(cols))
	}

	for i := range cols {
		m.Values[i][i] = 1
		for j := i + 1; j < len(cols); j++ {
			var xs, ys []float64
			for k := range recs {
				x, okX := cols[i].Value(&recs[k])
				y, okY := cols[j].Value(&recs[k])
				if okX && okY {
					xs = append(xs, x)
					ys = append(ys, y)
				}
			}
			corr := math.NaN()
			if len(xs) > 1 {
				corr = stat.Correlation(xs, ys, nil)
			}
			m.Values[i][j] = corr
			m.Values[j][i] = corr
		}
	}
	return m
}

// TopCorrelations returns the n strongest off-diagonal pairs by absolute
// correlation, NaN entries excluded.
func TopCorrelations(m *Matrix, n int) []CorrPair {
	var pairs []CorrPair
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			if v := m.Values[i][j]; !math.IsNaN(v) {
				pairs = append(pairs, CorrPair{A: m.Columns[i], B: m.Columns[j], Corr: v})
			}
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].Corr) > math.Abs(pairs[b].Corr)
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

// GroupStat aggregates one column within one group.
type GroupStat struct {
	Group  string
	Count  int
	Mean   float64
	Median float64
}

// GroupBy aggregates a column per group key, sorted by group name.
func GroupBy(recs []models.CoinRecord, key func(*models.CoinRecord) string, col Column) []GroupStat {
	grouped := make(map[string][]float64)
	counts := make(map[string]int)
	for i := range recs {
		g := key(&recs[i])
		counts[g]++
		if v, ok := col.Value(&recs[i]); ok {
			grouped[g] = append(grouped[g], v)
		}
	}

	names := make([]string, 0, len(counts))
	for g := range counts {
		names = append(names, g)
	}
	sort.Strings(names)

	out := make([]GroupStat, 0, len(names))
	for _, g := range names {
		gs := GroupStat{Group: g, Count: counts[g]}
		if data := grouped[g]; len(data) > 0 {
			sorted := append([]float64(nil), data...)
			sort.Float64s(sorted)
			gs.Mean = stat.Mean(data, nil)
			gs.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
		}
		out = append(out, gs)
	}
	return out
}
