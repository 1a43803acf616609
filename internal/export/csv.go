// Package export writes the analyzed snapshot to flat files: CSV datasets
// and static PNG charts.
package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mwenyemali/smartcoins/internal/stats"
	"github.com/mwenyemali/smartcoins/models"
)

// datasetHeader is the column order of the analyzed dataset exports.
var datasetHeader = []string{
	"coin_name", "symbol", "price_usd", "market_cap", "volume_24h",
	"pct_change_1h", "pct_change_24h", "pct_change_7d", "pct_change_30d",
	"coin_type", "platform", "category", "primary_signal",
	"overall_score", "composite_score", "change_momentum",
	"momentum_acceleration", "momentum_consistency", "risk_adjusted_momentum",
	"price_volatility", "volatility_risk", "liquidity_risk", "concentration_risk",
	"nvt_score", "mvrv_score", "scarcity_score", "efficiency_score",
	"price_tier", "momentum_category", "risk_level", "days_since_added",
	"momentum_score", "risk_score", "investment_score", "predicted_signal", "potential_return",
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func datasetRow(rec *models.CoinRecord) []string {
	days := ""
	if rec.DaysSinceAdded != nil {
		days = strconv.Itoa(*rec.DaysSinceAdded)
	}
	return []string{
		rec.CoinName, rec.Symbol,
		formatOptional(rec.PriceUSD), formatOptional(rec.MarketCap), formatOptional(rec.Volume24h),
		formatOptional(rec.PctChange1h), formatOptional(rec.PctChange24h),
		formatOptional(rec.PctChange7d), formatOptional(rec.PctChange30d),
		rec.CoinType, rec.Platform, rec.Category, rec.PrimarySignal,
		formatOptional(rec.OverallScore), formatOptional(rec.CompositeScore), formatOptional(rec.ChangeMomentum),
		formatOptional(rec.MomentumAcceleration), formatOptional(rec.MomentumConsistency), formatOptional(rec.RiskAdjustedMomentum),
		formatOptional(rec.PriceVolatility), formatOptional(rec.VolatilityRisk), formatOptional(rec.LiquidityRisk), formatOptional(rec.ConcentrationRisk),
		formatOptional(rec.NVTScore), formatOptional(rec.MVRVScore), formatOptional(rec.ScarcityScore), formatOptional(rec.EfficiencyScore),
		rec.PriceTier, rec.MomentumCategory, rec.RiskLevel, days,
		formatFloat(rec.MomentumScore), formatFloat(rec.RiskScore), formatFloat(rec.InvestmentScore),
		rec.PredictedSignal, formatFloat(rec.PotentialReturn),
	}
}

func writeCSV(path string, write func(w *csv.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// WriteDataset writes the analyzed records, one CSV row each.
func WriteDataset(path string, recs []models.CoinRecord) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(datasetHeader); err != nil {
			return err
		}
		for i := range recs {
			if err := w.Write(datasetRow(&recs[i])); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSummary writes the describe() table, one row per column.
func WriteSummary(path string, summaries []stats.Summary) error {
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{"column", "count", "mean", "median", "std", "min", "q25", "q75", "max", "skewness", "kurtosis"}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, s := range summaries {
			row := []string{
				s.Column, strconv.Itoa(s.Count),
				formatFloat(s.Mean), formatFloat(s.Median), formatFloat(s.Std),
				formatFloat(s.Min), formatFloat(s.Q25), formatFloat(s.Q75), formatFloat(s.Max),
				formatFloat(s.Skewness), formatFloat(s.Kurtosis),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteCorrelations writes the correlation matrix with a leading name column.
// Undefined (NaN) correlations export as empty cells.
func WriteCorrelations(path string, m *stats.Matrix) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(append([]string{""}, m.Columns...)); err != nil {
			return err
		}
		for i, name := range m.Columns {
			row := make([]string, 0, len(m.Columns)+1)
			row = append(row, name)
			for _, v := range m.Values[i] {
				if math.IsNaN(v) {
					row = append(row, "")
				} else {
					row = append(row, strconv.FormatFloat(v, 'f', 4, 64))
				}
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

