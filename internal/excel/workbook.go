// Package excel builds the analysis workbook: raw data, live formulas,
// pivot-style summaries, a dashboard with charts and conditional formatting.
package excel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/mwenyemali/smartcoins/internal/rank"
	"github.com/mwenyemali/smartcoins/models"
)

const (
	sheetRawData     = "RawData"
	sheetLookup      = "LookupTable"
	sheetFormulas    = "FormulasDemo"
	sheetPivot       = "PivotSummary"
	sheetDashboard   = "Dashboard"
	sheetConditional = "ConditionalFormat"
)

// Builder writes the workbook for one analysis run.
type Builder struct {
	limit  int
	logger zerolog.Logger
}

// NewBuilder creates a workbook builder taking at most limit coins.
func NewBuilder(limit int, logger zerolog.Logger) *Builder {
	return &Builder{
		limit:  limit,
		logger: logger.With().Str("component", "excel").Logger(),
	}
}

// Write renders the workbook to path. Only the first limit records are
// included so the formula ranges stay readable.
func (b *Builder) Write(path string, recs []models.CoinRecord) error {
	if len(recs) == 0 {
		return fmt.Errorf("no records to export")
	}
	if b.limit > 0 && len(recs) > b.limit {
		recs = recs[:b.limit]
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetRawData); err != nil {
		return err
	}
	for _, name := range []string{sheetLookup, sheetFormulas, sheetPivot, sheetDashboard, sheetConditional} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	steps := []struct {
		name  string
		build func(*excelize.File, []models.CoinRecord) error
	}{
		{sheetRawData, b.buildRawData},
		{sheetLookup, b.buildLookup},
		{sheetFormulas, b.buildFormulas},
		{sheetPivot, b.buildPivot},
		{sheetDashboard, b.buildDashboard},
		{sheetConditional, b.buildConditional},
	}
	for _, step := range steps {
		if err := step.build(f, recs); err != nil {
			return fmt.Errorf("building %s sheet: %w", step.name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating workbook directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	b.logger.Info().Str("path", path).Int("coins", len(recs)).Msg("Workbook written")
	return nil
}

var rawDataHeader = []string{
	"Coin", "Symbol", "Price (USD)", "Market Cap", "Volume 24h",
	"Change 24h (%)", "Momentum Score", "Risk Score", "Investment Score",
	"Signal", "Potential Return (%)", "Risk Level",
}

// lastDataRow is the 1-based row of the final record, headers on row 1.
func lastDataRow(recs []models.CoinRecord) int { return len(recs) + 1 }

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
}

func setOptionalCell(f *excelize.File, sheet, cell string, v *float64) error {
	if v == nil {
		return nil
	}
	return f.SetCellValue(sheet, cell, *v)
}

func (b *Builder) buildRawData(f *excelize.File, recs []models.CoinRecord) error {
	if err := f.SetSheetRow(sheetRawData, "A1", &rawDataHeader); err != nil {
		return err
	}
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetRawData, "A1", "L1", style); err != nil {
		return err
	}

	for i := range recs {
		rec := &recs[i]
		row := i + 2
		cells := map[string]any{
			"A": rec.CoinName,
			"B": rec.Symbol,
			"F": rec.PctChange24h,
			"G": rec.MomentumScore,
			"H": rec.RiskScore,
			"I": rec.InvestmentScore,
			"J": rec.PredictedSignal,
			"K": rec.PotentialReturn,
			"L": rec.RiskLevel,
		}
		for col, v := range cells {
			cell := fmt.Sprintf("%s%d", col, row)
			if p, ok := v.(*float64); ok {
				if err := setOptionalCell(f, sheetRawData, cell, p); err != nil {
					return err
				}
				continue
			}
			if err := f.SetCellValue(sheetRawData, cell, v); err != nil {
				return err
			}
		}
		for col, p := range map[string]*float64{"C": rec.PriceUSD, "D": rec.MarketCap, "E": rec.Volume24h} {
			if err := setOptionalCell(f, sheetRawData, fmt.Sprintf("%s%d", col, row), p); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(sheetRawData, "A", "L", 16)
}

func (b *Builder) buildLookup(f *excelize.File, recs []models.CoinRecord) error {
	header := []string{"Symbol", "Coin", "Investment Score", "Signal"}
	if err := f.SetSheetRow(sheetLookup, "A1", &header); err != nil {
		return err
	}
	for i := range recs {
		rec := &recs[i]
		row := []any{rec.Symbol, rec.CoinName, rec.InvestmentScore, rec.PredictedSignal}
		if err := f.SetSheetRow(sheetLookup, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildFormulas(f *excelize.File, recs []models.CoinRecord) error {
	last := lastDataRow(recs)
	firstSymbol := recs[0].Symbol

	entries := []struct {
		label   string
		formula string
	}{
		{"Total Market Cap", fmt.Sprintf("SUM(%s!D2:D%d)", sheetRawData, last)},
		{"Average Investment Score", fmt.Sprintf("AVERAGE(%s!I2:I%d)", sheetRawData, last)},
		{"Best Investment Score", fmt.Sprintf("MAX(%s!I2:I%d)", sheetRawData, last)},
		{"Worst Investment Score", fmt.Sprintf("MIN(%s!I2:I%d)", sheetRawData, last)},
		{"Coins Analyzed", fmt.Sprintf("COUNT(%s!I2:I%d)", sheetRawData, last)},
		{"BUY Signals", fmt.Sprintf("COUNTIF(%s!J2:J%d,\"%s\")", sheetRawData, last, models.SignalBuy)},
		{"Market Cap of BUYs", fmt.Sprintf("SUMIF(%s!J2:J%d,\"%s\",%s!D2:D%d)", sheetRawData, last, models.SignalBuy, sheetRawData, last)},
		{"Avg Risk When High Risk", fmt.Sprintf("AVERAGEIF(%s!L2:L%d,\"High Risk\",%s!H2:H%d)", sheetRawData, last, sheetRawData, last)},
		{fmt.Sprintf("Lookup %s Score", firstSymbol), fmt.Sprintf("VLOOKUP(\"%s\",%s!A:C,3,FALSE)", firstSymbol, sheetLookup)},
		{"Market Mood", fmt.Sprintf("IF(AVERAGE(%s!I2:I%d)>50,\"Bullish\",\"Bearish\")", sheetRawData, last)},
		{"Best Coin", fmt.Sprintf("INDEX(%s!A2:A%d,MATCH(MAX(%s!I2:I%d),%s!I2:I%d,0))", sheetRawData, last, sheetRawData, last, sheetRawData, last)},
	}

	header := []string{"Metric", "Value"}
	if err := f.SetSheetRow(sheetFormulas, "A1", &header); err != nil {
		return err
	}
	for i, e := range entries {
		row := i + 2
		if err := f.SetCellValue(sheetFormulas, fmt.Sprintf("A%d", row), e.label); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheetFormulas, fmt.Sprintf("B%d", row), e.formula); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetFormulas, "A", "B", 28)
}

func (b *Builder) buildPivot(f *excelize.File, recs []models.CoinRecord) error {
	counts := rank.CountBySignal(recs)
	sums := make(map[string]float64)
	riskSums := make(map[string]float64)
	for i := range recs {
		sig := recs[i].PredictedSignal
		sums[sig] += recs[i].InvestmentScore
		riskSums[sig] += recs[i].RiskScore
	}

	header := []string{"Signal", "Coins", "Avg Investment Score", "Avg Risk Score"}
	if err := f.SetSheetRow(sheetPivot, "A1", &header); err != nil {
		return err
	}
	row := 2
	for _, sig := range models.SignalOrder {
		n := counts[sig]
		if n == 0 {
			continue
		}
		values := []any{sig, n, sums[sig] / float64(n), riskSums[sig] / float64(n)}
		if err := f.SetSheetRow(sheetPivot, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func (b *Builder) buildDashboard(f *excelize.File, recs []models.CoinRecord) error {
	last := lastDataRow(recs)

	kpis := []struct {
		label   string
		formula string
	}{
		{"Coins Analyzed", fmt.Sprintf("COUNT(%s!I2:I%d)", sheetRawData, last)},
		{"Average Investment Score", fmt.Sprintf("AVERAGE(%s!I2:I%d)", sheetRawData, last)},
		{"BUY + STRONG_BUY", fmt.Sprintf("COUNTIF(%s!J2:J%d,\"%s\")+COUNTIF(%s!J2:J%d,\"%s\")",
			sheetRawData, last, models.SignalBuy, sheetRawData, last, models.SignalStrongBuy)},
		{"Average Potential Return", fmt.Sprintf("AVERAGE(%s!K2:K%d)", sheetRawData, last)},
	}
	for i, kpi := range kpis {
		row := i + 1
		if err := f.SetCellValue(sheetDashboard, fmt.Sprintf("A%d", row), kpi.label); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheetDashboard, fmt.Sprintf("B%d", row), kpi.formula); err != nil {
			return err
		}
	}

	// Helper range for the bar chart: top coins by investment score.
	top := rank.TopN(recs, rank.ByInvestmentScore, rank.Options{N: 10})
	if err := f.SetCellValue(sheetDashboard, "D1", "Top Coins"); err != nil {
		return err
	}
	for i := range top {
		row := i + 2
		if err := f.SetCellValue(sheetDashboard, fmt.Sprintf("D%d", row), top[i].Symbol); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetDashboard, fmt.Sprintf("E%d", row), top[i].InvestmentScore); err != nil {
			return err
		}
	}

	barRange := fmt.Sprintf("%d", len(top)+1)
	if err := f.AddChart(sheetDashboard, "A7", &excelize.Chart{
		Type:  excelize.Col,
		Title: []excelize.RichTextRun{{Text: "Top Coins by Investment Score"}},
		Series: []excelize.ChartSeries{{
			Name:       "Investment Score",
			Categories: sheetDashboard + "!$D$2:$D$" + barRange,
			Values:     sheetDashboard + "!$E$2:$E$" + barRange,
		}},
	}); err != nil {
		return err
	}

	pivotRows := 1
	for _, sig := range models.SignalOrder {
		if rank.CountBySignal(recs)[sig] > 0 {
			pivotRows++
		}
	}
	return f.AddChart(sheetDashboard, "A24", &excelize.Chart{
		Type:  excelize.Pie,
		Title: []excelize.RichTextRun{{Text: "Signal Distribution"}},
		Series: []excelize.ChartSeries{{
			Name:       "Coins",
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetPivot, pivotRows),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetPivot, pivotRows),
		}},
	})
}

func (b *Builder) buildConditional(f *excelize.File, recs []models.CoinRecord) error {
	header := []string{"Symbol", "Momentum Score", "Risk Score", "Investment Score"}
	if err := f.SetSheetRow(sheetConditional, "A1", &header); err != nil {
		return err
	}
	for i := range recs {
		rec := &recs[i]
		row := []any{rec.Symbol, rec.MomentumScore, rec.RiskScore, rec.InvestmentScore}
		if err := f.SetSheetRow(sheetConditional, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	last := lastDataRow(recs)
	scale := []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MidType:  "percentile",
		MidValue: "50",
		MaxType:  "max",
		MinColor: "F8696B",
		MidColor: "FFEB84",
		MaxColor: "63BE7B",
	}}
	for _, col := range []string{"B", "C", "D"} {
		ref := fmt.Sprintf("%s2:%s%d", col, col, last)
		if err := f.SetConditionalFormat(sheetConditional, ref, scale); err != nil {
			return err
		}
	}
	return nil
}
