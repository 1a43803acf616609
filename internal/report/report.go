// Package report renders the plain-text analysis report.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mwenyemali/smartcoins/internal/rank"
	"github.com/mwenyemali/smartcoins/internal/stats"
	"github.com/mwenyemali/smartcoins/models"
)

const divider = "======================================================================"

// Data carries everything one report needs.
type Data struct {
	GeneratedAt  time.Time
	Records      []models.CoinRecord
	Summaries    []stats.Summary
	Correlations []stats.CorrPair
	Outliers     []stats.OutlierReport
	TopN         int
}

// Build renders the report as a string.
func Build(d Data) string {
	var b strings.Builder

	fmt.Fprintln(&b, divider)
	fmt.Fprintln(&b, "SMARTCOINS MARKET ANALYSIS REPORT")
	fmt.Fprintf(&b, "Generated: %s\n", d.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, divider)

	writeOverview(&b, d.Records)
	writeScoreSummary(&b, d.Summaries)
	writeTopCoins(&b, d.Records, d.TopN)
	writeSignals(&b, d.Records)
	writeRiskLevels(&b, d.Records)
	writeCoinTypes(&b, d.Records)
	writeCorrelations(&b, d.Correlations)
	writeOutliers(&b, d.Outliers)

	fmt.Fprintln(&b, divider)
	fmt.Fprintln(&b, "END OF REPORT")
	fmt.Fprintln(&b, divider)
	return b.String()
}

// Write renders the report to path.
func Write(path string, d Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Build(d)), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func writeOverview(b *strings.Builder, recs []models.CoinRecord) {
	section(b, "1. DATASET OVERVIEW")
	fmt.Fprintf(b, "Coins analyzed: %d\n", len(recs))

	types := make(map[string]int)
	for i := range recs {
		types[recs[i].CoinType]++
	}
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "  %-20s %d\n", name, types[name])
	}
}

func writeScoreSummary(b *strings.Builder, summaries []stats.Summary) {
	section(b, "2. SCORE SUMMARY")
	fmt.Fprintf(b, "%-24s %6s %8s %8s %8s %8s %8s\n", "column", "count", "mean", "median", "std", "min", "max")
	for _, s := range summaries {
		fmt.Fprintf(b, "%-24s %6d %8.2f %8.2f %8.2f %8.2f %8.2f\n",
			s.Column, s.Count, s.Mean, s.Median, s.Std, s.Min, s.Max)
	}
}

func writeTopCoins(b *strings.Builder, recs []models.CoinRecord, n int) {
	section(b, fmt.Sprintf("3. TOP %d COINS BY INVESTMENT SCORE", n))
	top := rank.TopN(recs, rank.ByInvestmentScore, rank.Options{N: n})
	for i := range top {
		rec := &top[i]
		fmt.Fprintf(b, "%2d. %-8s %-24s invest=%6.2f momentum=%6.2f risk=%6.2f signal=%s return=%.2f%%\n",
			i+1, rec.Symbol, rec.CoinName,
			rec.InvestmentScore, rec.MomentumScore, rec.RiskScore,
			rec.PredictedSignal, rec.PotentialReturn)
	}

	fmt.Fprintln(b, "\nBest potential return:")
	for i, rec := range rank.TopN(recs, rank.ByPotentialReturn, rank.Options{N: 5}) {
		fmt.Fprintf(b, "%2d. %-8s %+.2f%%\n", i+1, rec.Symbol, rec.PotentialReturn)
	}

	fmt.Fprintln(b, "\nStrongest momentum:")
	for i, rec := range rank.TopN(recs, rank.ByMomentumScore, rank.Options{N: 5}) {
		fmt.Fprintf(b, "%2d. %-8s %6.2f\n", i+1, rec.Symbol, rec.MomentumScore)
	}

	fmt.Fprintln(b, "\nLowest risk:")
	for i, rec := range rank.TopN(recs, rank.ByRiskScore, rank.Options{N: 5, Ascending: true}) {
		fmt.Fprintf(b, "%2d. %-8s %6.2f\n", i+1, rec.Symbol, rec.RiskScore)
	}

	if memes := rank.TopN(recs, rank.ByInvestmentScore, rank.Options{N: 5, CoinType: "meme"}); len(memes) > 0 {
		fmt.Fprintln(b, "\nTop meme coins:")
		for i, rec := range memes {
			fmt.Fprintf(b, "%2d. %-8s %6.2f\n", i+1, rec.Symbol, rec.InvestmentScore)
		}
	}
}

func writeSignals(b *strings.Builder, recs []models.CoinRecord) {
	section(b, "4. PREDICTED SIGNAL DISTRIBUTION")
	counts := rank.CountBySignal(recs)
	total := len(recs)
	for _, sig := range models.SignalOrder {
		n := counts[sig]
		if total == 0 {
			continue
		}
		fmt.Fprintf(b, "  %-12s %4d (%5.1f%%)\n", sig, n, float64(n)/float64(total)*100)
	}

	if strong := rank.WithSignal(recs, models.SignalStrongBuy); len(strong) > 0 {
		symbols := make([]string, len(strong))
		for i := range strong {
			symbols[i] = strong[i].Symbol
		}
		fmt.Fprintf(b, "\nStrong buys: %s\n", strings.Join(symbols, ", "))
	}
}

func writeRiskLevels(b *strings.Builder, recs []models.CoinRecord) {
	section(b, "5. RISK LEVEL DISTRIBUTION")
	counts := make(map[string]int)
	for i := range recs {
		counts[recs[i].RiskLevel]++
	}
	levels := make([]string, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	for _, level := range levels {
		fmt.Fprintf(b, "  %-16s %d\n", level, counts[level])
	}
}

func writeCoinTypes(b *strings.Builder, recs []models.CoinRecord) {
	section(b, "6. INVESTMENT SCORE BY COIN TYPE")
	col := stats.Column{Name: "investment_score", Value: func(r *models.CoinRecord) (float64, bool) {
		return r.InvestmentScore, true
	}}
	for _, g := range stats.GroupBy(recs, func(r *models.CoinRecord) string { return r.CoinType }, col) {
		fmt.Fprintf(b, "  %-20s n=%-4d mean=%6.2f median=%6.2f\n", g.Group, g.Count, g.Mean, g.Median)
	}
}

func writeCorrelations(b *strings.Builder, pairs []stats.CorrPair) {
	section(b, "7. STRONGEST CORRELATIONS")
	if len(pairs) == 0 {
		fmt.Fprintln(b, "  none")
		return
	}
	for _, p := range pairs {
		fmt.Fprintf(b, "  %-24s x %-24s %+.3f\n", p.A, p.B, p.Corr)
	}
}

func writeOutliers(b *strings.Builder, reports []stats.OutlierReport) {
	section(b, "8. OUTLIERS")
	if len(reports) == 0 {
		fmt.Fprintln(b, "  none")
		return
	}
	for _, r := range reports {
		fmt.Fprintf(b, "  %-24s method=%-10s count=%3d (%.1f%%)", r.Column, r.Method, r.Count, r.Percentage)
		if len(r.Examples) > 0 {
			fmt.Fprintf(b, " e.g. %s", strings.Join(r.Examples, ", "))
		}
		fmt.Fprintln(b)
	}
}
