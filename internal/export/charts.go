package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/mwenyemali/smartcoins/internal/rank"
	"github.com/mwenyemali/smartcoins/models"
)

// ChartRenderer writes the static PNG charts of one analysis run.
type ChartRenderer struct {
	dir    string
	logger zerolog.Logger
}

func NewChartRenderer(dir string, logger zerolog.Logger) *ChartRenderer {
	return &ChartRenderer{
		dir:    dir,
		logger: logger.With().Str("component", "charts").Logger(),
	}
}

// RenderAll draws every chart. A failed chart is logged and skipped so one
// bad render does not lose the rest of the run.
func (r *ChartRenderer) RenderAll(recs []models.CoinRecord) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("creating charts directory: %w", err)
	}

	charts := []struct {
		file   string
		render func([]models.CoinRecord, string) error
	}{
		{"momentum_score_distribution.png", func(rs []models.CoinRecord, p string) error {
			return r.scoreHistogram(rs, p, "Momentum Score Distribution", func(rec *models.CoinRecord) float64 { return rec.MomentumScore })
		}},
		{"risk_score_distribution.png", func(rs []models.CoinRecord, p string) error {
			return r.scoreHistogram(rs, p, "Risk Score Distribution", func(rec *models.CoinRecord) float64 { return rec.RiskScore })
		}},
		{"investment_score_distribution.png", func(rs []models.CoinRecord, p string) error {
			return r.scoreHistogram(rs, p, "Investment Score Distribution", func(rec *models.CoinRecord) float64 { return rec.InvestmentScore })
		}},
		{"top_coins_investment.png", r.topCoins},
		{"signal_distribution.png", r.signalPie},
		{"risk_level_distribution.png", r.riskLevels},
		{"price_change_comparison.png", r.priceChangeScatter},
	}

	for _, c := range charts {
		path := filepath.Join(r.dir, c.file)
		if err := c.render(recs, path); err != nil {
			r.logger.Warn().Err(err).Str("chart", c.file).Msg("Skipping chart")
			continue
		}
		r.logger.Debug().Str("chart", c.file).Msg("Chart written")
	}
	return nil
}

func renderPNG(path string, render func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := render(f); err != nil {
		return err
	}
	return f.Close()
}

// scoreHistogram buckets a 0-100 score into ten bars.
func (r *ChartRenderer) scoreHistogram(recs []models.CoinRecord, path, title string, value func(*models.CoinRecord) float64) error {
	var buckets [10]int
	for i := range recs {
		v := value(&recs[i])
		b := int(v / 10)
		if b < 0 {
			b = 0
		}
		if b > 9 {
			b = 9
		}
		buckets[b]++
	}

	bars := make([]chart.Value, 0, len(buckets))
	for i, n := range buckets {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%d-%d", i*10, i*10+10),
			Value: float64(n),
		})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    900,
		Height:   500,
		BarWidth: 50,
		Bars:     bars,
	}
	return renderPNG(path, func(f *os.File) error { return graph.Render(chart.PNG, f) })
}

func (r *ChartRenderer) topCoins(recs []models.CoinRecord, path string) error {
	top := rank.TopN(recs, rank.ByInvestmentScore, rank.Options{N: 15})
	if len(top) == 0 {
		return fmt.Errorf("no records to chart")
	}

	bars := make([]chart.Value, 0, len(top))
	for i := range top {
		bars = append(bars, chart.Value{Label: top[i].Symbol, Value: top[i].InvestmentScore})
	}

	graph := chart.BarChart{
		Title:    "Top 15 Coins by Investment Score",
		Width:    1000,
		Height:   500,
		BarWidth: 40,
		Bars:     bars,
	}
	return renderPNG(path, func(f *os.File) error { return graph.Render(chart.PNG, f) })
}

func (r *ChartRenderer) signalPie(recs []models.CoinRecord, path string) error {
	counts := rank.CountBySignal(recs)

	values := make([]chart.Value, 0, len(models.SignalOrder))
	for _, sig := range models.SignalOrder {
		if n := counts[sig]; n > 0 {
			values = append(values, chart.Value{Label: sig, Value: float64(n)})
		}
	}
	if len(values) == 0 {
		return fmt.Errorf("no signals to chart")
	}

	graph := chart.PieChart{
		Title:  "Predicted Signal Distribution",
		Width:  600,
		Height: 600,
		Values: values,
	}
	return renderPNG(path, func(f *os.File) error { return graph.Render(chart.PNG, f) })
}

func (r *ChartRenderer) riskLevels(recs []models.CoinRecord, path string) error {
	counts := make(map[string]int)
	for i := range recs {
		counts[recs[i].RiskLevel]++
	}
	levels := make([]string, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	bars := make([]chart.Value, 0, len(levels))
	for _, level := range levels {
		bars = append(bars, chart.Value{Label: level, Value: float64(counts[level])})
	}
	if len(bars) == 0 {
		return fmt.Errorf("no records to chart")
	}

	graph := chart.BarChart{
		Title:    "Risk Level Distribution",
		Width:    800,
		Height:   500,
		BarWidth: 80,
		Bars:     bars,
	}
	return renderPNG(path, func(f *os.File) error { return graph.Render(chart.PNG, f) })
}

// priceChangeScatter plots 24h against 7d percent change for every coin with
// both values present.
func (r *ChartRenderer) priceChangeScatter(recs []models.CoinRecord, path string) error {
	var xs, ys []float64
	for i := range recs {
		if recs[i].PctChange24h == nil || recs[i].PctChange7d == nil {
			continue
		}
		xs = append(xs, *recs[i].PctChange24h)
		ys = append(ys, *recs[i].PctChange7d)
	}
	if len(xs) < 2 {
		return fmt.Errorf("not enough price changes to chart")
	}

	graph := chart.Chart{
		Title:  "24h vs 7d Price Change",
		Width:  800,
		Height: 600,
		XAxis:  chart.XAxis{Name: "24h change (%)"},
		YAxis:  chart.YAxis{Name: "7d change (%)"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    chart.ColorBlue,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return renderPNG(path, func(f *os.File) error { return graph.Render(chart.PNG, f) })
}
