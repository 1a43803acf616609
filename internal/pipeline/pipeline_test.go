package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwenyemali/smartcoins/internal/config"
	"github.com/mwenyemali/smartcoins/models"
)

type stubFetcher struct {
	recs []models.CoinRecord
	err  error
}

func (s *stubFetcher) GetCoins(ctx context.Context) ([]models.CoinRecord, error) {
	return s.recs, s.err
}

func fptr(v float64) *float64 { return &v }

func snapshot() []models.CoinRecord {
	return []models.CoinRecord{
		{CoinName: "Bitcoin", Symbol: "BTC", CoinType: "coin", PriceUSD: fptr(65000),
			MarketCap: fptr(1.2e12), Volume24h: fptr(3e10), PctChange24h: fptr(2.1), PctChange7d: fptr(5.4),
			ChangeMomentum: fptr(2.5), MomentumConsistency: fptr(80), MomentumAcceleration: fptr(10),
			RiskAdjustedMomentum: fptr(1.8), PriceVolatility: fptr(120),
			VolatilityRisk: fptr(30), LiquidityRisk: fptr(20), ConcentrationRisk: fptr(25),
			OverallScore: fptr(85), EfficiencyScore: fptr(70), MVRVScore: fptr(60)},
		{CoinName: "Ethereum", Symbol: "ETH", CoinType: "coin", PriceUSD: fptr(3200),
			MarketCap: fptr(4e11), Volume24h: fptr(1.5e10), PctChange24h: fptr(-1.2), PctChange7d: fptr(3.3),
			ChangeMomentum: fptr(1.4), MomentumConsistency: fptr(60)},
		{CoinName: "Mystery", Symbol: "MYST", CoinType: "token"},
	}
}

func testConfig(t *testing.T) *models.Config {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	return cfg
}

func TestAnalyze(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &stubFetcher{recs: snapshot()}, nil, zerolog.Nop())

	res, err := p.Analyze(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Records, 3)

	for i := range res.Records {
		rec := &res.Records[i]
		assert.NotEmpty(t, rec.PredictedSignal, rec.Symbol)
		assert.NotEmpty(t, rec.PriceTier, rec.Symbol)
		assert.NotEmpty(t, rec.RiskLevel, rec.Symbol)
	}
	assert.NotEmpty(t, res.Summaries)
	assert.NotNil(t, res.Correlations)
}

func TestAnalyzeFetchError(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &stubFetcher{err: fmt.Errorf("api down")}, nil, zerolog.Nop())

	_, err := p.Analyze(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching coins")
}

func TestRunWritesArtifacts(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableCharts = false // chart rendering covered in the export package
	p := New(cfg, &stubFetcher{recs: snapshot()}, nil, zerolog.Nop())

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	for _, rel := range []string{
		filepath.Join("data", "smartcoins_analyzed.csv"),
		filepath.Join("data", "top_coins.csv"),
		filepath.Join("data", "summary_statistics.csv"),
		filepath.Join("data", "correlation_matrix.csv"),
		filepath.Join("data", "smartcoins.db"),
		filepath.Join("reports", "analysis_report.txt"),
		"SmartCoins_Excel_Analysis.xlsx",
	} {
		_, err := os.Stat(filepath.Join(cfg.OutputDir, rel))
		assert.NoError(t, err, rel)
	}
}

func TestRunHonorsToggles(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableCharts = false
	cfg.EnableExcel = false
	cfg.EnableDB = false
	p := New(cfg, &stubFetcher{recs: snapshot()}, nil, zerolog.Nop())

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.OutputDir, "SmartCoins_Excel_Analysis.xlsx"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(cfg.OutputDir, "data", "smartcoins.db"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(cfg.OutputDir, "charts"))
	assert.True(t, os.IsNotExist(err))
}
