package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwenyemali/smartcoins/internal/stats"
	"github.com/mwenyemali/smartcoins/models"
)

func sampleData() Data {
	return Data{
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Records: []models.CoinRecord{
			{CoinName: "Bitcoin", Symbol: "BTC", CoinType: "coin", InvestmentScore: 68,
				MomentumScore: 72, RiskScore: 31, PredictedSignal: models.SignalBuy,
				PotentialReturn: 12.5, RiskLevel: "Low Risk"},
			{CoinName: "Dogecoin", Symbol: "DOGE", CoinType: "coin", InvestmentScore: 15,
				MomentumScore: 20, RiskScore: 85, PredictedSignal: models.SignalStrongSell,
				PotentialReturn: -4.2, RiskLevel: "High Risk"},
		},
		Summaries: []stats.Summary{
			{Column: "investment_score", Count: 2, Mean: 41.5, Median: 41.5, Std: 26.5, Min: 15, Max: 68},
		},
		Correlations: []stats.CorrPair{
			{A: "momentum_score", B: "investment_score", Corr: 0.91},
		},
		Outliers: []stats.OutlierReport{
			{Column: "price_usd", Method: stats.MethodZScore, Count: 1, Percentage: 50, Examples: []string{"BTC"}},
		},
		TopN: 10,
	}
}

func TestBuild(t *testing.T) {
	out := Build(sampleData())

	assert.Contains(t, out, "SMARTCOINS MARKET ANALYSIS REPORT")
	assert.Contains(t, out, "Generated: 2026-08-30 12:00:00")
	assert.Contains(t, out, "Coins analyzed: 2")
	assert.Contains(t, out, "TOP 10 COINS BY INVESTMENT SCORE")
	assert.Contains(t, out, " 1. BTC")
	assert.Contains(t, out, "signal=BUY")
	assert.Contains(t, out, "BUY")
	assert.Contains(t, out, "High Risk")
	assert.Contains(t, out, "Strongest momentum:")
	assert.Contains(t, out, "Lowest risk:")
	assert.NotContains(t, out, "Top meme coins")
	assert.Contains(t, out, "INVESTMENT SCORE BY COIN TYPE")
	assert.Contains(t, out, "momentum_score")
	assert.Contains(t, out, "e.g. BTC")
	assert.Contains(t, out, "END OF REPORT")
}

func TestBuildSignalPercentages(t *testing.T) {
	out := Build(sampleData())
	// One of two coins carries each signal, absent labels show zero.
	assert.Contains(t, out, "( 50.0%)")
	assert.Contains(t, out, "(  0.0%)")
	assert.Contains(t, out, models.SignalHold)
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "analysis_report.txt")
	require.NoError(t, Write(path, sampleData()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "SMARTCOINS MARKET ANALYSIS REPORT")
}
