package export

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwenyemali/smartcoins/internal/stats"
	"github.com/mwenyemali/smartcoins/models"
)

func fptr(v float64) *float64 { return &v }

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteDataset(t *testing.T) {
	recs := []models.CoinRecord{
		{
			CoinName:        "Bitcoin",
			Symbol:          "BTC",
			PriceUSD:        fptr(65000),
			OverallScore:    fptr(88.5),
			MomentumScore:   72.4,
			RiskScore:       31.1,
			InvestmentScore: 68.9,
			PredictedSignal: models.SignalBuy,
			PotentialReturn: 12.5,
			PriceTier:       "High",
		},
		{CoinName: "Mystery", Symbol: "MYST"},
	}

	path := filepath.Join(t.TempDir(), "data", "smartcoins_analyzed.csv")
	require.NoError(t, WriteDataset(path, recs))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, datasetHeader, rows[0])
	assert.Len(t, rows[1], len(datasetHeader))

	byName := make(map[string]string, len(datasetHeader))
	for i, col := range datasetHeader {
		byName[col] = rows[1][i]
	}
	assert.Equal(t, "BTC", byName["symbol"])
	assert.Equal(t, "65000", byName["price_usd"])
	assert.Equal(t, "72.4", byName["momentum_score"])
	assert.Equal(t, "BUY", byName["predicted_signal"])

	// Absent raw fields stay empty, derived fields always print.
	for i, col := range datasetHeader {
		byName[col] = rows[2][i]
	}
	assert.Equal(t, "", byName["price_usd"])
	assert.Equal(t, "0", byName["momentum_score"])
}

func TestWriteSummary(t *testing.T) {
	summaries := []stats.Summary{
		{Column: "investment_score", Count: 3, Mean: 50, Median: 48.5, Std: 2.5, Min: 40, Q25: 44, Q75: 55, Max: 60, Skewness: 0.1, Kurtosis: -1.2},
	}
	path := filepath.Join(t.TempDir(), "summary_statistics.csv")
	require.NoError(t, WriteSummary(path, summaries))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "investment_score", rows[1][0])
	assert.Equal(t, "3", rows[1][1])
	assert.Equal(t, "48.5", rows[1][3])
}

func TestWriteCorrelations(t *testing.T) {
	m := &stats.Matrix{
		Columns: []string{"a", "b"},
		Values: [][]float64{
			{1, 0.5},
			{0.5, math.NaN()},
		},
	}
	path := filepath.Join(t.TempDir(), "correlation_matrix.csv")
	require.NoError(t, WriteCorrelations(path, m))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"", "a", "b"}, rows[0])
	assert.Equal(t, []string{"a", "1.0000", "0.5000"}, rows[1])
	assert.Equal(t, []string{"b", "0.5000", ""}, rows[2])
}
