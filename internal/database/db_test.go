package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwenyemali/smartcoins/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(DriverSQLite, filepath.Join(t.TempDir(), "smartcoins.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func fptr(v float64) *float64 { return &v }

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New("oracle", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestReplaceCoins(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := []models.CoinRecord{
		{Symbol: "BTC", CoinName: "Bitcoin", PriceUSD: fptr(65000), InvestmentScore: 70, PredictedSignal: models.SignalBuy},
		{Symbol: "ETH", CoinName: "Ethereum", InvestmentScore: 60, PredictedSignal: models.SignalBuy},
		{Symbol: "DOGE", CoinName: "Dogecoin", InvestmentScore: 10, PredictedSignal: models.SignalSell},
	}
	require.NoError(t, db.ReplaceCoins(ctx, first))

	n, err := db.CountCoins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	buys, err := db.CoinsBySignal(ctx, models.SignalBuy)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC", "ETH"}, buys)

	// A second snapshot replaces the first wholesale.
	second := []models.CoinRecord{
		{Symbol: "SOL", CoinName: "Solana", InvestmentScore: 55, PredictedSignal: models.SignalHold},
	}
	require.NoError(t, db.ReplaceCoins(ctx, second))

	n, err = db.CountCoins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	buys, err = db.CoinsBySignal(ctx, models.SignalBuy)
	require.NoError(t, err)
	assert.Empty(t, buys)
}

func TestReplaceCoinsKeepsNulls(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	recs := []models.CoinRecord{
		{Symbol: "MYST", CoinName: "Mystery", PredictedSignal: models.SignalSell},
	}
	require.NoError(t, db.ReplaceCoins(ctx, recs))

	var price any
	require.NoError(t, db.QueryRowContext(ctx, `SELECT price_usd FROM coins WHERE symbol = $1`, "MYST").Scan(&price))
	assert.Nil(t, price)
}
