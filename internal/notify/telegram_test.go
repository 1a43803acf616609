package notify

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwenyemali/smartcoins/models"
)

func TestNewWithoutToken(t *testing.T) {
	n, err := New("", 0, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, n)

	// nil notifier is a no-op, not a panic.
	require.NoError(t, n.SendSummary(nil, 5))
}

func TestSummary(t *testing.T) {
	recs := []models.CoinRecord{
		{Symbol: "BTC", InvestmentScore: 68, PredictedSignal: models.SignalBuy},
		{Symbol: "ETH", InvestmentScore: 52, PredictedSignal: models.SignalBuy},
		{Symbol: "DOGE", InvestmentScore: 15, PredictedSignal: models.SignalSell},
	}

	out := Summary(recs, 2)
	assert.Contains(t, out, "3 coins")
	assert.Contains(t, out, "BUY: 2")
	assert.Contains(t, out, "SELL: 1")
	assert.Contains(t, out, "1. BTC 68.00 (BUY)")
	assert.NotContains(t, out, "DOGE")
}
