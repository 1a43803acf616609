package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwenyemali/smartcoins/models"
)

func scored(symbol, coinType string, investment float64) models.CoinRecord {
	rec := models.CoinRecord{Symbol: symbol, CoinType: coinType}
	rec.InvestmentScore = investment
	return rec
}

func TestTopN(t *testing.T) {
	recs := []models.CoinRecord{
		scored("A", "crypto", 40),
		scored("B", "meme", 90),
		scored("C", "crypto", 70),
		scored("D", "crypto", 10),
	}

	top := TopN(recs, ByInvestmentScore, Options{N: 2})
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].Symbol)
	assert.Equal(t, "C", top[1].Symbol)

	// input order untouched
	assert.Equal(t, "A", recs[0].Symbol)
}

func TestTopN_CoinTypeFilter(t *testing.T) {
	recs := []models.CoinRecord{
		scored("A", "crypto", 40),
		scored("B", "meme", 90),
		scored("C", "crypto", 70),
	}

	top := TopN(recs, ByInvestmentScore, Options{N: 5, CoinType: "crypto"})
	require.Len(t, top, 2)
	assert.Equal(t, "C", top[0].Symbol)
	assert.Equal(t, "A", top[1].Symbol)
}

func TestTopN_Ascending(t *testing.T) {
	recs := []models.CoinRecord{
		scored("A", "crypto", 40),
		scored("B", "crypto", 10),
	}

	lowest := TopN(recs, ByInvestmentScore, Options{N: 1, Ascending: true})
	require.Len(t, lowest, 1)
	assert.Equal(t, "B", lowest[0].Symbol)
}

func TestWithSignalAndCounts(t *testing.T) {
	a := scored("A", "crypto", 80)
	a.PredictedSignal = models.SignalStrongBuy
	b := scored("B", "meme", 20)
	b.PredictedSignal = models.SignalSell
	c := scored("C", "crypto", 75)
	c.PredictedSignal = models.SignalStrongBuy

	recs := []models.CoinRecord{a, b, c}

	strong := WithSignal(recs, models.SignalStrongBuy)
	require.Len(t, strong, 2)
	assert.Equal(t, "A", strong[0].Symbol)

	counts := CountBySignal(recs)
	assert.Equal(t, 2, counts[models.SignalStrongBuy])
	assert.Equal(t, 1, counts[models.SignalSell])
}
