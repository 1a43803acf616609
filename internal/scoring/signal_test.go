package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwenyemali/smartcoins/models"
)

func TestClassifySignal(t *testing.T) {
	tests := []struct {
		name     string
		inv      float64
		momentum float64
		risk     float64
		expected string
	}{
		{"strong buy", 80, 70, 40, models.SignalStrongBuy},
		{"buy", 55, 45, 60, models.SignalBuy},
		{"hold via investment branch", 35, 0, 0, models.SignalHold},
		{"hold via momentum branch", 0, 35, 100, models.SignalHold},
		{"strong sell", 10, 5, 90, models.SignalStrongSell},
		{"sell falls through every rule", 25, 10, 50, models.SignalSell},
		// Boundary values are exclusive; a record sitting exactly on the
		// strong-buy thresholds drops to the next matching rule.
		{"thresholds are strict", 70, 60, 50, models.SignalBuy},
		{"risk at 50 blocks strong buy", 80, 70, 50, models.SignalBuy},
		{"risk at 70 blocks buy", 80, 70, 70, models.SignalHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifySignal(tt.inv, tt.momentum, tt.risk))
		})
	}
}

// The HOLD disjunction runs before the STRONG_SELL rule, so any record with
// investment or momentum above 30 can never reach STRONG_SELL no matter how
// high its risk is. First-match-wins ordering is part of the contract.
func TestClassifySignal_HoldShadowsStrongSell(t *testing.T) {
	assert.Equal(t, models.SignalHold, ClassifySignal(10, 35, 95))
	assert.Equal(t, models.SignalStrongSell, ClassifySignal(10, 5, 95))
}

func TestPredictSignal_UsesDerivedFields(t *testing.T) {
	rec := models.CoinRecord{}
	rec.InvestmentScore = 80
	rec.MomentumScore = 70
	rec.RiskScore = 40

	assert.Equal(t, models.SignalStrongBuy, PredictSignal(&rec))
}
