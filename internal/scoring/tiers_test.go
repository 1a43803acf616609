package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceTier(t *testing.T) {
	tests := []struct {
		name     string
		price    *float64
		expected string
	}{
		{"nil price", nil, TierMicro},
		{"zero price", f(0), TierMicro},
		{"negative price", f(-1), TierMicro},
		{"sub-millicent", f(0.0009), TierMicro},
		{"low", f(0.5), TierLow},
		{"lower bound of low", f(0.001), TierLow},
		{"medium", f(50), TierMedium},
		{"lower bound of medium", f(1), TierMedium},
		{"high", f(500), TierHigh},
		{"lower bound of high", f(100), TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PriceTier(tt.price))
		})
	}
}

func TestMomentumCategory(t *testing.T) {
	tests := []struct {
		name     string
		momentum *float64
		expected string
	}{
		{"nil momentum", nil, MomentumNeutral},
		{"bearish", f(0.5), MomentumBearish},
		{"neutral", f(1.0), MomentumNeutral},
		{"lower bound of neutral", f(0.8), MomentumNeutral},
		{"bullish", f(1.5), MomentumBullish},
		{"lower bound of bullish", f(1.2), MomentumBullish},
		{"strong bullish", f(2.5), MomentumStrongBullish},
		{"lower bound of strong bullish", f(2), MomentumStrongBullish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MomentumCategory(tt.momentum))
		})
	}
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		name     string
		risk     *float64
		expected string
	}{
		{"nil risk", nil, RiskUnknown},
		{"low", f(0.4), RiskLow},
		{"medium", f(2), RiskMedium},
		{"lower bound of medium", f(1), RiskMedium},
		{"high", f(5), RiskHigh},
		{"lower bound of high", f(3), RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RiskLevel(tt.risk))
		})
	}
}
