package scoring

// Tier labels for the descriptive range classifiers. These group records for
// reporting only and never feed back into the scores.
const (
	TierMicro  = "Micro"
	TierLow    = "Low"
	TierMedium = "Medium"
	TierHigh   = "High"

	MomentumBearish       = "Bearish"
	MomentumNeutral       = "Neutral"
	MomentumBullish       = "Bullish"
	MomentumStrongBullish = "Strong Bullish"

	RiskUnknown = "Unknown"
	RiskLow     = "Low Risk"
	RiskMedium  = "Medium Risk"
	RiskHigh    = "High Risk"
)

// PriceTier buckets a USD price. Buckets are half-open intervals, inclusive
// on their lower bound; a missing or non-positive price is Micro.
func PriceTier(price *float64) string {
	switch {
	case price == nil || *price <= 0:
		return TierMicro
	case *price < 0.001:
		return TierMicro
	case *price < 1:
		return TierLow
	case *price < 100:
		return TierMedium
	default:
		return TierHigh
	}
}

// MomentumCategory buckets the raw change_momentum value.
func MomentumCategory(momentum *float64) string {
	switch {
	case momentum == nil:
		return MomentumNeutral
	case *momentum < 0.8:
		return MomentumBearish
	case *momentum < 1.2:
		return MomentumNeutral
	case *momentum < 2:
		return MomentumBullish
	default:
		return MomentumStrongBullish
	}
}

// RiskLevel buckets the raw volatility_risk value.
func RiskLevel(volatilityRisk *float64) string {
	switch {
	case volatilityRisk == nil:
		return RiskUnknown
	case *volatilityRisk < 1:
		return RiskLow
	case *volatilityRisk < 3:
		return RiskMedium
	default:
		return RiskHigh
	}
}
