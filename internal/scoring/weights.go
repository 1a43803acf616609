package scoring

// MomentumWeights holds the factor weights of the momentum score.
type MomentumWeights struct {
	ChangeMomentum       float64
	MomentumConsistency  float64
	MomentumAcceleration float64
	RiskAdjustedMomentum float64
}

// RiskWeights holds the component weights of the risk score.
type RiskWeights struct {
	VolatilityRisk    float64
	LiquidityRisk     float64
	ConcentrationRisk float64
	PriceVolatility   float64
}

// InvestmentWeights holds the term weights of the investment score.
// InvertedRisk weighs (100 - risk_score), so lower risk raises the score.
type InvestmentWeights struct {
	OverallScore    float64
	MomentumScore   float64
	EfficiencyScore float64
	InvertedRisk    float64
	MVRVScore       float64
}

// Weights bundles the weight sets of all three composite scores.
type Weights struct {
	Momentum   MomentumWeights
	Risk       RiskWeights
	Investment InvestmentWeights
}

// DefaultWeights returns the production weight sets.
func DefaultWeights() Weights {
	return Weights{
		Momentum: MomentumWeights{
			ChangeMomentum:       0.4,
			MomentumConsistency:  0.3,
			MomentumAcceleration: 0.2,
			RiskAdjustedMomentum: 0.1,
		},
		Risk: RiskWeights{
			VolatilityRisk:    0.35,
			LiquidityRisk:     0.25,
			ConcentrationRisk: 0.20,
			PriceVolatility:   0.20,
		},
		Investment: InvestmentWeights{
			OverallScore:    0.3,
			MomentumScore:   0.25,
			EfficiencyScore: 0.2,
			InvertedRisk:    0.15,
			MVRVScore:       0.1,
		},
	}
}
