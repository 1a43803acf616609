// Package scoring derives the scored columns of a coin snapshot: three
// weighted composite scores, a discrete trading signal and a potential return
// estimate, plus the descriptive tier classifiers.
//
// Every function here is a pure function of one record. Missing inputs never
// fail: a weighted sum drops the term of an absent metric (without
// renormalizing the remaining weights) and the return estimator substitutes
// declared defaults. A fully empty record still scores.
package scoring

import "github.com/mwenyemali/smartcoins/models"

// Score derives all scored fields on one record in place. The investment
// score reads the momentum and risk scores, so those two run first; there is
// no other ordering dependency.
func Score(rec *models.CoinRecord, w Weights) {
	rec.MomentumScore = MomentumScore(rec, w.Momentum)
	rec.RiskScore = RiskScore(rec, w.Risk)
	rec.InvestmentScore = InvestmentScore(rec, w.Investment)
	rec.PredictedSignal = PredictSignal(rec)
	rec.PotentialReturn = PotentialReturn(rec)
}

// ScoreAll scores every record in place. Records are independent of each
// other: no shared state, no order sensitivity across the slice.
func ScoreAll(recs []models.CoinRecord, w Weights) {
	for i := range recs {
		Score(&recs[i], w)
	}
}
