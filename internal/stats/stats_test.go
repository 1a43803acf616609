package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwenyemali/smartcoins/models"
)

func f(v float64) *float64 {
	return &v
}

func overallColumn() Column {
	return Column{"overall_score", optional(func(r *models.CoinRecord) *float64 { return r.OverallScore })}
}

func TestDescribe(t *testing.T) {
	recs := []models.CoinRecord{
		{Symbol: "A", OverallScore: f(10)},
		{Symbol: "B", OverallScore: f(20)},
		{Symbol: "C", OverallScore: f(30)},
		{Symbol: "D"}, // absent, skipped like NaN
	}

	summaries := Describe(recs, []Column{overallColumn()})
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 20, s.Mean, 1e-9)
	assert.InDelta(t, 20, s.Median, 1e-9)
	assert.InDelta(t, 10, s.Min, 1e-9)
	assert.InDelta(t, 30, s.Max, 1e-9)
	assert.InDelta(t, 10, s.Std, 1e-9)
}

func TestDescribe_EmptyColumn(t *testing.T) {
	summaries := Describe([]models.CoinRecord{{Symbol: "A"}}, []Column{overallColumn()})
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].Count)
}

func TestCorrelationMatrix(t *testing.T) {
	cols := []Column{
		{"x", optional(func(r *models.CoinRecord) *float64 { return r.OverallScore })},
		{"y", optional(func(r *models.CoinRecord) *float64 { return r.EfficiencyScore })},
	}
	recs := []models.CoinRecord{
		{OverallScore: f(1), EfficiencyScore: f(2)},
		{OverallScore: f(2), EfficiencyScore: f(4)},
		{OverallScore: f(3), EfficiencyScore: f(6)},
	}

	m := CorrelationMatrix(recs, cols)
	assert.Equal(t, 1.0, m.Values[0][0])
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-9, "perfectly linear columns correlate at 1")
	assert.Equal(t, m.Values[0][1], m.Values[1][0])

	pairs := TopCorrelations(m, 10)
	require.Len(t, pairs, 1)
	assert.Equal(t, "x", pairs[0].A)
	assert.Equal(t, "y", pairs[0].B)
}

func TestCorrelationMatrix_InsufficientOverlap(t *testing.T) {
	cols := []Column{
		{"x", optional(func(r *models.CoinRecord) *float64 { return r.OverallScore })},
		{"y", optional(func(r *models.CoinRecord) *float64 { return r.EfficiencyScore })},
	}
	recs := []models.CoinRecord{
		{OverallScore: f(1)},
		{EfficiencyScore: f(2)},
	}

	m := CorrelationMatrix(recs, cols)
	assert.True(t, math.IsNaN(m.Values[0][1]))
	assert.Empty(t, TopCorrelations(m, 10), "NaN pairs are excluded")
}

func TestGroupBy(t *testing.T) {
	recs := []models.CoinRecord{
		{CoinType: "crypto", OverallScore: f(10)},
		{CoinType: "crypto", OverallScore: f(30)},
		{CoinType: "meme", OverallScore: f(50)},
		{CoinType: "meme"},
	}

	groups := GroupBy(recs, func(r *models.CoinRecord) string { return r.CoinType }, overallColumn())
	require.Len(t, groups, 2)

	assert.Equal(t, "crypto", groups[0].Group)
	assert.Equal(t, 2, groups[0].Count)
	assert.InDelta(t, 20, groups[0].Mean, 1e-9)

	assert.Equal(t, "meme", groups[1].Group)
	assert.Equal(t, 2, groups[1].Count, "count includes records with the column absent")
	assert.InDelta(t, 50, groups[1].Mean, 1e-9)
}
