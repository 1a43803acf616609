package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mwenyemali/smartcoins/models"
)

// OutlierMethod selects how outliers are flagged.
type OutlierMethod string

const (
	MethodZScore     OutlierMethod = "zscore"
	MethodIQR        OutlierMethod = "iqr"
	MethodPercentile OutlierMethod = "percentile"
)

// OutlierReport summarizes the outliers of one column.
type OutlierReport struct {
	Column     string
	Method     OutlierMethod
	Count      int
	Percentage float64
	Examples   []string // up to five symbols
}

const maxOutlierExamples = 5

// DetectOutliers flags outlier records in one column. The threshold applies
// to the z-score method only; IQR uses the 1.5*IQR fences and percentile the
// 1st/99th percentiles.
func DetectOutliers(recs []models.CoinRecord, col Column, method OutlierMethod, threshold float64) OutlierReport {
	report := OutlierReport{Column: col.Name, Method: method}

	type point struct {
		symbol string
		value  float64
	}
	var points []point
	var data []float64
	for i := range recs {
		if v, ok := col.Value(&recs[i]); ok {
			points = append(points, point{symbol: recs[i].Symbol, value: v})
			data = append(data, v)
		}
	}
	if len(data) < 2 {
		return report
	}

	var isOutlier func(v float64) bool
	switch method {
	case MethodIQR:
		sorted := append([]float64(nil), data...)
		sort.Float64s(sorted)
		q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
		q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
		iqr := q3 - q1
		lower, upper := q1-1.5*iqr, q3+1.5*iqr
		isOutlier = func(v float64) bool { return v < lower || v > upper }
	case MethodPercentile:
		sorted := append([]float64(nil), data...)
		sort.Float64s(sorted)
		lower := stat.Quantile(0.01, stat.LinInterp, sorted, nil)
		upper := stat.Quantile(0.99, stat.LinInterp, sorted, nil)
		isOutlier = func(v float64) bool { return v < lower || v > upper }
	default: // z-score over the population standard deviation
		mean := stat.Mean(data, nil)
		variance := 0.0
		for _, v := range data {
			variance += (v - mean) * (v - mean)
		}
		std := math.Sqrt(variance / float64(len(data)))
		if std == 0 {
			return report
		}
		isOutlier = func(v float64) bool { return math.Abs(v-mean)/std > threshold }
	}

	for _, p := range points {
		if isOutlier(p.value) {
			report.Count++
			if len(report.Examples) < maxOutlierExamples {
				report.Examples = append(report.Examples, p.symbol)
			}
		}
	}
	report.Percentage = float64(report.Count) / float64(len(data)) * 100
	return report
}
