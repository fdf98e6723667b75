package tiltedstable

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SummaryQuantiles are the probabilities reported by Summarize.
var SummaryQuantiles = []float64{0.01, 0.05, 0.25, 0.5, 0.75, 0.95, 0.99}

// Summary describes a sample of variates.
type Summary struct {
	N          int
	Mean       float64
	Variance   float64
	Skewness   float64
	ExKurtosis float64
	Min        float64
	Max        float64
	// Quantiles holds the empirical quantile for each of SummaryQuantiles.
	Quantiles []float64
}

// Summarize computes sample moments and empirical quantiles of xs.
// xs is not modified.
func Summarize(xs []float64) Summary {
	sum := Summary{N: len(xs)}
	if len(xs) == 0 {
		return sum
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	sum.Mean, sum.Variance = stat.MeanVariance(sorted, nil)
	sum.Min = floats.Min(sorted)
	sum.Max = floats.Max(sorted)
	if len(xs) > 3 {
		sum.Skewness = stat.Skew(sorted, nil)
		sum.ExKurtosis = stat.ExKurtosis(sorted, nil)
	}
	sum.Quantiles = make([]float64, len(SummaryQuantiles))
	for i, p := range SummaryQuantiles {
		sum.Quantiles[i] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}
	return sum
}

// KSResult is the outcome of a two-sample Kolmogorov–Smirnov test.
type KSResult struct {
	// D is the largest distance between the two empirical CDFs.
	D float64
	// Critical is the asymptotic rejection threshold for D.
	Critical float64
	// Reject reports D > Critical.
	Reject bool
}

// TwoSampleKS tests whether x and y come from the same distribution at the
// given significance level, e.g. 0.01. x and y are not modified.
func TwoSampleKS(x, y []float64, significance float64) KSResult {
	xs := make([]float64, len(x))
	copy(xs, x)
	sort.Float64s(xs)
	ys := make([]float64, len(y))
	copy(ys, y)
	sort.Float64s(ys)

	n, m := float64(len(xs)), float64(len(ys))
	res := KSResult{
		D:        stat.KolmogorovSmirnov(xs, nil, ys, nil),
		Critical: math.Sqrt(-math.Log(significance/2)/2) * math.Sqrt((n+m)/(n*m)),
	}
	res.Reject = res.D > res.Critical
	return res
}
