package util

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func CalcMean(numbers []float64) float64 {
	return stat.Mean(numbers, nil)
}

// CalcSampleStandardDeviation returns the unbiased (n-1) standard deviation.
func CalcSampleStandardDeviation(numbers []float64) float64 {
	return stat.StdDev(numbers, nil)
}

func CalcCoeficientOfVariation(numbers []float64) float64 {
	mean := CalcMean(numbers)
	stdDev := CalcSampleStandardDeviation(numbers)
	return (stdDev / math.Abs(mean)) * 100
}

// CalcSumOfSquares returns Σ(x - mean)².
func CalcSumOfSquares(numbers []float64, mean float64) float64 {
	sum := 0.0
	for _, num := range numbers {
		diff := num - mean
		sum += diff * diff
	}
	return sum
}

// CalcSumOfProducts returns Σ(x - meanX)(y - meanY). Both slices must have
// the same length.
func CalcSumOfProducts(xs []float64, meanX float64, ys []float64, meanY float64) float64 {
	sum := 0.0
	for i := range xs {
		sum += (xs[i] - meanX) * (ys[i] - meanY)
	}
	return sum
}

// CalcPercentError returns |(estimate - reference) / reference| · 100.
func CalcPercentError(estimate, reference float64) float64 {
	return math.Abs((estimate-reference)/reference) * 100
}

func CalcMinMax(numbers []float64) (float64, float64) {
	return floats.Min(numbers), floats.Max(numbers)
}
