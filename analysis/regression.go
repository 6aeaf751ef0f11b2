package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
	"github.com/ojo-network/ohm-analyzer/util"
)

const (
	// minRegressionSamples is the smallest sample count that leaves at least one
	// residual degree of freedom (N-2) for the slope standard error.
	minRegressionSamples = 3

	// crossCheckAbsTol and crossCheckRelTol bound how far a fit may drift from
	// gonum's before it is reported.
	crossCheckAbsTol = 1e-12
	crossCheckRelTol = 1e-9
)

// ComputeRegression fits y ≈ slope·x + intercept by ordinary least squares.
//
// The standard error of the slope is sqrt((SSE / (N-2)) / Sxx). Inputs whose x
// (or y) values are all identical have no defined slope or correlation and are
// rejected with ErrDegenerateRegression. Non-finite inputs, and inputs whose
// sums overflow, are rejected with ErrInvalidSample.
func ComputeRegression(x, y []float64) (types.RegressionResult, error) {
	if len(x) != len(y) {
		return types.RegressionResult{}, types.ErrInvalidSample.Wrapf(
			"x and y differ in length: %d != %d", len(x), len(y),
		)
	}
	n := len(x)
	if n < minRegressionSamples {
		return types.RegressionResult{}, types.ErrInsufficientSamples.Wrapf(
			"regression needs at least %d samples, got %d", minRegressionSamples, n,
		)
	}
	if err := validateFinite("x", x); err != nil {
		return types.RegressionResult{}, err
	}
	if err := validateFinite("y", y); err != nil {
		return types.RegressionResult{}, err
	}

	// decided on the inputs: a mean of identical inexact values such as 0.1
	// is off by an ulp and leaves Sxx slightly above zero
	if floats.Min(x) == floats.Max(x) {
		return types.RegressionResult{}, types.ErrDegenerateRegression.Wrap("independent variable has zero variance")
	}
	if floats.Min(y) == floats.Max(y) {
		return types.RegressionResult{}, types.ErrDegenerateRegression.Wrap("dependent variable has zero variance")
	}

	meanX := util.CalcMean(x)
	meanY := util.CalcMean(y)
	sxx := util.CalcSumOfSquares(x, meanX)
	syy := util.CalcSumOfSquares(y, meanY)
	sxy := util.CalcSumOfProducts(x, meanX, y, meanY)

	if !isFinite(meanX) || !isFinite(meanY) || !isFinite(sxx) || !isFinite(syy) || !isFinite(sxy) {
		return types.RegressionResult{}, types.ErrInvalidSample.Wrap("regression sums overflow")
	}
	if sxx == 0 || syy == 0 {
		return types.RegressionResult{}, types.ErrDegenerateRegression.Wrap("variance underflows to zero")
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX
	// square roots taken separately so Sxx·Syy cannot overflow or underflow
	correlation := (sxy / math.Sqrt(sxx)) / math.Sqrt(syy)

	sse := 0.0
	for i := range x {
		residual := y[i] - (slope*x[i] + intercept)
		sse += residual * residual
	}
	slopeStdErr := math.Sqrt((sse / float64(n-2)) / sxx)

	result := types.RegressionResult{
		Slope:       slope,
		Intercept:   intercept,
		Correlation: correlation,
		RSquared:    correlation * correlation,
		SlopeStdErr: slopeStdErr,
	}
	if !isFinite(result.Slope) || !isFinite(result.Intercept) || !isFinite(result.Correlation) ||
		!isFinite(result.SlopeStdErr) {
		return types.RegressionResult{}, types.ErrInvalidSample.Wrap("regression result overflows")
	}

	return result, nil
}

// regressionAgrees refits the data with gonum and reports whether result's
// slope and intercept match it within a relative tolerance.
func regressionAgrees(x, y []float64, result types.RegressionResult) bool {
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return scalar.EqualWithinAbsOrRel(beta, result.Slope, crossCheckAbsTol, crossCheckRelTol) &&
		scalar.EqualWithinAbsOrRel(alpha, result.Intercept, crossCheckAbsTol, crossCheckRelTol)
}
