package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

func TestComputeRegression(t *testing.T) {
	testCases := map[string]struct {
		x        []float64
		y        []float64
		expected types.RegressionResult
		err      error
	}{
		"exact line": {
			x: []float64{1, 2, 3, 4},
			y: []float64{2, 4, 6, 8},
			expected: types.RegressionResult{
				Slope:       2,
				Intercept:   0,
				Correlation: 1,
				RSquared:    1,
				SlopeStdErr: 0,
			},
		},
		"negative slope": {
			x: []float64{0, 1, 2},
			y: []float64{5, 3, 1},
			expected: types.RegressionResult{
				Slope:       -2,
				Intercept:   5,
				Correlation: -1,
				RSquared:    1,
				SlopeStdErr: 0,
			},
		},
		"noisy": {
			x: []float64{1, 2, 3, 4, 5},
			y: []float64{2, 4, 5, 4, 5},
			expected: types.RegressionResult{
				Slope:       0.6,
				Intercept:   2.2,
				Correlation: 0.7745966692,
				RSquared:    0.6,
				SlopeStdErr: 0.2828427125,
			},
		},
		"zero variance in x": {
			x:   []float64{5, 5, 5},
			y:   []float64{1, 2, 3},
			err: types.ErrDegenerateRegression,
		},
		"zero variance in inexact x": {
			x:   []float64{0.1, 0.1, 0.1},
			y:   []float64{1, 2, 3},
			err: types.ErrDegenerateRegression,
		},
		"zero variance in recorded current": {
			x:   []float64{6.06, 6.06, 6.06},
			y:   []float64{2, 4, 6},
			err: types.ErrDegenerateRegression,
		},
		"zero variance in inexact y": {
			x:   []float64{1, 2, 3},
			y:   []float64{0.3, 0.3, 0.3},
			err: types.ErrDegenerateRegression,
		},
		"NaN in x": {
			x:   []float64{1, math.NaN(), 3},
			y:   []float64{2, 4, 6},
			err: types.ErrInvalidSample,
		},
		"infinite y": {
			x:   []float64{1, 2, 3},
			y:   []float64{2, math.Inf(-1), 6},
			err: types.ErrInvalidSample,
		},
		"sum of squares overflows": {
			x:   []float64{1e200, 2e200, 3e200},
			y:   []float64{1, 2, 3},
			err: types.ErrInvalidSample,
		},
		"zero variance in y": {
			x:   []float64{1, 2, 3},
			y:   []float64{4, 4, 4},
			err: types.ErrDegenerateRegression,
		},
		"two samples": {
			x:   []float64{1, 2},
			y:   []float64{2, 4},
			err: types.ErrInsufficientSamples,
		},
		"length mismatch": {
			x:   []float64{1, 2, 3},
			y:   []float64{2, 4},
			err: types.ErrInvalidSample,
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			result, err := ComputeRegression(tc.x, tc.y)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.InDelta(t, tc.expected.Slope, result.Slope, 1e-9)
			require.InDelta(t, tc.expected.Intercept, result.Intercept, 1e-9)
			require.InDelta(t, tc.expected.Correlation, result.Correlation, 1e-9)
			require.InDelta(t, tc.expected.RSquared, result.RSquared, 1e-9)
			require.InDelta(t, tc.expected.SlopeStdErr, result.SlopeStdErr, 1e-9)
		})
	}
}

func TestComputeRegressionMatchesGonum(t *testing.T) {
	x := []float64{6.1, 12.0, 18.3, 24.2, 30.4, 36.1, 42.5}
	y := []float64{2.02, 3.95, 6.07, 7.96, 10.05, 11.91, 14.03}

	result, err := ComputeRegression(x, y)
	require.NoError(t, err)

	require.True(t, regressionAgrees(x, y, result))
	require.False(t, math.IsNaN(result.SlopeStdErr))
	require.Greater(t, result.RSquared, 0.999)
}

func TestRegressionAgreesLargeMagnitudes(t *testing.T) {
	// kΩ-scale slope with a large offset; absolute differences exceed 1e-9
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{1e9 + 4.7e6, 1e9 + 9.41e6, 1e9 + 14.09e6, 1e9 + 18.8e6, 1e9 + 23.52e6, 1e9 + 28.2e6}

	result, err := ComputeRegression(x, y)
	require.NoError(t, err)
	require.True(t, regressionAgrees(x, y, result))

	result.Slope *= 1.001
	require.False(t, regressionAgrees(x, y, result))
}
