package analysis_test

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ojo-network/ohm-analyzer/analysis"
	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

var nominal330 = sdkmath.LegacyNewDec(330)

func TestAnalyzerRunReferenceDataset(t *testing.T) {
	a := analysis.New(zerolog.Nop(), nominal330, analysis.DefaultDeviationThreshold)

	_, ok := a.GetReport()
	require.False(t, ok, "no report should exist before the first run")

	report, err := a.Run(context.Background(), analysis.ReferenceSamples())
	require.NoError(t, err)

	require.Len(t, report.Resistances, 10)
	for _, r := range report.Resistances {
		require.InDelta(t, 330.03, r, 0.01)
	}

	require.InDelta(t, 330.03, report.Stats.Mean, 0.01)
	require.InDelta(t, 0.0, report.Stats.StdDev, 1e-9)

	require.InDelta(t, 330.03, report.Regression.ResistanceOhms(), 0.01)
	require.InDelta(t, 0.0, report.Regression.Intercept, 1e-9)
	require.InDelta(t, 1.0, report.Regression.RSquared, 1e-12)

	require.Len(t, report.Comparison, 3)
	require.Nil(t, report.Comparison[0].PercentError)
	require.InDelta(t, 0.01, *report.Comparison[1].PercentError, 1e-4)
	require.InDelta(t, 0.01, *report.Comparison[2].PercentError, 1e-4)
	require.Empty(t, report.Outliers)

	stored, ok := a.GetReport()
	require.True(t, ok)
	require.Equal(t, report.Stats, stored.Stats)
	require.Equal(t, report.CompletedAt, a.GetLastRunTimestamp())
}

func TestAnalyzerRunFailures(t *testing.T) {
	testCases := map[string]struct {
		nominal sdkmath.LegacyDec
		samples types.SampleSet
		err     error
		kind    string
	}{
		"zero current": {
			nominal: nominal330,
			samples: types.SampleSet{{Voltage: 1, CurrentMA: 1}, {Voltage: 2, CurrentMA: 0}, {Voltage: 3, CurrentMA: 3}},
			err:     types.ErrInvalidSample,
			kind:    "invalid_sample",
		},
		"single sample": {
			nominal: nominal330,
			samples: types.SampleSet{{Voltage: 1, CurrentMA: 1}},
			err:     types.ErrInsufficientSamples,
			kind:    "insufficient_samples",
		},
		"constant current": {
			nominal: nominal330,
			samples: types.SampleSet{{Voltage: 1, CurrentMA: 5}, {Voltage: 2, CurrentMA: 5}, {Voltage: 3, CurrentMA: 5}},
			err:     types.ErrDegenerateRegression,
			kind:    "degenerate_regression",
		},
		"zero nominal": {
			nominal: sdkmath.LegacyZeroDec(),
			samples: analysis.ReferenceSamples(),
			err:     types.ErrDivisionByZero,
			kind:    "division_by_zero",
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			a := analysis.New(zerolog.Nop(), tc.nominal, analysis.DefaultDeviationThreshold)

			report, err := a.Run(context.Background(), tc.samples)
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.kind, analysis.ErrorKind(err))
			require.Empty(t, report.Comparison, "no partial report should be returned")

			_, ok := a.GetReport()
			require.False(t, ok)
		})
	}
}

func TestAnalyzerRunCanceled(t *testing.T) {
	a := analysis.New(zerolog.Nop(), nominal330, sdkmath.LegacyDec{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Run(ctx, analysis.ReferenceSamples())
	require.ErrorIs(t, err, context.Canceled)
}

func TestReferenceSamplesIsACopy(t *testing.T) {
	samples := analysis.ReferenceSamples()
	samples[0].Voltage = 99

	require.Equal(t, 2.0, analysis.ReferenceSamples()[0].Voltage)
}
