package types

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSampleSet(t *testing.T) {
	t.Run("when the sequences are aligned", func(t *testing.T) {
		samples, err := NewSampleSet([]float64{2, 4}, []float64{6.06, 12.12})
		require.NoError(t, err)
		require.Len(t, samples, 2)
		require.Equal(t, []float64{2, 4}, samples.Voltages())
		require.Equal(t, []float64{6.06, 12.12}, samples.CurrentsMA())
		require.InDeltaSlice(t, []float64{0.00606, 0.01212}, samples.CurrentsA(), 1e-12)
	})

	t.Run("when the sequences differ in length", func(t *testing.T) {
		_, err := NewSampleSet([]float64{2, 4, 6}, []float64{6.06})
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrInvalidSample))
	})
}

func TestSampleSetValidate(t *testing.T) {
	require.NoError(t, SampleSet{{Voltage: 1, CurrentMA: 2}}.Validate())

	err := SampleSet{{Voltage: 1, CurrentMA: 2}, {Voltage: math.NaN(), CurrentMA: 1}}.Validate()
	require.ErrorIs(t, err, ErrInvalidSample)

	err = SampleSet{{Voltage: 1, CurrentMA: math.Inf(1)}}.Validate()
	require.ErrorIs(t, err, ErrInvalidSample)
}

func TestRegressionResultResistanceOhms(t *testing.T) {
	r := RegressionResult{Slope: 0.33, Intercept: 0.1}
	require.InDelta(t, 330.0, r.ResistanceOhms(), 1e-9)
	require.InDelta(t, 3.4, r.Predict(10), 1e-9)
	require.InDelta(t, 0.33, OhmsToKiloOhms(330), 1e-12)
}
