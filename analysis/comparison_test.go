package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

func TestCompareResistances(t *testing.T) {
	t.Run("when the nominal value is valid", func(t *testing.T) {
		rows, err := CompareResistances(330, 330.03, 297)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		require.Equal(t, LabelNominal, rows[0].Label)
		require.Nil(t, rows[0].PercentError)
		require.InDelta(t, 0.33, rows[0].ResistanceKOhms, 1e-12)

		require.Equal(t, LabelMeanRatio, rows[1].Label)
		require.NotNil(t, rows[1].PercentError)
		require.InDelta(t, 0.0091, *rows[1].PercentError, 1e-4)
		require.InDelta(t, 0.33003, rows[1].ResistanceKOhms, 1e-9)

		require.Equal(t, LabelRegression, rows[2].Label)
		require.InDelta(t, 10.0, *rows[2].PercentError, 1e-9)
	})

	t.Run("when the nominal value is zero", func(t *testing.T) {
		rows, err := CompareResistances(0, 330.03, 330.03)
		require.ErrorIs(t, err, types.ErrDivisionByZero)
		require.Nil(t, rows)
	})

	t.Run("when a value is not finite", func(t *testing.T) {
		testCases := map[string][3]float64{
			"NaN nominal":      {math.NaN(), 330, 330},
			"infinite nominal": {math.Inf(1), 330, 330},
			"NaN mean":         {330, math.NaN(), 330},
			"infinite slope":   {330, 330, math.Inf(-1)},
		}
		for name, tc := range testCases {
			rows, err := CompareResistances(tc[0], tc[1], tc[2])
			require.ErrorIs(t, err, types.ErrInvalidSample, name)
			require.Nil(t, rows, name)
		}
	})

	t.Run("when the percent error overflows", func(t *testing.T) {
		_, err := CompareResistances(1e-310, math.MaxFloat64, 330)
		require.ErrorIs(t, err, types.ErrInvalidSample)
	})
}
