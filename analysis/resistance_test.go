package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

func TestComputeResistances(t *testing.T) {
	testCases := map[string]struct {
		voltages   []float64
		currentsMA []float64
		expected   []float64
		err        error
	}{
		"reference pairs": {
			voltages:   []float64{2, 4, 20},
			currentsMA: []float64{6.06, 12.12, 60.60},
			expected:   []float64{330.0330033, 330.0330033, 330.0330033},
		},
		"single sample": {
			voltages:   []float64{5},
			currentsMA: []float64{10},
			expected:   []float64{500},
		},
		"negative polarity": {
			voltages:   []float64{-3.3},
			currentsMA: []float64{-10},
			expected:   []float64{330},
		},
		"length mismatch": {
			voltages:   []float64{1, 2},
			currentsMA: []float64{1},
			err:        types.ErrInvalidSample,
		},
		"zero current": {
			voltages:   []float64{1, 2},
			currentsMA: []float64{1, 0},
			err:        types.ErrInvalidSample,
		},
		"empty": {
			voltages:   []float64{},
			currentsMA: []float64{},
			err:        types.ErrInsufficientSamples,
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			resistances, err := ComputeResistances(tc.voltages, tc.currentsMA)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Nil(t, resistances)
				return
			}
			require.NoError(t, err)
			require.InDeltaSlice(t, tc.expected, resistances, 1e-6)
		})
	}
}

func TestComputeResistancesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		n := 1 + rng.Intn(20)
		voltages := make([]float64, n)
		currentsMA := make([]float64, n)
		for i := range voltages {
			voltages[i] = rng.Float64()*40 - 20
			currentsMA[i] = 0.1 + rng.Float64()*100
		}

		resistances, err := ComputeResistances(voltages, currentsMA)
		require.NoError(t, err)

		for i, r := range resistances {
			require.InDelta(t, voltages[i], r*(currentsMA[i]/1000), 1e-9)
		}
	}
}
