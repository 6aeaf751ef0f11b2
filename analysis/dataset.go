package analysis

import "github.com/ojo-network/ohm-analyzer/analysis/types"

var (
	// referenceVoltages are the source voltages applied in the simulation, in V.
	referenceVoltages = []float64{2, 4, 6, 8, 10, 12, 14, 16, 18, 20}

	// referenceCurrentsMA are the currents read back for each voltage, in mA.
	referenceCurrentsMA = []float64{6.06, 12.12, 18.18, 24.24, 30.30, 36.36, 42.42, 48.48, 54.54, 60.60}
)

// ReferenceSamples returns a fresh copy of the reference circuit-simulation
// dataset measured across a 330 Ω resistor.
func ReferenceSamples() types.SampleSet {
	samples, err := types.NewSampleSet(referenceVoltages, referenceCurrentsMA)
	if err != nil {
		panic(err)
	}
	return samples
}
