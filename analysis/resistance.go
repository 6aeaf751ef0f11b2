package analysis

import (
	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

// ComputeResistances applies Ohm's law to every voltage/current pair,
// returning r[i] = voltages[i] / (currentsMA[i] / 1000) in ohms.
//
// A zero current is rejected with ErrInvalidSample rather than producing an
// infinite resistance.
func ComputeResistances(voltages, currentsMA []float64) ([]float64, error) {
	samples, err := types.NewSampleSet(voltages, currentsMA)
	if err != nil {
		return nil, err
	}
	return ComputeSampleResistances(samples)
}

// ComputeSampleResistances is ComputeResistances over an already paired
// sample set.
func ComputeSampleResistances(samples types.SampleSet) ([]float64, error) {
	if len(samples) == 0 {
		return nil, types.ErrInsufficientSamples.Wrap("at least one sample is required")
	}
	if err := samples.Validate(); err != nil {
		return nil, err
	}

	resistances := make([]float64, len(samples))
	for i, s := range samples {
		if s.CurrentMA == 0 {
			return nil, types.ErrInvalidSample.Wrapf("sample %d has zero current", i)
		}
		resistances[i] = s.Voltage / s.CurrentA()
	}
	return resistances, nil
}
