package types

import (
	"fmt"
	"math"
)

// milliampsPerAmp converts currents recorded in mA to amperes.
const milliampsPerAmp = 1000.0

// Sample defines a single voltage/current reading taken from the circuit
// simulation. Voltage is in volts and CurrentMA is in milliamps.
type Sample struct {
	Voltage   float64 `json:"voltage" yaml:"voltage"`
	CurrentMA float64 `json:"current_ma" yaml:"current_ma"`
}

// CurrentA returns the sample current in amperes.
func (s Sample) CurrentA() float64 {
	return s.CurrentMA / milliampsPerAmp
}

// String implements the Stringer interface.
func (s Sample) String() string {
	return fmt.Sprintf("%gV@%gmA", s.Voltage, s.CurrentMA)
}

// SampleSet is an ordered, index-aligned sequence of samples.
type SampleSet []Sample

// NewSampleSet pairs voltages and currents by index. The two sequences must
// have the same length.
func NewSampleSet(voltages, currentsMA []float64) (SampleSet, error) {
	if len(voltages) != len(currentsMA) {
		return nil, ErrInvalidSample.Wrapf(
			"voltage and current sequences differ in length: %d != %d",
			len(voltages), len(currentsMA),
		)
	}

	samples := make(SampleSet, len(voltages))
	for i := range voltages {
		samples[i] = Sample{Voltage: voltages[i], CurrentMA: currentsMA[i]}
	}
	return samples, nil
}

// Voltages returns the voltage column in volts.
func (ss SampleSet) Voltages() []float64 {
	voltages := make([]float64, len(ss))
	for i, s := range ss {
		voltages[i] = s.Voltage
	}
	return voltages
}

// CurrentsMA returns the current column in milliamps.
func (ss SampleSet) CurrentsMA() []float64 {
	currents := make([]float64, len(ss))
	for i, s := range ss {
		currents[i] = s.CurrentMA
	}
	return currents
}

// CurrentsA returns the current column in amperes.
func (ss SampleSet) CurrentsA() []float64 {
	currents := make([]float64, len(ss))
	for i, s := range ss {
		currents[i] = s.CurrentA()
	}
	return currents
}

// Validate returns an error if any sample holds a non-finite value.
func (ss SampleSet) Validate() error {
	for i, s := range ss {
		if !isFinite(s.Voltage) || !isFinite(s.CurrentMA) {
			return ErrInvalidSample.Wrapf("sample %d (%s) is not finite", i, s)
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
