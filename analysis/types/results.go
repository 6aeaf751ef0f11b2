package types

import "time"

const ohmsPerKiloOhm = 1000.0

// OhmsToKiloOhms converts a resistance in ohms to kilo-ohms.
func OhmsToKiloOhms(ohms float64) float64 {
	return ohms / ohmsPerKiloOhm
}

// AggregateStats holds summary statistics over the derived resistances.
// StdDev is the Bessel-corrected sample standard deviation.
type AggregateStats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	CV     float64 `json:"cv" yaml:"cv"` // coefficient of variation (%)
}

// RegressionResult holds an ordinary least-squares fit of y ≈ Slope·x + Intercept.
type RegressionResult struct {
	Slope       float64 `json:"slope" yaml:"slope"`
	Intercept   float64 `json:"intercept" yaml:"intercept"`
	Correlation float64 `json:"correlation" yaml:"correlation"`
	RSquared    float64 `json:"r_squared" yaml:"r_squared"`
	SlopeStdErr float64 `json:"slope_std_err" yaml:"slope_std_err"`
}

// ResistanceOhms returns the fitted slope as a resistance in ohms, assuming
// the fit was run with x in milliamps and y in volts.
func (r RegressionResult) ResistanceOhms() float64 {
	return r.Slope * milliampsPerAmp
}

// SlopeStdErrOhms returns the slope standard error in ohms, under the same
// unit assumption as ResistanceOhms.
func (r RegressionResult) SlopeStdErrOhms() float64 {
	return r.SlopeStdErr * milliampsPerAmp
}

// Predict evaluates the fitted line at x.
func (r RegressionResult) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// ComparisonRow contrasts one resistance estimate with the nominal value.
// A nil PercentError means the error is not applicable (the nominal row).
type ComparisonRow struct {
	Label           string   `json:"label" yaml:"label"`
	ResistanceOhms  float64  `json:"resistance_ohms" yaml:"resistance_ohms"`
	ResistanceKOhms float64  `json:"resistance_kohms" yaml:"resistance_kohms"`
	PercentError    *float64 `json:"percent_error,omitempty" yaml:"percent_error,omitempty"`
}

// Outlier identifies a sample whose resistance deviates from the mean by more
// than the configured number of standard deviations.
type Outlier struct {
	Index      int     `json:"index" yaml:"index"`
	Sample     Sample  `json:"sample" yaml:"sample"`
	Resistance float64 `json:"resistance" yaml:"resistance"`
}

// Report is the immutable result of one analysis run.
type Report struct {
	Samples           SampleSet        `json:"samples" yaml:"samples"`
	Resistances       []float64        `json:"resistances" yaml:"resistances"`
	Stats             AggregateStats   `json:"stats" yaml:"stats"`
	Regression        RegressionResult `json:"regression" yaml:"regression"`
	NominalResistance float64          `json:"nominal_resistance" yaml:"nominal_resistance"`
	Comparison        []ComparisonRow  `json:"comparison" yaml:"comparison"`
	Outliers          []Outlier        `json:"outliers" yaml:"outliers"`
	CompletedAt       time.Time        `json:"completed_at" yaml:"completed_at"`
}
