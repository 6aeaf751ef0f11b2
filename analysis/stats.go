package analysis

import (
	"github.com/ojo-network/ohm-analyzer/analysis/types"
	"github.com/ojo-network/ohm-analyzer/util"
)

// ComputeAggregateStats returns the mean and Bessel-corrected sample standard
// deviation of the given resistances. At least two finite values are
// required.
func ComputeAggregateStats(resistances []float64) (types.AggregateStats, error) {
	if len(resistances) < 2 {
		return types.AggregateStats{}, types.ErrInsufficientSamples.Wrapf(
			"sample standard deviation needs at least 2 values, got %d", len(resistances),
		)
	}

	if err := validateFinite("resistances", resistances); err != nil {
		return types.AggregateStats{}, err
	}

	lo, hi := util.CalcMinMax(resistances)
	stats := types.AggregateStats{
		Mean:   util.CalcMean(resistances),
		StdDev: util.CalcSampleStandardDeviation(resistances),
		Min:    lo,
		Max:    hi,
	}
	if !isFinite(stats.Mean) || !isFinite(stats.StdDev) {
		return types.AggregateStats{}, types.ErrInvalidSample.Wrap("resistance statistics overflow")
	}
	if stats.Mean != 0 {
		stats.CV = util.CalcCoeficientOfVariation(resistances)
	}

	return stats, nil
}
