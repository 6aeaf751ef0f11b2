package analysis

import (
	"math"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

var (
	// DefaultDeviationThreshold defines how many 𝜎 a sample's resistance can be
	// away from the mean without being reported as an outlier. This can be
	// overridden in the config.
	DefaultDeviationThreshold = sdkmath.LegacyMustNewDecFromStr("2.0")

	// MaxDeviationThreshold is the largest threshold accepted from the config.
	MaxDeviationThreshold = sdkmath.LegacyMustNewDecFromStr("3.0")
)

const (
	// minScreenedSamples is the smallest sample count for which 𝜎 is
	// considered meaningful enough to screen against.
	minScreenedSamples = 3

	// relativeMarginFloor keeps rounding noise on ideal data (𝜎 ≈ 1e-13)
	// from being reported.
	relativeMarginFloor = 1e-9
)

// FilterResistanceDeviations finds the samples whose resistance is not within
// threshold·𝜎 of the mean. The returned outliers are in sample order.
func FilterResistanceDeviations(
	logger zerolog.Logger,
	samples types.SampleSet,
	resistances []float64,
	stats types.AggregateStats,
	threshold sdkmath.LegacyDec,
) ([]types.Outlier, error) {
	if len(samples) != len(resistances) {
		return nil, types.ErrInvalidSample.Wrapf(
			"samples and resistances differ in length: %d != %d", len(samples), len(resistances),
		)
	}
	outliers := []types.Outlier{}
	if len(resistances) < minScreenedSamples {
		return outliers, nil
	}

	t, err := threshold.Float64()
	if err != nil {
		return nil, err
	}

	margin := math.Max(stats.StdDev*t, math.Abs(stats.Mean)*relativeMarginFloor)
	for i, r := range resistances {
		if isBetween(r, stats.Mean, margin) {
			continue
		}

		logger.Warn().
			Int("index", i).
			Str("sample", samples[i].String()).
			Float64("resistance", r).
			Float64("mean", stats.Mean).
			Float64("margin", margin).
			Msg("sample deviating from other resistances")

		outliers = append(outliers, types.Outlier{
			Index:      i,
			Sample:     samples[i],
			Resistance: r,
		})
	}

	return outliers, nil
}

func isBetween(r, mean, margin float64) bool {
	return r >= mean-margin && r <= mean+margin
}
