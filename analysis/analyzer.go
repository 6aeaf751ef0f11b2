package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
	"github.com/ojo-network/ohm-analyzer/telemetry"
)

// Analyzer implements the pipeline that turns a sample set into a report:
// per-sample resistances, aggregate statistics, the V-I regression, the
// comparison against the nominal resistance and outlier screening. The last
// successful report is retained for the HTTP API.
type Analyzer struct {
	logger zerolog.Logger

	nominalResistance  sdkmath.LegacyDec
	deviationThreshold sdkmath.LegacyDec

	reportMutex   sync.RWMutex
	lastRunTS     time.Time
	report        types.Report
	reportPresent bool
}

func New(
	logger zerolog.Logger,
	nominalResistance sdkmath.LegacyDec,
	deviationThreshold sdkmath.LegacyDec,
) *Analyzer {
	switch {
	case deviationThreshold.IsNil() || !deviationThreshold.IsPositive():
		deviationThreshold = DefaultDeviationThreshold
	case deviationThreshold.GT(MaxDeviationThreshold):
		deviationThreshold = MaxDeviationThreshold
	}
	return &Analyzer{
		logger:             logger.With().Str("module", "analyzer").Logger(),
		nominalResistance:  nominalResistance,
		deviationThreshold: deviationThreshold,
	}
}

// Run executes the full pipeline over samples. On any error no report is
// produced and the previously stored report is left untouched.
func (a *Analyzer) Run(ctx context.Context, samples types.SampleSet) (types.Report, error) {
	if err := ctx.Err(); err != nil {
		return types.Report{}, err
	}

	startTime := time.Now()
	telemetry.IncrRun()

	report, err := a.run(samples)
	if err != nil {
		telemetry.IncrFailure(ErrorKind(err))
		a.logger.Err(err).Int("samples", len(samples)).Msg("analysis run failed")
		return types.Report{}, err
	}

	telemetry.MeasureRunSince(startTime)
	telemetry.SetResistance("mean", report.Stats.Mean)
	telemetry.SetResistance("regression", report.Regression.ResistanceOhms())

	a.reportMutex.Lock()
	a.report = report
	a.reportPresent = true
	a.lastRunTS = report.CompletedAt
	a.reportMutex.Unlock()

	a.logger.Info().
		Int("samples", len(samples)).
		Float64("mean_ohms", report.Stats.Mean).
		Float64("slope_ohms", report.Regression.ResistanceOhms()).
		Float64("r_squared", report.Regression.RSquared).
		Int("outliers", len(report.Outliers)).
		Msg("analysis run completed")

	return report, nil
}

func (a *Analyzer) run(samples types.SampleSet) (types.Report, error) {
	nominal, err := a.nominalResistance.Float64()
	if err != nil {
		return types.Report{}, err
	}

	resistances, err := ComputeSampleResistances(samples)
	if err != nil {
		return types.Report{}, err
	}

	stats, err := ComputeAggregateStats(resistances)
	if err != nil {
		return types.Report{}, err
	}

	currentsMA := samples.CurrentsMA()
	voltages := samples.Voltages()
	regression, err := ComputeRegression(currentsMA, voltages)
	if err != nil {
		return types.Report{}, err
	}

	if !regressionAgrees(currentsMA, voltages, regression) {
		telemetry.IncrRegressionMismatch()
		a.logger.Warn().
			Float64("slope", regression.Slope).
			Float64("intercept", regression.Intercept).
			Msg("regression disagrees with reference fit")
	}

	comparison, err := CompareResistances(nominal, stats.Mean, regression.ResistanceOhms())
	if err != nil {
		return types.Report{}, err
	}

	outliers, err := FilterResistanceDeviations(a.logger, samples, resistances, stats, a.deviationThreshold)
	if err != nil {
		return types.Report{}, err
	}

	reportSamples := make(types.SampleSet, len(samples))
	copy(reportSamples, samples)

	return types.Report{
		Samples:           reportSamples,
		Resistances:       resistances,
		Stats:             stats,
		Regression:        regression,
		NominalResistance: nominal,
		Comparison:        comparison,
		Outliers:          outliers,
		CompletedAt:       time.Now().UTC(),
	}, nil
}

// GetReport returns the last successful report and whether one exists.
func (a *Analyzer) GetReport() (types.Report, bool) {
	a.reportMutex.RLock()
	defer a.reportMutex.RUnlock()

	return a.report, a.reportPresent
}

// GetLastRunTimestamp returns the time at which the last successful report
// was produced.
func (a *Analyzer) GetLastRunTimestamp() time.Time {
	a.reportMutex.RLock()
	defer a.reportMutex.RUnlock()

	return a.lastRunTS
}

// ErrorKind maps an analysis error to a short label used in metrics.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, types.ErrInvalidSample):
		return "invalid_sample"
	case errors.Is(err, types.ErrInsufficientSamples):
		return "insufficient_samples"
	case errors.Is(err, types.ErrDegenerateRegression):
		return "degenerate_regression"
	case errors.Is(err, types.ErrDivisionByZero):
		return "division_by_zero"
	default:
		return "unknown"
	}
}
