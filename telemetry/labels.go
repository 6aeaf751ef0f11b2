package telemetry

import (
	"sync"
	"time"

	metrics "github.com/armon/go-metrics"
)

var (
	// globalLabelsCache holds the configured global labels appended to every
	// metric emitted through this package.
	globalLabelsCache []metrics.Label
	globalLabelsMtx   sync.RWMutex
)

func setGlobalLabels(labels []metrics.Label) {
	globalLabelsMtx.Lock()
	defer globalLabelsMtx.Unlock()

	globalLabelsCache = labels
}

// errorKindLabel returns a label based on the kind of analysis error.
func errorKindLabel(kind string) metrics.Label {
	return metrics.Label{
		Name:  "kind",
		Value: kind,
	}
}

// estimateLabel returns a label based on the resistance estimate name.
func estimateLabel(estimate string) metrics.Label {
	return metrics.Label{
		Name:  "estimate",
		Value: estimate,
	}
}

func withGlobalLabels(labels ...metrics.Label) []metrics.Label {
	globalLabelsMtx.RLock()
	defer globalLabelsMtx.RUnlock()

	return append(labels, globalLabelsCache...)
}

// IncrRun gives a standard way to add the `analysis_run` metric.
func IncrRun() {
	metrics.IncrCounterWithLabels([]string{"analysis", "run"}, 1, withGlobalLabels())
}

// IncrFailure gives a standard way to add the
// `analysis_failure{kind="x"}` metric.
func IncrFailure(kind string) {
	metrics.IncrCounterWithLabels(
		[]string{"analysis", "failure"},
		1,
		withGlobalLabels(errorKindLabel(kind)),
	)
}

// IncrRegressionMismatch gives a standard way to add the
// `analysis_regression_mismatch` metric.
func IncrRegressionMismatch() {
	metrics.IncrCounterWithLabels([]string{"analysis", "regression", "mismatch"}, 1, withGlobalLabels())
}

// MeasureRunSince gives a standard way to add the `analysis_runtime` metric.
func MeasureRunSince(start time.Time) {
	metrics.MeasureSinceWithLabels([]string{"analysis", "runtime"}, start, withGlobalLabels())
}

// SetResistance gives a standard way to add the
// `analysis_resistance_ohms{estimate="x"}` gauge.
func SetResistance(estimate string, ohms float64) {
	metrics.SetGaugeWithLabels(
		[]string{"analysis", "resistance", "ohms"},
		float32(ohms),
		withGlobalLabels(estimateLabel(estimate)),
	)
}
