package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	metrics "github.com/armon/go-metrics"
	metricsprom "github.com/armon/go-metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	FormatDefault    = ""
	FormatPrometheus = "prometheus"
	FormatJSON       = "json"

	ContentTypeJSON = "application/json"

	inmemInterval = 10 * time.Second
	inmemRetain   = time.Minute
)

// Config defines the telemetry configuration.
type Config struct {
	// ServiceName is the prefix applied to every metric key.
	ServiceName string `mapstructure:"service_name"`

	// Enabled turns on the in-memory (and optionally prometheus) sinks.
	Enabled bool `mapstructure:"enabled"`

	// EnableHostnameLabel adds a "hostname" label to every metric.
	EnableHostnameLabel bool `mapstructure:"enable_hostname_label"`

	// PrometheusRetentionTime, when positive, enables a prometheus sink whose
	// series expire after this many seconds.
	PrometheusRetentionTime int64 `mapstructure:"prometheus_retention_time"`

	// GlobalLabels are attached to every emitted metric, as [name, value] pairs.
	GlobalLabels [][]string `mapstructure:"global_labels"`
}

// GatherResponse is the response type of registered metrics.
type GatherResponse struct {
	Metrics     []byte
	ContentType string
}

// Metrics owns the sinks registered with the global go-metrics instance.
type Metrics struct {
	memSink           *metrics.InmemSink
	registry          *prometheus.Registry
	prometheusEnabled bool
}

// New creates the metric sinks described by cfg and installs them as the
// global go-metrics sink.
func New(cfg Config) (*Metrics, error) {
	if !cfg.Enabled {
		setGlobalLabels(nil)
		return nil, nil
	}

	metricsConf := metrics.DefaultConfig(cfg.ServiceName)
	metricsConf.EnableHostname = false
	metricsConf.EnableHostnameLabel = cfg.EnableHostnameLabel

	globalLabels := make([]metrics.Label, 0, len(cfg.GlobalLabels))
	for _, gl := range cfg.GlobalLabels {
		if len(gl) != 2 {
			return nil, fmt.Errorf("global label must be a [name, value] pair: %v", gl)
		}
		globalLabels = append(globalLabels, metrics.Label{Name: gl[0], Value: gl[1]})
	}

	m := &Metrics{
		memSink: metrics.NewInmemSink(inmemInterval, inmemRetain),
	}
	fanout := metrics.FanoutSink{m.memSink}

	if cfg.PrometheusRetentionTime > 0 {
		m.prometheusEnabled = true
		m.registry = prometheus.NewRegistry()

		promSink, err := metricsprom.NewPrometheusSinkFrom(metricsprom.PrometheusOpts{
			Expiration: time.Duration(cfg.PrometheusRetentionTime) * time.Second,
			Registerer: m.registry,
		})
		if err != nil {
			return nil, err
		}
		fanout = append(fanout, promSink)
	}

	if _, err := metrics.NewGlobal(metricsConf, fanout); err != nil {
		return nil, err
	}
	setGlobalLabels(globalLabels)

	return m, nil
}

// Gather collects all registered metrics and returns a GatherResponse where the
// metrics are encoded depending on the type. Metrics are either encoded via
// Prometheus or JSON if in-memory.
func (m *Metrics) Gather(format string) (GatherResponse, error) {
	switch format {
	case FormatPrometheus:
		return m.gatherPrometheus()

	case FormatJSON, FormatDefault:
		return m.gatherGeneric()

	default:
		return GatherResponse{}, fmt.Errorf("unsupported metrics format: %s", format)
	}
}

func (m *Metrics) gatherPrometheus() (GatherResponse, error) {
	if !m.prometheusEnabled {
		return GatherResponse{}, fmt.Errorf("prometheus metrics are not enabled")
	}

	metricsFamilies, err := m.registry.Gather()
	if err != nil {
		return GatherResponse{}, fmt.Errorf("failed to gather prometheus metrics: %w", err)
	}

	buf := &bytes.Buffer{}
	e := expfmt.NewEncoder(buf, expfmt.FmtText)
	for _, mf := range metricsFamilies {
		if err := e.Encode(mf); err != nil {
			return GatherResponse{}, fmt.Errorf("failed to encode prometheus metrics: %w", err)
		}
	}

	return GatherResponse{ContentType: string(expfmt.FmtText), Metrics: buf.Bytes()}, nil
}

func (m *Metrics) gatherGeneric() (GatherResponse, error) {
	summary, err := m.memSink.DisplayMetrics(nil, nil)
	if err != nil {
		return GatherResponse{}, fmt.Errorf("failed to gather in-memory metrics: %w", err)
	}

	content, err := json.Marshal(summary)
	if err != nil {
		return GatherResponse{}, fmt.Errorf("failed to encode JSON metrics: %w", err)
	}

	return GatherResponse{ContentType: ContentTypeJSON, Metrics: content}, nil
}
